package container

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/danpasecinic/spool/internal/errs"
	"github.com/danpasecinic/spool/internal/graph"
	"github.com/danpasecinic/spool/internal/module"
)

// Graph builds the static dependency graph of every factory in c and its
// ancestors. Nodes are "<path> (<container>)"; dependencies that resolve to
// values or submodules are leaves and carry no edge. Unresolvable
// dependencies are returned separately as "<dep> (required by <node>)".
func (c *Container) Graph() (*graph.Graph, []string) {
	g := graph.New()
	var missing []string

	for cur := c; cur != nil; cur = cur.parent {
		cur.walkFactories(module.Root, func(reg *module.FactoryRegistration) {
			node := Location{Path: reg.Path, Container: cur.name}.String()

			var edges []string
			for _, dep := range Discover(reg) {
				owner, isFactory, ok := cur.locateStatic(module.ParsePath(dep))
				switch {
				case !ok:
					missing = append(missing, fmt.Sprintf("%s (required by %s)", dep, node))
				case isFactory:
					edges = append(edges, Location{Path: module.ParsePath(dep), Container: owner.name}.String())
				}
			}
			g.AddNode(node, edges)
		})
	}

	return g, missing
}

func (c *Container) walkFactories(h module.Handle, fn func(*module.FactoryRegistration)) {
	for _, reg := range c.tree.Factories(h) {
		fn(reg)
	}
	for _, id := range c.tree.Submodules(h) {
		if child, ok := c.tree.Submodule(h, id); ok {
			c.walkFactories(child, fn)
		}
	}
}

// locateStatic finds the container that would serve p, searching c first and
// then its ancestors, without running any factory.
func (c *Container) locateStatic(p module.Path) (*Container, bool, bool) {
	if len(p) == 0 {
		return nil, false, false
	}

	parent, id := p.Split()
	for cur := c; cur != nil; cur = cur.parent {
		h, ok := cur.tree.Locate(parent)
		if !ok || !cur.tree.Exists(h, id) {
			continue
		}
		_, isFactory := cur.tree.Factory(h, id)
		return cur, isFactory, true
	}
	return nil, false, false
}

// Validate reports every missing dependency and every dependency cycle
// visible from c, combined into one ValidationFailed error.
func (c *Container) Validate() error {
	g, missing := c.Graph()

	var err error
	for _, m := range missing {
		err = multierr.Append(err, errs.New(errs.CodeUnknownIdentifier, "missing dependency "+m, nil))
	}
	for _, cycle := range g.CyclePaths() {
		err = multierr.Append(err, errs.CircularDependency(cycle[0], c.name, cycle))
	}

	if err != nil {
		return errs.ValidationFailed(c.name, err)
	}
	return nil
}

// DependencyOrder returns the static build order of the component at path,
// ending with the component itself.
func (c *Container) DependencyOrder(path string) ([]string, error) {
	p := module.ParsePath(path)
	owner, _, ok := c.locateStatic(p)
	if !ok {
		return nil, errs.UnknownIdentifier(path, c.name, c.VisibleScope(), []string{path}, nil)
	}

	g, _ := c.Graph()
	order, err := g.ResolutionOrder(Location{Path: p, Container: owner.name}.String())
	if err != nil {
		return nil, errs.New(errs.CodeCircularDependency, fmt.Sprintf("'%s' depends on itself", path), err).
			WithComponent(path).WithContainer(c.name)
	}
	return order, nil
}
