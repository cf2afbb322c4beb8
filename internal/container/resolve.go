package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/danpasecinic/spool/internal/errs"
	"github.com/danpasecinic/spool/internal/module"
	"github.com/danpasecinic/spool/internal/scope"
)

// Location pairs a component path with the container it was looked up in.
type Location struct {
	Path      module.Path
	Container string
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%s)", l.Path, l.Container)
}

func (l Location) Equal(other Location) bool {
	return l.Container == other.Container && l.Path.Equal(other.Path)
}

func formatChain(locations []Location) []string {
	out := make([]string, len(locations))
	for i, loc := range locations {
		out[i] = loc.String()
	}
	return out
}

func extend[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

// view is the resolver handed to factories and returned for submodules. It
// is anchored at one module of one container and remembers who is asking.
type view struct {
	container    *Container
	forComponent module.Path
	from         module.Handle
	depPath      []Location
	searched     []string
	resolvable   [][]string
	prefetched   map[string]any
	task         *task
}

func (v *view) String() string {
	return fmt.Sprintf("resolver(%s in %s)", v.container.tree.Path(v.from), v.container.name)
}

// Resolve looks up id relative to the view's module. A dotted id walks
// through submodules one segment at a time.
func (v *view) Resolve(ctx context.Context, id string) (any, error) {
	if instance, ok := v.prefetched[id]; ok {
		return instance, nil
	}

	segments := module.ParsePath(id)
	current := v
	for i, segment := range segments {
		instance, err := current.resolveID(ctx, segment)
		if err != nil {
			return nil, err
		}
		if i == len(segments)-1 {
			return instance, nil
		}

		next, ok := instance.(*view)
		if !ok {
			return nil, errs.NotAModule(id, segment)
		}
		current = next
	}

	return nil, errs.InvalidIdentifier(id)
}

func (v *view) resolveID(ctx context.Context, id string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := v.container
	tree := c.tree
	target := tree.Path(v.from).Join(id)
	here := Location{Path: target, Container: c.name}

	if !tree.Exists(v.from, id) {
		searched := extend(v.searched, c.name)
		resolvable := extend(v.resolvable, tree.ResolvableIDs(v.from))

		if c.parent != nil {
			c.logger.Debug("not registered, delegating to parent",
				zap.String("component", target.String()),
				zap.String("parent", c.parent.name),
			)
			return c.parent.resolvePath(ctx, v.task, target, v.depPath, searched, resolvable)
		}

		chain := formatChain(extend(v.depPath, here))
		return nil, errs.UnknownIdentifier(
			target.String(), c.name, searched, chain, c.suggest(id, resolvable),
		)
	}

	if !c.oracle.IsVisible(v.forComponent, target) {
		return nil, errs.NotVisible(target.String(), v.forComponent.String(), c.name)
	}

	for _, loc := range v.depPath {
		if loc.Equal(here) {
			chain := formatChain(extend(v.depPath, here))
			return nil, errs.CircularDependency(target.String(), c.name, chain)
		}
	}

	if child, ok := tree.Submodule(v.from, id); ok {
		return &view{
			container:    c,
			forComponent: v.forComponent,
			from:         child,
			depPath:      v.depPath,
			searched:     v.searched,
			resolvable:   v.resolvable,
			task:         v.task,
		}, nil
	}

	if inst, ok := tree.Instance(v.from, id); ok {
		return inst.Value, nil
	}

	reg, _ := tree.Factory(v.from, id)
	return c.construct(ctx, v, reg, extend(v.depPath, here))
}

// Resolve resolves a dotted path from the top of the container. Resolve
// hooks fire once per call.
func (c *Container) Resolve(ctx context.Context, path string) (any, error) {
	start := time.Now()
	instance, err := c.resolvePath(ctx, &task{}, module.ParsePath(path), nil, nil, nil)
	c.callResolveHooks(path, time.Since(start), err)
	return instance, err
}

func (c *Container) resolvePath(
	ctx context.Context,
	t *task,
	p module.Path,
	depPath []Location,
	searched []string,
	resolvable [][]string,
) (any, error) {
	parent, id := p.Split()

	h, ok := c.tree.Locate(parent)
	if !ok {
		if c.parent != nil {
			return c.parent.resolvePath(ctx, t, p, depPath, extend(searched, c.name), resolvable)
		}
		if len(depPath) == 0 && len(searched) == 0 {
			return nil, errs.MissingParentModule(p.String(), c.name)
		}
		chain := formatChain(extend(depPath, Location{Path: p, Container: c.name}))
		return nil, errs.UnknownIdentifier(
			p.String(), c.name, extend(searched, c.name), chain, c.suggest(id, resolvable),
		)
	}

	v := &view{
		container:    c,
		forComponent: module.Path{},
		from:         h,
		depPath:      depPath,
		searched:     searched,
		resolvable:   resolvable,
		task:         t,
	}
	return v.resolveID(ctx, id)
}

func (c *Container) construct(ctx context.Context, v *view, reg *module.FactoryRegistration, depPath []Location) (any, error) {
	if reg.Lifetime != scope.Registration {
		return c.build(ctx, v, reg, depPath)
	}

	key := reg.Path.String()
	instance, err := c.builds.do(ctx, v.task, buildKey{container: c, path: key}, func() (any, error) {
		if cached, ok := c.tree.Instance(v.from, reg.Path[len(reg.Path)-1]); ok {
			return cached.Value, nil
		}

		instance, err := c.build(ctx, v, reg, depPath)
		if err != nil {
			return nil, err
		}

		c.tree.Cache(v.from, reg.Path[len(reg.Path)-1], reg.Visibility, instance)
		c.track(key, instance)
		c.logger.Debug("cached instance", zap.String("component", key))
		return instance, nil
	})
	if errors.Is(err, errWouldDeadlock) {
		return nil, errs.CircularDependency(key, c.name, formatChain(depPath))
	}
	return instance, err
}

func (c *Container) build(ctx context.Context, v *view, reg *module.FactoryRegistration, depPath []Location) (any, error) {
	fv := &view{
		container:    c,
		forComponent: reg.Path,
		from:         module.Root,
		depPath:      depPath,
		searched:     v.searched,
		resolvable:   v.resolvable,
		task:         v.task,
	}

	start := time.Now()
	instance, err := c.invoke(ctx, fv, reg)
	c.callConstructHooks(reg.Path.String(), reg.Lifetime, time.Since(start), err)
	return instance, err
}

func (c *Container) invoke(ctx context.Context, fv *view, reg *module.FactoryRegistration) (any, error) {
	key := reg.Path.String()

	if c.cfg.Parallel && len(reg.Dependencies) > 1 {
		if err := fv.prefetch(ctx, reg.Dependencies); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("constructing component",
		zap.String("component", key),
		zap.Stringer("lifetime", reg.Lifetime),
	)

	instance, err := reg.Factory(ctx, fv)
	if err != nil {
		return nil, wrapFactoryError(key, c.name, err)
	}

	return c.applyDecorators(ctx, key, fv, instance)
}

// wrapFactoryError leaves engine errors raised further down the graph
// untouched so the innermost diagnostic reaches the caller.
func wrapFactoryError(path, container string, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return errs.FactoryFailed(path, container, err)
}
