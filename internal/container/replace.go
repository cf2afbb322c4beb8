package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/danpasecinic/spool/internal/errs"
	"github.com/danpasecinic/spool/internal/module"
)

func notReplaceable(p module.Path, container string) error {
	return errs.New(
		errs.CodeUnknownIdentifier,
		fmt.Sprintf("Cannot replace '%s' - nothing registered in container '%s'", p, container),
		nil,
	).WithComponent(p.String()).WithContainer(container)
}

// ReplaceValue swaps whatever is registered at p for a fixed value.
func (c *Container) ReplaceValue(p module.Path, value any) error {
	if len(p) == 0 {
		return notReplaceable(p, c.name)
	}

	parent, id := p.Split()
	h, ok := c.tree.Locate(parent)
	if !ok || !c.tree.Replace(h, id, value) {
		return notReplaceable(p, c.name)
	}

	c.logger.Debug("replaced with value", zap.String("component", p.String()))
	return nil
}

// ReplaceFactory swaps whatever is registered at p for a new factory and
// drops any cached instance.
func (c *Container) ReplaceFactory(p module.Path, factory module.Factory, opts FactoryOptions) error {
	if len(p) == 0 {
		return notReplaceable(p, c.name)
	}

	parent, id := p.Split()
	if factory == nil {
		return errs.NotAFunction(p.String())
	}
	if err := opts.validate(); err != nil {
		return err
	}

	var deps []string
	if opts.Declared {
		deps = append([]string{}, opts.Dependencies...)
	}

	h, ok := c.tree.Locate(parent)
	if !ok {
		return notReplaceable(p, c.name)
	}

	_, ok = c.tree.ReplaceFactory(h, id, module.FactoryRegistration{
		Visibility:   opts.Visibility,
		Lifetime:     opts.Lifetime,
		Factory:      factory,
		Dependencies: deps,
		Declared:     opts.Declared,
	})
	if !ok {
		return notReplaceable(p, c.name)
	}

	c.logger.Debug("replaced with factory",
		zap.String("component", p.String()),
		zap.Stringer("lifetime", opts.Lifetime),
	)
	return nil
}
