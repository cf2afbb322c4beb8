package container

import (
	"go.uber.org/zap"

	"github.com/danpasecinic/spool/internal/errs"
	"github.com/danpasecinic/spool/internal/module"
	"github.com/danpasecinic/spool/internal/scope"
)

type FactoryOptions struct {
	Visibility   scope.Visibility
	Lifetime     scope.Lifetime
	Dependencies []string
	Declared     bool
}

func (o FactoryOptions) validate() error {
	if err := o.Lifetime.Validate(); err != nil {
		return err
	}
	return o.Visibility.Validate()
}

func (c *Container) RegisterFactory(h module.Handle, id string, factory module.Factory, opts FactoryOptions) error {
	if factory == nil {
		return errs.NotAFunction(id)
	}
	if err := opts.validate(); err != nil {
		return err.(*errs.Error).WithComponent(id)
	}

	var deps []string
	if opts.Declared {
		deps = append([]string{}, opts.Dependencies...)
	}

	reg, err := c.tree.RegisterFactory(h, id, opts.Visibility, opts.Lifetime, factory, deps, opts.Declared)
	if err != nil {
		return err
	}

	c.logger.Debug("registered factory",
		zap.String("component", reg.Path.String()),
		zap.Stringer("lifetime", opts.Lifetime),
		zap.Stringer("visibility", opts.Visibility),
	)
	return nil
}

func (c *Container) RegisterValue(h module.Handle, id string, value any, visibility scope.Visibility) error {
	if err := visibility.Validate(); err != nil {
		return err.(*errs.Error).WithComponent(id)
	}

	if err := c.tree.RegisterInstance(h, id, visibility, value); err != nil {
		return err
	}

	c.logger.Debug("registered value",
		zap.String("component", c.tree.Path(h).Join(id).String()),
		zap.Stringer("visibility", visibility),
	)
	return nil
}

func (c *Container) RegisterSubmodule(h module.Handle, id string, visibility scope.Visibility) (module.Handle, error) {
	if err := visibility.Validate(); err != nil {
		return 0, err.(*errs.Error).WithComponent(id)
	}

	child, err := c.tree.RegisterSubmodule(h, id, visibility)
	if err != nil {
		return 0, err
	}

	c.logger.Debug("registered submodule",
		zap.String("component", c.tree.Path(child).String()),
		zap.Stringer("visibility", visibility),
	)
	return child, nil
}

// Has reports whether p is registered in this container, ignoring ancestors.
func (c *Container) Has(p module.Path) bool {
	if len(p) == 0 {
		return false
	}
	parent, id := p.Split()
	h, ok := c.tree.Locate(parent)
	return ok && c.tree.Exists(h, id)
}
