package spool

import (
	"github.com/danpasecinic/spool/internal/module"
)

// ReplaceValue swaps whatever is registered at path in c for value. It is
// meant for tests that need to stub out a real component.
func (c *Container) ReplaceValue(path string, value any) error {
	return c.internal.ReplaceValue(module.ParsePath(path), value)
}

// ReplaceFactory swaps whatever is registered at path in c for factory and
// forgets any cached instance.
func (c *Container) ReplaceFactory(path string, factory Factory, opts ...RegisterOption) error {
	cfg := newRegisterConfig(opts)
	return c.internal.ReplaceFactory(module.ParsePath(path), factory.internal(), cfg.factoryOptions())
}

func (c *Container) MustReplaceValue(path string, value any) {
	if err := c.ReplaceValue(path, value); err != nil {
		panic(err)
	}
}

func (c *Container) MustReplaceFactory(path string, factory Factory, opts ...RegisterOption) {
	if err := c.ReplaceFactory(path, factory, opts...); err != nil {
		panic(err)
	}
}
