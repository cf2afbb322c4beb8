package spool

import (
	"context"

	"github.com/danpasecinic/spool/internal/module"
)

// Module is the registration surface of one module in a container's tree.
// Identifiers registered on a Module are unique across its factories,
// values and submodules.
type Module struct {
	container *Container
	handle    module.Handle
}

// Path is the dotted path of the module from the container root; the root
// module's path is empty.
func (m *Module) Path() string {
	return m.container.internal.Tree().Path(m.handle).String()
}

func (m *Module) RegisterFactory(id string, factory Factory, opts ...RegisterOption) error {
	cfg := newRegisterConfig(opts)
	return m.container.internal.RegisterFactory(m.handle, id, factory.internal(), cfg.factoryOptions())
}

// RegisterValue registers a fixed value, nil included. Only WithVisibility
// applies.
func (m *Module) RegisterValue(id string, value any, opts ...RegisterOption) error {
	cfg := newRegisterConfig(opts)
	return m.container.internal.RegisterValue(m.handle, id, value, cfg.visibility)
}

// RegisterSubmodule creates an empty nested module. Only WithVisibility
// applies.
func (m *Module) RegisterSubmodule(id string, opts ...RegisterOption) (*Module, error) {
	cfg := newRegisterConfig(opts)
	child, err := m.container.internal.RegisterSubmodule(m.handle, id, cfg.visibility)
	if err != nil {
		return nil, err
	}
	return &Module{container: m.container, handle: child}, nil
}

// RegisterAlias registers id as a factory that resolves target, a path
// relative to the container root.
func (m *Module) RegisterAlias(id, target string, opts ...RegisterOption) error {
	opts = append(opts, WithDependencies(target))
	return m.RegisterFactory(id, func(ctx context.Context, r Resolver) (any, error) {
		return r.Resolve(ctx, target)
	}, opts...)
}

func (m *Module) MustRegisterFactory(id string, factory Factory, opts ...RegisterOption) *Module {
	if err := m.RegisterFactory(id, factory, opts...); err != nil {
		panic(err)
	}
	return m
}

func (m *Module) MustRegisterValue(id string, value any, opts ...RegisterOption) *Module {
	if err := m.RegisterValue(id, value, opts...); err != nil {
		panic(err)
	}
	return m
}

func (m *Module) MustRegisterSubmodule(id string, opts ...RegisterOption) *Module {
	sub, err := m.RegisterSubmodule(id, opts...)
	if err != nil {
		panic(err)
	}
	return sub
}
