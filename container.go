package spool

import (
	"context"

	"github.com/danpasecinic/spool/internal/container"
	"github.com/danpasecinic/spool/internal/module"
)

// Container owns a tree of modules and resolves components from it, falling
// back to its parent container on a miss. The embedded Module is the root
// module of the tree.
type Container struct {
	*Module

	internal *container.Container
	parent   *Container
}

// New creates a root container. The name is required and appears in every
// diagnostic the container produces.
func New(name string, opts ...Option) (*Container, error) {
	cfg := &containerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	internal, err := container.New(name, &cfg.internal)
	if err != nil {
		return nil, err
	}

	return wrap(internal, nil), nil
}

func wrap(internal *container.Container, parent *Container) *Container {
	c := &Container{
		internal: internal,
		parent:   parent,
	}
	c.Module = &Module{container: c, handle: module.Root}
	return c
}

// Child creates a container whose misses are delegated to c. Options are
// applied on top of c's own configuration.
func (c *Container) Child(name string, opts ...Option) (*Container, error) {
	cfg := &containerConfig{internal: c.internal.Config()}
	for _, opt := range opts {
		opt(cfg)
	}

	internal, err := c.internal.Child(name, &cfg.internal)
	if err != nil {
		return nil, err
	}

	return wrap(internal, c), nil
}

func (c *Container) Name() string {
	return c.internal.Name()
}

// Parent returns nil for a root container.
func (c *Container) Parent() *Container {
	return c.parent
}

func (c *Container) VisibleScope() []string {
	return c.internal.VisibleScope()
}

func (c *Container) PathTo(name string) ([]string, bool) {
	return c.internal.PathTo(name)
}

func (c *Container) Resolve(path string) (any, error) {
	return c.ResolveCtx(context.Background(), path)
}

func (c *Container) ResolveCtx(ctx context.Context, path string) (any, error) {
	return c.internal.Resolve(ctx, path)
}

// Has reports whether path is registered in c itself. Ancestors are not
// consulted.
func (c *Container) Has(path string) bool {
	return c.internal.Has(module.ParsePath(path))
}

// Validate checks every factory visible from c without constructing anything
// and reports missing dependencies and cycles together.
func (c *Container) Validate() error {
	return c.internal.Validate()
}

// DependencyOrder returns the order in which the component at path and its
// transitive factory dependencies would be built, as "path (container)".
func (c *Container) DependencyOrder(path string) ([]string, error) {
	return c.internal.DependencyOrder(path)
}

// Close disposes the Registration-scoped instances c has built, newest
// first. Ancestors are not closed.
func (c *Container) Close(ctx context.Context) error {
	return c.internal.Close(ctx)
}
