package spool

import (
	"context"

	"github.com/danpasecinic/spool/internal/container"
	"github.com/danpasecinic/spool/internal/module"
)

// Factory builds a component. It reads its dependencies from r, which only
// ever resolves the identifiers the factory asks for.
type Factory func(ctx context.Context, r Resolver) (any, error)

type RegisterOption func(*registerConfig)

type registerConfig struct {
	lifetime     Lifetime
	visibility   Visibility
	dependencies []string
	declared     bool
}

func newRegisterConfig(opts []RegisterOption) *registerConfig {
	cfg := &registerConfig{
		lifetime:   Transient,
		visibility: Private,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (cfg *registerConfig) factoryOptions() container.FactoryOptions {
	return container.FactoryOptions{
		Visibility:   cfg.visibility,
		Lifetime:     cfg.lifetime,
		Dependencies: cfg.dependencies,
		Declared:     cfg.declared,
	}
}

// WithLifetime defaults to Transient.
func WithLifetime(lifetime Lifetime) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.lifetime = lifetime
	}
}

// WithVisibility defaults to Private.
func WithVisibility(visibility Visibility) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.visibility = visibility
	}
}

// WithDependencies declares the paths a factory reads, relative to the
// container root. Declared dependencies are reported by DebugInfo without
// running the factory and are fetched concurrently under WithParallel.
func WithDependencies(deps ...string) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.dependencies = deps
		cfg.declared = true
	}
}

func (f Factory) internal() module.Factory {
	if f == nil {
		return nil
	}
	return module.Factory(f)
}
