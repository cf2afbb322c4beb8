package spool

import (
	"go.uber.org/zap"

	"github.com/danpasecinic/spool/internal/container"
)

type Option func(*containerConfig)

type containerConfig struct {
	internal container.Config
}

func WithLogger(logger *zap.Logger) Option {
	return func(cfg *containerConfig) {
		cfg.internal.Logger = logger
	}
}

// WithParallel resolves the declared dependencies of a factory concurrently
// before the factory runs.
func WithParallel() Option {
	return func(cfg *containerConfig) {
		cfg.internal.Parallel = true
	}
}

// WithMaxSuggestions caps near-miss suggestions on unknown identifiers.
// Zero disables them.
func WithMaxSuggestions(n int) Option {
	return func(cfg *containerConfig) {
		if n <= 0 {
			n = -1
		}
		cfg.internal.MaxSuggestions = n
	}
}

// WithSuggestionDistance sets the largest edit distance a suggestion may
// have. Zero limits suggestions to exact matches.
func WithSuggestionDistance(distance int) Option {
	return func(cfg *containerConfig) {
		if distance <= 0 {
			distance = -1
		}
		cfg.internal.SuggestionDistance = distance
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *containerConfig) {
		cfg.internal.OnResolve = append(cfg.internal.OnResolve, hook)
	}
}

func WithConstructObserver(hook ConstructHook) Option {
	return func(cfg *containerConfig) {
		cfg.internal.OnConstruct = append(cfg.internal.OnConstruct, hook)
	}
}
