package container

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/danpasecinic/spool/internal/errs"
	"github.com/danpasecinic/spool/internal/module"
	"github.com/danpasecinic/spool/internal/scope"
	"github.com/danpasecinic/spool/internal/visibility"
)

const (
	DefaultMaxSuggestions     = 5
	DefaultSuggestionDistance = 3
)

type ResolveHook func(path string, duration time.Duration, err error)

type ConstructHook func(path, container string, lifetime scope.Lifetime, duration time.Duration, err error)

type DecoratorFunc func(ctx context.Context, r module.Resolver, instance any) (any, error)

// Config holds container settings. Zero MaxSuggestions and
// SuggestionDistance select the defaults; negative values mean none and
// exact matches only respectively.
type Config struct {
	Logger             *zap.Logger
	Parallel           bool
	MaxSuggestions     int
	SuggestionDistance int
	OnResolve          []ResolveHook
	OnConstruct        []ConstructHook
}

// Clone returns a copy that shares no hook slices with c.
func (c Config) Clone() Config {
	out := c
	out.OnResolve = append([]ResolveHook(nil), c.OnResolve...)
	out.OnConstruct = append([]ConstructHook(nil), c.OnConstruct...)
	return out
}

type Container struct {
	name   string
	parent *Container
	tree   *module.Tree
	oracle *visibility.Oracle
	cfg    Config
	logger *zap.Logger

	builds *builds

	decoratorsMu sync.RWMutex
	decorators   map[string][]DecoratorFunc

	builtMu sync.Mutex
	built   []builtInstance
}

type builtInstance struct {
	path     string
	instance any
}

func New(name string, cfg *Config) (*Container, error) {
	return newContainer(name, nil, cfg)
}

func newContainer(name string, parent *Container, cfg *Config) (*Container, error) {
	if name == "" {
		return nil, errs.MissingName()
	}

	var resolved Config
	if cfg != nil {
		resolved = cfg.Clone()
	}
	if resolved.Logger == nil {
		resolved.Logger = zap.NewNop()
	}
	if resolved.MaxSuggestions == 0 {
		resolved.MaxSuggestions = DefaultMaxSuggestions
	}
	if resolved.SuggestionDistance == 0 {
		resolved.SuggestionDistance = DefaultSuggestionDistance
	}

	shared := newBuilds()
	if parent != nil {
		shared = parent.builds
	}

	tree := module.NewTree()
	return &Container{
		name:       name,
		parent:     parent,
		tree:       tree,
		oracle:     visibility.For(tree),
		cfg:        resolved,
		logger:     resolved.Logger.With(zap.String("container", name)),
		decorators: make(map[string][]DecoratorFunc),
		builds:     shared,
	}, nil
}

// Child creates a container that falls back to c on a miss. A nil cfg
// inherits c's configuration.
func (c *Container) Child(name string, cfg *Config) (*Container, error) {
	if name == "" {
		return nil, errs.MissingName()
	}

	if path, ok := c.PathTo(name); ok {
		return nil, errs.DuplicateContainerName(name, path)
	}

	if cfg == nil {
		inherited := c.cfg.Clone()
		cfg = &inherited
	}

	child, err := newContainer(name, c, cfg)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("created child container", zap.String("child", name))
	return child, nil
}

func (c *Container) Name() string {
	return c.name
}

func (c *Container) Parent() *Container {
	return c.parent
}

func (c *Container) Config() Config {
	return c.cfg.Clone()
}

func (c *Container) Tree() *module.Tree {
	return c.tree
}

// VisibleScope lists c's name followed by every ancestor's name.
func (c *Container) VisibleScope() []string {
	var names []string
	for cur := c; cur != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	return names
}

// PathTo returns the chain of names from c up to the ancestor called target,
// or false when no container in c's scope has that name.
func (c *Container) PathTo(target string) ([]string, bool) {
	var path []string
	for cur := c; cur != nil; cur = cur.parent {
		path = append(path, cur.name)
		if cur.name == target {
			return path, true
		}
	}
	return nil, false
}

func (c *Container) callResolveHooks(path string, duration time.Duration, err error) {
	for _, hook := range c.cfg.OnResolve {
		hook(path, duration, err)
	}
}

func (c *Container) callConstructHooks(path string, lifetime scope.Lifetime, duration time.Duration, err error) {
	for _, hook := range c.cfg.OnConstruct {
		hook(path, c.name, lifetime, duration, err)
	}
}
