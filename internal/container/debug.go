package container

import (
	"context"
	"sync"

	"github.com/danpasecinic/spool/internal/module"
	"github.com/danpasecinic/spool/internal/scope"
)

type DebugInfo struct {
	Name            string          `json:"name" yaml:"name"`
	Module          ModuleDebugInfo `json:"module" yaml:"module"`
	ParentContainer *DebugInfo      `json:"parentContainer,omitempty" yaml:"parentContainer,omitempty"`
}

type ModuleDebugInfo struct {
	ModulePath string                      `json:"modulePath" yaml:"modulePath"`
	Instances  []string                    `json:"instances" yaml:"instances"`
	Factories  map[string]FactoryDebugInfo `json:"factories" yaml:"factories"`
	Modules    map[string]ModuleDebugInfo  `json:"modules" yaml:"modules"`
}

type FactoryDebugInfo struct {
	Lifetime     scope.Lifetime `json:"lifetime" yaml:"lifetime"`
	Dependencies []string       `json:"dependencies" yaml:"dependencies"`
}

func (c *Container) DebugInfo() DebugInfo {
	info := DebugInfo{
		Name:   c.name,
		Module: c.moduleDebugInfo(module.Root),
	}
	if c.parent != nil {
		parent := c.parent.DebugInfo()
		info.ParentContainer = &parent
	}
	return info
}

func (c *Container) moduleDebugInfo(h module.Handle) ModuleDebugInfo {
	info := ModuleDebugInfo{
		ModulePath: c.tree.Path(h).String(),
		Instances:  c.tree.Instances(h),
		Factories:  make(map[string]FactoryDebugInfo),
		Modules:    make(map[string]ModuleDebugInfo),
	}

	for _, reg := range c.tree.Factories(h) {
		info.Factories[reg.Path[len(reg.Path)-1]] = FactoryDebugInfo{
			Lifetime:     reg.Lifetime,
			Dependencies: Discover(reg),
		}
	}

	for _, id := range c.tree.Submodules(h) {
		if child, ok := c.tree.Submodule(h, id); ok {
			info.Modules[id] = c.moduleDebugInfo(child)
		}
	}

	return info
}

// Discover lists the identifiers a factory reads. Declared dependencies are
// returned as is; otherwise the factory runs once against a recording probe
// and anything it panics with or returns is discarded.
func Discover(reg *module.FactoryRegistration) []string {
	if reg.Declared {
		return append([]string{}, reg.Dependencies...)
	}

	rec := &recorder{seen: make(map[string]struct{})}
	func() {
		defer func() { _ = recover() }()
		_, _ = reg.Factory(context.Background(), &probe{rec: rec})
	}()
	return rec.list()
}

type recorder struct {
	mu   sync.Mutex
	ids  []string
	seen map[string]struct{}
}

func (r *recorder) add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.seen[id]; dup {
		return
	}
	r.seen[id] = struct{}{}
	r.ids = append(r.ids, id)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.ids...)
}

type probe struct {
	rec *recorder
}

func (p *probe) Resolve(_ context.Context, id string) (any, error) {
	p.rec.add(id)
	return placeholder{}, nil
}

// placeholder stands in for every dependency during discovery. It resolves
// to itself so factories can walk into submodules.
type placeholder struct{}

func (placeholder) Resolve(context.Context, string) (any, error) {
	return placeholder{}, nil
}

func (placeholder) String() string {
	return "<placeholder>"
}

// IsPlaceholder reports whether v was handed out by Discover. Typed access
// turns it into a zero value so discovery carries on past the read.
func IsPlaceholder(v any) bool {
	_, ok := v.(placeholder)
	return ok
}
