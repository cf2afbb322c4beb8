package module

import (
	"context"
	"sync"

	"github.com/danpasecinic/spool/internal/errs"
	"github.com/danpasecinic/spool/internal/scope"
)

// Resolver is the lookup handed to a factory. Each call resolves exactly the
// requested identifier and nothing else.
type Resolver interface {
	Resolve(ctx context.Context, id string) (any, error)
}

type Factory func(ctx context.Context, r Resolver) (any, error)

// Handle addresses a module inside a Tree.
type Handle int

const Root Handle = 0

type FactoryRegistration struct {
	Path         Path
	Visibility   scope.Visibility
	Lifetime     scope.Lifetime
	Factory      Factory
	Dependencies []string
	Declared     bool
}

type InstanceRegistration struct {
	Path       Path
	Visibility scope.Visibility
	Value      any
}

type node struct {
	path       Path
	visibility scope.Visibility
	factories  map[string]*FactoryRegistration
	instances  map[string]*InstanceRegistration
	submodules map[string]Handle

	factoryOrder  []string
	instanceOrder []string
	moduleOrder   []string
}

func newNode(path Path, visibility scope.Visibility) *node {
	return &node{
		path:       path,
		visibility: visibility,
		factories:  make(map[string]*FactoryRegistration),
		instances:  make(map[string]*InstanceRegistration),
		submodules: make(map[string]Handle),
	}
}

// Tree is the module tree owned by one container. Modules live in an arena
// and refer to their children by Handle.
type Tree struct {
	mu    sync.RWMutex
	nodes []*node
}

func NewTree() *Tree {
	return &Tree{
		nodes: []*node{newNode(Path{}, scope.Public)},
	}
}

func (t *Tree) node(h Handle) *node {
	if int(h) < 0 || int(h) >= len(t.nodes) {
		return nil
	}
	return t.nodes[h]
}

func (n *node) checkAvailability(id string) error {
	if _, ok := n.factories[id]; ok {
		return errs.DuplicateRegistration(id, "factory")
	}
	if _, ok := n.instances[id]; ok {
		return errs.DuplicateRegistration(id, "value")
	}
	if _, ok := n.submodules[id]; ok {
		return errs.DuplicateRegistration(id, "submodule")
	}
	if !ValidID(id) {
		return errs.InvalidIdentifier(id)
	}
	return nil
}

func (t *Tree) RegisterFactory(
	h Handle,
	id string,
	visibility scope.Visibility,
	lifetime scope.Lifetime,
	factory Factory,
	dependencies []string,
	declared bool,
) (*FactoryRegistration, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.node(h)
	if err := n.checkAvailability(id); err != nil {
		return nil, err
	}

	reg := &FactoryRegistration{
		Path:         n.path.Join(id),
		Visibility:   visibility,
		Lifetime:     lifetime,
		Factory:      factory,
		Dependencies: dependencies,
		Declared:     declared,
	}
	n.factories[id] = reg
	n.factoryOrder = append(n.factoryOrder, id)
	return reg, nil
}

func (t *Tree) RegisterInstance(h Handle, id string, visibility scope.Visibility, value any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.node(h)
	if err := n.checkAvailability(id); err != nil {
		return err
	}

	n.instances[id] = &InstanceRegistration{
		Path:       n.path.Join(id),
		Visibility: visibility,
		Value:      value,
	}
	n.instanceOrder = append(n.instanceOrder, id)
	return nil
}

func (t *Tree) RegisterSubmodule(h Handle, id string, visibility scope.Visibility) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.node(h)
	if err := n.checkAvailability(id); err != nil {
		return 0, err
	}

	child := Handle(len(t.nodes))
	t.nodes = append(t.nodes, newNode(n.path.Join(id), visibility))
	n.submodules[id] = child
	n.moduleOrder = append(n.moduleOrder, id)
	return child, nil
}

// Cache promotes a built instance into the instance namespace of module h.
// The factory registration under the same id is kept.
func (t *Tree) Cache(h Handle, id string, visibility scope.Visibility, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.node(h)
	if _, ok := n.instances[id]; !ok {
		n.instanceOrder = append(n.instanceOrder, id)
	}
	n.instances[id] = &InstanceRegistration{
		Path:       n.path.Join(id),
		Visibility: visibility,
		Value:      value,
	}
}

// Replace swaps the registration of id in module h for a plain value,
// keeping its declared visibility.
func (t *Tree) Replace(h Handle, id string, value any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.node(h)
	visibility := scope.Private

	switch {
	case n.factories[id] != nil:
		visibility = n.factories[id].Visibility
		delete(n.factories, id)
		n.factoryOrder = remove(n.factoryOrder, id)
	case n.instances[id] != nil:
		visibility = n.instances[id].Visibility
	default:
		return false
	}

	n.instanceOrder = remove(n.instanceOrder, id)
	n.instances[id] = &InstanceRegistration{
		Path:       n.path.Join(id),
		Visibility: visibility,
		Value:      value,
	}
	n.instanceOrder = append(n.instanceOrder, id)
	return true
}

// ReplaceFactory swaps the registration of id in module h for a factory,
// dropping any cached instance.
func (t *Tree) ReplaceFactory(h Handle, id string, reg FactoryRegistration) (*FactoryRegistration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.node(h)
	_, isFactory := n.factories[id]
	_, isInstance := n.instances[id]
	if !isFactory && !isInstance {
		return nil, false
	}

	delete(n.instances, id)
	n.instanceOrder = remove(n.instanceOrder, id)

	reg.Path = n.path.Join(id)
	stored := &reg
	if !isFactory {
		n.factoryOrder = append(n.factoryOrder, id)
	}
	n.factories[id] = stored
	return stored, true
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, other := range ids {
		if other != id {
			out = append(out, other)
		}
	}
	return out
}

func (t *Tree) Exists(h Handle, id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.node(h)
	if n == nil {
		return false
	}
	_, isFactory := n.factories[id]
	_, isInstance := n.instances[id]
	_, isModule := n.submodules[id]
	return isFactory || isInstance || isModule
}

func (t *Tree) Factory(h Handle, id string) (*FactoryRegistration, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	reg, ok := t.node(h).factories[id]
	return reg, ok
}

func (t *Tree) Instance(h Handle, id string) (*InstanceRegistration, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	reg, ok := t.node(h).instances[id]
	return reg, ok
}

func (t *Tree) Submodule(h Handle, id string) (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	child, ok := t.node(h).submodules[id]
	return child, ok
}

func (t *Tree) Path(h Handle) Path {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.node(h).path
}

func (t *Tree) Visibility(h Handle) scope.Visibility {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.node(h).visibility
}

// Locate walks p through submodules only.
func (t *Tree) Locate(p Path) (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h := Root
	for _, id := range p {
		next, ok := t.node(h).submodules[id]
		if !ok {
			return 0, false
		}
		h = next
	}
	return h, true
}

// VisibilityAt returns the declared visibility of whatever is registered at
// p. The root module is Public.
func (t *Tree) VisibilityAt(p Path) (scope.Visibility, bool) {
	if len(p) == 0 {
		return scope.Public, true
	}

	parent, id := p.Split()
	h, ok := t.Locate(parent)
	if !ok {
		return scope.Private, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.node(h)
	if child, ok := n.submodules[id]; ok {
		return t.node(child).visibility, true
	}
	if reg, ok := n.factories[id]; ok {
		return reg.Visibility, true
	}
	if reg, ok := n.instances[id]; ok {
		return reg.Visibility, true
	}
	return scope.Private, false
}

// ResolvableIDs lists every identifier registered directly in module h.
func (t *Tree) ResolvableIDs(h Handle) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.node(h)
	total := len(n.factoryOrder) + len(n.instanceOrder) + len(n.moduleOrder)
	seen := make(map[string]struct{}, total)
	ids := make([]string, 0, total)
	for _, group := range [][]string{n.factoryOrder, n.instanceOrder, n.moduleOrder} {
		for _, id := range group {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func (t *Tree) Factories(h Handle) []*FactoryRegistration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.node(h)
	out := make([]*FactoryRegistration, 0, len(n.factoryOrder))
	for _, id := range n.factoryOrder {
		out = append(out, n.factories[id])
	}
	return out
}

func (t *Tree) Instances(h Handle) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]string{}, t.node(h).instanceOrder...)
}

func (t *Tree) Submodules(h Handle) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]string{}, t.node(h).moduleOrder...)
}
