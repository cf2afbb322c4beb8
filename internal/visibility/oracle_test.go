package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/spool/internal/module"
	"github.com/danpasecinic/spool/internal/scope"
)

type fixture struct {
	t    *testing.T
	tree *module.Tree
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, tree: module.NewTree()}
}

func (f *fixture) value(h module.Handle, id string, vis scope.Visibility) {
	f.t.Helper()
	require.NoError(f.t, f.tree.RegisterInstance(h, id, vis, struct{}{}))
}

func (f *fixture) mod(h module.Handle, id string, vis scope.Visibility) module.Handle {
	f.t.Helper()
	child, err := f.tree.RegisterSubmodule(h, id, vis)
	require.NoError(f.t, err)
	return child
}

func (f *fixture) visible(from, test string) bool {
	var fromPath module.Path
	if from != "" {
		fromPath = module.ParsePath(from)
	}
	return For(f.tree).From(fromPath)(module.ParsePath(test))
}

func TestOracle_PublicTopLevel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.value(module.Root, "id", scope.Public)

	assert.True(t, f.visible("", "id"))
}

func TestOracle_SameModule(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.value(module.Root, "id", scope.Public)
	f.value(module.Root, "dep", scope.Public)
	assert.True(t, f.visible("id", "dep"))

	mod := f.mod(module.Root, "mod", scope.Public)
	f.value(mod, "a", scope.Private)
	f.value(mod, "b", scope.Private)
	assert.True(t, f.visible("mod.a", "mod.b"), "private peers see each other")
}

func TestOracle_PublicInPrivateSubmodule(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.value(module.Root, "id", scope.Public)
	mod := f.mod(module.Root, "mod", scope.Private)
	f.value(mod, "dep", scope.Public)
	nested := f.mod(mod, "nested", scope.Public)
	f.value(nested, "deep", scope.Public)

	assert.True(t, f.visible("id", "mod.dep"))
	assert.True(t, f.visible("id", "mod.nested.deep"))
}

func TestOracle_PrivateInPublicSubmodule(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.value(module.Root, "id", scope.Public)
	mod := f.mod(module.Root, "mod", scope.Public)
	f.value(mod, "dep", scope.Private)

	assert.False(t, f.visible("id", "mod.dep"))
	assert.False(t, f.visible("", "mod.dep"))
}

func TestOracle_ParentModule(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.value(module.Root, "privateDep", scope.Private)
	f.value(module.Root, "publicDep", scope.Public)
	pub := f.mod(module.Root, "pub", scope.Public)
	f.value(pub, "id", scope.Public)
	priv := f.mod(module.Root, "priv", scope.Private)
	f.value(priv, "id", scope.Public)

	assert.False(t, f.visible("pub.id", "privateDep"))
	assert.True(t, f.visible("priv.id", "publicDep"))
}

func TestOracle_CommonAncestors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	modA := f.mod(module.Root, "modA", scope.Private)
	f.value(modA, "pub", scope.Public)
	f.value(modA, "priv", scope.Private)
	modB := f.mod(modA, "modB", scope.Private)
	f.value(modB, "id", scope.Public)

	assert.True(t, f.visible("modA.modB.id", "modA.pub"))
	assert.False(t, f.visible("modA.modB.id", "modA.priv"))
	assert.True(t, f.visible("modA.modB.id", "modA"), "private ancestors are visible")
}

func TestOracle_Unregistered(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.mod(module.Root, "mod", scope.Public)

	assert.False(t, f.visible("", "mod.ghost"))
}
