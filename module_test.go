package spool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/spool"
)

type UserRepository interface {
	FindByID(id int) string
}

type PostgresUserRepo struct {
	DB *Database
}

func (r *PostgresUserRepo) FindByID(int) string {
	return "user-" + r.DB.Name
}

func TestSubmodulePaths(t *testing.T) {
	t.Parallel()

	c := newContainer(t, "app")
	storage, err := c.RegisterSubmodule("storage", spool.WithVisibility(spool.Public))
	require.NoError(t, err)
	postgres, err := storage.RegisterSubmodule("postgres", spool.WithVisibility(spool.Public))
	require.NoError(t, err)

	assert.Equal(t, "storage", storage.Path())
	assert.Equal(t, "storage.postgres", postgres.Path())

	require.NoError(t, postgres.RegisterValue("database", &Database{Name: "pg"}, spool.WithVisibility(spool.Public)))
	require.NoError(t, storage.RegisterFactory("users", func(ctx context.Context, r spool.Resolver) (any, error) {
		db, err := spool.Get[*Database](ctx, r, "storage.postgres.database")
		if err != nil {
			return nil, err
		}
		return &PostgresUserRepo{DB: db}, nil
	}, spool.WithVisibility(spool.Public)))

	repo, err := spool.Resolve[UserRepository](c, "storage.users")
	require.NoError(t, err)
	assert.Equal(t, "user-pg", repo.FindByID(1))

	sub, err := spool.Resolve[spool.Resolver](c, "storage.postgres")
	require.NoError(t, err)
	db, err := spool.Get[*Database](context.Background(), sub, "database")
	require.NoError(t, err)
	assert.Equal(t, "pg", db.Name)
}

func TestDuplicateRegistration(t *testing.T) {
	t.Parallel()

	register := map[string]func(m *spool.Module) error{
		"factory": func(m *spool.Module) error {
			return m.RegisterFactory("uniqueId", func(context.Context, spool.Resolver) (any, error) { return 1, nil })
		},
		"value": func(m *spool.Module) error {
			return m.RegisterValue("uniqueId", 1)
		},
		"submodule": func(m *spool.Module) error {
			_, err := m.RegisterSubmodule("uniqueId")
			return err
		},
	}

	for firstKind, first := range register {
		for secondKind, second := range register {
			t.Run(firstKind+" then "+secondKind, func(t *testing.T) {
				t.Parallel()

				c := newContainer(t, "app")
				require.NoError(t, first(c.Module))

				err := second(c.Module)
				require.Error(t, err)
				assert.True(t, spool.IsDuplicateRegistration(err))
				assert.Contains(t, err.Error(), "uniqueId")
				assert.Contains(t, err.Error(), "already registered as a "+firstKind)
			})
		}
	}
}

func TestSameIDInDifferentModules(t *testing.T) {
	t.Parallel()

	c := newContainer(t, "app")
	mod, err := c.RegisterSubmodule("mod", spool.WithVisibility(spool.Public))
	require.NoError(t, err)

	require.NoError(t, c.RegisterValue("name", "root"))
	require.NoError(t, mod.RegisterValue("name", "mod", spool.WithVisibility(spool.Public)))

	assert.Equal(t, "root", spool.MustResolve[string](c, "name"))
	assert.Equal(t, "mod", spool.MustResolve[string](c, "mod.name"))
}

func TestInvalidIdentifier(t *testing.T) {
	t.Parallel()

	c := newContainer(t, "app")
	for _, id := range []string{"", "_", "A_", "a__b", "-a", "a.b", "1abc"} {
		err := c.RegisterValue(id, 1)
		assert.True(t, spool.IsInvalidIdentifier(err), "%q: %v", id, err)
	}
	for _, id := range []string{"a", "a0_b", "with-dash", "camelCase"} {
		assert.NoError(t, c.RegisterValue(id, 1), id)
	}
}

func TestInvalidEnums(t *testing.T) {
	t.Parallel()

	c := newContainer(t, "app")
	factory := func(context.Context, spool.Resolver) (any, error) { return 1, nil }

	err := c.RegisterFactory("a", factory, spool.WithLifetime(spool.Lifetime(42)))
	assert.True(t, spool.IsUnknownLifetime(err))

	err = c.RegisterFactory("b", factory, spool.WithVisibility(spool.Visibility(42)))
	assert.True(t, spool.IsUnknownVisibility(err))

	err = c.RegisterValue("c", 1, spool.WithVisibility(spool.Visibility(-1)))
	assert.True(t, spool.IsUnknownVisibility(err))

	err = c.RegisterFactory("d", nil)
	assert.True(t, spool.IsNotAFunction(err))

	assert.False(t, c.Has("a"))
	assert.False(t, c.Has("d"))
}

func TestVisibility(t *testing.T) {
	t.Parallel()

	c := newContainer(t, "app")

	private, err := c.RegisterSubmodule("private")
	require.NoError(t, err)
	require.NoError(t, private.RegisterValue("open", "open", spool.WithVisibility(spool.Public)))
	require.NoError(t, private.RegisterValue("hidden", "hidden"))

	public, err := c.RegisterSubmodule("public", spool.WithVisibility(spool.Public))
	require.NoError(t, err)
	require.NoError(t, public.RegisterValue("hidden", "hidden"))
	require.NoError(t, public.RegisterFactory("peer", func(ctx context.Context, r spool.Resolver) (any, error) {
		return r.Resolve(ctx, "public.hidden")
	}, spool.WithVisibility(spool.Public)))

	reader := func(path string) spool.Factory {
		return func(ctx context.Context, r spool.Resolver) (any, error) {
			return r.Resolve(ctx, path)
		}
	}
	require.NoError(t, c.RegisterFactory("readsOpen", reader("private.open")))
	require.NoError(t, c.RegisterFactory("readsPrivateHidden", reader("private.hidden")))
	require.NoError(t, c.RegisterFactory("readsPublicHidden", reader("public.hidden")))

	v, err := c.Resolve("readsOpen")
	require.NoError(t, err)
	assert.Equal(t, "open", v)

	v, err = c.Resolve("public.peer")
	require.NoError(t, err)
	assert.Equal(t, "hidden", v)

	_, err = c.Resolve("readsPrivateHidden")
	assert.True(t, spool.IsNotVisible(err))
	assert.Contains(t, err.Error(), "'private.hidden' is not visible to 'readsPrivateHidden'")

	_, err = c.Resolve("readsPublicHidden")
	assert.True(t, spool.IsNotVisible(err))
}

func TestVisibilityOfParentModule(t *testing.T) {
	t.Parallel()

	c := newContainer(t, "app")
	require.NoError(t, c.RegisterValue("secret", "s"))

	mod, err := c.RegisterSubmodule("mod", spool.WithVisibility(spool.Public))
	require.NoError(t, err)
	require.NoError(t, mod.RegisterFactory("reader", func(ctx context.Context, r spool.Resolver) (any, error) {
		return r.Resolve(ctx, "secret")
	}, spool.WithVisibility(spool.Public)))

	_, err = c.Resolve("mod.reader")
	assert.True(t, spool.IsNotVisible(err), "private root components are hidden from submodules")

	require.NoError(t, c.RegisterValue("shared", "s", spool.WithVisibility(spool.Public)))
	require.NoError(t, mod.RegisterFactory("sharedReader", func(ctx context.Context, r spool.Resolver) (any, error) {
		return r.Resolve(ctx, "shared")
	}, spool.WithVisibility(spool.Public)))

	v, err := c.Resolve("mod.sharedReader")
	require.NoError(t, err)
	assert.Equal(t, "s", v)
}

func TestMissingParentModule(t *testing.T) {
	t.Parallel()

	parent := newContainer(t, "parent")
	_, err := parent.Resolve("nowhere.component")
	require.Error(t, err)
	assert.True(t, spool.IsUnknownIdentifier(err))
	assert.Contains(t, err.Error(), "Could not resolve 'nowhere.component' - parent module does not exist")

	c := child(t, parent, "child")
	_, err = c.Resolve("nowhere.component")
	require.Error(t, err)
	assert.True(t, spool.IsUnknownIdentifier(err))
	assert.Contains(t, err.Error(), "Nothing registered for 'nowhere.component' in containers: 'child -> parent'.")
}

func TestSubmoduleFromParentContainer(t *testing.T) {
	t.Parallel()

	parent := newContainer(t, "parent")
	c := child(t, parent, "child")

	mod, err := parent.RegisterSubmodule("mod", spool.WithVisibility(spool.Public))
	require.NoError(t, err)
	require.NoError(t, mod.RegisterValue("leaf", "from parent", spool.WithVisibility(spool.Public)))

	assert.Equal(t, "from parent", spool.MustResolve[string](c, "mod.leaf"))
}

func TestAlias(t *testing.T) {
	t.Parallel()

	c := newContainer(t, "app")
	require.NoError(t, c.RegisterFactory("postgres", func(context.Context, spool.Resolver) (any, error) {
		return &PostgresUserRepo{DB: &Database{Name: "pg"}}, nil
	}, spool.WithLifetime(spool.Registration)))
	require.NoError(t, c.RegisterAlias("users", "postgres"))

	repo := spool.MustResolve[UserRepository](c, "users")
	assert.Same(t, spool.MustResolve[*PostgresUserRepo](c, "postgres"), repo)

	deps := c.DebugInfo().Module.Factories["users"].Dependencies
	assert.Equal(t, []string{"postgres"}, deps)

	require.NoError(t, c.RegisterAlias("dangling", "ghost"))
	_, err := c.Resolve("dangling")
	assert.True(t, spool.IsUnknownIdentifier(err))
}

func TestMustRegister(t *testing.T) {
	t.Parallel()

	c := newContainer(t, "app")
	sub := c.MustRegisterSubmodule("mod", spool.WithVisibility(spool.Public)).
		MustRegisterValue("a", 1, spool.WithVisibility(spool.Public))

	assert.Equal(t, "mod", sub.Path())
	assert.Equal(t, 1, spool.MustResolve[int](c, "mod.a"))

	assert.Panics(t, func() {
		c.MustRegisterValue("mod", 2)
	})
}
