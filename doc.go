// Package spool is a name-addressed dependency injection runtime built around
// nested modules and a hierarchy of containers.
//
// # Quick Start
//
// Create a container, register components by name and resolve them:
//
//	c, err := spool.New("app")
//
//	c.RegisterValue("dsn", "postgres://localhost/app")
//	c.RegisterFactory("db", func(ctx context.Context, r spool.Resolver) (any, error) {
//	    dsn, err := spool.Get[string](ctx, r, "dsn")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return OpenDB(dsn)
//	}, spool.WithLifetime(spool.Registration))
//
//	db, err := spool.Resolve[*DB](c, "db")
//
// # Identifiers and Modules
//
// Identifiers start with a letter, may contain letters, digits, '-' and '_',
// and end with a letter or digit. Within one module an identifier names
// exactly one factory, value or submodule. Submodules nest and are addressed
// with dotted paths:
//
//	storage, _ := c.RegisterSubmodule("storage", spool.WithVisibility(spool.Public))
//	storage.RegisterFactory("users", newUsers, spool.WithVisibility(spool.Public))
//
//	users, err := c.Resolve("storage.users")
//
// # Visibility
//
// Every registration is Private (the default) or Public. Components in the
// same module always see each other, and a component always sees the modules
// that contain it. Reaching into any other module requires every step from the
// common ancestor down to the target to be Public.
//
// # Lifetimes
//
// Transient factories (the default) run on every resolution. Registration
// factories run once; the result is cached in the module where the factory
// was registered and shared by every child container.
//
// # Container Hierarchy
//
// A child container resolves its own registrations first and delegates
// misses to its parent:
//
//	req, err := c.Child("request")
//	req.RegisterValue("user", currentUser)
//
// Child names must differ from every ancestor's name.
//
// # Diagnostics
//
// Every failure is a *spool.Error carrying an ErrorCode. Unknown identifiers
// report the containers searched, the dependency chain and near-miss
// suggestions:
//
//	Nothing registered for 'dependencyName' in containers: 'low -> mid -> high'.
//	Trying to resolve: 'testComponent (low) -> dependencyName (high)'.
//
// DebugInfo, DebugJSON, DebugYAML and FprintDebugTree describe the registered
// tree without building anything; Validate and FprintGraphDOT analyse the
// static dependency graph.
//
// # Auto-Wiring
//
// RegisterConstructor adapts an ordinary function, and RegisterStruct fills
// struct fields tagged with `spool:"path"`:
//
//	type Service struct {
//	    DB    *DB    `spool:"db"`
//	    Cache *Cache `spool:",optional"`
//	}
//	spool.RegisterStruct[*Service](c.Module, "service")
//
// # Parallel Resolution
//
// With WithParallel, dependencies declared through WithDependencies are
// resolved concurrently before their factory runs. Registration-scoped
// components shared by concurrent siblings are still built exactly once.
//
// # Testing
//
// The spooltest package wraps a container with fail-fast helpers, and
// ReplaceValue / ReplaceFactory swap real components for stubs.
package spool
