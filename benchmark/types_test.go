package benchmark

import (
	"context"
	"testing"

	"github.com/samber/do/v2"

	"github.com/danpasecinic/spool"
)

type Config struct {
	Host string
	Port int
}

type Logger struct {
	Level string
}

type Database struct {
	Config *Config
	Logger *Logger
}

type Cache struct {
	Logger *Logger
}

type Repository struct {
	DB    *Database
	Cache *Cache
}

type Service struct {
	Repo   *Repository
	Logger *Logger
}

func registerChain(c *spool.Container) {
	c.MustRegisterValue("config", &Config{Host: "localhost", Port: 8080})
	c.MustRegisterValue("logger", &Logger{Level: "info"})
	c.MustRegisterFactory(
		"database", func(ctx context.Context, r spool.Resolver) (any, error) {
			cfg, err := spool.Get[*Config](ctx, r, "config")
			if err != nil {
				return nil, err
			}
			log, err := spool.Get[*Logger](ctx, r, "logger")
			if err != nil {
				return nil, err
			}
			return &Database{Config: cfg, Logger: log}, nil
		}, spool.WithLifetime(spool.Registration),
	)
	c.MustRegisterFactory(
		"cache", func(ctx context.Context, r spool.Resolver) (any, error) {
			log, err := spool.Get[*Logger](ctx, r, "logger")
			if err != nil {
				return nil, err
			}
			return &Cache{Logger: log}, nil
		}, spool.WithLifetime(spool.Registration),
	)
	c.MustRegisterFactory(
		"repository", func(ctx context.Context, r spool.Resolver) (any, error) {
			db, err := spool.Get[*Database](ctx, r, "database")
			if err != nil {
				return nil, err
			}
			cache, err := spool.Get[*Cache](ctx, r, "cache")
			if err != nil {
				return nil, err
			}
			return &Repository{DB: db, Cache: cache}, nil
		}, spool.WithLifetime(spool.Registration),
	)
	c.MustRegisterFactory(
		"service", func(ctx context.Context, r spool.Resolver) (any, error) {
			repo, err := spool.Get[*Repository](ctx, r, "repository")
			if err != nil {
				return nil, err
			}
			log, err := spool.Get[*Logger](ctx, r, "logger")
			if err != nil {
				return nil, err
			}
			return &Service{Repo: repo, Logger: log}, nil
		}, spool.WithLifetime(spool.Registration),
	)
}

// chainConstructors builds the same graph as registerChain for the
// reflection-based containers.
var chainConstructors = []any{
	func() *Config { return &Config{Host: "localhost", Port: 8080} },
	func() *Logger { return &Logger{Level: "info"} },
	func(cfg *Config, log *Logger) *Database { return &Database{Config: cfg, Logger: log} },
	func(log *Logger) *Cache { return &Cache{Logger: log} },
	func(db *Database, cache *Cache) *Repository { return &Repository{DB: db, Cache: cache} },
	func(repo *Repository, log *Logger) *Service { return &Service{Repo: repo, Logger: log} },
}

func newDatabase(i do.Injector) (*Database, error) {
	return &Database{Config: do.MustInvoke[*Config](i), Logger: do.MustInvoke[*Logger](i)}, nil
}

func registerChainDo(injector do.Injector) {
	do.ProvideValue(injector, &Config{Host: "localhost", Port: 8080})
	do.ProvideValue(injector, &Logger{Level: "info"})
	do.Provide(injector, newDatabase)
	do.Provide(injector, func(i do.Injector) (*Cache, error) {
		return &Cache{Logger: do.MustInvoke[*Logger](i)}, nil
	})
	do.Provide(injector, func(i do.Injector) (*Repository, error) {
		return &Repository{DB: do.MustInvoke[*Database](i), Cache: do.MustInvoke[*Cache](i)}, nil
	})
	do.Provide(injector, func(i do.Injector) (*Service, error) {
		return &Service{Repo: do.MustInvoke[*Repository](i), Logger: do.MustInvoke[*Logger](i)}, nil
	})
}

func newSpool(b *testing.B, opts ...spool.Option) *spool.Container {
	c, err := spool.New("bench", opts...)
	if err != nil {
		b.Fatal(err)
	}
	return c
}
