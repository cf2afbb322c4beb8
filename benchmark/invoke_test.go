package benchmark

import (
	"context"
	"testing"

	"github.com/samber/do/v2"
	"go.uber.org/dig"

	"github.com/danpasecinic/spool"
)

func BenchmarkInvoke_Singleton_Spool(b *testing.B) {
	c := newSpool(b)
	c.MustRegisterValue("config", &Config{Host: "localhost", Port: 8080})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = spool.Resolve[*Config](c, "config")
	}
}

func BenchmarkInvoke_Singleton_Do(b *testing.B) {
	injector := do.New()
	do.ProvideValue(injector, &Config{Host: "localhost", Port: 8080})
	_ = do.MustInvoke[*Config](injector)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = do.MustInvoke[*Config](injector)
	}
}

func BenchmarkInvoke_Singleton_Dig(b *testing.B) {
	c := dig.New()
	_ = c.Provide(chainConstructors[0])
	_ = c.Invoke(func(*Config) {})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Invoke(func(*Config) {})
	}
}

func BenchmarkInvoke_Chain_Spool(b *testing.B) {
	c := newSpool(b)
	registerChain(c)
	_ = spool.MustResolve[*Service](c, "service")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = spool.Resolve[*Service](c, "service")
	}
}

// Transient factories rebuild the whole chain on every resolution.
func BenchmarkInvoke_Transient_Spool(b *testing.B) {
	c := newSpool(b)
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
		},
	)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = spool.Resolve[*Database](c, "database")
	}
}

func BenchmarkInvoke_Transient_Do(b *testing.B) {
	injector := do.New()
	do.ProvideValue(injector, &Config{Host: "localhost", Port: 8080})
	do.ProvideValue(injector, &Logger{Level: "info"})
	do.ProvideTransient(injector, newDatabase)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = do.MustInvoke[*Database](injector)
	}
}

func BenchmarkInvoke_Chain_Do(b *testing.B) {
	injector := do.New()
	registerChainDo(injector)
	_ = do.MustInvoke[*Service](injector)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = do.MustInvoke[*Service](injector)
	}
}

func BenchmarkInvoke_Chain_Dig(b *testing.B) {
	c := dig.New()
	for _, ctor := range chainConstructors {
		_ = c.Provide(ctor)
	}
	_ = c.Invoke(func(*Service) {})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Invoke(func(*Service) {})
	}
}
