package spool_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/danpasecinic/spool"
)

type resolveEvent struct {
	path string
	err  error
}

type constructEvent struct {
	path      string
	container string
	lifetime  spool.Lifetime
	err       error
}

type recorder struct {
	mu         sync.Mutex
	resolves   []resolveEvent
	constructs []constructEvent
}

func (r *recorder) onResolve(path string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolves = append(r.resolves, resolveEvent{path: path, err: err})
}

func (r *recorder) onConstruct(path, container string, lifetime spool.Lifetime, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructs = append(r.constructs, constructEvent{path: path, container: container, lifetime: lifetime, err: err})
}

func (r *recorder) options() []spool.Option {
	return []spool.Option{
		spool.WithResolveObserver(r.onResolve),
		spool.WithConstructObserver(r.onConstruct),
	}
}

func TestResolveObserver(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	c := newContainer(t, "app", rec.options()...)
	require.NoError(t, c.RegisterValue("config", &Config{Port: 8080}))
	require.NoError(t, c.RegisterFactory("database", func(ctx context.Context, r spool.Resolver) (any, error) {
		return r.Resolve(ctx, "config")
	}))

	_, err := c.Resolve("database")
	require.NoError(t, err)
	_, err = c.Resolve("missing")
	require.Error(t, err)

	require.Len(t, rec.resolves, 2, "nested resolutions are not reported")
	assert.Equal(t, "database", rec.resolves[0].path)
	assert.NoError(t, rec.resolves[0].err)
	assert.Equal(t, "missing", rec.resolves[1].path)
	assert.True(t, spool.IsUnknownIdentifier(rec.resolves[1].err))
}

func TestConstructObserver(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	parent := newContainer(t, "parent", rec.options()...)
	require.NoError(t, parent.RegisterFactory("config", func(context.Context, spool.Resolver) (any, error) {
		return &Config{}, nil
	}, spool.WithLifetime(spool.Registration)))

	c := child(t, parent, "child")
	require.NoError(t, c.RegisterFactory("server", func(ctx context.Context, r spool.Resolver) (any, error) {
		cfg, err := spool.Get[*Config](ctx, r, "config")
		if err != nil {
			return nil, err
		}
		return &Server{Config: cfg}, nil
	}))
	require.NoError(t, c.RegisterFactory("broken", func(context.Context, spool.Resolver) (any, error) {
		return nil, assert.AnError
	}))

	spool.MustResolve[*Server](c, "server")
	spool.MustResolve[*Server](c, "server")
	_, err := c.Resolve("broken")
	require.Error(t, err)

	require.Len(t, rec.constructs, 4)
	assert.Equal(t, constructEvent{path: "config", container: "parent", lifetime: spool.Registration}, rec.constructs[0])
	assert.Equal(t, constructEvent{path: "server", container: "child", lifetime: spool.Transient}, rec.constructs[1])
	assert.Equal(t, "server", rec.constructs[2].path)
	assert.Equal(t, "broken", rec.constructs[3].path)
	assert.True(t, spool.IsFactoryFailed(rec.constructs[3].err))

	assert.Len(t, rec.resolves, 3, "child containers inherit observers")
}

func TestMultipleObservers(t *testing.T) {
	t.Parallel()

	first, second := &recorder{}, &recorder{}
	c := newContainer(t, "app", append(first.options(), second.options()...)...)
	require.NoError(t, c.RegisterValue("v", 1))

	spool.MustResolve[int](c, "v")

	assert.Len(t, first.resolves, 1)
	assert.Len(t, second.resolves, 1)
	assert.Empty(t, first.constructs)
}

func TestLogging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	c := newContainer(t, "app", spool.WithLogger(zap.New(core)))

	require.NoError(t, c.RegisterFactory("db", func(context.Context, spool.Resolver) (any, error) {
		return &Database{}, nil
	}, spool.WithLifetime(spool.Registration)))
	spool.MustResolve[*Database](c, "db")

	registered := logs.FilterMessage("registered factory").All()
	require.Len(t, registered, 1)
	fields := registered[0].ContextMap()
	assert.Equal(t, "app", fields["container"])
	assert.Equal(t, "db", fields["component"])

	assert.Equal(t, 1, logs.FilterMessage("constructing component").Len())
	assert.Equal(t, 1, logs.FilterMessage("cached instance").FilterField(zap.String("component", "db")).Len())

	kid := child(t, c, "kid")
	_, err := kid.Resolve("db")
	require.NoError(t, err)

	delegated := logs.FilterMessage("not registered, delegating to parent").All()
	require.Len(t, delegated, 1)
	assert.Equal(t, "kid", delegated[0].ContextMap()["container"])
	assert.Equal(t, "app", delegated[0].ContextMap()["parent"])
}
