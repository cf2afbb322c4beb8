// Package spooltest wraps a spool container with helpers that fail the
// current test instead of returning errors.
package spooltest

import (
	"context"
	"errors"

	"github.com/danpasecinic/spool"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Cleanup(f func())
}

type TestContainer struct {
	*spool.Container
	tb TB
}

// New creates a root container that is closed when the test ends.
func New(tb TB, name string, opts ...spool.Option) *TestContainer {
	tb.Helper()

	c, err := spool.New(name, opts...)
	if err != nil {
		tb.Fatalf("failed to create container %q: %v", name, err)
		return nil
	}
	return wrap(tb, c)
}

func wrap(tb TB, c *spool.Container) *TestContainer {
	tc := &TestContainer{
		Container: c,
		tb:        tb,
	}

	tb.Cleanup(func() {
		if err := c.Close(context.Background()); err != nil {
			tb.Fatalf("failed to close container %q: %v", c.Name(), err)
		}
	})

	return tc
}

// Child creates a child container that is closed when the test ends, before
// its parent.
func (tc *TestContainer) Child(name string, opts ...spool.Option) *TestContainer {
	tc.tb.Helper()

	c, err := tc.Container.Child(name, opts...)
	if err != nil {
		tc.tb.Fatalf("failed to create child container %q: %v", name, err)
		return nil
	}
	return wrap(tc.tb, c)
}

func (tc *TestContainer) RequireValidate() {
	tc.tb.Helper()

	if err := tc.Validate(); err != nil {
		tc.tb.Fatalf("container validation failed: %v", err)
	}
}

func (tc *TestContainer) RequireClose(ctx context.Context) {
	tc.tb.Helper()

	if err := tc.Close(ctx); err != nil {
		tc.tb.Fatalf("failed to close container: %v", err)
	}
}

func (tc *TestContainer) Replace(path string, value any) {
	tc.tb.Helper()

	if err := tc.ReplaceValue(path, value); err != nil {
		tc.tb.Fatalf("failed to replace %s: %v", path, err)
	}
}

func (tc *TestContainer) ReplaceWith(path string, factory spool.Factory, opts ...spool.RegisterOption) {
	tc.tb.Helper()

	if err := tc.ReplaceFactory(path, factory, opts...); err != nil {
		tc.tb.Fatalf("failed to replace factory %s: %v", path, err)
	}
}

func (tc *TestContainer) AssertHas(path string) {
	tc.tb.Helper()

	if !tc.Has(path) {
		tc.tb.Fatalf("expected container %q to have %s", tc.Name(), path)
	}
}

func (tc *TestContainer) AssertNotHas(path string) {
	tc.tb.Helper()

	if tc.Has(path) {
		tc.tb.Fatalf("expected container %q to not have %s", tc.Name(), path)
	}
}

func (tc *TestContainer) MustRegisterFactory(id string, factory spool.Factory, opts ...spool.RegisterOption) {
	tc.tb.Helper()

	if err := tc.RegisterFactory(id, factory, opts...); err != nil {
		tc.tb.Fatalf("failed to register factory %s: %v", id, err)
	}
}

func (tc *TestContainer) MustRegisterValue(id string, value any, opts ...spool.RegisterOption) {
	tc.tb.Helper()

	if err := tc.RegisterValue(id, value, opts...); err != nil {
		tc.tb.Fatalf("failed to register value %s: %v", id, err)
	}
}

func (tc *TestContainer) MustRegisterSubmodule(id string, opts ...spool.RegisterOption) *spool.Module {
	tc.tb.Helper()

	m, err := tc.RegisterSubmodule(id, opts...)
	if err != nil {
		tc.tb.Fatalf("failed to register submodule %s: %v", id, err)
		return nil
	}
	return m
}

func MustResolve[T any](tc *TestContainer, path string) T {
	tc.tb.Helper()

	v, err := spool.Resolve[T](tc.Container, path)
	if err != nil {
		tc.tb.Fatalf("failed to resolve %s: %v", path, err)
	}
	return v
}

// RequireError resolves path and fails the test unless resolution fails
// with code.
func RequireError(tc *TestContainer, path string, code spool.ErrorCode) error {
	tc.tb.Helper()

	_, err := tc.Resolve(path)
	if err == nil {
		tc.tb.Fatalf("expected resolving %s to fail with %s", path, code)
		return nil
	}
	if !errors.Is(err, &spool.Error{Code: code}) {
		tc.tb.Fatalf("expected resolving %s to fail with %s, got: %v", path, code, err)
	}
	return err
}
