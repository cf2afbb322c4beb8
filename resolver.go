package spool

import (
	"context"

	"github.com/danpasecinic/spool/internal/container"
	"github.com/danpasecinic/spool/internal/errs"
	"github.com/danpasecinic/spool/internal/module"
	"github.com/danpasecinic/spool/internal/reflect"
)

// Resolver looks up components by identifier or dotted path. Resolving a
// submodule yields another Resolver rooted at it.
type Resolver = module.Resolver

// Get resolves path from r and asserts the result to T. A nil component
// converts to the zero value of any nilable T.
func Get[T any](ctx context.Context, r Resolver, path string) (T, error) {
	instance, err := r.Resolve(ctx, path)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](path, instance)
}

func cast[T any](path string, instance any) (T, error) {
	var zero T

	if typed, ok := instance.(T); ok {
		return typed, nil
	}
	if container.IsPlaceholder(instance) {
		return zero, nil
	}
	if instance == nil {
		if _, ok := reflect.Convert(nil, reflect.TypeOf[T]()); ok {
			return zero, nil
		}
	}
	return zero, errs.TypeMismatch(path, reflect.TypeName[T](), instance)
}

func Resolve[T any](c *Container, path string) (T, error) {
	return ResolveCtx[T](context.Background(), c, path)
}

func ResolveCtx[T any](ctx context.Context, c *Container, path string) (T, error) {
	instance, err := c.ResolveCtx(ctx, path)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](path, instance)
}

func MustResolve[T any](c *Container, path string) T {
	v, err := Resolve[T](c, path)
	if err != nil {
		panic(err)
	}
	return v
}

func MustResolveCtx[T any](ctx context.Context, c *Container, path string) T {
	v, err := ResolveCtx[T](ctx, c, path)
	if err != nil {
		panic(err)
	}
	return v
}

func TryResolve[T any](c *Container, path string) (T, bool) {
	v, err := Resolve[T](c, path)
	return v, err == nil
}
