package spool

import (
	"context"

	"github.com/danpasecinic/spool/internal/errs"
	"github.com/danpasecinic/spool/internal/module"
	"github.com/danpasecinic/spool/internal/reflect"
)

type Decorator[T any] func(ctx context.Context, r Resolver, base T) (T, error)

// Decorate wraps every instance the factory at path builds in c. Decorators
// run in the order they were added, before a Registration-scoped instance
// is cached. Values and components of other containers are not affected.
func Decorate[T any](c *Container, path string, decorator Decorator[T]) {
	c.internal.AddDecorator(
		module.ParsePath(path), func(ctx context.Context, r module.Resolver, instance any) (any, error) {
			typed, ok := instance.(T)
			if !ok {
				return nil, errs.TypeMismatch(path, reflect.TypeName[T](), instance)
			}
			return decorator(ctx, r, typed)
		},
	)
}
