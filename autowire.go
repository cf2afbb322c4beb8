package spool

import (
	"context"
	"errors"
	"fmt"
	reflectPkg "reflect"
	"slices"

	"github.com/danpasecinic/spool/internal/container"
	"github.com/danpasecinic/spool/internal/errs"
	"github.com/danpasecinic/spool/internal/reflect"
)

const TagKey = "spool"

// RegisterConstructor registers an ordinary Go function as a factory. Its
// parameters, after an optional leading context.Context, are filled
// positionally from deps; it must return T or (T, error).
func (m *Module) RegisterConstructor(id string, constructor any, deps []string, opts ...RegisterOption) error {
	info, err := reflect.InspectFunc(constructor)
	if err != nil {
		if errors.Is(err, reflect.ErrNotAFunction) {
			return errs.NotAFunction(id)
		}
		return errs.InvalidConstructor(id, err.Error())
	}

	if len(info.Params) != len(deps) {
		return errs.InvalidConstructor(
			id, fmt.Sprintf("it takes %d dependencies but %d were given", len(info.Params), len(deps)),
		)
	}

	deps = slices.Clone(deps)
	factory := func(ctx context.Context, r Resolver) (any, error) {
		args := make([]reflectPkg.Value, len(deps))
		for i, dep := range deps {
			instance, err := r.Resolve(ctx, dep)
			if err != nil {
				return nil, err
			}

			if container.IsPlaceholder(instance) {
				args[i] = reflectPkg.Zero(info.Params[i])
				continue
			}

			arg, ok := reflect.Convert(instance, info.Params[i])
			if !ok {
				return nil, errs.TypeMismatch(dep, info.Params[i].String(), instance)
			}
			args[i] = arg
		}
		return info.Call(ctx, args)
	}

	opts = append(opts, WithDependencies(deps...))
	return m.RegisterFactory(id, factory, opts...)
}

// RegisterStruct registers a factory that builds T, a struct or pointer to
// struct, by resolving every field tagged `spool:"path"`. An empty path
// defaults to the field name with a lower-case first letter; ",optional"
// leaves the field zero when nothing is registered under its path.
func RegisterStruct[T any](m *Module, id string, opts ...RegisterOption) error {
	fields, err := reflect.StructFields(reflect.TypeOf[T](), TagKey)
	if err != nil {
		return errs.InvalidConstructor(id, err.Error())
	}

	deps := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.Optional {
			deps = append(deps, f.Path)
		}
	}

	opts = append(opts, WithDependencies(deps...))
	return m.RegisterFactory(id, func(ctx context.Context, r Resolver) (any, error) {
		return Inject[T](ctx, r)
	}, opts...)
}

// Inject builds T from r the same way RegisterStruct does, without
// registering anything.
func Inject[T any](ctx context.Context, r Resolver) (T, error) {
	var zero T

	t := reflect.TypeOf[T]()
	fields, err := reflect.StructFields(t, TagKey)
	if err != nil {
		return zero, errs.InvalidConstructor(t.String(), err.Error())
	}

	isPtr := t.Kind() == reflectPkg.Ptr
	if isPtr {
		t = t.Elem()
	}
	ptr := reflectPkg.New(t)
	structVal := ptr.Elem()

	for _, field := range fields {
		instance, err := r.Resolve(ctx, field.Path)
		if err != nil {
			if field.Optional && IsUnknownIdentifier(err) {
				continue
			}
			return zero, err
		}
		if container.IsPlaceholder(instance) {
			continue
		}

		v, ok := reflect.Convert(instance, field.Type)
		if !ok {
			return zero, errs.TypeMismatch(field.Path, field.Type.String(), instance)
		}
		structVal.Field(field.Index).Set(v)
	}

	if isPtr {
		return ptr.Interface().(T), nil
	}
	return structVal.Interface().(T), nil
}
