package reflect

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrNotAFunction = errors.New("not a function")
	ErrNotAStruct   = errors.New("not a struct")

	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

func TypeName[T any]() string {
	return TypeOf[T]().String()
}

func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

// Convert returns v as a value of type t. A nil v converts to the zero value
// of any nilable type.
func Convert(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		if nilable(t) {
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	out := reflect.New(t).Elem()
	out.Set(rv)
	return out, true
}

// FuncInfo describes a constructor: optional leading context.Context, then
// one parameter per dependency, returning T or (T, error).
type FuncInfo struct {
	Params       []reflect.Type
	WantsContext bool
	Result       reflect.Type
	ReturnsError bool

	fn reflect.Value
}

func InspectFunc(fn any) (*FuncInfo, error) {
	if fn == nil {
		return nil, ErrNotAFunction
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, ErrNotAFunction
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("variadic constructors are not supported")
	}

	info := &FuncInfo{fn: v}

	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("second return value must be error, got %s", t.Out(1))
		}
		info.ReturnsError = true
	default:
		return nil, fmt.Errorf("must return T or (T, error), got %d results", t.NumOut())
	}
	info.Result = t.Out(0)

	start := 0
	if t.NumIn() > 0 && t.In(0) == contextType {
		info.WantsContext = true
		start = 1
	}
	for i := start; i < t.NumIn(); i++ {
		info.Params = append(info.Params, t.In(i))
	}

	return info, nil
}

// Call invokes the function with args already converted to its parameter
// types.
func (f *FuncInfo) Call(ctx context.Context, args []reflect.Value) (any, error) {
	in := make([]reflect.Value, 0, len(args)+1)
	if f.WantsContext {
		in = append(in, reflect.ValueOf(&ctx).Elem())
	}
	in = append(in, args...)

	out := f.fn.Call(in)
	if f.ReturnsError && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

type StructField struct {
	Name     string
	Index    int
	Path     string
	Optional bool
	Type     reflect.Type
}

// StructFields lists the fields of t (or *t) carrying tagKey. An empty path
// in the tag defaults to the field name with its first letter lowered.
func StructFields(t reflect.Type, tagKey string) ([]StructField, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotAStruct, t)
	}

	var fields []StructField
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup(tagKey)
		if !ok || tag == "-" {
			continue
		}
		if !field.IsExported() {
			return nil, fmt.Errorf("field %s is unexported", field.Name)
		}

		path, options, _ := strings.Cut(tag, ",")
		if path == "" {
			path = lowerFirst(field.Name)
		}

		fields = append(fields, StructField{
			Name:     field.Name,
			Index:    i,
			Path:     path,
			Optional: options == "optional",
			Type:     field.Type,
		})
	}

	return fields, nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
