package dsl

import (
	"context"
	"reflect"

	fbskema "github.com/reoring/fbskema"
	js "github.com/reoring/fbskema/jsonschema"
)

// AnyAdapter adapts a Schema[T] to the any-typed field slot of an object
// builder. It keeps the original schema for default application and JSON
// Schema export.
type AnyAdapter struct {
	parse         func(context.Context, any) (any, error)
	validateValue func(context.Context, any) error
	applyDefault  func(context.Context) (any, error)
	jsonSchema    func() (*js.Schema, error)
	nullable      bool
	orig          any
}

// SchemaOf adapts a typed schema for use as an object field.
func SchemaOf[T any](s fbskema.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse: func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		validateValue: func(ctx context.Context, v any) error {
			tv, ok := v.(T)
			if !ok {
				rv := reflect.ValueOf(v)
				want := reflect.TypeFor[T]()
				if !rv.IsValid() || !rv.Type().ConvertibleTo(want) {
					return fbskema.Issues{{Path: "/", Code: fbskema.CodeInvalidType, Message: "invalid field type"}}
				}
				tv = rv.Convert(want).Interface().(T)
			}
			return s.ValidateValue(ctx, tv)
		},
		jsonSchema: s.JSONSchema,
		orig:       s,
	}
}

// Orig returns the Schema[T] this adapter wraps.
func (ad AnyAdapter) Orig() any { return ad.orig }

// Nullable accepts JSON null for this field. A null value parses to nil and
// is kept in the object output.
func (ad AnyAdapter) Nullable() AnyAdapter {
	out := ad
	out.nullable = true
	prev := ad.jsonSchema
	out.jsonSchema = func() (*js.Schema, error) {
		if prev == nil {
			return &js.Schema{Nullable: true}, nil
		}
		s, err := prev()
		if err != nil || s == nil {
			return s, err
		}
		cp := *s
		cp.Nullable = true
		return &cp, nil
	}
	return out
}

// IsNullable reports whether the field accepts null.
func (ad AnyAdapter) IsNullable() bool { return ad.nullable }

// withDefault returns a copy that applies v when the field is missing.
func (ad AnyAdapter) withDefault(v any) AnyAdapter {
	out := ad
	parse := ad.parse
	out.applyDefault = func(ctx context.Context) (any, error) { return parse(ctx, v) }
	prev := ad.jsonSchema
	out.jsonSchema = func() (*js.Schema, error) {
		s := &js.Schema{}
		if prev != nil {
			ps, err := prev()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				cp := *ps
				s = &cp
			}
		}
		s.Default = v
		return s, nil
	}
	return out
}
