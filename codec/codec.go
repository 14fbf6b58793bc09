// Package codec converts between wire strings and domain values.
package codec

import (
	"context"

	fbskema "github.com/reoring/fbskema"
	js "github.com/reoring/fbskema/jsonschema"
)

func invalid(format string, err error) fbskema.Issues {
	return fbskema.Issues{{Path: "/", Code: fbskema.CodeInvalidFormat, Message: "invalid " + format, Cause: err,
		Params: map[string]any{"format": format}}}
}

// wireString is the In side of string codecs.
type wireString struct{ format string }

func (s wireString) Parse(ctx context.Context, v any) (string, error) {
	if str, ok := v.(string); ok {
		return str, nil
	}
	return "", fbskema.Issues{{Path: "/", Code: fbskema.CodeInvalidType, Message: "expected string",
		Params: map[string]any{"expected": "string"}}}
}

func (s wireString) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[string], error) {
	str, err := s.Parse(ctx, v)
	return fbskema.Decoded[string]{Value: str, Presence: fbskema.PresenceMap{"/": fbskema.PresenceSeen}}, err
}

func (wireString) ValidateValue(ctx context.Context, v string) error { return nil }
func (s wireString) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: s.format}, nil
}

// domainValue is the Out side: values of T already decoded.
type domainValue[T any] struct{ format string }

func (s domainValue[T]) Parse(ctx context.Context, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fbskema.Issues{{Path: "/", Code: fbskema.CodeInvalidType, Message: "expected " + s.format,
			Params: map[string]any{"expected": s.format}}}
	}
	return t, nil
}

func (s domainValue[T]) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[T], error) {
	t, err := s.Parse(ctx, v)
	return fbskema.Decoded[T]{Value: t, Presence: fbskema.PresenceMap{"/": fbskema.PresenceSeen}}, err
}

func (domainValue[T]) ValidateValue(ctx context.Context, v T) error { return nil }

func (s domainValue[T]) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: s.format}, nil
}
