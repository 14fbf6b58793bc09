package fbskema

import (
	"context"
	"runtime"

	js "github.com/reoring/fbskema/jsonschema"
)

// Schema is a parse-and-validate contract for one payload shape.
type Schema[T any] interface {
	// Parse converts a decoded wire value (map[string]any, []any, string,
	// json.Number, bool, nil) into T. Field errors are collected first;
	// cross-field rules run only when every field parsed. The returned error
	// is Issues.
	Parse(ctx context.Context, v any) (T, error)
	// ParseWithMeta returns the typed value together with presence metadata.
	ParseWithMeta(ctx context.Context, v any) (Decoded[T], error)
	// ValidateValue verifies a value already typed as T without conversion.
	ValidateValue(ctx context.Context, v T) error
	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// Codec converts between a wire representation A and a domain representation B.
type Codec[A, B any] interface {
	In() Schema[A]
	Out() Schema[B]
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// Refiner is an optional hook applied at the end of parsing.
type Refiner[T any] interface {
	Refine(ctx context.Context, v T) error
}

// SafeParse parses v into T, returning (zero, false) on validation error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is reports whether v parses under s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	_, err := s.Parse(ctx, v)
	return err == nil
}

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
	_ctxKeyParallelism
)

// WithFailFast marks the context so schemas stop at the first issue.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	b, _ := ctx.Value(_ctxKeyFailFast).(bool)
	return b
}

// WithParallelism bounds fan-out for parallel array validation.
func WithParallelism(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, _ctxKeyParallelism, n)
}

// Parallelism returns the fan-out bound for parallel array validation.
func Parallelism(ctx context.Context) int {
	if n, _ := ctx.Value(_ctxKeyParallelism).(int); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

func withParseOpt(ctx context.Context, opt ParseOpt) context.Context {
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	if opt.Parallelism > 0 {
		ctx = WithParallelism(ctx, opt.Parallelism)
	}
	return ctx
}
