package dsl

import (
	"context"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/i18n"
	js "github.com/reoring/fbskema/jsonschema"
)

func invalidType(expected string) fbskema.Issues {
	return fbskema.Issues{{
		Path:    "/",
		Code:    fbskema.CodeInvalidType,
		Message: i18n.T(fbskema.CodeInvalidType, i18n.Data("expected", expected)),
		Params:  map[string]any{"expected": expected},
	}}
}

func meta[T any](v T, err error) (fbskema.Decoded[T], error) {
	return fbskema.Decoded[T]{Value: v, Presence: fbskema.PresenceMap{"/": fbskema.PresenceSeen}}, err
}

// ---- string ----

// StringSchema validates strings with optional length bounds (counted in
// code points) and a pattern. Every violated bound is reported.
type StringSchema struct {
	minLen  int
	maxLen  int
	expr    string
	pattern *regexp2.Regexp
}

// String returns an unconstrained string schema.
func String() StringSchema { return StringSchema{minLen: -1, maxLen: -1} }

// Min sets the minimum length.
func (s StringSchema) Min(n int) StringSchema { s.minLen = n; return s }

// Max sets the maximum length.
func (s StringSchema) Max(n int) StringSchema { s.maxLen = n; return s }

// Pattern sets a regular expression the whole value must match. The
// expression uses .NET/Python syntax (lookarounds allowed). A trailing "$"
// does not admit a final newline: matching is anchored at \A and \z. It
// panics on an invalid expression.
func (s StringSchema) Pattern(expr string) StringSchema {
	s.expr = expr
	s.pattern = regexp2.MustCompile(`\A(?:`+expr+`)\z`, regexp2.None)
	s.pattern.MatchTimeout = patternTimeout
	return s
}

// patternTimeout bounds backtracking on hostile input; a timeout is reported
// as a pattern issue.
const patternTimeout = 250 * time.Millisecond

func (s StringSchema) Parse(ctx context.Context, v any) (string, error) {
	str, ok := v.(string)
	if !ok {
		return "", invalidType("string")
	}
	if err := s.ValidateValue(ctx, str); err != nil {
		return "", err
	}
	return str, nil
}

func (s StringSchema) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[string], error) {
	return meta(s.Parse(ctx, v))
}

func (s StringSchema) ValidateValue(ctx context.Context, v string) error {
	var iss fbskema.Issues
	n := utf8.RuneCountInString(v)
	if s.minLen >= 0 && n < s.minLen {
		iss = append(iss, fbskema.Issue{Path: "/", Code: fbskema.CodeTooShort,
			Message: i18n.T(fbskema.CodeTooShort, i18n.Data("min", s.minLen, "unit", "characters")),
			Params:  map[string]any{"min": s.minLen, "length": n}})
	}
	if s.maxLen >= 0 && n > s.maxLen {
		iss = append(iss, fbskema.Issue{Path: "/", Code: fbskema.CodeTooLong,
			Message: i18n.T(fbskema.CodeTooLong, i18n.Data("max", s.maxLen, "unit", "characters")),
			Params:  map[string]any{"max": s.maxLen, "length": n}})
	}
	if s.pattern != nil {
		ok, err := s.pattern.MatchString(v)
		if err != nil || !ok {
			iss = append(iss, fbskema.Issue{Path: "/", Code: fbskema.CodePattern,
				Message: i18n.T(fbskema.CodePattern, i18n.Data("pattern", s.expr)),
				Params:  map[string]any{"pattern": s.expr}, Cause: err})
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s StringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string"}
	if s.minLen >= 0 {
		out.MinLength = js.Int(s.minLen)
	}
	if s.maxLen >= 0 {
		out.MaxLength = js.Int(s.maxLen)
	}
	if s.pattern != nil {
		out.Pattern = s.expr
	}
	return out, nil
}

// ---- bool ----

type boolSchema struct{}

// Bool returns the bool schema.
func Bool() fbskema.Schema[bool] { return boolSchema{} }

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, invalidType("boolean")
	}
	return b, nil
}
func (s boolSchema) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[bool], error) {
	return meta(s.Parse(ctx, v))
}
func (boolSchema) ValidateValue(ctx context.Context, v bool) error { return nil }
func (boolSchema) JSONSchema() (*js.Schema, error)                 { return &js.Schema{Type: "boolean"}, nil }

// ---- numbers ----

// IntSchema validates integers with optional inclusive bounds.
type IntSchema struct {
	min, max *int
}

// Int returns an unbounded integer schema. Integral floats are accepted.
func Int() IntSchema { return IntSchema{} }

// Min sets the inclusive lower bound.
func (s IntSchema) Min(n int) IntSchema { s.min = &n; return s }

// Max sets the inclusive upper bound.
func (s IntSchema) Max(n int) IntSchema { s.max = &n; return s }

func (s IntSchema) Parse(ctx context.Context, v any) (int, error) {
	n, ok := toInt(v)
	if !ok {
		return 0, invalidType("integer")
	}
	if err := s.ValidateValue(ctx, n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s IntSchema) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[int], error) {
	return meta(s.Parse(ctx, v))
}

func (s IntSchema) ValidateValue(ctx context.Context, v int) error {
	return checkBounds(float64(v), v, toFloatPtr(s.min), toFloatPtr(s.max))
}

func (s IntSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "integer", Minimum: toFloatPtr(s.min), Maximum: toFloatPtr(s.max)}, nil
}

// FloatSchema validates numbers with optional inclusive bounds.
type FloatSchema struct {
	min, max *float64
}

// Float returns an unbounded number schema.
func Float() FloatSchema { return FloatSchema{} }

// Min sets the inclusive lower bound.
func (s FloatSchema) Min(f float64) FloatSchema { s.min = &f; return s }

// Max sets the inclusive upper bound.
func (s FloatSchema) Max(f float64) FloatSchema { s.max = &f; return s }

func (s FloatSchema) Parse(ctx context.Context, v any) (float64, error) {
	f, ok := toFloat(v)
	if !ok {
		return 0, invalidType("number")
	}
	if err := s.ValidateValue(ctx, f); err != nil {
		return 0, err
	}
	return f, nil
}

func (s FloatSchema) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[float64], error) {
	return meta(s.Parse(ctx, v))
}

func (s FloatSchema) ValidateValue(ctx context.Context, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidType("finite number")
	}
	return checkBounds(v, v, s.min, s.max)
}

func (s FloatSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "number", Minimum: s.min, Maximum: s.max}, nil
}

func checkBounds(f float64, shown any, lo, hi *float64) error {
	var iss fbskema.Issues
	if lo != nil && f < *lo {
		iss = append(iss, fbskema.Issue{Path: "/", Code: fbskema.CodeTooSmall,
			Message: i18n.T(fbskema.CodeTooSmall, i18n.Data("min", *lo)),
			Params:  map[string]any{"min": *lo, "value": shown}})
	}
	if hi != nil && f > *hi {
		iss = append(iss, fbskema.Issue{Path: "/", Code: fbskema.CodeTooBig,
			Message: i18n.T(fbskema.CodeTooBig, i18n.Data("max", *hi)),
			Params:  map[string]any{"max": *hi, "value": shown}})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func toFloatPtr(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return int(n), true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return floatToInt(t)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int(f), true
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

// ---- any ----

type anySchema struct{}

// Any accepts every JSON value, including null.
func Any() fbskema.Schema[any] { return anySchema{} }

func (anySchema) Parse(ctx context.Context, v any) (any, error) { return v, nil }
func (s anySchema) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[any], error) {
	return meta(s.Parse(ctx, v))
}
func (anySchema) ValidateValue(ctx context.Context, v any) error { return nil }
func (anySchema) JSONSchema() (*js.Schema, error)                { return &js.Schema{}, nil }

// ---- enum ----

// EnumSchema accepts one of a closed set of string values.
type EnumSchema[T ~string] struct {
	values []T
}

// Enum returns a schema accepting exactly the given values.
func Enum[T ~string](values ...T) EnumSchema[T] { return EnumSchema[T]{values: slices.Clone(values)} }

// Literal accepts exactly one string value. Union arms use it for their tag.
func Literal[T ~string](value T) EnumSchema[T] { return Enum(value) }

// Values returns the accepted values.
func (s EnumSchema[T]) Values() []T { return slices.Clone(s.values) }

func (s EnumSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	str, ok := v.(string)
	if !ok {
		return "", invalidType("string")
	}
	if err := s.ValidateValue(ctx, T(str)); err != nil {
		return "", err
	}
	return T(str), nil
}

func (s EnumSchema[T]) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[T], error) {
	return meta(s.Parse(ctx, v))
}

func (s EnumSchema[T]) ValidateValue(ctx context.Context, v T) error {
	if slices.Contains(s.values, v) {
		return nil
	}
	allowed := make([]string, len(s.values))
	for i, x := range s.values {
		allowed[i] = string(x)
	}
	return fbskema.Issues{{Path: "/", Code: fbskema.CodeInvalidEnum,
		Message: i18n.T(fbskema.CodeInvalidEnum, i18n.Data("allowed", strings.Join(allowed, ", "))),
		Params:  map[string]any{"value": string(v), "allowed": allowed}}}
}

func (s EnumSchema[T]) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string"}
	if len(s.values) == 1 {
		out.Const = string(s.values[0])
		return out, nil
	}
	for _, x := range s.values {
		out.Enum = append(out.Enum, string(x))
	}
	return out, nil
}
