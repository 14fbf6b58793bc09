package dsl

import (
	"context"
	"time"

	"github.com/google/uuid"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/codec"
	js "github.com/reoring/fbskema/jsonschema"
)

// Codec adapts c into a Schema[B] that accepts wire A and produces domain B.
// Parse runs In.Parse, Decode, then Out.ValidateValue. JSONSchema describes
// the wire side.
func Codec[A, B any](c fbskema.Codec[A, B]) fbskema.Schema[B] { return codecSchema[A, B]{c: c} }

// UUID accepts a UUID string and yields uuid.UUID.
func UUID() fbskema.Schema[uuid.UUID] { return Codec(codec.UUIDString()) }

// Time accepts an RFC 3339 timestamp and yields time.Time.
func Time() fbskema.Schema[time.Time] { return Codec(codec.TimeRFC3339()) }

type codecSchema[A, B any] struct{ c fbskema.Codec[A, B] }

func (s codecSchema[A, B]) Parse(ctx context.Context, v any) (B, error) {
	var zero B
	if b, ok := v.(B); ok {
		return b, s.ValidateValue(ctx, b)
	}
	a, err := s.c.In().Parse(ctx, v)
	if err != nil {
		return zero, fbskema.IssuesFromError("/", err)
	}
	b, err := s.c.Decode(ctx, a)
	if err != nil {
		return zero, fbskema.IssuesFromError("/", err)
	}
	if err := s.c.Out().ValidateValue(ctx, b); err != nil {
		return zero, fbskema.IssuesFromError("/", err)
	}
	return b, nil
}

func (s codecSchema[A, B]) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[B], error) {
	return meta(s.Parse(ctx, v))
}

func (s codecSchema[A, B]) ValidateValue(ctx context.Context, v B) error {
	return s.c.Out().ValidateValue(ctx, v)
}

func (s codecSchema[A, B]) JSONSchema() (*js.Schema, error) { return s.c.In().JSONSchema() }
