package dsl

import (
	"context"
	"maps"
	"slices"

	fbskema "github.com/reoring/fbskema"
	js "github.com/reoring/fbskema/jsonschema"
)

// MapAny accepts any JSON object as is.
func MapAny() fbskema.Schema[map[string]any] { return Map(Any()) }

// Map returns a schema for JSON objects whose values all satisfy val.
func Map[V any](val fbskema.Schema[V]) fbskema.Schema[map[string]V] { return mapSchema[V]{val: val} }

// MapOf adapts Map(val) for use as an object field.
func MapOf[V any](val fbskema.Schema[V]) AnyAdapter { return SchemaOf(Map(val)) }

type mapSchema[V any] struct{ val fbskema.Schema[V] }

func (m mapSchema[V]) Parse(ctx context.Context, v any) (map[string]V, error) {
	src, ok := v.(map[string]any)
	if !ok {
		if typed, ok := v.(map[string]V); ok {
			return typed, m.ValidateValue(ctx, typed)
		}
		return nil, invalidType("object")
	}
	out := make(map[string]V, len(src))
	var iss fbskema.Issues
	for _, k := range slices.Sorted(maps.Keys(src)) {
		ev, err := m.val.Parse(ctx, src[k])
		if err != nil {
			iss = fbskema.AppendIssues(iss, fbskema.RebaseIssues(fbskema.JoinPointer("", k), fbskema.IssuesFromError("/", err))...)
			if fbskema.IsFailFast(ctx) {
				break
			}
			continue
		}
		out[k] = ev
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (m mapSchema[V]) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[map[string]V], error) {
	return meta(m.Parse(ctx, v))
}

func (m mapSchema[V]) ValidateValue(ctx context.Context, v map[string]V) error {
	var iss fbskema.Issues
	for _, k := range slices.Sorted(maps.Keys(v)) {
		if err := m.val.ValidateValue(ctx, v[k]); err != nil {
			iss = fbskema.AppendIssues(iss, fbskema.RebaseIssues(fbskema.JoinPointer("", k), fbskema.IssuesFromError("/", err))...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (m mapSchema[V]) JSONSchema() (*js.Schema, error) {
	vs, err := m.val.JSONSchema()
	if err != nil {
		return nil, err
	}
	if vs == nil || (vs.Type == "" && len(vs.OneOf) == 0) {
		return &js.Schema{Type: "object", AdditionalProperties: true}, nil
	}
	return &js.Schema{Type: "object", AdditionalProperties: vs}, nil
}
