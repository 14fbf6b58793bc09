package dsl

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/i18n"
	js "github.com/reoring/fbskema/jsonschema"
)

// UnionCase is one arm of a discriminated union over T.
type UnionCase[T any] struct {
	tag        string
	parse      func(context.Context, any) (T, fbskema.PresenceMap, error)
	match      func(T) (any, bool)
	validate   func(context.Context, any) error
	jsonSchema func() (*js.Schema, error)
}

// Case declares the arm selected by tag. V must be assignable to T.
func Case[T, V any](tag string, s fbskema.Schema[V]) UnionCase[T] {
	vt, tt := reflect.TypeFor[V](), reflect.TypeFor[T]()
	if !vt.AssignableTo(tt) {
		panic(fmt.Sprintf("dsl.Case(%q): %s is not assignable to %s", tag, vt, tt))
	}
	return UnionCase[T]{
		tag: tag,
		parse: func(ctx context.Context, v any) (T, fbskema.PresenceMap, error) {
			dm, err := s.ParseWithMeta(ctx, v)
			if err != nil {
				var zero T
				return zero, dm.Presence, err
			}
			return any(dm.Value).(T), dm.Presence, nil
		},
		match: func(v T) (any, bool) {
			vv, ok := any(v).(V)
			return vv, ok
		},
		validate:   func(ctx context.Context, v any) error { return s.ValidateValue(ctx, v.(V)) },
		jsonSchema: s.JSONSchema,
	}
}

// unionSchema dispatches on a string tag, then parses the selected arm.
type unionSchema[T any] struct {
	key   string
	arms  map[string]UnionCase[T]
	order []string
}

// Union builds a closed discriminated union keyed by key. Unknown tags are
// rejected with the allowed set.
func Union[T any](key string, cases ...UnionCase[T]) fbskema.Schema[T] {
	u := &unionSchema[T]{key: key, arms: make(map[string]UnionCase[T], len(cases))}
	for _, c := range cases {
		if _, dup := u.arms[c.tag]; dup {
			panic(fmt.Sprintf("dsl.Union(%q): duplicate tag %q", key, c.tag))
		}
		u.arms[c.tag] = c
	}
	u.order = slices.Sorted(maps.Keys(u.arms))
	return u
}

// Tags returns the accepted discriminator values, sorted.
func (u *unionSchema[T]) Tags() []string { return slices.Clone(u.order) }

func (u *unionSchema[T]) selectArm(v any) (UnionCase[T], fbskema.Issues) {
	m, ok := v.(map[string]any)
	if !ok {
		return UnionCase[T]{}, invalidType("object")
	}
	p := fbskema.JoinPointer("", u.key)
	raw, present := m[u.key]
	if !present || raw == nil {
		return UnionCase[T]{}, fbskema.Issues{{Path: p, Code: fbskema.CodeDiscriminatorMissing,
			Message: i18n.T(fbskema.CodeDiscriminatorMissing, i18n.Data("key", u.key)),
			Params:  map[string]any{"key": u.key, "allowed": u.Tags()}}}
	}
	tag, ok := raw.(string)
	if !ok {
		return UnionCase[T]{}, fbskema.RebaseIssues(p, invalidType("string"))
	}
	arm, ok := u.arms[tag]
	if !ok {
		return UnionCase[T]{}, fbskema.Issues{{Path: p, Code: fbskema.CodeDiscriminatorUnknown,
			Message: i18n.T(fbskema.CodeDiscriminatorUnknown, i18n.Data("key", u.key, "value", tag, "allowed", strings.Join(u.order, ", "))),
			Params:  map[string]any{"key": u.key, "value": tag, "allowed": u.Tags()}}}
	}
	return arm, nil
}

// tagIssues marks every issue with the arm it came from.
func tagIssues(err error, tag string) error {
	iss := fbskema.IssuesFromError("/", err)
	out := make(fbskema.Issues, len(iss))
	for i, it := range iss {
		params := make(map[string]any, len(it.Params)+1)
		maps.Copy(params, it.Params)
		params["variant"] = tag
		it.Params = params
		out[i] = it
	}
	return out
}

func (u *unionSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	dm, err := u.ParseWithMeta(ctx, v)
	return dm.Value, err
}

func (u *unionSchema[T]) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[T], error) {
	arm, iss := u.selectArm(v)
	if iss != nil {
		return fbskema.Decoded[T]{Presence: fbskema.PresenceMap{"/": fbskema.PresenceSeen}}, iss
	}
	out, pm, err := arm.parse(ctx, v)
	if err != nil {
		return fbskema.Decoded[T]{Presence: pm}, tagIssues(err, arm.tag)
	}
	return fbskema.Decoded[T]{Value: out, Presence: pm}, nil
}

// ValidateValue selects the arm by the dynamic type of v.
func (u *unionSchema[T]) ValidateValue(ctx context.Context, v T) error {
	for _, tag := range u.order {
		arm := u.arms[tag]
		if vv, ok := arm.match(v); ok {
			if err := arm.validate(ctx, vv); err != nil {
				return tagIssues(err, tag)
			}
			return nil
		}
	}
	return invalidType(strings.Join(u.order, "|"))
}

func (u *unionSchema[T]) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{OneOf: make([]*js.Schema, 0, len(u.order)), Discriminator: &js.Discriminator{PropertyName: u.key}}
	for _, tag := range u.order {
		s, err := u.arms[tag].jsonSchema()
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, s)
	}
	return out, nil
}
