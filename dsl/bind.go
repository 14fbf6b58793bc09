package dsl

import (
	"context"
	"fmt"
	"reflect"

	fbskema "github.com/reoring/fbskema"
	js "github.com/reoring/fbskema/jsonschema"
)

// Bind builds an object schema and binds it to struct type T.
func Bind[T any](b *objectBuilder) (fbskema.Schema[T], error) {
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	return newTypedObjectSchema[T](s.(*objectSchema))
}

// MustBind is like Bind but panics on error.
func MustBind[T any](b *objectBuilder) fbskema.Schema[T] {
	s, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return s
}

// typedObjectSchema maps the parsed object onto struct T by wire key.
// Fields of type fbskema.Optional[X] keep absent, null and value apart.
type typedObjectSchema[T any] struct {
	inner      *objectSchema
	t          reflect.Type
	fieldByKey map[string][]int
	typedRules []typedRule[T]
}

type changer interface{ Change() (any, bool) }

func newTypedObjectSchema[T any](os *objectSchema) (fbskema.Schema[T], error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, fbskema.Issues{{Path: "/", Code: fbskema.CodeParseError, Message: "Bind[T] requires struct T"}}
	}
	byName := make(map[string][]int)
	for _, sf := range reflect.VisibleFields(rt) {
		if !sf.IsExported() || (sf.Anonymous && sf.Type.Kind() == reflect.Struct) {
			continue
		}
		name := fbskema.ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		if _, taken := byName[name]; !taken {
			byName[name] = sf.Index
		}
	}
	fm := make(map[string][]int, len(os.fields))
	for k := range os.fields {
		idx, ok := byName[k]
		if !ok {
			return nil, fbskema.Issues{{Path: fbskema.JoinPointer("", k), Code: fbskema.CodeParseError, Message: fmt.Sprintf("%s has no field for key %q", rt, k)}}
		}
		fm[k] = idx
	}
	var rules []typedRule[T]
	for _, r := range os.typedRulesAny {
		if tr, ok := r.(typedRule[T]); ok {
			rules = append(rules, tr)
		}
	}
	return &typedObjectSchema[T]{inner: os, t: rt, fieldByKey: fm, typedRules: rules}, nil
}

func (s *typedObjectSchema[T]) bind(m map[string]any) (T, fbskema.Issues) {
	var zero T
	rv := reflect.New(s.t).Elem()
	var iss fbskema.Issues
	for _, key := range s.inner.sortedKeys {
		val, present := m[key]
		if !present {
			continue
		}
		if err := assignField(rv.FieldByIndex(s.fieldByKey[key]), val); err != nil {
			iss = fbskema.AppendIssues(iss, fbskema.Issue{Path: fbskema.JoinPointer("", key), Code: fbskema.CodeInvalidType, Message: err.Error(), Cause: err})
		}
	}
	if len(iss) > 0 {
		return zero, iss
	}
	return rv.Interface().(T), nil
}

func assignField(fv reflect.Value, val any) error {
	if oa, ok := fv.Addr().Interface().(fbskema.OptionalAssigner); ok {
		return oa.AssignAny(val)
	}
	if val == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	vv := reflect.ValueOf(val)
	if fv.Kind() == reflect.Pointer && !vv.Type().AssignableTo(fv.Type()) {
		elem := reflect.New(fv.Type().Elem())
		if err := assignValue(elem.Elem(), vv); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	}
	return assignValue(fv, vv)
}

func assignValue(dst, vv reflect.Value) error {
	switch {
	case vv.Type().AssignableTo(dst.Type()):
		dst.Set(vv)
	case vv.Type().ConvertibleTo(dst.Type()):
		dst.Set(vv.Convert(dst.Type()))
	default:
		return fmt.Errorf("cannot bind %s to %s", vv.Type(), dst.Type())
	}
	return nil
}

// unbind renders struct fields back into a wire-keyed map. Absent optionals
// and nil pointers, slices and maps are omitted; explicit Optional nulls map
// to nil.
func (s *typedObjectSchema[T]) unbind(v T) map[string]any {
	rv := reflect.New(s.t).Elem()
	rv.Set(reflect.ValueOf(v))
	m := make(map[string]any, len(s.fieldByKey))
	for key, idx := range s.fieldByKey {
		fv := rv.FieldByIndex(idx)
		if c, ok := fv.Addr().Interface().(changer); ok {
			if val, set := c.Change(); set {
				m[key] = val
			}
			continue
		}
		switch fv.Kind() {
		case reflect.Pointer:
			if !fv.IsNil() {
				m[key] = fv.Elem().Interface()
			}
			continue
		case reflect.Slice, reflect.Map, reflect.Interface:
			if fv.IsNil() {
				continue
			}
		}
		m[key] = fv.Interface()
	}
	return m
}

func presenceOf(m map[string]any) fbskema.PresenceMap {
	pm := fbskema.PresenceMap{"/": fbskema.PresenceSeen}
	for k, v := range m {
		p := fbskema.JoinPointer("", k)
		pm[p] |= fbskema.PresenceSeen
		if v == nil {
			pm[p] |= fbskema.PresenceWasNull
		}
	}
	return pm
}

func (s *typedObjectSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	dm, err := s.ParseWithMeta(ctx, v)
	return dm.Value, err
}

// ParseWithMeta runs the field stage, binds, then runs typed rules with presence.
func (s *typedObjectSchema[T]) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[T], error) {
	var zero fbskema.Decoded[T]
	dm, err := s.inner.ParseWithMeta(ctx, v)
	if err != nil {
		return fbskema.Decoded[T]{Presence: dm.Presence}, err
	}
	out, iss := s.bind(dm.Value)
	if len(iss) > 0 {
		return zero, iss
	}
	if iss := runTypedRules(ctx, out, dm.Presence, s.typedRules); len(iss) > 0 {
		return fbskema.Decoded[T]{Presence: dm.Presence}, iss
	}
	return fbskema.Decoded[T]{Value: out, Presence: dm.Presence}, nil
}

// ValidateValue checks an already typed value: field constraints first, then
// typed rules.
func (s *typedObjectSchema[T]) ValidateValue(ctx context.Context, v T) error {
	m := s.unbind(v)
	if err := s.inner.ValidateValue(ctx, m); err != nil {
		return err
	}
	if iss := runTypedRules(ctx, v, presenceOf(m), s.typedRules); len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *typedObjectSchema[T]) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }
