package dsl

import (
	"context"
	"slices"
	"sort"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/i18n"
)

type objectBuilder struct {
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy fbskema.UnknownPolicy
	unknownTarget string
	refines       []objRefine
	typedRules    []any // typedRule[T] values; retyped at Bind[T]
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder. Unknown keys are rejected by default.
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]AnyAdapter{},
		required:      map[string]struct{}{},
		unknownPolicy: fbskema.UnknownStrict,
	}
}

// Field registers a field with its adapter.
func (b *objectBuilder) Field(name string, ad AnyAdapter) *fieldStep {
	b.fields[name] = ad
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.name)
	return f.b
}

// Default applies v when the field is missing; v goes through the field schema.
func (f *fieldStep) Default(v any) *objectBuilder {
	f.b.fields[f.name] = f.b.fields[f.name].withDefault(v)
	return f.b
}

func (f *fieldStep) Field(name string, ad AnyAdapter) *fieldStep { return f.b.Field(name, ad) }
func (f *fieldStep) Build() (fbskema.Schema[map[string]any], error) {
	return f.b.Build()
}
func (f *fieldStep) MustBuild() fbskema.Schema[map[string]any] { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownStrict rejects unknown keys.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy, b.unknownTarget = fbskema.UnknownStrict, ""
	return b
}

// UnknownStrip drops unknown keys.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy, b.unknownTarget = fbskema.UnknownStrip, ""
	return b
}

// UnknownPassthrough collects unknown keys into the map field target.
func (b *objectBuilder) UnknownPassthrough(target string) *objectBuilder {
	b.unknownPolicy, b.unknownTarget = fbskema.UnknownPassthrough, target
	return b
}

// Refine adds an object-level rule over the parsed map. Rules run only when
// every field parsed cleanly.
func (b *objectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn != nil {
		b.refines = append(b.refines, objRefine{name: name, fn: fn})
	}
	return b
}

func (b *objectBuilder) addTypedRuleOpaque(rule any) {
	b.typedRules = append(b.typedRules, rule)
}

// Build validates the builder and returns a Schema.
func (b *objectBuilder) Build() (fbskema.Schema[map[string]any], error) {
	if b.unknownPolicy == fbskema.UnknownPassthrough {
		if _, ok := b.fields[b.unknownTarget]; !ok || b.unknownTarget == "" {
			return nil, fbskema.Issues{{Path: "/", Code: fbskema.CodeParseError, Message: i18n.T(fbskema.CodeParseError, nil), Hint: "unknown_target missing for passthrough"}}
		}
	}
	for k := range b.required {
		if _, ok := b.fields[k]; !ok {
			return nil, fbskema.Issues{{Path: "/" + k, Code: fbskema.CodeParseError, Message: i18n.T(fbskema.CodeParseError, nil), Hint: "required field is not declared"}}
		}
	}
	keys := make([]string, 0, len(b.fields))
	for k := range b.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &objectSchema{
		fields:        b.fields,
		required:      b.required,
		unknownPolicy: b.unknownPolicy,
		unknownTarget: b.unknownTarget,
		refines:       slices.Clone(b.refines),
		typedRulesAny: slices.Clone(b.typedRules),
		sortedKeys:    keys,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() fbskema.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
