package dsl

import (
	"context"

	fbskema "github.com/reoring/fbskema"
)

// ObjectOf returns an object builder bound to struct T. Typed rules
// registered with RefineT see the bound value.
func ObjectOf[T any]() *objectBuilderT[T] { return &objectBuilderT[T]{inner: Object()} }

type objectBuilderT[T any] struct{ inner *objectBuilder }

type fieldStepT[T any] struct {
	tb   *objectBuilderT[T]
	name string
}

// Field registers a field and returns a step for chaining.
func (tb *objectBuilderT[T]) Field(name string, ad AnyAdapter) *fieldStepT[T] {
	tb.inner.Field(name, ad)
	return &fieldStepT[T]{tb: tb, name: name}
}

func (tb *objectBuilderT[T]) Require(names ...string) *objectBuilderT[T] {
	tb.inner.Require(names...)
	return tb
}
func (tb *objectBuilderT[T]) UnknownStrict() *objectBuilderT[T] { tb.inner.UnknownStrict(); return tb }
func (tb *objectBuilderT[T]) UnknownStrip() *objectBuilderT[T]  { tb.inner.UnknownStrip(); return tb }
func (tb *objectBuilderT[T]) UnknownPassthrough(target string) *objectBuilderT[T] {
	tb.inner.UnknownPassthrough(target)
	return tb
}

// Refine registers an untyped object rule over the parsed map.
func (tb *objectBuilderT[T]) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilderT[T] {
	tb.inner.Refine(name, fn)
	return tb
}

// RefineT registers a cross-field rule over the bound value. Rules run only
// after every field parsed; all rules run and their issues are merged.
func (tb *objectBuilderT[T]) RefineT(name string, fn fbskema.Rule[T], opt ...fbskema.RefineOpt[T]) *objectBuilderT[T] {
	if fn == nil {
		return tb
	}
	var o fbskema.RefineOpt[T]
	if len(opt) > 0 {
		o = opt[len(opt)-1]
	}
	tb.inner.addTypedRuleOpaque(typedRule[T]{name: name, fn: fn, opt: o})
	return tb
}

func (tb *objectBuilderT[T]) Bind() (fbskema.Schema[T], error) { return Bind[T](tb.inner) }
func (tb *objectBuilderT[T]) MustBind() fbskema.Schema[T]      { return MustBind[T](tb.inner) }

func (f *fieldStepT[T]) Required() *objectBuilderT[T] {
	f.tb.inner.Require(f.name)
	return f.tb
}

func (f *fieldStepT[T]) Optional() *objectBuilderT[T] {
	delete(f.tb.inner.required, f.name)
	return f.tb
}

// Default applies v when the field is missing and exports it to JSON Schema.
func (f *fieldStepT[T]) Default(v any) *objectBuilderT[T] {
	f.tb.inner.fields[f.name] = f.tb.inner.fields[f.name].withDefault(v)
	return f.tb
}

func (f *fieldStepT[T]) Field(name string, ad AnyAdapter) *fieldStepT[T] { return f.tb.Field(name, ad) }
func (f *fieldStepT[T]) UnknownStrict() *objectBuilderT[T]               { return f.tb.UnknownStrict() }
func (f *fieldStepT[T]) UnknownStrip() *objectBuilderT[T]                { return f.tb.UnknownStrip() }
func (f *fieldStepT[T]) RefineT(name string, fn fbskema.Rule[T], opt ...fbskema.RefineOpt[T]) *objectBuilderT[T] {
	return f.tb.RefineT(name, fn, opt...)
}
func (f *fieldStepT[T]) Bind() (fbskema.Schema[T], error) { return f.tb.Bind() }
func (f *fieldStepT[T]) MustBind() fbskema.Schema[T]      { return f.tb.MustBind() }
