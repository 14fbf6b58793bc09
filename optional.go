package fbskema

import (
	"bytes"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
)

// Optional is a three-state field value for partial updates: absent (the zero
// value), explicitly null, or present with a value.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{set: true, value: v} }

// Null returns an Optional that was sent as an explicit null.
func Null[T any]() Optional[T] { return Optional[T]{set: true, null: true} }

// IsSet reports whether the field appeared in the payload (value or null).
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was sent as an explicit null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and true when the field is present and not null.
func (o Optional[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// ValueOr returns the held value, or d when absent or null.
func (o Optional[T]) ValueOr(d T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// Change reports the field as a merge change: ok is false when absent; value
// is nil when explicitly null.
func (o Optional[T]) Change() (value any, ok bool) {
	if !o.set {
		return nil, false
	}
	if o.null {
		return nil, true
	}
	return o.value, true
}

// AssignAny sets the Optional from a parsed wire value. nil marks it null.
func (o *Optional[T]) AssignAny(v any) error {
	o.set = true
	if v == nil {
		var zero T
		o.null, o.value = true, zero
		return nil
	}
	if tv, ok := v.(T); ok {
		o.null, o.value = false, tv
		return nil
	}
	rv := reflect.ValueOf(v)
	want := reflect.TypeFor[T]()
	if rv.Type().ConvertibleTo(want) {
		o.null, o.value = false, rv.Convert(want).Interface().(T)
		return nil
	}
	return fmt.Errorf("cannot assign %T to Optional[%s]", v, want)
}

// MarshalJSON renders null for both absent and null states. Callers that need
// to omit absent fields use Change.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON marks the Optional as present; a JSON null marks it null.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.null, o.value = true, zero
		return nil
	}
	o.null = false
	return json.Unmarshal(b, &o.value)
}

// OptionalAssigner is implemented by *Optional[T]; object binding uses it to
// carry absent/null/value through to typed structs.
type OptionalAssigner interface {
	AssignAny(v any) error
}
