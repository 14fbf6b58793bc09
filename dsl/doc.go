// Package dsl provides the schema builder DSL for fbskema.
//
// Building blocks
//   - Scalars: String() with Min/Max/Pattern, Bool(), Int(), Float(), Any(),
//     Enum()/Literal(), UUID(), Time().
//   - Collections: Array(elem) with Min/Max/Parallel, Map(val), MapAny().
//   - Objects: Object() builds a Schema[map[string]any]; ObjectOf[T]() binds
//     the same builder to struct T and accepts typed cross-field rules.
//   - Unions: Union[T](key, Case[T](tag, schema)...) dispatches on a string tag.
//   - SchemaOf(s) adapts any Schema[T] into an object field slot; Nullable()
//     on the adapter accepts explicit null.
//
// Validation runs in two stages. Every field is parsed and all field issues
// are collected; object rules (Refine, RefineT) run only when that stage was
// clean. Issues carry JSON Pointer paths relative to the parsed value.
//
// Example
//
//	type Option struct {
//	    Value int `json:"value"`
//	}
//
//	opt := g.ObjectOf[Option]().
//	    Field("value", g.SchemaOf(g.Int())).Required().
//	    MustBind()
//	options := g.Array(opt).Min(2).Max(10)
//	_, err := fbskema.ParseFrom(ctx, options, fbskema.JSONBytes(data))
//
// Struct fields are matched by the `fbskema:"name=..."` tag, then the json
// tag, then the Go field name. Fields of type fbskema.Optional[X] keep
// "absent" and "null" apart; pointer fields are nil when absent.
package dsl
