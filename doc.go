// Package fbskema validates the payloads of a human-feedback annotation
// service: datasets, fields, questions, metadata properties, records,
// responses and suggestions.
//
// The root package holds the parse contract (Schema), the error model
// (Issue, Issues and their codes), presence metadata, the three-state
// Optional used by partial updates, and the parse entry points with their
// enforcement options (duplicate keys, depth, size). Builders live in dsl,
// cross-field rules in rules, and the domain schemas in feedback.
//
// Typical usage:
//
//	rec, err := fbskema.ParseFrom(ctx, feedback.RecordCreateSchema(), fbskema.JSONReader(r))
//	if iss, ok := fbskema.AsIssues(err); ok {
//		// every violated constraint, keyed by JSON Pointer
//	}
package fbskema
