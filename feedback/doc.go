// Package feedback defines the request and response schemas of the
// annotation service: datasets, fields, questions, metadata properties,
// records, responses, suggestions and record search.
//
// Write models (…Create, …Update) validate inbound payloads before they
// reach storage. Read models (Dataset, Record, …) describe persisted state on
// the way out and are parsed leniently when the client reads them back.
// Every schema is built once and is safe for concurrent use.
//
//	rec, err := fbskema.ParseFrom(ctx, feedback.RecordCreateSchema(), fbskema.JSONBytes(body))
//	if iss, ok := fbskema.AsIssues(err); ok {
//	    // one entry per violated constraint, each with a JSON Pointer path
//	}
package feedback
