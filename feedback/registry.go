package feedback

import (
	"context"
	"slices"
	"strings"

	fbskema "github.com/reoring/fbskema"
	js "github.com/reoring/fbskema/jsonschema"
)

// Entry is a named schema, type-erased for tools that pick a schema at run
// time.
type Entry struct {
	Name        string
	Description string
	Parse       func(ctx context.Context, v any) (any, error)
	JSONSchema  func() (*js.Schema, error)
}

func entryOf[T any](name, desc string, s fbskema.Schema[T]) Entry {
	return Entry{
		Name:        name,
		Description: desc,
		Parse:       func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		JSONSchema:  s.JSONSchema,
	}
}

var registry = []Entry{
	entryOf("dataset", "dataset read model", datasetSchema),
	entryOf("dataset_create", "new dataset", datasetCreateSchema),
	entryOf("dataset_update", "partial dataset update", datasetUpdateSchema),
	entryOf("datasets", "dataset list", datasetsSchema),
	entryOf("field", "field read model", fieldSchema),
	entryOf("field_create", "new field", fieldCreateSchema),
	entryOf("field_update", "partial field update", fieldUpdateSchema),
	entryOf("metadata_property", "metadata property read model", metadataPropertySchema),
	entryOf("metadata_property_create", "new metadata property", metadataPropertyCreateSchema),
	entryOf("metadata_property_update", "partial metadata property update", metadataPropertyUpdateSchema),
	entryOf("metadata_query_params", "metadata filters (name:value)", metadataQueryParamsSchema),
	entryOf("metrics", "dataset metrics", metricsSchema),
	entryOf("question", "question read model", questionSchema),
	entryOf("question_create", "new question", questionCreateSchema),
	entryOf("question_update", "partial question update", questionUpdateSchema),
	entryOf("record", "record read model", recordSchema),
	entryOf("record_create", "new record", recordCreateSchema),
	entryOf("record_update", "partial record update", recordUpdateSchema),
	entryOf("records", "record list", recordsSchema),
	entryOf("records_create", "batch of 1..1000 new records", recordsCreateSchema),
	entryOf("records_update", "batch of 1..1000 record updates", recordsUpdateSchema),
	entryOf("response", "response read model", responseSchema),
	entryOf("search_records_query", "record search query", searchRecordsQuerySchema),
	entryOf("search_records_result", "record search result", searchRecordsResultSchema),
	entryOf("suggestion", "suggestion read model", suggestionSchema),
	entryOf("suggestion_create", "suggestion upsert", suggestionCreateSchema),
	entryOf("user_response_create", "response attached to a new record", userResponseCreateSchema),
}

// Schemas returns every registered schema, sorted by name.
func Schemas() []Entry {
	out := slices.Clone(registry)
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Lookup finds a schema by name.
func Lookup(name string) (Entry, bool) {
	for _, e := range registry {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
