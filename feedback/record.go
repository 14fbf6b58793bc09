package feedback

import (
	"time"

	"github.com/google/uuid"
	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
	"github.com/reoring/fbskema/rules"
)

// Record is the read model of a record. Responses and Suggestions are nil
// when the relation was not loaded and render as null; a loaded relation
// renders as a list, possibly empty.
type Record struct {
	ID          uuid.UUID      `json:"id"`
	Fields      map[string]any `json:"fields"`
	Metadata    map[string]any `json:"metadata"`
	ExternalID  *string        `json:"external_id"`
	Responses   []Response     `json:"responses"`
	Suggestions []Suggestion   `json:"suggestions"`
	InsertedAt  time.Time      `json:"inserted_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type Records struct {
	Items []Record `json:"items"`
	Total *int     `json:"total"`
}

// RecordSource is what storage exposes for a persisted record.
// IsRelationshipLoaded reports the load state of RelationResponses and
// RelationSuggestions independently of their contents.
type RecordSource interface {
	ID() uuid.UUID
	Fields() map[string]any
	Metadata() map[string]any
	ExternalID() *string
	IsRelationshipLoaded(name string) bool
	Responses() []Response
	Suggestions() []Suggestion
	InsertedAt() time.Time
	UpdatedAt() time.Time
}

// NewRecord builds the read model of src.
func NewRecord(src RecordSource) Record {
	r := Record{
		ID:         src.ID(),
		Fields:     src.Fields(),
		Metadata:   src.Metadata(),
		ExternalID: src.ExternalID(),
		InsertedAt: src.InsertedAt().UTC(),
		UpdatedAt:  src.UpdatedAt().UTC(),
	}
	if src.IsRelationshipLoaded(RelationResponses) {
		r.Responses = append(make([]Response, 0, len(src.Responses())), src.Responses()...)
	}
	if src.IsRelationshipLoaded(RelationSuggestions) {
		r.Suggestions = append(make([]Suggestion, 0, len(src.Suggestions())), src.Suggestions()...)
	}
	return r
}

type RecordCreate struct {
	Fields      map[string]any       `json:"fields"`
	Metadata    map[string]any       `json:"metadata,omitempty"`
	ExternalID  *string              `json:"external_id,omitempty"`
	Responses   []UserResponseCreate `json:"responses,omitempty"`
	Suggestions []SuggestionCreate   `json:"suggestions,omitempty"`
}

type RecordsCreate struct {
	Items []RecordCreate `json:"items"`
}

// RecordUpdate changes metadata and suggestions of a record. Suggestions may
// be omitted but not nulled.
type RecordUpdate struct {
	Metadata    fbskema.Optional[map[string]any]     `json:"metadata"`
	Suggestions fbskema.Optional[[]SuggestionCreate] `json:"suggestions"`
}

func (RecordUpdate) NonNullableFields() []string { return []string{"suggestions"} }

func (u RecordUpdate) Changes() map[string]any {
	m := map[string]any{}
	putChange(m, "metadata", u.Metadata)
	putChange(m, "suggestions", u.Suggestions)
	return m
}

type RecordUpdateWithId struct {
	ID uuid.UUID `json:"id"`
	RecordUpdate
}

type RecordsUpdate struct {
	Items []RecordUpdateWithId `json:"items"`
}

func recordResponses(r RecordCreate) []UserResponseCreate { return r.Responses }

func responseUser(r UserResponseCreate) uuid.UUID { return r.ResponseUserID() }

var (
	recordSchema = g.ObjectOf[Record]().
			Field("id", g.SchemaOf(g.UUID())).Required().
			Field("fields", g.SchemaOf(g.MapAny())).Required().
			Field("metadata", g.SchemaOf(g.MapAny()).Nullable()).
			Field("external_id", g.SchemaOf(g.String()).Nullable()).
			Field("responses", g.ArrayOf(responseSchema).Nullable()).
			Field("suggestions", g.ArrayOf(suggestionSchema).Nullable()).
			Field("inserted_at", g.SchemaOf(g.Time())).Required().
			Field("updated_at", g.SchemaOf(g.Time())).Required().
			UnknownStrip().
			MustBind()

	recordsSchema = g.ObjectOf[Records]().
			Field("items", g.ArrayOf(recordSchema)).Required().
			Field("total", g.SchemaOf(g.Int()).Nullable()).
			UnknownStrip().
			MustBind()

	recordCreateSchema = g.ObjectOf[RecordCreate]().
				Field("fields", g.SchemaOf(g.MapAny())).Required().
				Field("metadata", g.SchemaOf(g.MapAny()).Nullable()).
				Field("external_id", g.SchemaOf(g.String()).Nullable()).
				Field("responses", g.ArrayOf(userResponseCreateSchema).Nullable()).
				Field("suggestions", g.ArrayOf(suggestionCreateSchema).Nullable()).
				UnknownStrip().
				RefineT("responses.unique_user", rules.UniqueBy("/responses", "user_id", msgResponsesDupUser, recordResponses, responseUser)).
				MustBind()

	recordsCreateSchema = g.ObjectOf[RecordsCreate]().
				Field("items", g.SchemaOf(g.Array(recordCreateSchema).
					Min(RecordsCreateMinItems).Max(RecordsCreateMaxItems).Parallel())).Required().
				UnknownStrip().
				MustBind()

	recordUpdateSchema = g.ObjectOf[RecordUpdate]().
				Field("metadata", g.SchemaOf(g.MapAny()).Nullable()).
				Field("suggestions", g.ArrayOf(suggestionCreateSchema)).
				UnknownStrip().
				MustBind()

	recordUpdateWithIDSchema = g.ObjectOf[RecordUpdateWithId]().
					Field("id", g.SchemaOf(g.UUID())).Required().
					Field("metadata", g.SchemaOf(g.MapAny()).Nullable()).
					Field("suggestions", g.ArrayOf(suggestionCreateSchema)).
					UnknownStrip().
					MustBind()

	recordsUpdateSchema = g.ObjectOf[RecordsUpdate]().
				Field("items", g.SchemaOf(g.Array(recordUpdateWithIDSchema).
					Min(RecordsUpdateMinItems).Max(RecordsUpdateMaxItems).Parallel())).Required().
				UnknownStrip().
				MustBind()
)

func RecordSchema() fbskema.Schema[Record]   { return recordSchema }
func RecordsSchema() fbskema.Schema[Records] { return recordsSchema }

// RecordCreateSchema validates a new record. At most one response per user
// is accepted.
func RecordCreateSchema() fbskema.Schema[RecordCreate] { return recordCreateSchema }

// RecordsCreateSchema validates a batch of 1 to 1000 records. Items are
// validated independently and may fan out across goroutines; issues keep the
// item index in their path.
func RecordsCreateSchema() fbskema.Schema[RecordsCreate]           { return recordsCreateSchema }
func RecordUpdateSchema() fbskema.Schema[RecordUpdate]             { return recordUpdateSchema }
func RecordUpdateWithIdSchema() fbskema.Schema[RecordUpdateWithId] { return recordUpdateWithIDSchema }
func RecordsUpdateSchema() fbskema.Schema[RecordsUpdate]           { return recordsUpdateSchema }
