package feedback

import (
	"github.com/google/uuid"
	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
)

type Suggestion struct {
	ID         uuid.UUID       `json:"id"`
	QuestionID uuid.UUID       `json:"question_id"`
	Type       *SuggestionType `json:"type"`
	Score      *float64        `json:"score"`
	Value      any             `json:"value"`
	Agent      *string         `json:"agent"`
}

type SuggestionCreate struct {
	QuestionID uuid.UUID       `json:"question_id"`
	Type       *SuggestionType `json:"type,omitempty"`
	Score      *float64        `json:"score,omitempty"`
	Value      any             `json:"value"`
	Agent      *string         `json:"agent,omitempty"`
}

var (
	suggestionType = g.Enum(SuggestionTypeModel, SuggestionTypeHuman)

	suggestionSchema = g.ObjectOf[Suggestion]().
				Field("id", g.SchemaOf(g.UUID())).Required().
				Field("question_id", g.SchemaOf(g.UUID())).Required().
				Field("type", g.SchemaOf(suggestionType).Nullable()).
				Field("score", g.SchemaOf(g.Float()).Nullable()).
				Field("value", g.SchemaOf(g.Any()).Nullable()).
				Field("agent", g.SchemaOf(g.String()).Nullable()).
				UnknownStrip().
				MustBind()

	suggestionCreateSchema = g.ObjectOf[SuggestionCreate]().
				Field("question_id", g.SchemaOf(g.UUID())).Required().
				Field("type", g.SchemaOf(suggestionType).Nullable()).
				Field("score", g.SchemaOf(g.Float().Min(SuggestionScoreMin).Max(SuggestionScoreMax)).Nullable()).
				Field("value", g.SchemaOf(g.Any())).Required().
				Field("agent", g.SchemaOf(g.String().Min(SuggestionAgentMinLength).Max(SuggestionAgentMaxLength)).Nullable()).
				UnknownStrip().
				MustBind()
)

func SuggestionSchema() fbskema.Schema[Suggestion] { return suggestionSchema }

// SuggestionCreateSchema validates a suggestion upsert. The value is required
// and may not be null.
func SuggestionCreateSchema() fbskema.Schema[SuggestionCreate] { return suggestionCreateSchema }
