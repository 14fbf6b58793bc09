package feedback

import (
	"time"

	"github.com/google/uuid"
	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
)

type Question struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Required    bool             `json:"required"`
	Settings    QuestionSettings `json:"settings"`
	InsertedAt  time.Time        `json:"inserted_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type Questions struct {
	Items []Question `json:"items"`
}

type QuestionCreate struct {
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Required    *bool            `json:"required,omitempty"`
	Settings    QuestionSettings `json:"settings"`
}

type QuestionUpdate struct {
	Title       fbskema.Optional[string]           `json:"title"`
	Description fbskema.Optional[string]           `json:"description"`
	Settings    fbskema.Optional[QuestionSettings] `json:"settings"`
}

func (QuestionUpdate) NonNullableFields() []string { return []string{"settings", "title"} }

func (u QuestionUpdate) Changes() map[string]any {
	m := map[string]any{}
	putChange(m, "title", u.Title)
	putChange(m, "description", u.Description)
	putChange(m, "settings", u.Settings)
	return m
}

var (
	questionSchema = g.ObjectOf[Question]().
			Field("id", g.SchemaOf(g.UUID())).Required().
			Field("name", g.SchemaOf(g.String())).Required().
			Field("title", g.SchemaOf(g.String())).Required().
			Field("description", g.SchemaOf(g.String()).Nullable()).
			Field("required", g.SchemaOf(g.Bool())).Required().
			Field("settings", g.SchemaOf(questionSettingsSchema)).Required().
			Field("inserted_at", g.SchemaOf(g.Time())).Required().
			Field("updated_at", g.SchemaOf(g.Time())).Required().
			UnknownStrip().
			MustBind()

	questionsSchema = g.ObjectOf[Questions]().
			Field("items", g.ArrayOf(questionSchema)).Required().
			UnknownStrip().
			MustBind()

	questionCreateSchema = g.ObjectOf[QuestionCreate]().
				Field("name", g.SchemaOf(entityName)).Required().
				Field("title", g.SchemaOf(title)).Required().
				Field("description", g.SchemaOf(description).Nullable()).
				Field("required", g.SchemaOf(g.Bool()).Nullable()).
				Field("settings", g.SchemaOf(questionSettingsCreateSchema)).Required().
				UnknownStrip().
				MustBind()

	questionUpdateSchema = g.ObjectOf[QuestionUpdate]().
				Field("title", g.SchemaOf(title)).
				Field("description", g.SchemaOf(description).Nullable()).
				Field("settings", g.SchemaOf(questionSettingsCreateSchema)).
				UnknownStrip().
				MustBind()
)

func QuestionSchema() fbskema.Schema[Question]             { return questionSchema }
func QuestionsSchema() fbskema.Schema[Questions]           { return questionsSchema }
func QuestionCreateSchema() fbskema.Schema[QuestionCreate] { return questionCreateSchema }
func QuestionUpdateSchema() fbskema.Schema[QuestionUpdate] { return questionUpdateSchema }
