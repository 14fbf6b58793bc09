package feedback

import (
	"time"

	"github.com/google/uuid"
	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
)

// FieldSettings is the closed set of field settings variants.
type FieldSettings interface {
	Kind() FieldType
}

type TextFieldSettings struct {
	Type        FieldType `json:"type"`
	UseMarkdown bool      `json:"use_markdown"`
}

func (TextFieldSettings) Kind() FieldType { return FieldTypeText }

type Field struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Title      string        `json:"title"`
	Required   bool          `json:"required"`
	Settings   FieldSettings `json:"settings"`
	InsertedAt time.Time     `json:"inserted_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type Fields struct {
	Items []Field `json:"items"`
}

type FieldCreate struct {
	Name     string        `json:"name"`
	Title    string        `json:"title"`
	Required *bool         `json:"required,omitempty"`
	Settings FieldSettings `json:"settings"`
}

type FieldUpdate struct {
	Title    fbskema.Optional[string]        `json:"title"`
	Settings fbskema.Optional[FieldSettings] `json:"settings"`
}

func (FieldUpdate) NonNullableFields() []string { return []string{"settings", "title"} }

func (u FieldUpdate) Changes() map[string]any {
	m := map[string]any{}
	putChange(m, "title", u.Title)
	putChange(m, "settings", u.Settings)
	return m
}

var (
	fieldSettingsSchema = g.Union[FieldSettings]("type",
		g.Case[FieldSettings]("text", g.ObjectOf[TextFieldSettings]().
			Field("type", g.SchemaOf(g.Literal(FieldTypeText))).Required().
			Field("use_markdown", g.SchemaOf(g.Bool())).Default(false).
			UnknownStrip().
			MustBind()),
	)

	fieldSchema = g.ObjectOf[Field]().
			Field("id", g.SchemaOf(g.UUID())).Required().
			Field("name", g.SchemaOf(g.String())).Required().
			Field("title", g.SchemaOf(g.String())).Required().
			Field("required", g.SchemaOf(g.Bool())).Required().
			Field("settings", g.SchemaOf(fieldSettingsSchema)).Required().
			Field("inserted_at", g.SchemaOf(g.Time())).Required().
			Field("updated_at", g.SchemaOf(g.Time())).Required().
			UnknownStrip().
			MustBind()

	fieldsSchema = g.ObjectOf[Fields]().
			Field("items", g.ArrayOf(fieldSchema)).Required().
			UnknownStrip().
			MustBind()

	fieldCreateSchema = g.ObjectOf[FieldCreate]().
				Field("name", g.SchemaOf(entityName)).Required().
				Field("title", g.SchemaOf(title)).Required().
				Field("required", g.SchemaOf(g.Bool()).Nullable()).
				Field("settings", g.SchemaOf(fieldSettingsSchema)).Required().
				UnknownStrip().
				MustBind()

	fieldUpdateSchema = g.ObjectOf[FieldUpdate]().
				Field("title", g.SchemaOf(title)).
				Field("settings", g.SchemaOf(fieldSettingsSchema)).
				UnknownStrip().
				MustBind()
)

// FieldSettingsSchema parses field settings; the only variant is "text".
func FieldSettingsSchema() fbskema.Schema[FieldSettings] { return fieldSettingsSchema }

func FieldSchema() fbskema.Schema[Field]             { return fieldSchema }
func FieldsSchema() fbskema.Schema[Fields]           { return fieldsSchema }
func FieldCreateSchema() fbskema.Schema[FieldCreate] { return fieldCreateSchema }
func FieldUpdateSchema() fbskema.Schema[FieldUpdate] { return fieldUpdateSchema }
