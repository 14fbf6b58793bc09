package feedback

import (
	"time"

	"github.com/google/uuid"
	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
	"github.com/reoring/fbskema/rules"
)

// MetadataPropertySettings is the closed set of metadata property variants.
type MetadataPropertySettings interface {
	Kind() MetadataPropertyType
}

type TermsMetadataProperty struct {
	Type   MetadataPropertyType `json:"type"`
	Values []string             `json:"values"`
}

type IntegerMetadataProperty struct {
	Type MetadataPropertyType `json:"type"`
	Min  *int                 `json:"min"`
	Max  *int                 `json:"max"`
}

type FloatMetadataProperty struct {
	Type MetadataPropertyType `json:"type"`
	Min  *float64             `json:"min"`
	Max  *float64             `json:"max"`
}

func (TermsMetadataProperty) Kind() MetadataPropertyType   { return MetadataPropertyTypeTerms }
func (IntegerMetadataProperty) Kind() MetadataPropertyType { return MetadataPropertyTypeInteger }
func (FloatMetadataProperty) Kind() MetadataPropertyType   { return MetadataPropertyTypeFloat }

type MetadataProperty struct {
	ID                   uuid.UUID                `json:"id"`
	Name                 string                   `json:"name"`
	Title                string                   `json:"title"`
	Settings             MetadataPropertySettings `json:"settings"`
	VisibleForAnnotators bool                     `json:"visible_for_annotators"`
	InsertedAt           time.Time                `json:"inserted_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
}

type MetadataProperties struct {
	Items []MetadataProperty `json:"items"`
}

type MetadataPropertyCreate struct {
	Name                 string                   `json:"name"`
	Title                string                   `json:"title"`
	Settings             MetadataPropertySettings `json:"settings"`
	VisibleForAnnotators bool                     `json:"visible_for_annotators"`
}

type MetadataPropertyUpdate struct {
	Title                fbskema.Optional[string] `json:"title"`
	VisibleForAnnotators fbskema.Optional[bool]   `json:"visible_for_annotators"`
}

func (MetadataPropertyUpdate) NonNullableFields() []string {
	return []string{"title", "visible_for_annotators"}
}

func (u MetadataPropertyUpdate) Changes() map[string]any {
	m := map[string]any{}
	putChange(m, "title", u.Title)
	putChange(m, "visible_for_annotators", u.VisibleForAnnotators)
	return m
}

func metadataType(t MetadataPropertyType) g.AnyAdapter { return g.SchemaOf(g.Literal(t)) }

var (
	metadataSettingsCreateSchema = g.Union[MetadataPropertySettings]("type",
		g.Case[MetadataPropertySettings]("terms", g.ObjectOf[TermsMetadataProperty]().
			Field("type", metadataType(MetadataPropertyTypeTerms)).Required().
			Field("values", g.SchemaOf(g.Array(g.String()).
				Min(TermsMetadataPropertyValuesMinItems).
				Max(TermsMetadataPropertyValuesMaxItems)).Nullable()).
			UnknownStrip().
			MustBind()),
		g.Case[MetadataPropertySettings]("integer", g.ObjectOf[IntegerMetadataProperty]().
			Field("type", metadataType(MetadataPropertyTypeInteger)).Required().
			Field("min", g.SchemaOf(g.Int()).Nullable()).
			Field("max", g.SchemaOf(g.Int()).Nullable()).
			UnknownStrip().
			RefineT("bounds", rules.Ordered("/min", func(p IntegerMetadataProperty) (*int, *int) { return p.Min, p.Max })).
			MustBind()),
		g.Case[MetadataPropertySettings]("float", g.ObjectOf[FloatMetadataProperty]().
			Field("type", metadataType(MetadataPropertyTypeFloat)).Required().
			Field("min", g.SchemaOf(g.Float()).Nullable()).
			Field("max", g.SchemaOf(g.Float()).Nullable()).
			UnknownStrip().
			RefineT("bounds", rules.Ordered("/min", func(p FloatMetadataProperty) (*float64, *float64) { return p.Min, p.Max })).
			MustBind()),
	)

	metadataSettingsSchema = g.Union[MetadataPropertySettings]("type",
		g.Case[MetadataPropertySettings]("terms", g.ObjectOf[TermsMetadataProperty]().
			Field("type", metadataType(MetadataPropertyTypeTerms)).Required().
			Field("values", g.ArrayOf(g.String()).Nullable()).
			UnknownStrip().
			MustBind()),
		g.Case[MetadataPropertySettings]("integer", g.ObjectOf[IntegerMetadataProperty]().
			Field("type", metadataType(MetadataPropertyTypeInteger)).Required().
			Field("min", g.SchemaOf(g.Int()).Nullable()).
			Field("max", g.SchemaOf(g.Int()).Nullable()).
			UnknownStrip().
			MustBind()),
		g.Case[MetadataPropertySettings]("float", g.ObjectOf[FloatMetadataProperty]().
			Field("type", metadataType(MetadataPropertyTypeFloat)).Required().
			Field("min", g.SchemaOf(g.Float()).Nullable()).
			Field("max", g.SchemaOf(g.Float()).Nullable()).
			UnknownStrip().
			MustBind()),
	)

	metadataPropertySchema = g.ObjectOf[MetadataProperty]().
				Field("id", g.SchemaOf(g.UUID())).Required().
				Field("name", g.SchemaOf(g.String())).Required().
				Field("title", g.SchemaOf(g.String())).Required().
				Field("settings", g.SchemaOf(metadataSettingsSchema)).Required().
				Field("visible_for_annotators", g.SchemaOf(g.Bool())).Required().
				Field("inserted_at", g.SchemaOf(g.Time())).Required().
				Field("updated_at", g.SchemaOf(g.Time())).Required().
				UnknownStrip().
				MustBind()

	metadataPropertiesSchema = g.ObjectOf[MetadataProperties]().
					Field("items", g.ArrayOf(metadataPropertySchema)).Required().
					UnknownStrip().
					MustBind()

	metadataPropertyCreateSchema = g.ObjectOf[MetadataPropertyCreate]().
					Field("name", g.SchemaOf(entityName)).Required().
					Field("title", g.SchemaOf(title)).Required().
					Field("settings", g.SchemaOf(metadataSettingsCreateSchema)).Required().
					Field("visible_for_annotators", g.SchemaOf(g.Bool())).Default(true).
					UnknownStrip().
					MustBind()

	metadataPropertyUpdateSchema = g.ObjectOf[MetadataPropertyUpdate]().
					Field("title", g.SchemaOf(title)).
					Field("visible_for_annotators", g.SchemaOf(g.Bool())).
					UnknownStrip().
					MustBind()
)

// MetadataPropertySettingsCreateSchema validates settings on creation. Numeric
// variants require min < max when both are given.
func MetadataPropertySettingsCreateSchema() fbskema.Schema[MetadataPropertySettings] {
	return metadataSettingsCreateSchema
}

func MetadataPropertySettingsSchema() fbskema.Schema[MetadataPropertySettings] {
	return metadataSettingsSchema
}

func MetadataPropertySchema() fbskema.Schema[MetadataProperty] { return metadataPropertySchema }
func MetadataPropertiesSchema() fbskema.Schema[MetadataProperties] {
	return metadataPropertiesSchema
}
func MetadataPropertyCreateSchema() fbskema.Schema[MetadataPropertyCreate] {
	return metadataPropertyCreateSchema
}
func MetadataPropertyUpdateSchema() fbskema.Schema[MetadataPropertyUpdate] {
	return metadataPropertyUpdateSchema
}
