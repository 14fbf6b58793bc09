package feedback

import (
	"time"

	"github.com/google/uuid"
	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
)

type Dataset struct {
	ID                 uuid.UUID     `json:"id"`
	Name               string        `json:"name"`
	Guidelines         *string       `json:"guidelines"`
	AllowExtraMetadata bool          `json:"allow_extra_metadata"`
	Status             DatasetStatus `json:"status"`
	WorkspaceID        uuid.UUID     `json:"workspace_id"`
	LastActivityAt     time.Time     `json:"last_activity_at"`
	InsertedAt         time.Time     `json:"inserted_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

type Datasets struct {
	Items []Dataset `json:"items"`
}

type DatasetCreate struct {
	Name               string    `json:"name"`
	Guidelines         *string   `json:"guidelines,omitempty"`
	AllowExtraMetadata bool      `json:"allow_extra_metadata"`
	WorkspaceID        uuid.UUID `json:"workspace_id"`
}

type DatasetUpdate struct {
	Name       fbskema.Optional[string] `json:"name"`
	Guidelines fbskema.Optional[string] `json:"guidelines"`
}

func (DatasetUpdate) NonNullableFields() []string { return []string{"name"} }

func (u DatasetUpdate) Changes() map[string]any {
	m := map[string]any{}
	putChange(m, "name", u.Name)
	putChange(m, "guidelines", u.Guidelines)
	return m
}

type RecordMetrics struct {
	Count int `json:"count"`
}

type ResponseMetrics struct {
	Count     int `json:"count"`
	Submitted int `json:"submitted"`
	Discarded int `json:"discarded"`
	Draft     int `json:"draft"`
}

// Metrics summarizes record and response counts of a dataset.
type Metrics struct {
	Records   RecordMetrics   `json:"records"`
	Responses ResponseMetrics `json:"responses"`
}

var (
	datasetSchema = g.ObjectOf[Dataset]().
			Field("id", g.SchemaOf(g.UUID())).Required().
			Field("name", g.SchemaOf(g.String())).Required().
			Field("guidelines", g.SchemaOf(g.String()).Nullable()).
			Field("allow_extra_metadata", g.SchemaOf(g.Bool())).Required().
			Field("status", g.SchemaOf(g.Enum(DatasetStatusDraft, DatasetStatusReady))).Required().
			Field("workspace_id", g.SchemaOf(g.UUID())).Required().
			Field("last_activity_at", g.SchemaOf(g.Time())).Required().
			Field("inserted_at", g.SchemaOf(g.Time())).Required().
			Field("updated_at", g.SchemaOf(g.Time())).Required().
			UnknownStrip().
			MustBind()

	datasetsSchema = g.ObjectOf[Datasets]().
			Field("items", g.ArrayOf(datasetSchema)).Required().
			UnknownStrip().
			MustBind()

	datasetCreateSchema = g.ObjectOf[DatasetCreate]().
				Field("name", g.SchemaOf(datasetName)).Required().
				Field("guidelines", g.SchemaOf(guidelines).Nullable()).
				Field("allow_extra_metadata", g.SchemaOf(g.Bool())).Default(true).
				Field("workspace_id", g.SchemaOf(g.UUID())).Required().
				UnknownStrip().
				MustBind()

	datasetUpdateSchema = g.ObjectOf[DatasetUpdate]().
				Field("name", g.SchemaOf(datasetName)).
				Field("guidelines", g.SchemaOf(guidelines).Nullable()).
				UnknownStrip().
				MustBind()

	recordMetricsSchema = g.ObjectOf[RecordMetrics]().
				Field("count", g.SchemaOf(g.Int())).Required().
				UnknownStrip().
				MustBind()

	responseMetricsSchema = g.ObjectOf[ResponseMetrics]().
				Field("count", g.SchemaOf(g.Int())).Required().
				Field("submitted", g.SchemaOf(g.Int())).Required().
				Field("discarded", g.SchemaOf(g.Int())).Required().
				Field("draft", g.SchemaOf(g.Int())).Required().
				UnknownStrip().
				MustBind()

	metricsSchema = g.ObjectOf[Metrics]().
			Field("records", g.SchemaOf(recordMetricsSchema)).Required().
			Field("responses", g.SchemaOf(responseMetricsSchema)).Required().
			UnknownStrip().
			MustBind()
)

func DatasetSchema() fbskema.Schema[Dataset]             { return datasetSchema }
func DatasetsSchema() fbskema.Schema[Datasets]           { return datasetsSchema }
func DatasetCreateSchema() fbskema.Schema[DatasetCreate] { return datasetCreateSchema }
func DatasetUpdateSchema() fbskema.Schema[DatasetUpdate] { return datasetUpdateSchema }
func MetricsSchema() fbskema.Schema[Metrics]             { return metricsSchema }
