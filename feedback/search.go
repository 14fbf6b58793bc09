package feedback

import (
	"strings"

	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
)

// MetadataParsedQueryParam is one "name:value" metadata filter.
type MetadataParsedQueryParam struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseMetadataQueryParam splits s once on the first colon. The value keeps
// its inner content, commas included, and is trimmed of surrounding
// whitespace. Without a colon the value is empty.
func ParseMetadataQueryParam(s string) MetadataParsedQueryParam {
	name, value, _ := strings.Cut(s, ":")
	return MetadataParsedQueryParam{Name: name, Value: strings.TrimSpace(value)}
}

type MetadataQueryParams struct {
	Metadata []string `json:"metadata"`
}

// Parsed returns the parsed form of every metadata filter, in order.
func (p MetadataQueryParams) Parsed() []MetadataParsedQueryParam {
	out := make([]MetadataParsedQueryParam, len(p.Metadata))
	for i, s := range p.Metadata {
		out[i] = ParseMetadataQueryParam(s)
	}
	return out
}

type TextQuery struct {
	Q     string  `json:"q"`
	Field *string `json:"field,omitempty"`
}

type VectorQuery struct {
	Name  string    `json:"name"`
	Value []float64 `json:"value"`
}

type Query struct {
	Text   TextQuery    `json:"text"`
	Vector *VectorQuery `json:"vector,omitempty"`
}

type SearchRecordsQuery struct {
	Query Query `json:"query"`
}

type SearchRecord struct {
	Record     Record   `json:"record"`
	QueryScore *float64 `json:"query_score"`
}

// SearchRecordsResult is the ranked result envelope. Total is 0 when the
// backend does not report it.
type SearchRecordsResult struct {
	Items []SearchRecord `json:"items"`
	Total int            `json:"total"`
}

var (
	metadataQueryParamsSchema = g.ObjectOf[MetadataQueryParams]().
					Field("metadata", g.ArrayOf(g.String().Pattern(MetadataQueryRegex))).Default([]any{}).
					UnknownStrip().
					MustBind()

	textQuerySchema = g.ObjectOf[TextQuery]().
			Field("q", g.SchemaOf(g.String().Min(1))).Required().
			Field("field", g.SchemaOf(g.String()).Nullable()).
			UnknownStrip().
			MustBind()

	vectorQuerySchema = g.ObjectOf[VectorQuery]().
				Field("name", g.SchemaOf(g.String().Min(1))).Required().
				Field("value", g.SchemaOf(g.Array(g.Float()).Min(1))).Required().
				UnknownStrip().
				MustBind()

	querySchema = g.ObjectOf[Query]().
			Field("text", g.SchemaOf(textQuerySchema)).Required().
			Field("vector", g.SchemaOf(vectorQuerySchema).Nullable()).
			UnknownStrip().
			MustBind()

	searchRecordsQuerySchema = g.ObjectOf[SearchRecordsQuery]().
					Field("query", g.SchemaOf(querySchema)).Required().
					UnknownStrip().
					MustBind()

	searchRecordSchema = g.ObjectOf[SearchRecord]().
				Field("record", g.SchemaOf(recordSchema)).Required().
				Field("query_score", g.SchemaOf(g.Float()).Nullable()).
				UnknownStrip().
				MustBind()

	searchRecordsResultSchema = g.ObjectOf[SearchRecordsResult]().
					Field("items", g.ArrayOf(searchRecordSchema)).Required().
					Field("total", g.SchemaOf(g.Int())).Default(0).
					UnknownStrip().
					MustBind()
)

// MetadataQueryParamsSchema validates "name:value" filters. A missing list
// defaults to empty.
func MetadataQueryParamsSchema() fbskema.Schema[MetadataQueryParams] {
	return metadataQueryParamsSchema
}

func SearchRecordsQuerySchema() fbskema.Schema[SearchRecordsQuery] {
	return searchRecordsQuerySchema
}

func SearchRecordsResultSchema() fbskema.Schema[SearchRecordsResult] {
	return searchRecordsResultSchema
}
