package feedback

import g "github.com/reoring/fbskema/dsl"

// Constrained strings shared by the write models.
var (
	datasetName = g.String().Min(DatasetNameMinLength).Max(DatasetNameMaxLength).Pattern(DatasetNameRegex)
	guidelines  = g.String().Min(DatasetGuidelinesMinLength).Max(DatasetGuidelinesMaxLength)
	entityName  = g.String().Min(NameMinLength).Max(NameMaxLength).Pattern(NameRegex)
	title       = g.String().Min(TitleMinLength).Max(TitleMaxLength)
	description = g.String().Min(QuestionDescriptionMinLength).Max(QuestionDescriptionMaxLength)
)

// DatasetNameSchema validates dataset names.
func DatasetNameSchema() g.StringSchema { return datasetName }

// NameSchema validates field, question and metadata property names.
func NameSchema() g.StringSchema { return entityName }

// TitleSchema validates field, question and metadata property titles.
func TitleSchema() g.StringSchema { return title }
