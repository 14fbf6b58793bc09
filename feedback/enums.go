package feedback

type DatasetStatus string

const (
	DatasetStatusDraft DatasetStatus = "draft"
	DatasetStatusReady DatasetStatus = "ready"
)

type FieldType string

const FieldTypeText FieldType = "text"

type QuestionType string

const (
	QuestionTypeText                QuestionType = "text"
	QuestionTypeRating              QuestionType = "rating"
	QuestionTypeLabelSelection      QuestionType = "label_selection"
	QuestionTypeMultiLabelSelection QuestionType = "multi_label_selection"
	QuestionTypeRanking             QuestionType = "ranking"
)

type MetadataPropertyType string

const (
	MetadataPropertyTypeTerms   MetadataPropertyType = "terms"
	MetadataPropertyTypeInteger MetadataPropertyType = "integer"
	MetadataPropertyTypeFloat   MetadataPropertyType = "float"
)

type ResponseStatus string

const (
	ResponseStatusDraft     ResponseStatus = "draft"
	ResponseStatusSubmitted ResponseStatus = "submitted"
	ResponseStatusDiscarded ResponseStatus = "discarded"
)

type SuggestionType string

const (
	SuggestionTypeModel SuggestionType = "model"
	SuggestionTypeHuman SuggestionType = "human"
)
