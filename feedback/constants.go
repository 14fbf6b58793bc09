package feedback

const (
	DatasetNameRegex           = `^(?!-|_)[a-zA-Z0-9-_ ]+$`
	DatasetNameMinLength       = 1
	DatasetNameMaxLength       = 200
	DatasetGuidelinesMinLength = 1
	DatasetGuidelinesMaxLength = 10000

	// NameRegex constrains field, question and metadata property names.
	NameRegex      = `^(?=.*[a-z0-9])[a-z0-9_-]+$`
	NameMinLength  = 1
	NameMaxLength  = 200
	TitleMinLength = 1
	TitleMaxLength = 500

	QuestionDescriptionMinLength = 1
	QuestionDescriptionMaxLength = 1000

	RatingOptionsMinItems   = 2
	RatingOptionsMaxItems   = 10
	RatingLowerValueAllowed = 1
	RatingUpperValueAllowed = 10

	ValueTextOptionValueMinLength       = 1
	ValueTextOptionValueMaxLength       = 200
	ValueTextOptionTextMinLength        = 1
	ValueTextOptionTextMaxLength        = 500
	ValueTextOptionDescriptionMinLength = 1
	ValueTextOptionDescriptionMaxLength = 1000

	LabelSelectionOptionsMinItems  = 2
	LabelSelectionOptionsMaxItems  = 250
	LabelSelectionMinVisibleOption = 3

	RankingOptionsMinItems = 2
	RankingOptionsMaxItems = 50

	TermsMetadataPropertyValuesMinItems = 1
	TermsMetadataPropertyValuesMaxItems = 250

	RecordsCreateMinItems = 1
	RecordsCreateMaxItems = 1000
	RecordsUpdateMinItems = 1
	RecordsUpdateMaxItems = 1000

	SuggestionAgentMinLength = 1
	SuggestionAgentMaxLength = 200
	SuggestionScoreMin       = 0.0
	SuggestionScoreMax       = 1.0

	MetadataQueryRegex = `^(?=.*[a-z0-9])[a-z0-9_-]+:(.+(,(.+))*)$`
)

// Relation names a RecordSource reports load state for.
const (
	RelationResponses   = "responses"
	RelationSuggestions = "suggestions"
)

// Message keys of cross-field rules.
const (
	msgOptionsDuplicates    = "options.duplicates"
	msgOptionsOutOfRange    = "options.out_of_range"
	msgVisibleOptionsTooBig = "visible_options.too_big"
	msgResponsesDupUser     = "responses.duplicate_user"
)
