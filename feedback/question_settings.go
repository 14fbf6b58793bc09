package feedback

import (
	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
	"github.com/reoring/fbskema/rules"
)

// QuestionSettings is the closed set of question settings variants,
// discriminated by "type".
type QuestionSettings interface {
	Kind() QuestionType
}

type TextQuestionSettings struct {
	Type        QuestionType `json:"type"`
	UseMarkdown bool         `json:"use_markdown"`
}

type RatingQuestionSettingsOption struct {
	Value int `json:"value"`
}

type RatingQuestionSettings struct {
	Type    QuestionType                   `json:"type"`
	Options []RatingQuestionSettingsOption `json:"options"`
}

// ValueTextOption is an option of label, multi-label and ranking questions.
type ValueTextOption struct {
	Value       string  `json:"value"`
	Text        string  `json:"text"`
	Description *string `json:"description"`
}

type LabelSelectionQuestionSettings struct {
	Type           QuestionType      `json:"type"`
	Options        []ValueTextOption `json:"options"`
	VisibleOptions *int              `json:"visible_options"`
}

type MultiLabelSelectionQuestionSettings struct {
	Type           QuestionType      `json:"type"`
	Options        []ValueTextOption `json:"options"`
	VisibleOptions *int              `json:"visible_options"`
}

type RankingQuestionSettings struct {
	Type    QuestionType      `json:"type"`
	Options []ValueTextOption `json:"options"`
}

func (TextQuestionSettings) Kind() QuestionType           { return QuestionTypeText }
func (RatingQuestionSettings) Kind() QuestionType         { return QuestionTypeRating }
func (LabelSelectionQuestionSettings) Kind() QuestionType { return QuestionTypeLabelSelection }
func (MultiLabelSelectionQuestionSettings) Kind() QuestionType {
	return QuestionTypeMultiLabelSelection
}
func (RankingQuestionSettings) Kind() QuestionType { return QuestionTypeRanking }

func ratingValues(s RatingQuestionSettings) []int {
	out := make([]int, len(s.Options))
	for i, o := range s.Options {
		out[i] = o.Value
	}
	return out
}

func optionValues(opts []ValueTextOption) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func visibleOptions(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func questionType(t QuestionType) g.AnyAdapter { return g.SchemaOf(g.Literal(t)) }

var (
	ratingOption = g.ObjectOf[RatingQuestionSettingsOption]().
			Field("value", g.SchemaOf(g.Int())).Required().
			UnknownStrip().
			MustBind()

	valueTextOption = g.ObjectOf[ValueTextOption]().
			Field("value", g.SchemaOf(g.String().Min(ValueTextOptionValueMinLength).Max(ValueTextOptionValueMaxLength))).Required().
			Field("text", g.SchemaOf(g.String().Min(ValueTextOptionTextMinLength).Max(ValueTextOptionTextMaxLength))).Required().
			Field("description", g.SchemaOf(g.String().Min(ValueTextOptionDescriptionMinLength).Max(ValueTextOptionDescriptionMaxLength)).Nullable()).
			UnknownStrip().
			MustBind()

	lenientValueTextOption = g.ObjectOf[ValueTextOption]().
				Field("value", g.SchemaOf(g.String())).Required().
				Field("text", g.SchemaOf(g.String())).Required().
				Field("description", g.SchemaOf(g.String()).Nullable()).
				UnknownStrip().
				MustBind()

	labelOptions   = g.Array(valueTextOption).Min(LabelSelectionOptionsMinItems).Max(LabelSelectionOptionsMaxItems)
	visibleOptsMin = g.SchemaOf(g.Int().Min(LabelSelectionMinVisibleOption)).Nullable()

	questionSettingsCreateSchema = g.Union[QuestionSettings]("type",
		g.Case[QuestionSettings]("text", g.ObjectOf[TextQuestionSettings]().
			Field("type", questionType(QuestionTypeText)).Required().
			Field("use_markdown", g.SchemaOf(g.Bool())).Default(false).
			UnknownStrip().
			MustBind()),
		g.Case[QuestionSettings]("rating", g.ObjectOf[RatingQuestionSettings]().
			Field("type", questionType(QuestionTypeRating)).Required().
			Field("options", g.SchemaOf(g.Array(ratingOption).Min(RatingOptionsMinItems).Max(RatingOptionsMaxItems))).Required().
			UnknownStrip().
			RefineT("options.unique", rules.UniqueValues("/options", msgOptionsDuplicates, ratingValues)).
			RefineT("options.range", rules.InRange("/options", "value", msgOptionsOutOfRange, ratingValues, RatingLowerValueAllowed, RatingUpperValueAllowed)).
			MustBind()),
		g.Case[QuestionSettings]("label_selection", g.ObjectOf[LabelSelectionQuestionSettings]().
			Field("type", questionType(QuestionTypeLabelSelection)).Required().
			Field("options", g.SchemaOf(labelOptions)).Required().
			Field("visible_options", visibleOptsMin).
			UnknownStrip().
			RefineT("options.unique", rules.UniqueValues("/options", msgOptionsDuplicates,
				func(s LabelSelectionQuestionSettings) []string { return optionValues(s.Options) })).
			RefineT("visible_options.max", rules.AtMost("/visible_options", msgVisibleOptionsTooBig,
				func(s LabelSelectionQuestionSettings) (int, bool) { return visibleOptions(s.VisibleOptions) },
				func(s LabelSelectionQuestionSettings) int { return len(s.Options) })).
			MustBind()),
		g.Case[QuestionSettings]("multi_label_selection", g.ObjectOf[MultiLabelSelectionQuestionSettings]().
			Field("type", questionType(QuestionTypeMultiLabelSelection)).Required().
			Field("options", g.SchemaOf(labelOptions)).Required().
			Field("visible_options", visibleOptsMin).
			UnknownStrip().
			RefineT("options.unique", rules.UniqueValues("/options", msgOptionsDuplicates,
				func(s MultiLabelSelectionQuestionSettings) []string { return optionValues(s.Options) })).
			RefineT("visible_options.max", rules.AtMost("/visible_options", msgVisibleOptionsTooBig,
				func(s MultiLabelSelectionQuestionSettings) (int, bool) { return visibleOptions(s.VisibleOptions) },
				func(s MultiLabelSelectionQuestionSettings) int { return len(s.Options) })).
			MustBind()),
		g.Case[QuestionSettings]("ranking", g.ObjectOf[RankingQuestionSettings]().
			Field("type", questionType(QuestionTypeRanking)).Required().
			Field("options", g.SchemaOf(g.Array(valueTextOption).Min(RankingOptionsMinItems).Max(RankingOptionsMaxItems))).Required().
			UnknownStrip().
			RefineT("options.unique", rules.UniqueValues("/options", msgOptionsDuplicates,
				func(s RankingQuestionSettings) []string { return optionValues(s.Options) })).
			MustBind()),
	)

	// Read side: same variants, type checks only.
	questionSettingsSchema = g.Union[QuestionSettings]("type",
		g.Case[QuestionSettings]("text", g.ObjectOf[TextQuestionSettings]().
			Field("type", questionType(QuestionTypeText)).Required().
			Field("use_markdown", g.SchemaOf(g.Bool())).Default(false).
			UnknownStrip().
			MustBind()),
		g.Case[QuestionSettings]("rating", g.ObjectOf[RatingQuestionSettings]().
			Field("type", questionType(QuestionTypeRating)).Required().
			Field("options", g.ArrayOf(ratingOption)).Required().
			UnknownStrip().
			MustBind()),
		g.Case[QuestionSettings]("label_selection", g.ObjectOf[LabelSelectionQuestionSettings]().
			Field("type", questionType(QuestionTypeLabelSelection)).Required().
			Field("options", g.ArrayOf(lenientValueTextOption)).Required().
			Field("visible_options", g.SchemaOf(g.Int()).Nullable()).
			UnknownStrip().
			MustBind()),
		g.Case[QuestionSettings]("multi_label_selection", g.ObjectOf[MultiLabelSelectionQuestionSettings]().
			Field("type", questionType(QuestionTypeMultiLabelSelection)).Required().
			Field("options", g.ArrayOf(lenientValueTextOption)).Required().
			Field("visible_options", g.SchemaOf(g.Int()).Nullable()).
			UnknownStrip().
			MustBind()),
		g.Case[QuestionSettings]("ranking", g.ObjectOf[RankingQuestionSettings]().
			Field("type", questionType(QuestionTypeRanking)).Required().
			Field("options", g.ArrayOf(lenientValueTextOption)).Required().
			UnknownStrip().
			MustBind()),
	)
)

// QuestionSettingsCreateSchema validates settings on question creation,
// including the option rules of each variant.
func QuestionSettingsCreateSchema() fbskema.Schema[QuestionSettings] {
	return questionSettingsCreateSchema
}

// QuestionSettingsSchema parses persisted settings.
func QuestionSettingsSchema() fbskema.Schema[QuestionSettings] { return questionSettingsSchema }
