package feedback_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/feedback"
)

func ratingSettings(values ...int) map[string]any {
	opts := make([]any, len(values))
	for i, v := range values {
		opts[i] = map[string]any{"value": v}
	}
	return map[string]any{"type": "rating", "options": opts}
}

func labelSettings(kind string, n int, visible any) map[string]any {
	opts := make([]any, n)
	for i := range opts {
		v := string(rune('a' + i))
		opts[i] = map[string]any{"value": v, "text": "Label " + v}
	}
	m := map[string]any{"type": kind, "options": opts}
	if visible != nil {
		m["visible_options"] = visible
	}
	return m
}

func TestRatingSettings(t *testing.T) {
	ctx := context.Background()
	s := feedback.QuestionSettingsCreateSchema()

	v, err := s.Parse(ctx, ratingSettings(1, 2))
	require.NoError(t, err)
	rating, ok := v.(feedback.RatingQuestionSettings)
	require.True(t, ok)
	assert.Equal(t, []feedback.RatingQuestionSettingsOption{{Value: 1}, {Value: 2}}, rating.Options)
	assert.Equal(t, feedback.QuestionTypeRating, v.Kind())

	_, err = s.Parse(ctx, ratingSettings(1, 1))
	it := requireIssue(t, err, "/options", fbskema.CodeUniqueness)
	assert.Equal(t, []int{1}, it.Params["duplicates"])
	assert.Equal(t, "Option values must be unique, found duplicates: 1", it.Message)
	assert.Equal(t, "rating", it.Params["variant"])

	_, err = s.Parse(ctx, ratingSettings(0, 2))
	it = requireIssue(t, err, "/options/0/value", fbskema.CodeDomainRange)
	assert.Equal(t, "Option value 0 out of range [1, 10]", it.Message)
}

func TestRatingSettings_NamesEveryDuplicate(t *testing.T) {
	_, err := feedback.QuestionSettingsCreateSchema().Parse(context.Background(), ratingSettings(3, 1, 3, 1, 2))
	it := requireIssue(t, err, "/options", fbskema.CodeUniqueness)
	assert.Equal(t, []int{1, 3}, it.Params["duplicates"])
}

func TestRatingSettings_FieldErrorsSkipRules(t *testing.T) {
	_, err := feedback.QuestionSettingsCreateSchema().Parse(context.Background(), ratingSettings(1))
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/options", iss[0].Path)
	assert.Equal(t, fbskema.CodeTooShort, iss[0].Code)
}

func TestLabelSelection_VisibleOptions(t *testing.T) {
	ctx := context.Background()
	s := feedback.QuestionSettingsCreateSchema()
	for _, kind := range []string{"label_selection", "multi_label_selection"} {
		t.Run(kind, func(t *testing.T) {
			_, err := s.Parse(ctx, labelSettings(kind, 5, 6))
			it := requireIssue(t, err, "/visible_options", fbskema.CodeBusinessRule)
			assert.Contains(t, it.Message, "(5)")

			_, err = s.Parse(ctx, labelSettings(kind, 5, 5))
			require.NoError(t, err)

			_, err = s.Parse(ctx, labelSettings(kind, 5, 2))
			requireIssue(t, err, "/visible_options", fbskema.CodeTooSmall)

			v, err := s.Parse(ctx, labelSettings(kind, 5, nil))
			require.NoError(t, err)
			assert.Equal(t, feedback.QuestionType(kind), v.Kind())
		})
	}
}

func TestLabelSelection_DuplicateValuesAreCaseSensitive(t *testing.T) {
	ctx := context.Background()
	in := map[string]any{"type": "label_selection", "options": []any{
		map[string]any{"value": "a", "text": "A"},
		map[string]any{"value": "A", "text": "A"},
	}}
	_, err := feedback.QuestionSettingsCreateSchema().Parse(ctx, in)
	require.NoError(t, err)

	in["options"] = append(in["options"].([]any), map[string]any{"value": "a", "text": "again"})
	_, err = feedback.QuestionSettingsCreateSchema().Parse(ctx, in)
	it := requireIssue(t, err, "/options", fbskema.CodeUniqueness)
	assert.Equal(t, []string{"a"}, it.Params["duplicates"])
}

func TestRankingSettings(t *testing.T) {
	ctx := context.Background()
	s := feedback.QuestionSettingsCreateSchema()
	v, err := s.Parse(ctx, labelSettings("ranking", 3, nil))
	require.NoError(t, err)
	assert.Len(t, v.(feedback.RankingQuestionSettings).Options, 3)

	in := labelSettings("ranking", 2, nil)
	in["options"].([]any)[1].(map[string]any)["value"] = "a"
	_, err = s.Parse(ctx, in)
	requireIssue(t, err, "/options", fbskema.CodeUniqueness)

	_, err = s.Parse(ctx, labelSettings("ranking", 51, nil))
	requireIssue(t, err, "/options", fbskema.CodeTooLong)
}

func TestTextSettings_Default(t *testing.T) {
	v, err := feedback.QuestionSettingsCreateSchema().Parse(context.Background(), map[string]any{"type": "text"})
	require.NoError(t, err)
	assert.Equal(t, feedback.TextQuestionSettings{Type: feedback.QuestionTypeText}, v)
}

func TestQuestionSettings_UnknownType(t *testing.T) {
	_, err := feedback.QuestionSettingsCreateSchema().Parse(context.Background(), map[string]any{"type": "slider"})
	it := requireIssue(t, err, "/type", fbskema.CodeDiscriminatorUnknown)
	assert.Equal(t, "slider", it.Params["value"])
	assert.Equal(t,
		[]string{"label_selection", "multi_label_selection", "ranking", "rating", "text"},
		it.Params["allowed"])
}

func TestQuestionSettings_ReadSideSkipsRules(t *testing.T) {
	v, err := feedback.QuestionSettingsSchema().Parse(context.Background(), ratingSettings(0, 0))
	require.NoError(t, err)
	assert.Len(t, v.(feedback.RatingQuestionSettings).Options, 2)
}

func TestQuestionCreate(t *testing.T) {
	ctx := context.Background()
	in := map[string]any{
		"name":     "sentiment",
		"title":    "Sentiment",
		"settings": labelSettings("label_selection", 3, nil),
	}
	q, err := feedback.QuestionCreateSchema().Parse(ctx, in)
	require.NoError(t, err)
	assert.Nil(t, q.Required)
	assert.Nil(t, q.Description)
	assert.IsType(t, feedback.LabelSelectionQuestionSettings{}, q.Settings)

	in["name"] = "Bad Name"
	in["settings"] = ratingSettings(1, 1)
	_, err = feedback.QuestionCreateSchema().Parse(ctx, in)
	iss := issuesOf(t, err)
	_, ok := iss.Find("/name", fbskema.CodePattern)
	assert.True(t, ok)
	_, ok = iss.Find("/settings/options", fbskema.CodeUniqueness)
	assert.True(t, ok, "settings rules run inside their own object: %v", iss)
}
