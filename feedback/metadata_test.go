package feedback_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/feedback"
)

func TestIntegerMetadataBounds(t *testing.T) {
	ctx := context.Background()
	s := feedback.MetadataPropertySettingsCreateSchema()

	_, err := s.Parse(ctx, map[string]any{"type": "integer", "min": 5, "max": 5})
	it := requireIssue(t, err, "/min", fbskema.CodeDomainRange)
	assert.Equal(t, "'min' (5) must be lower than 'max' (5)", it.Message)
	assert.Equal(t, "integer", it.Params["variant"])

	v, err := s.Parse(ctx, map[string]any{"type": "integer", "min": 5, "max": 6})
	require.NoError(t, err)
	p := v.(feedback.IntegerMetadataProperty)
	require.NotNil(t, p.Min)
	require.NotNil(t, p.Max)
	assert.Equal(t, 5, *p.Min)
	assert.Equal(t, 6, *p.Max)

	v, err = s.Parse(ctx, map[string]any{"type": "integer", "min": nil, "max": 5})
	require.NoError(t, err)
	assert.Nil(t, v.(feedback.IntegerMetadataProperty).Min)

	_, err = s.Parse(ctx, map[string]any{"type": "integer", "min": 1.5})
	requireIssue(t, err, "/min", fbskema.CodeInvalidType)
}

func TestFloatMetadataBounds(t *testing.T) {
	ctx := context.Background()
	s := feedback.MetadataPropertySettingsCreateSchema()

	_, err := s.Parse(ctx, map[string]any{"type": "float", "min": 0.5, "max": 0.25})
	requireIssue(t, err, "/min", fbskema.CodeDomainRange)

	v, err := s.Parse(ctx, map[string]any{"type": "float", "min": 0.25, "max": 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, *v.(feedback.FloatMetadataProperty).Max)
}

func TestTermsMetadataValues(t *testing.T) {
	ctx := context.Background()
	s := feedback.MetadataPropertySettingsCreateSchema()

	v, err := s.Parse(ctx, map[string]any{"type": "terms"})
	require.NoError(t, err)
	assert.Nil(t, v.(feedback.TermsMetadataProperty).Values)

	_, err = s.Parse(ctx, map[string]any{"type": "terms", "values": []any{}})
	requireIssue(t, err, "/values", fbskema.CodeTooShort)

	many := make([]any, 251)
	for i := range many {
		many[i] = "v"
	}
	_, err = s.Parse(ctx, map[string]any{"type": "terms", "values": many})
	requireIssue(t, err, "/values", fbskema.CodeTooLong)
}

func TestMetadataPropertyCreate_Defaults(t *testing.T) {
	ctx := context.Background()
	mp, err := feedback.MetadataPropertyCreateSchema().Parse(ctx, map[string]any{
		"name":     "color",
		"title":    "Color",
		"settings": map[string]any{"type": "terms", "values": []any{"red", "blue"}},
	})
	require.NoError(t, err)
	assert.True(t, mp.VisibleForAnnotators)
	assert.Equal(t, feedback.TermsMetadataProperty{Type: feedback.MetadataPropertyTypeTerms, Values: []string{"red", "blue"}}, mp.Settings)

	_, err = feedback.MetadataPropertyCreateSchema().Parse(ctx, map[string]any{
		"name":     "color",
		"title":    "Color",
		"settings": map[string]any{"type": "vector"},
	})
	requireIssue(t, err, "/settings/type", fbskema.CodeDiscriminatorUnknown)
}
