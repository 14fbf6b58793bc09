package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/fbskema/i18n"
	"github.com/reoring/fbskema/middleware"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(func() { i18n.SetLanguage("en") })
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func issuesIn(t *testing.T, out string) []middleware.IssueJSON {
	t.Helper()
	var body middleware.ErrorBody
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	return body.Issues
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "fbskema", cmd.Use)
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"validate", "jsonschema", "schemas", "metadata-query", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fbskema version: dev")
	assert.Contains(t, out, "Go version: go")
}

func TestSchemas(t *testing.T) {
	out, err := run(t, "", "schemas")
	require.NoError(t, err)
	assert.Contains(t, out, "records_create")
	assert.Contains(t, out, "batch of 1..1000 new records")
	assert.Less(t, strings.Index(out, "dataset_create"), strings.Index(out, "records_create"))
}

func TestJSONSchema(t *testing.T) {
	out, err := run(t, "", "jsonschema", "--schema", "dataset_create")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, out)
	assert.Contains(t, props, "name")

	_, err = run(t, "", "jsonschema", "--schema", "nope")
	require.ErrorContains(t, err, `unknown schema "nope"`)
}

func TestValidate_StdinJSON(t *testing.T) {
	ws := uuid.NewString()
	out, err := run(t, `{"name":"my-dataset","workspace_id":"`+ws+`"}`, "validate", "--schema", "dataset_create")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "my-dataset", got["name"])
	assert.Equal(t, true, got["allow_extra_metadata"])
	assert.Equal(t, ws, got["workspace_id"])
}

func TestValidate_ReportsIssues(t *testing.T) {
	out, err := run(t, `{"name":"-bad","workspace_id":"not-a-uuid"}`, "validate", "-s", "dataset_create", "-")
	require.ErrorIs(t, err, ErrInvalid)
	iss := issuesIn(t, out)
	paths := map[string]string{}
	for _, it := range iss {
		paths[it.Path] = it.Code
	}
	assert.Equal(t, "pattern", paths["/name"])
	assert.Equal(t, "invalid_format", paths["/workspace_id"])
}

func TestValidate_DuplicateKeys(t *testing.T) {
	out, err := run(t, `{"name":"a","name":"b","workspace_id":"`+uuid.NewString()+`"}`, "validate", "-s", "dataset_create")
	require.ErrorIs(t, err, ErrInvalid)
	iss := issuesIn(t, out)
	require.NotEmpty(t, iss)
	assert.Equal(t, "duplicate_key", iss[0].Code)
}

func TestValidate_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "question.yaml")
	content := `name: rating
title: Rate it
settings:
  type: rating
  options:
    - value: 1
    - value: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := run(t, "", "validate", "-s", "question_create", path)
	require.ErrorIs(t, err, ErrInvalid)
	iss := issuesIn(t, out)
	require.Len(t, iss, 1)
	assert.Equal(t, "/settings/options", iss[0].Path)
	assert.Equal(t, "uniqueness", iss[0].Code)
}

func TestValidate_UnknownSchemaAndFormat(t *testing.T) {
	_, err := run(t, "{}", "validate", "-s", "nope")
	require.ErrorContains(t, err, `unknown schema "nope"`)

	_, err = run(t, "{}", "validate", "-s", "dataset_create", "--format", "xml")
	require.ErrorContains(t, err, `unsupported format "xml"`)
}

func TestValidate_ConfigLanguage(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "fbskema.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("language: fr\n"), 0o644))
	_, err := run(t, "{}", "--config", cfg, "validate", "-s", "dataset_create")
	require.ErrorContains(t, err, `unsupported language "fr"`)
}

func TestMetadataQuery(t *testing.T) {
	out, err := run(t, "", "metadata-query", "color:red", "range:1:5")
	require.NoError(t, err)
	var got []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []map[string]string{
		{"name": "color", "value": "red"},
		{"name": "range", "value": "1:5"},
	}, got)

	out, err = run(t, "", "metadata-query", "nocolon")
	require.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, "/metadata/0", issuesIn(t, out)[0].Path)
}

const recordYAML = `fields:
  text: hi
external_id: ext-1
`

func TestValidate_YAMLOverMaxBytes(t *testing.T) {
	t.Setenv("FBSKEMA_MAX_BYTES", "18")
	out, err := run(t, recordYAML, "validate", "-s", "record_create", "--format", "yaml")
	require.ErrorIs(t, err, ErrInvalid)
	iss := issuesIn(t, out)
	require.Len(t, iss, 1)
	assert.Equal(t, "truncated", iss[0].Code)
	assert.NotContains(t, out, "fields")
}

func TestValidate_YAMLZeroMaxBytesMeansUnlimited(t *testing.T) {
	t.Setenv("FBSKEMA_MAX_BYTES", "0")
	out, err := run(t, recordYAML, "validate", "-s", "record_create", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `"ext-1"`)

	out, err = run(t, `{"fields":{"text":"hi"},"external_id":"ext-1"}`, "validate", "-s", "record_create")
	require.NoError(t, err)
	assert.Contains(t, out, `"ext-1"`)
}

func TestValidate_YAMLWithinMaxBytes(t *testing.T) {
	t.Setenv("FBSKEMA_MAX_BYTES", strconv.Itoa(len(recordYAML)))
	out, err := run(t, recordYAML, "validate", "-s", "record_create", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `"ext-1"`)
}
