package fbskema_test

import (
	"context"
	"strings"
	"testing"

	fbskema "github.com/reoring/fbskema"
	js "github.com/reoring/fbskema/jsonschema"
)

// nameSchema accepts non-empty strings only.
type nameSchema struct{}

func (nameSchema) Parse(ctx context.Context, v any) (string, error) {
	s, _ := v.(string)
	if s == "" {
		return "", fbskema.Issues{{Code: fbskema.CodeInvalidType, Path: "/", Message: "expected string"}}
	}
	return s, nil
}
func (nameSchema) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[string], error) {
	s, err := (nameSchema{}).Parse(ctx, v)
	return fbskema.Decoded[string]{Value: s, Presence: fbskema.PresenceMap{"/": fbskema.PresenceSeen}}, err
}
func (nameSchema) ValidateValue(ctx context.Context, v string) error { return nil }
func (nameSchema) JSONSchema() (*js.Schema, error)                   { return &js.Schema{}, nil }

func TestParseFrom_DelegatesToSchema(t *testing.T) {
	got, err := fbskema.ParseFrom[string](context.Background(), nameSchema{}, fbskema.JSONBytes([]byte(`"my-dataset"`)))
	if err != nil || got != "my-dataset" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := fbskema.ParseFrom[string](context.Background(), nameSchema{}, fbskema.JSONBytes([]byte(`1`))); err == nil {
		t.Fatalf("expected invalid_type for a number")
	}
}

func TestParseFrom_MalformedJSON(t *testing.T) {
	_, err := fbskema.ParseFrom[string](context.Background(), nameSchema{}, fbskema.JSONBytes([]byte(`{"name":`)))
	iss, ok := fbskema.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != fbskema.CodeParseError {
		t.Fatalf("want one parse_error, got %v", err)
	}
}

func TestDecodeWire_NumbersStayExact(t *testing.T) {
	v, err := fbskema.DecodeWire(fbskema.JSONBytes([]byte(`{"score":0.1,"ids":[1,2]}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if got := m["score"]; got != any(jsonNumber("0.1")) {
		t.Fatalf("score: got %#v", got)
	}
	if ids := m["ids"].([]any); len(ids) != 2 {
		t.Fatalf("ids: got %#v", ids)
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := fbskema.Issues{
		{Path: "/name", Code: fbskema.CodeTooLong},
		{Path: "/settings/options", Code: fbskema.CodeUniqueness},
		{Path: "/settings/options/0/value", Code: fbskema.CodeDomainRange},
		{Path: "/title", Code: fbskema.CodeRequired},
	}
	s := iss.Error()
	if !strings.HasPrefix(s, "too_long at /name; uniqueness at /settings/options") {
		t.Fatalf("unexpected summary %q", s)
	}
	if !strings.HasSuffix(s, "(total 4)") {
		t.Fatalf("summary should report the total, got %q", s)
	}
	if _, ok := iss.Find("/title", fbskema.CodeRequired); !ok {
		t.Fatalf("Find missed /title")
	}
	if _, ok := iss.Find("/title", fbskema.CodeTooLong); ok {
		t.Fatalf("Find matched on path alone")
	}
}

func TestContextOptions(t *testing.T) {
	ctx := context.Background()
	if fbskema.IsFailFast(ctx) {
		t.Fatalf("fail-fast should be off by default")
	}
	if fbskema.Parallelism(ctx) < 1 {
		t.Fatalf("default parallelism must be positive")
	}
	ctx = fbskema.WithParallelism(fbskema.WithFailFast(ctx, true), 3)
	if !fbskema.IsFailFast(ctx) || fbskema.Parallelism(ctx) != 3 {
		t.Fatalf("context options not applied")
	}
}
