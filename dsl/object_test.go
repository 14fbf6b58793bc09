package dsl_test

import (
	"context"
	"errors"
	"testing"

	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
)

func TestObject_CollectsEveryFieldIssue(t *testing.T) {
	ctx := context.Background()
	obj := g.Object().
		Field("name", g.SchemaOf(g.String().Min(1))).Required().
		Field("title", g.SchemaOf(g.String().Max(3))).Required().
		Field("count", g.SchemaOf(g.Int())).Required().
		MustBuild()

	_, err := obj.Parse(ctx, map[string]any{"name": "", "title": "toolong", "extra": true})
	iss := issuesOf(t, err)
	for _, want := range []struct{ path, code string }{
		{"/name", fbskema.CodeTooShort},
		{"/title", fbskema.CodeTooLong},
		{"/count", fbskema.CodeRequired},
		{"/extra", fbskema.CodeUnknownKey},
	} {
		if _, ok := iss.Find(want.path, want.code); !ok {
			t.Fatalf("missing %s at %s in %v", want.code, want.path, iss)
		}
	}
}

func TestObject_FailFastStopsAtFirst(t *testing.T) {
	ctx := fbskema.WithFailFast(context.Background(), true)
	obj := g.Object().
		Field("a", g.SchemaOf(g.String())).Required().
		Field("b", g.SchemaOf(g.String())).Required().
		MustBuild()
	_, err := obj.Parse(ctx, map[string]any{})
	if iss := issuesOf(t, err); len(iss) != 1 {
		t.Fatalf("want 1 issue, got %v", iss)
	}
}

func TestObject_NullOnNonNullable(t *testing.T) {
	ctx := context.Background()
	obj := g.Object().
		Field("name", g.SchemaOf(g.String())).
		Field("guidelines", g.SchemaOf(g.String()).Nullable()).
		MustBuild()

	_, err := obj.Parse(ctx, map[string]any{"name": nil})
	iss := issuesOf(t, err)
	if _, ok := iss.Find("/name", fbskema.CodeNullNotAllowed); !ok {
		t.Fatalf("want null_not_allowed: %v", iss)
	}

	out, err := obj.Parse(ctx, map[string]any{"guidelines": nil})
	if err != nil {
		t.Fatalf("nullable field: %v", err)
	}
	if v, ok := out["guidelines"]; !ok || v != nil {
		t.Fatalf("null should be kept: %#v", out)
	}
}

func TestObject_DefaultAppliedAndMarked(t *testing.T) {
	ctx := context.Background()
	obj := g.Object().
		Field("name", g.SchemaOf(g.String())).Required().
		Field("allow_extra_metadata", g.SchemaOf(g.Bool())).Default(true).
		MustBuild()

	dm, err := obj.ParseWithMeta(ctx, map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dm.Value["allow_extra_metadata"] != true {
		t.Fatalf("default not applied: %#v", dm.Value)
	}
	if dm.Presence["/allow_extra_metadata"]&fbskema.PresenceDefaultApplied == 0 {
		t.Fatalf("default flag missing: %v", dm.Presence)
	}
	js, _ := obj.JSONSchema()
	if js.Properties["allow_extra_metadata"].Default != true {
		t.Fatalf("default not exported")
	}
}

func TestObject_RefineRunsOnlyAfterCleanFields(t *testing.T) {
	ctx := context.Background()
	calls := 0
	obj := g.Object().
		Field("a", g.SchemaOf(g.Int())).Required().
		Refine("never", func(ctx context.Context, m map[string]any) error {
			calls++
			return errors.New("boom")
		}).
		MustBuild()

	if _, err := obj.Parse(ctx, map[string]any{"a": "x"}); err == nil {
		t.Fatalf("expected field error")
	}
	if calls != 0 {
		t.Fatalf("refine ran on a failing field stage")
	}
	_, err := obj.Parse(ctx, map[string]any{"a": 1})
	iss := issuesOf(t, err)
	if calls != 1 || iss[0].Rule != "never" || iss[0].Code != fbskema.CodeParseError {
		t.Fatalf("refine issue: %+v", iss[0])
	}
}

func TestObject_UnknownPolicies(t *testing.T) {
	ctx := context.Background()
	strip := g.Object().Field("a", g.SchemaOf(g.String())).UnknownStrip().MustBuild()
	out, err := strip.Parse(ctx, map[string]any{"a": "x", "b": 1})
	if err != nil || len(out) != 1 {
		t.Fatalf("strip: %#v err=%v", out, err)
	}

	pass := g.Object().
		Field("a", g.SchemaOf(g.String())).
		Field("extra", g.SchemaOf(g.MapAny())).
		UnknownPassthrough("extra").
		MustBuild()
	out, err = pass.Parse(ctx, map[string]any{"a": "x", "b": 1})
	if err != nil {
		t.Fatalf("passthrough: %v", err)
	}
	extra, _ := out["extra"].(map[string]any)
	if extra["b"] != 1 {
		t.Fatalf("passthrough target: %#v", out)
	}

	if _, err := g.Object().UnknownPassthrough("missing").Build(); err == nil {
		t.Fatalf("undeclared passthrough target should fail to build")
	}
}

func TestObject_NestedPathsAreEscaped(t *testing.T) {
	ctx := context.Background()
	inner := g.Object().Field("v", g.SchemaOf(g.Int())).Required().MustBuild()
	outer := g.Object().Field("a/b", g.SchemaOf(inner)).Required().MustBuild()
	_, err := outer.Parse(ctx, map[string]any{"a/b": map[string]any{}})
	iss := issuesOf(t, err)
	if iss[0].Path != "/a~1b/v" {
		t.Fatalf("path: %s", iss[0].Path)
	}
}

func TestObject_NonObjectInput(t *testing.T) {
	obj := g.Object().MustBuild()
	_, err := obj.Parse(context.Background(), []any{})
	iss := issuesOf(t, err)
	if iss[0].Code != fbskema.CodeInvalidType {
		t.Fatalf("got %+v", iss[0])
	}
}
