package codec

import (
	"context"
	"testing"
	"time"

	fbskema "github.com/reoring/fbskema"
)

func TestTimeRFC3339_Roundtrip(t *testing.T) {
	c := TimeRFC3339()
	ctx := context.Background()

	in := "2025-01-01T00:00:00Z"
	got, err := c.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	out, err := c.Encode(ctx, got)
	if err != nil || out != in {
		t.Fatalf("encode: %q err=%v", out, err)
	}
}

func TestTimeRFC3339_EncodeNormalizesToUTC(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("JST", 9*3600)
	ts := time.Date(2025, 1, 1, 9, 0, 0, 500_000_000, loc)
	out, err := TimeRFC3339().Encode(ctx, ts)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != "2025-01-01T00:00:00.5Z" {
		t.Fatalf("got %q", out)
	}
}

func TestTimeRFC3339_DecodeRejectsGarbage(t *testing.T) {
	_, err := TimeRFC3339().Decode(context.Background(), "yesterday")
	iss, ok := fbskema.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != fbskema.CodeInvalidFormat {
		t.Fatalf("expected invalid_format, got %v", err)
	}
	if iss[0].Params["format"] != "date-time" {
		t.Fatalf("format param: %v", iss[0].Params)
	}
}

func TestTimeRFC3339_InRejectsNonString(t *testing.T) {
	_, err := TimeRFC3339().In().Parse(context.Background(), 42)
	iss, ok := fbskema.AsIssues(err)
	if !ok || iss[0].Code != fbskema.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestTimeRFC3339_JSONSchemaFormat(t *testing.T) {
	s, err := TimeRFC3339().Out().JSONSchema()
	if err != nil || s.Type != "string" || s.Format != "date-time" {
		t.Fatalf("schema: %+v err=%v", s, err)
	}
}

func TestTimeRFC3339_NaiveTimestampIsUTC(t *testing.T) {
	got, err := TimeRFC3339().Decode(context.Background(), "2023-10-05T12:30:45.123456")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	want := time.Date(2023, 10, 5, 12, 30, 45, 123456000, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("got %v want %v", got, want)
	}
}
