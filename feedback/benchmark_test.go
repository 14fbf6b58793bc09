package feedback_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/feedback"
)

// recordsBatchJSON returns a records_create payload with n records, each
// carrying two submitted responses and one suggestion.
func recordsBatchJSON(n int) []byte {
	var buf bytes.Buffer
	buf.Grow(n * 512)
	buf.WriteString(`{"items":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"fields":{"text":"record %d"},"metadata":{"split":"train","n":%d},"external_id":"ext-%d",`, i, i, i)
		buf.WriteString(`"responses":[`)
		for j := 0; j < 2; j++ {
			if j > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, `{"values":{"label":{"value":"positive"}},"status":"submitted","user_id":"%s"}`, uuid.NewString())
		}
		fmt.Fprintf(&buf, `],"suggestions":[{"question_id":"%s","type":"model","score":0.75,"value":"positive","agent":"bench"}]}`, uuid.NewString())
	}
	buf.WriteString(`]}`)
	return buf.Bytes()
}

func benchmarkRecordsCreate(b *testing.B, parallelism int) {
	ctx := context.Background()
	s := feedback.RecordsCreateSchema()
	data := recordsBatchJSON(feedback.RecordsCreateMaxItems)
	opt := fbskema.ParseOpt{Parallelism: parallelism}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fbskema.ParseFrom(ctx, s, fbskema.JSONBytes(data), opt); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_RecordsCreate_1000_Serial(b *testing.B)   { benchmarkRecordsCreate(b, 1) }
func Benchmark_RecordsCreate_1000_Parallel(b *testing.B) { benchmarkRecordsCreate(b, 0) }

func Benchmark_QuestionSettings_Rating(b *testing.B) {
	ctx := context.Background()
	s := feedback.QuestionSettingsCreateSchema()
	data := []byte(`{"type":"rating","options":[{"value":1},{"value":2},{"value":3},{"value":4},{"value":5},{"value":6},{"value":7},{"value":8},{"value":9},{"value":10}]}`)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fbskema.ParseFrom(ctx, s, fbskema.JSONBytes(data)); err != nil {
			b.Fatal(err)
		}
	}
}
