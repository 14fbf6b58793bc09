package rules

import (
	"context"
	"reflect"
	"testing"

	fbskema "github.com/reoring/fbskema"
)

type options struct {
	Values  []int
	Visible *int
	Min     *float64
	Max     *float64
	Users   []string
}

func dctx() fbskema.DomainCtx[options] {
	return fbskema.DomainCtx[options]{Ctx: context.Background(), Ref: fbskema.NewRef(nil)}
}

func values(o options) []int { return o.Values }

func TestUniqueValues_NamesAllDuplicatesSorted(t *testing.T) {
	r := UniqueValues("/options", "options.duplicates", values)
	iss := r(dctx(), options{Values: []int{3, 1, 3, 2, 1, 1}})
	if len(iss) != 1 {
		t.Fatalf("want 1 issue, got %v", iss)
	}
	if iss[0].Path != "/options" || iss[0].Code != fbskema.CodeUniqueness {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	if got := iss[0].Params["duplicates"]; !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("duplicates = %v", got)
	}
	if iss[0].Message != "Option values must be unique, found duplicates: 1, 3" {
		t.Fatalf("message = %q", iss[0].Message)
	}
}

func TestUniqueValues_NoDuplicates(t *testing.T) {
	r := UniqueValues("/options", "options.duplicates", values)
	if iss := r(dctx(), options{Values: []int{1, 2}}); len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestUniqueBy_ReportsLaterOccurrences(t *testing.T) {
	r := UniqueBy("/responses", "user_id", "responses.duplicate_user",
		func(o options) []string { return o.Users }, func(s string) string { return s })
	iss := r(dctx(), options{Users: []string{"u1", "u2", "u1"}})
	if len(iss) != 1 {
		t.Fatalf("want 1 issue, got %v", iss)
	}
	if iss[0].Path != "/responses/2/user_id" {
		t.Fatalf("path = %s", iss[0].Path)
	}
	if iss[0].Params["first"] != 0 || iss[0].Params["value"] != "u1" {
		t.Fatalf("params = %v", iss[0].Params)
	}
	if iss[0].Message != "Responses contains several responses for the same user_id: 'u1'" {
		t.Fatalf("message = %q", iss[0].Message)
	}
}

func TestInRange_OneIssuePerOffender(t *testing.T) {
	r := InRange("/options", "value", "options.out_of_range", values, 1, 10)
	iss := r(dctx(), options{Values: []int{0, 5, 11}})
	if len(iss) != 2 {
		t.Fatalf("want 2 issues, got %v", iss)
	}
	if iss[0].Path != "/options/0/value" || iss[1].Path != "/options/2/value" {
		t.Fatalf("paths: %s %s", iss[0].Path, iss[1].Path)
	}
	if iss[0].Message != "Option value 0 out of range [1, 10]" {
		t.Fatalf("message = %q", iss[0].Message)
	}
}

func TestOrdered(t *testing.T) {
	r := Ordered("/min", func(o options) (*float64, *float64) { return o.Min, o.Max })
	f := func(x float64) *float64 { return &x }
	cases := []struct {
		name     string
		min, max *float64
		wantErr  bool
	}{
		{"equal", f(5), f(5), true},
		{"greater", f(6), f(5), true},
		{"lower", f(5), f(6), false},
		{"no min", nil, f(5), false},
		{"no max", f(5), nil, false},
	}
	for _, tc := range cases {
		iss := r(dctx(), options{Min: tc.min, Max: tc.max})
		if (len(iss) > 0) != tc.wantErr {
			t.Fatalf("%s: issues=%v", tc.name, iss)
		}
		if tc.wantErr && (iss[0].Path != "/min" || iss[0].Code != fbskema.CodeDomainRange) {
			t.Fatalf("%s: issue=%+v", tc.name, iss[0])
		}
	}
}

func TestOrdered_Message(t *testing.T) {
	r := Ordered("/min", func(o options) (*float64, *float64) { return o.Min, o.Max })
	lo, hi := 5.0, 5.0
	iss := r(dctx(), options{Min: &lo, Max: &hi})
	if iss[0].Message != "'min' (5) must be lower than 'max' (5)" {
		t.Fatalf("message = %q", iss[0].Message)
	}
}

func TestAtMost(t *testing.T) {
	r := AtMost("/visible_options", "visible_options.too_big",
		func(o options) (int, bool) {
			if o.Visible == nil {
				return 0, false
			}
			return *o.Visible, true
		},
		func(o options) int { return len(o.Values) })
	six, five := 6, 5
	base := options{Values: []int{1, 2, 3, 4, 5}}

	base.Visible = &six
	iss := r(dctx(), base)
	if len(iss) != 1 || iss[0].Code != fbskema.CodeBusinessRule || iss[0].Params["max"] != 5 {
		t.Fatalf("want business_rule, got %v", iss)
	}
	base.Visible = &five
	if iss := r(dctx(), base); len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
	base.Visible = nil
	if iss := r(dctx(), base); len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
}
