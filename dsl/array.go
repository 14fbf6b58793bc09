package dsl

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/i18n"
	js "github.com/reoring/fbskema/jsonschema"
)

// ArraySchema validates a JSON array element by element. Every failing
// element is reported, keyed by its index.
type ArraySchema[E any] struct {
	elem     fbskema.Schema[E]
	minLen   int
	maxLen   int
	parallel bool
}

// Array returns an array schema with the given element schema.
func Array[E any](elem fbskema.Schema[E]) ArraySchema[E] {
	return ArraySchema[E]{elem: elem, minLen: -1, maxLen: -1}
}

// ArrayOf adapts Array(elem) for use as an object field.
func ArrayOf[E any](elem fbskema.Schema[E]) AnyAdapter { return SchemaOf(Array(elem)) }

// Min sets the minimum item count.
func (a ArraySchema[E]) Min(n int) ArraySchema[E] { a.minLen = n; return a }

// Max sets the maximum item count.
func (a ArraySchema[E]) Max(n int) ArraySchema[E] { a.maxLen = n; return a }

// Parallel validates elements concurrently, bounded by fbskema.Parallelism.
// Issues are still ordered by element index. Ignored under fail-fast.
func (a ArraySchema[E]) Parallel() ArraySchema[E] { a.parallel = true; return a }

func (a ArraySchema[E]) lengthIssues(n int) fbskema.Issues {
	var iss fbskema.Issues
	if a.minLen >= 0 && n < a.minLen {
		iss = append(iss, fbskema.Issue{Path: "/", Code: fbskema.CodeTooShort,
			Message: i18n.T(fbskema.CodeTooShort, i18n.Data("min", a.minLen, "unit", "items")),
			Params:  map[string]any{"min": a.minLen, "length": n}})
	}
	if a.maxLen >= 0 && n > a.maxLen {
		iss = append(iss, fbskema.Issue{Path: "/", Code: fbskema.CodeTooLong,
			Message: i18n.T(fbskema.CodeTooLong, i18n.Data("max", a.maxLen, "unit", "items")),
			Params:  map[string]any{"max": a.maxLen, "length": n}})
	}
	return iss
}

// each runs fn for every index and merges the issues in index order.
func (a ArraySchema[E]) each(ctx context.Context, n int, fn func(i int) error) fbskema.Issues {
	errs := make([]error, n)
	if a.parallel && n > 1 && !fbskema.IsFailFast(ctx) {
		var g errgroup.Group
		g.SetLimit(fbskema.Parallelism(ctx))
		for i := range n {
			g.Go(func() error {
				errs[i] = fn(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range n {
			errs[i] = fn(i)
			if errs[i] != nil && fbskema.IsFailFast(ctx) {
				break
			}
		}
	}
	var iss fbskema.Issues
	for i, err := range errs {
		if err != nil {
			iss = fbskema.AppendIssues(iss, fbskema.RebaseIssues("/"+strconv.Itoa(i), fbskema.IssuesFromError("/", err))...)
		}
	}
	return iss
}

func (a ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	var src []any
	switch t := v.(type) {
	case []any:
		src = t
	case []E:
		if err := a.ValidateValue(ctx, t); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, invalidType("array")
	}
	iss := a.lengthIssues(len(src))
	if len(iss) > 0 && fbskema.IsFailFast(ctx) {
		return nil, iss
	}
	out := make([]E, len(src))
	iss = fbskema.AppendIssues(iss, a.each(ctx, len(src), func(i int) error {
		ev, err := a.elem.Parse(ctx, src[i])
		if err == nil {
			out[i] = ev
		}
		return err
	})...)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (a ArraySchema[E]) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[[]E], error) {
	return meta(a.Parse(ctx, v))
}

func (a ArraySchema[E]) ValidateValue(ctx context.Context, v []E) error {
	iss := a.lengthIssues(len(v))
	iss = fbskema.AppendIssues(iss, a.each(ctx, len(v), func(i int) error {
		return a.elem.ValidateValue(ctx, v[i])
	})...)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (a ArraySchema[E]) JSONSchema() (*js.Schema, error) {
	es, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	s := &js.Schema{Type: "array", Items: es}
	if a.minLen >= 0 {
		s.MinItems = js.Int(a.minLen)
	}
	if a.maxLen >= 0 {
		s.MaxItems = js.Int(a.maxLen)
	}
	return s, nil
}
