// Package rules holds reusable cross-field rules for typed object schemas.
// Rules read the bound value through accessor funcs and report issues at
// JSON Pointer paths relative to the object.
package rules

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/i18n"
)

// Rule is a typed rule function.
type Rule[T any] = fbskema.Rule[T]

// Number is the ordered numeric kinds accepted by Ordered.
type Number interface {
	~int | ~int64 | ~float64
}

// UniqueValues reports every value that appears more than once in list(v).
// A single uniqueness issue at path names all duplicates, sorted.
func UniqueValues[T any, K cmp.Ordered](path, msgKey string, list func(T) []K) Rule[T] {
	return func(d fbskema.DomainCtx[T], v T) []fbskema.Issue {
		seen := make(map[K]struct{})
		dupSet := make(map[K]struct{})
		for _, k := range list(v) {
			if _, ok := seen[k]; ok {
				dupSet[k] = struct{}{}
				continue
			}
			seen[k] = struct{}{}
		}
		if len(dupSet) == 0 {
			return nil
		}
		dups := make([]K, 0, len(dupSet))
		for k := range dupSet {
			dups = append(dups, k)
		}
		slices.Sort(dups)
		msg := i18n.T(msgKey, i18n.Data("duplicates", joinAny(dups)))
		return []fbskema.Issue{d.Ref.At(path).Issue(fbskema.CodeUniqueness, msg, "duplicates", dups)}
	}
}

// UniqueBy reports each element of items(v) whose key was already taken by
// an earlier element. Issues land on path/<index>/field.
func UniqueBy[T, E any, K comparable](path, field, msgKey string, items func(T) []E, key func(E) K) Rule[T] {
	return func(d fbskema.DomainCtx[T], v T) []fbskema.Issue {
		first := make(map[K]int)
		var out []fbskema.Issue
		for i, e := range items(v) {
			k := key(e)
			j, dup := first[k]
			if !dup {
				first[k] = i
				continue
			}
			shown := fmt.Sprint(k)
			out = append(out, d.Ref.At(path).Index(i).Field(field).Issue(
				fbskema.CodeUniqueness,
				i18n.T(msgKey, i18n.Data(field, shown)),
				"value", shown, "first", j, "dup", i,
			))
		}
		return out
	}
}

// InRange reports each value of values(v) outside [lo, hi]. Issues land on
// path/<index>/field.
func InRange[T any, N Number](path, field, msgKey string, values func(T) []N, lo, hi N) Rule[T] {
	return func(d fbskema.DomainCtx[T], v T) []fbskema.Issue {
		var out []fbskema.Issue
		for i, n := range values(v) {
			if n >= lo && n <= hi {
				continue
			}
			out = append(out, d.Ref.At(path).Index(i).Field(field).Issue(
				fbskema.CodeDomainRange,
				i18n.T(msgKey, i18n.Data("value", n, "min", lo, "max", hi)),
				"value", n, "min", lo, "max", hi,
			))
		}
		return out
	}
}

// Ordered requires lo < hi when bounds returns both. The issue lands on path.
func Ordered[T any, N Number](path string, bounds func(T) (lo, hi *N)) Rule[T] {
	return func(d fbskema.DomainCtx[T], v T) []fbskema.Issue {
		lo, hi := bounds(v)
		if lo == nil || hi == nil || *lo < *hi {
			return nil
		}
		return []fbskema.Issue{d.Ref.At(path).Issue(
			fbskema.CodeDomainRange,
			i18n.T("bounds.min_not_lower", i18n.Data("min", *lo, "max", *hi)),
			"min", *lo, "max", *hi,
		)}
	}
}

// AtMost requires value(v) <= limit(v) when value reports ok.
func AtMost[T any](path, msgKey string, value func(T) (int, bool), limit func(T) int) Rule[T] {
	return func(d fbskema.DomainCtx[T], v T) []fbskema.Issue {
		n, ok := value(v)
		if !ok {
			return nil
		}
		if lim := limit(v); n > lim {
			return []fbskema.Issue{d.Ref.At(path).Issue(
				fbskema.CodeBusinessRule,
				i18n.T(msgKey, i18n.Data("count", lim)),
				"value", n, "max", lim,
			)}
		}
		return nil
	}
}

func joinAny[K any](vals []K) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
