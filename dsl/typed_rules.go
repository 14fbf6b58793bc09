package dsl

import (
	"context"

	fbskema "github.com/reoring/fbskema"
)

type typedRule[T any] struct {
	name string
	fn   fbskema.Rule[T]
	opt  fbskema.RefineOpt[T]
}

func shouldRunRule[T any](v T, pres fbskema.PresenceMap, opt fbskema.RefineOpt[T]) bool {
	for _, p := range opt.WhenSeen {
		if !pres.Seen(p) {
			return false
		}
	}
	return opt.When == nil || opt.When(v)
}

// runTypedRules runs every applicable rule and tags the issues with the rule name.
func runTypedRules[T any](ctx context.Context, v T, pres fbskema.PresenceMap, rules []typedRule[T]) fbskema.Issues {
	var iss fbskema.Issues
	d := fbskema.DomainCtx[T]{Ctx: ctx, Presence: pres, Ref: fbskema.NewRef(pres)}
	for _, tr := range rules {
		if !shouldRunRule(v, pres, tr.opt) {
			continue
		}
		for _, it := range tr.fn(d, v) {
			if it.Rule == "" {
				it.Rule = tr.name
			}
			iss = fbskema.AppendIssues(iss, it)
		}
		if len(iss) > 0 && fbskema.IsFailFast(ctx) {
			return iss
		}
	}
	return iss
}
