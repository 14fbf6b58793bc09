package fbskema

import "context"

// RefineOpt carries rule-time options for typed refinement rules.
type RefineOpt[T any] struct {
	// WhenSeen lists JSON Pointer paths that must all be present for the rule to run.
	WhenSeen []string
	// When is an additional predicate evaluated on the typed value.
	When func(T) bool
}

// DomainCtx is what a typed rule sees: the parse context, the presence
// collected for the object, and a path builder.
type DomainCtx[T any] struct {
	Ctx      context.Context
	Presence PresenceMap
	Ref      Ref
}

// Rule is a typed cross-field rule. It runs only after every field of the
// object parsed cleanly.
type Rule[T any] = func(DomainCtx[T], T) []Issue
