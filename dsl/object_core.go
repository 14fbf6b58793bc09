package dsl

import (
	"context"
	"sort"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/i18n"
	js "github.com/reoring/fbskema/jsonschema"
)

type objectSchema struct {
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy fbskema.UnknownPolicy
	unknownTarget string
	refines       []objRefine
	typedRulesAny []any
	sortedKeys    []string
}

var _ fbskema.Schema[map[string]any] = (*objectSchema)(nil)

type objRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

func expectedObject() fbskema.Issues { return invalidType("object") }

// parseField parses a present value and records presence flags. Child issue
// paths are rebased under the field.
func (o *objectSchema) parseField(ctx context.Context, k string, ad AnyAdapter, val any, pm fbskema.PresenceMap) (any, fbskema.Issues) {
	p := fbskema.JoinPointer("", k)
	pm[p] |= fbskema.PresenceSeen
	if val == nil {
		pm[p] |= fbskema.PresenceWasNull
		if ad.nullable {
			return nil, nil
		}
		return nil, fbskema.Issues{{Path: p, Code: fbskema.CodeNullNotAllowed, Message: i18n.T(fbskema.CodeNullNotAllowed, nil)}}
	}
	parsed, err := ad.parse(ctx, val)
	if err != nil {
		return nil, fbskema.RebaseIssues(p, fbskema.IssuesFromError("/", err))
	}
	return parsed, nil
}

// collectKnown parses declared fields in key order, applies defaults, and
// reports missing required fields. All field issues are collected.
func (o *objectSchema) collectKnown(ctx context.Context, src map[string]any, pm fbskema.PresenceMap) (map[string]any, fbskema.Issues) {
	out := make(map[string]any, len(src))
	var iss fbskema.Issues
	for _, k := range o.sortedKeys {
		ad := o.fields[k]
		if val, exists := src[k]; exists {
			parsed, fi := o.parseField(ctx, k, ad, val, pm)
			if len(fi) > 0 {
				iss = fbskema.AppendIssues(iss, fi...)
				if fbskema.IsFailFast(ctx) {
					return out, iss
				}
				continue
			}
			out[k] = parsed
			continue
		}
		if ad.applyDefault != nil {
			dv, err := ad.applyDefault(ctx)
			if err != nil {
				iss = fbskema.AppendIssues(iss, fbskema.RebaseIssues(fbskema.JoinPointer("", k), fbskema.IssuesFromError("/", err))...)
				continue
			}
			pm[fbskema.JoinPointer("", k)] |= fbskema.PresenceDefaultApplied
			out[k] = dv
			continue
		}
		if _, req := o.required[k]; req {
			iss = fbskema.AppendIssues(iss, fbskema.Issue{Path: fbskema.JoinPointer("", k), Code: fbskema.CodeRequired, Message: i18n.T(fbskema.CodeRequired, nil)})
			if fbskema.IsFailFast(ctx) {
				return out, iss
			}
		}
	}
	return out, iss
}

// collectUnknown applies the unknown-key policy; passthrough writes into out.
func (o *objectSchema) collectUnknown(src map[string]any, out map[string]any) fbskema.Issues {
	var unknown []string
	for k := range src {
		if _, known := o.fields[k]; !known {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	var iss fbskema.Issues
	for _, k := range unknown {
		switch o.unknownPolicy {
		case fbskema.UnknownStrict:
			iss = fbskema.AppendIssues(iss, fbskema.Issue{Path: fbskema.JoinPointer("", k), Code: fbskema.CodeUnknownKey, Message: i18n.T(fbskema.CodeUnknownKey, nil)})
		case fbskema.UnknownPassthrough:
			extra, _ := out[o.unknownTarget].(map[string]any)
			if extra == nil {
				extra = map[string]any{}
			}
			extra[k] = src[k]
			out[o.unknownTarget] = extra
		}
	}
	return iss
}

// parse is the two-stage pipeline: fields first, then object rules when the
// field stage is clean.
func (o *objectSchema) parse(ctx context.Context, v any) (map[string]any, fbskema.PresenceMap, error) {
	pm := fbskema.PresenceMap{"/": fbskema.PresenceSeen}
	src, ok := v.(map[string]any)
	if !ok {
		return nil, pm, expectedObject()
	}
	out, iss := o.collectKnown(ctx, src, pm)
	if !(fbskema.IsFailFast(ctx) && len(iss) > 0) {
		iss = fbskema.AppendIssues(iss, o.collectUnknown(src, out)...)
	}
	if len(iss) > 0 {
		return nil, pm, iss
	}
	if err := fbskema.ApplyRefine(ctx, out, o); err != nil {
		return nil, pm, err
	}
	return out, pm, nil
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, _, err := o.parse(ctx, v)
	return m, err
}

func (o *objectSchema) ParseWithMeta(ctx context.Context, v any) (fbskema.Decoded[map[string]any], error) {
	m, pm, err := o.parse(ctx, v)
	return fbskema.Decoded[map[string]any]{Value: m, Presence: pm}, err
}

func (o *objectSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	var iss fbskema.Issues
	for _, k := range o.sortedKeys {
		ad := o.fields[k]
		p := fbskema.JoinPointer("", k)
		val, ok := v[k]
		switch {
		case !ok:
			if _, req := o.required[k]; req {
				iss = fbskema.AppendIssues(iss, fbskema.Issue{Path: p, Code: fbskema.CodeRequired, Message: i18n.T(fbskema.CodeRequired, nil)})
			}
		case val == nil:
			if !ad.nullable {
				iss = fbskema.AppendIssues(iss, fbskema.Issue{Path: p, Code: fbskema.CodeNullNotAllowed, Message: i18n.T(fbskema.CodeNullNotAllowed, nil)})
			}
		case ad.validateValue != nil:
			if err := ad.validateValue(ctx, val); err != nil {
				iss = fbskema.AppendIssues(iss, fbskema.RebaseIssues(p, fbskema.IssuesFromError("/", err))...)
			}
		}
		if len(iss) > 0 && fbskema.IsFailFast(ctx) {
			return iss
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.fields))
	for k, ad := range o.fields {
		props[k] = &js.Schema{}
		if ad.jsonSchema == nil {
			continue
		}
		ps, err := ad.jsonSchema()
		if err != nil {
			return nil, err
		}
		if ps != nil {
			props[k] = ps
		}
	}
	req := make([]string, 0, len(o.required))
	for k := range o.required {
		req = append(req, k)
	}
	sort.Strings(req)
	var additional any
	switch o.unknownPolicy {
	case fbskema.UnknownStrict:
		additional = false
	default:
		additional = true
	}
	return &js.Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}

// Refine implements fbskema.Refiner using builder-registered hooks.
func (o *objectSchema) Refine(ctx context.Context, v map[string]any) error {
	var iss fbskema.Issues
	for _, r := range o.refines {
		if err := r.fn(ctx, v); err != nil {
			for _, it := range fbskema.IssuesFromError("/", err) {
				if it.Rule == "" {
					it.Rule = r.name
				}
				iss = fbskema.AppendIssues(iss, it)
			}
			if fbskema.IsFailFast(ctx) {
				return iss
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
