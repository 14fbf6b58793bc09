package fbskema

import (
	"fmt"
	"strconv"
	"strings"
)

// Ref exposes helpers for refinement rules: presence access and path building.
type Ref interface {
	Presence() PresenceMap
	Root() PathRef
	At(path string) PathRef
}

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

type refImpl struct {
	presence PresenceMap
}

func NewRef(pm PresenceMap) Ref { return &refImpl{presence: pm} }

func (r *refImpl) Presence() PresenceMap { return r.presence }
func (r *refImpl) Root() PathRef         { return pathRef{} }

// At parses an already escaped pointer.
func (r *refImpl) At(path string) PathRef {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p pathRef) with(tok string) pathRef {
	next := make([]string, len(p.parts), len(p.parts)+1)
	copy(next, p.parts)
	return pathRef{parts: append(next, tok)}
}

func (p pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return p.with(pointerEscaper.Replace(name))
}

func (p pathRef) Index(i int) PathRef { return p.with(strconv.Itoa(i)) }

func (p pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Issue builds an Issue at this path. kv is a flat list of param key/value pairs.
func (p pathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) >= 2 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}
