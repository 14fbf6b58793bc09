package fbskema

import (
	"strconv"
	"strings"
)

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Seen reports whether the pointer appeared in the input.
func (pm PresenceMap) Seen(path string) bool { return pm[path]&PresenceSeen != 0 }

// WasNull reports whether the pointer appeared in the input as an explicit null.
func (pm PresenceMap) WasNull(path string) bool { return pm[path]&PresenceWasNull != 0 }

// Decoded carries the parsed value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}

func applyPresenceOptions(pm PresenceMap, popt PresenceOpt) PresenceMap {
	if pm == nil || !popt.Collect {
		return nil
	}
	keep := func(path string) bool {
		if len(popt.Include) > 0 {
			hit := false
			for _, p := range popt.Include {
				if strings.HasPrefix(path, p) {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
		}
		for _, p := range popt.Exclude {
			if strings.HasPrefix(path, p) {
				return false
			}
		}
		return true
	}
	out := make(PresenceMap, len(pm))
	for k, v := range pm {
		if keep(k) {
			out[k] = v
		}
	}
	return out
}

// collectPresenceMapFromValue walks a decoded wire value and marks every
// object key and array element as seen. Nulls are marked as such.
func collectPresenceMapFromValue(v any) PresenceMap {
	pm := PresenceMap{"/": PresenceSeen}
	collectPresenceRecurse(v, "", pm)
	return pm
}

func collectPresenceRecurse(v any, cur string, pm PresenceMap) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			p := JoinPointer(cur, k)
			pm[p] |= PresenceSeen
			if val == nil {
				pm[p] |= PresenceWasNull
			}
			collectPresenceRecurse(val, p, pm)
		}
	case []any:
		for i, val := range t {
			p := cur + "/" + strconv.Itoa(i)
			pm[p] |= PresenceSeen
			if val == nil {
				pm[p] |= PresenceWasNull
			}
			collectPresenceRecurse(val, p, pm)
		}
	}
}

// mergePresence merges wire presence into schema presence. Fields that only
// received a default keep their default-only state.
func mergePresence(schemaPM, wirePM PresenceMap) PresenceMap {
	out := make(PresenceMap, len(schemaPM)+len(wirePM))
	for k, v := range schemaPM {
		out[k] = v
	}
	for k, wv := range wirePM {
		sv := out[k]
		if sv&PresenceDefaultApplied != 0 && sv&(PresenceSeen|PresenceWasNull) == 0 {
			wv &^= PresenceSeen
		}
		out[k] = sv | wv
	}
	return out
}
