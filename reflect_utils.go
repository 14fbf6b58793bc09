package fbskema

import (
	"reflect"
	"strings"
)

// ResolveStructKey resolves the wire key of a struct field.
// Priority: fbskema:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if tag := sf.Tag.Get("fbskema"); tag != "" {
		for _, p := range strings.Split(tag, ",") {
			if name, ok := strings.CutPrefix(strings.TrimSpace(p), "name="); ok {
				return name
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		name, _, _ := strings.Cut(jt, ",")
		if name != "" {
			return name
		}
	}
	return sf.Name
}
