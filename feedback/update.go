package feedback

import (
	"slices"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/i18n"
)

// UpdateSchema is implemented by every partial-update payload. Changes lists
// only the fields present in the payload; an explicit null maps to nil.
// NonNullableFields names the fields that may be omitted but never nulled.
type UpdateSchema interface {
	NonNullableFields() []string
	Changes() map[string]any
}

var (
	_ UpdateSchema = DatasetUpdate{}
	_ UpdateSchema = FieldUpdate{}
	_ UpdateSchema = QuestionUpdate{}
	_ UpdateSchema = MetadataPropertyUpdate{}
	_ UpdateSchema = RecordUpdate{}
	_ UpdateSchema = RecordUpdateWithId{}
)

func putChange[T any](m map[string]any, key string, o fbskema.Optional[T]) {
	if v, ok := o.Change(); ok {
		m[key] = v
	}
}

// MergeUpdate applies the changes of u onto dst. A null on a non-nullable
// field is reported and leaves dst untouched.
func MergeUpdate(dst map[string]any, u UpdateSchema) error {
	changes := u.Changes()
	nonNull := u.NonNullableFields()
	var iss fbskema.Issues
	for _, k := range sortedKeys(changes) {
		if changes[k] == nil && slices.Contains(nonNull, k) {
			iss = fbskema.AppendIssues(iss, fbskema.Issue{
				Path:    fbskema.JoinPointer("", k),
				Code:    fbskema.CodeNullNotAllowed,
				Message: i18n.T(fbskema.CodeNullNotAllowed, nil),
			})
		}
	}
	if len(iss) > 0 {
		return iss
	}
	for k, v := range changes {
		dst[k] = v
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
