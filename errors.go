package fbskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeUnknownKey           = "unknown_key"
	CodeDuplicateKey         = "duplicate_key"
	CodeTooSmall             = "too_small"
	CodeTooBig               = "too_big"
	CodeTooShort             = "too_short"
	CodeTooLong              = "too_long"
	CodePattern              = "pattern"
	CodeInvalidEnum          = "invalid_enum"
	CodeInvalidFormat        = "invalid_format"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeNullNotAllowed       = "null_not_allowed"
	CodeParseError           = "parse_error"
	CodeTruncated            = "truncated"
	// Cross-field rules.
	CodeDomainRange  = "domain_range"
	CodeUniqueness   = "uniqueness"
	CodeBusinessRule = "business_rule"
)

// Issue is a single violated constraint.
type Issue struct {
	Path    string // JSON Pointer (for example: /settings/options/2/value).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional remediation hint.
	Cause   error  // Optional underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "value":42})
	// for i18n and clients.
	Params map[string]any
	// Rule records the cross-field rule that produced this issue, if any.
	Rule string
}

// Issues is the aggregate validation report. It implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Find returns the first issue matching path and code.
func (iss Issues) Find(path, code string) (Issue, bool) {
	for _, it := range iss {
		if it.Path == path && it.Code == code {
			return it, true
		}
	}
	return Issue{}, false
}

// AppendIssues appends issues to dst, initializing the slice when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
