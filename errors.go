package schemaobject

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes. The taxonomy is closed: every coercion or validation failure
// recorded on an Object carries exactly one of these.
const (
	CodeTypeMismatch     = "type_mismatch"
	CodeRangeViolation   = "range_violation"
	CodeLengthViolation  = "length_violation"
	CodePatternViolation = "pattern_violation"
	CodeEnumViolation    = "enum_violation"
)

// Definition-time errors returned by Normalize, NormalizeSchema and Define.
var (
	ErrUnknownKind = errors.New("schemaobject: unknown field kind")
	ErrAliasTarget = errors.New("schemaobject: alias field requires a known, non-alias target")
)

// Issue represents a single rejected value.
type Issue struct {
	Path    string // JSON Pointer of the field (for example: /tags/2).
	Field   string // Name of the offending field.
	Code    string // One of the codes listed above.
	Message string
	Value   any // The rejected value as seen by the coercion step.
	// Params carries structured parameters (e.g., {"min":1, "got":0}) for
	// i18n and observability.
	Params map[string]any
}

func (it Issue) Error() string {
	return fmt.Sprintf("%s at %s", it.Code, it.Path)
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. range_violation at /age
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i := range iss {
		out[i] = iss[i].Code
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var it Issue
	if errors.As(err, &it) {
		return Issues{it}, true
	}
	return nil, false
}

// issuesFromErr converts an error into Issues, attributing foreign errors to
// the field as a type mismatch.
func issuesFromErr(f *Field, value any, err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	it := newIssue(f, CodeTypeMismatch, value, nil)
	it.Message = err.Error()
	return Issues{it}
}
