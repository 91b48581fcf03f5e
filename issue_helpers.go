package schemaobject

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/schemaobject/i18n"
)

// newIssue creates an Issue attributed to the field with provided code, value and params map.
func newIssue(f *Field, code string, value any, params map[string]any) Issue {
	name := ""
	if f != nil {
		name = f.Name
	}
	return Issue{
		Path:    pointer(name),
		Field:   name,
		Code:    code,
		Message: i18n.T(code, stringParams(params)),
		Value:   value,
		Params:  params,
	}
}

// pointer renders a field name as a JSON Pointer, escaping per RFC6901.
func pointer(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(p, "~", "~0"), "/", "~1"))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// rebaseIssues prefixes child issue paths with the element index of an array field.
func rebaseIssues(field string, index int, child Issues) Issues {
	base := pointer(field, strconv.Itoa(index))
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		if p == "" || p == "/" {
			p = base
		} else {
			p = base + p
		}
		it.Path = p
		if it.Field == "" {
			it.Field = field
		}
		out = append(out, it)
	}
	return out
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}
