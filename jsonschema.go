package schemaobject

import (
	"fmt"

	js "github.com/reoring/schemaobject/jsonschema"
)

// JSONSchema projects the Type into a JSON Schema. Invisible fields are left
// out; aliases reuse their target's schema. A Type that (through array items)
// contains itself is emitted as a plain object at the point of recursion.
func (t *Type) JSONSchema() (*js.Schema, error) {
	return t.jsonSchema(map[*Type]bool{})
}

func (t *Type) jsonSchema(seen map[*Type]bool) (*js.Schema, error) {
	s := &js.Schema{Type: "object", AdditionalProperties: false}
	if seen[t] {
		return s, nil
	}
	seen[t] = true
	defer delete(seen, t)
	s.Properties = make(map[string]*js.Schema, len(t.names))
	for _, name := range t.names {
		f := t.schema[name]
		if f.Invisible {
			continue
		}
		target := f
		if f.Kind == KindAlias {
			target = t.schema[f.Target]
		}
		ps, err := fieldSchema(target, seen)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		ps.ReadOnly = f.ReadOnly
		switch f.Default.(type) {
		case func() any, func(*Object) any:
			// producers have no static value
		default:
			ps.Default = f.Default
		}
		s.Properties[name] = ps
	}
	return s, nil
}

func fieldSchema(f *Field, seen map[*Type]bool) (*js.Schema, error) {
	s := &js.Schema{}
	switch f.Kind {
	case KindString:
		s.Type = "string"
		s.MinLength = f.MinLength
		if !f.Truncate {
			s.MaxLength = f.MaxLength
		}
		s.Enum = f.Enum
		if f.Pattern != nil {
			s.Pattern = f.Pattern.String()
		}
	case KindNumber:
		s.Type = "number"
		s.Minimum = f.Min
		s.Maximum = f.Max
	case KindBoolean:
		s.Type = "boolean"
	case KindDate:
		s.Type = "string"
		s.Format = "date-time"
	case KindArray:
		s.Type = "array"
		s.UniqueItems = f.Unique
		item, err := f.Item()
		if err != nil {
			return nil, err
		}
		if item != nil {
			is, err := fieldSchema(item, seen)
			if err != nil {
				return nil, err
			}
			s.Items = is
		}
	case KindObject:
		if f.ObjectType != nil {
			return f.ObjectType.jsonSchema(seen)
		}
		s.Type = "object"
	}
	return s, nil
}
