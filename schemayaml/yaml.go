// Package schemayaml imports schemaobject shapes from YAML documents.
//
// A field is declared as a kind name, a one-element sequence (a list of that
// item), a mapping without a "type" key (a nested object) or a mapping with a
// "type" key and constraint options:
//
//	name: {type: string, minLength: 1, maxLength: 64, truncate: true}
//	age: {type: number, min: 0}
//	tags: {type: [string], unique: true}
//	address:
//	  city: {type: string, default: Tokyo}
//	createdAt: date
//	nick: {type: alias, target: name}
package schemayaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/reoring/schemaobject"
	"github.com/reoring/schemaobject/internal/engine"
)

// ErrNotMapping is returned when the document root is not a mapping.
var ErrNotMapping = errors.New("schemayaml: schema document must be a mapping")

// Import decodes the first YAML document of data into a Shape.
func Import(data []byte) (schemaobject.Shape, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return schemaobject.Shape{}, nil
		}
		return nil, err
	}
	m := yamlAnyToStringMap(node)
	if m == nil {
		return nil, ErrNotMapping
	}
	return shapeFrom(m, "")
}

// ImportType imports data and defines a Type from it.
func ImportType(data []byte, opts schemaobject.Options) (*schemaobject.Type, error) {
	shape, err := Import(data)
	if err != nil {
		return nil, err
	}
	return schemaobject.Define(shape, opts)
}

func shapeFrom(m map[string]any, path string) (schemaobject.Shape, error) {
	out := make(schemaobject.Shape, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d, err := declFrom(m[k], path+"/"+k)
		if err != nil {
			return nil, err
		}
		out[k] = d
	}
	return out, nil
}

// declFrom converts one YAML value into a schemaobject declaration.
func declFrom(v any, path string) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return schemaobject.Kind(t), nil
	case []any:
		if len(t) == 0 {
			return []any{}, nil
		}
		if len(t) > 1 {
			return nil, fmt.Errorf("schemayaml: %s: list shorthand takes exactly one item type", path)
		}
		item, err := declFrom(t[0], path+"/0")
		if err != nil {
			return nil, err
		}
		return schemaobject.List(item), nil
	case map[string]any:
		if _, ok := t["type"]; ok {
			return fieldFrom(t, path)
		}
		return shapeFrom(t, path)
	}
	return nil, fmt.Errorf("schemayaml: %s: unsupported declaration %T", path, v)
}

func fieldFrom(m map[string]any, path string) (schemaobject.Field, error) {
	var f schemaobject.Field
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := m[k]
		var err error
		switch k {
		case "type":
			f.Type, err = declFrom(v, path)
		case "default":
			f.Default = v
		case "minLength":
			f.MinLength, err = intOpt(v)
		case "maxLength":
			f.MaxLength, err = intOpt(v)
		case "min":
			f.Min, err = numberOpt(v)
		case "max":
			f.Max, err = numberOpt(v)
		case "truncate":
			f.Truncate, err = boolOpt(v)
		case "readOnly":
			f.ReadOnly, err = boolOpt(v)
		case "invisible":
			f.Invisible, err = boolOpt(v)
		case "unique":
			f.Unique, err = boolOpt(v)
		case "target":
			f.Target, err = stringOpt(v)
		case "enum":
			f.Enum, err = enumOpt(v)
		case "pattern", "regex":
			var s string
			if s, err = stringOpt(v); err == nil {
				f.Pattern, err = regexp.Compile(s)
			}
		case "itemType":
			f.ItemType, err = declFrom(v, path+"/itemType")
		default:
			err = errors.New("unknown option")
		}
		if err != nil {
			return f, fmt.Errorf("schemayaml: %s: %s: %w", path, k, err)
		}
	}
	return f, nil
}

func intOpt(v any) (*int, error) {
	n, ok := engine.ToNumber(v)
	if !ok || n != float64(int(n)) {
		return nil, fmt.Errorf("expected an integer, got %v", v)
	}
	return schemaobject.Length(int(n)), nil
}

func numberOpt(v any) (*float64, error) {
	n, ok := engine.ToNumber(v)
	if !ok {
		return nil, fmt.Errorf("expected a number, got %v", v)
	}
	return schemaobject.Bound(n), nil
}

func boolOpt(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expected a boolean, got %v", v)
	}
	return b, nil
}

func stringOpt(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %v", v)
	}
	return s, nil
}

func enumOpt(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %v", v)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, engine.Stringify(it))
	}
	return out, nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
