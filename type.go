package schemaobject

import (
	"log/slog"
	"sort"
)

// Options configures a Type. Every hook is optional.
type Options struct {
	// OnBeforeValueSet runs before a coerced value is stored. Returning false
	// drops the write silently.
	OnBeforeValueSet func(o *Object, value any, field string) bool
	// OnValueSet observes a committed write.
	OnValueSet func(o *Object, value any, field string)
	// ToObject and ToJSON post-process the result of the matching
	// serialization. They may mutate result in place and return nil, or
	// return a replacement.
	ToObject func(o *Object, result map[string]any) map[string]any
	ToJSON   func(o *Object, result map[string]any) map[string]any
	// Logger receives debug records for recorded issues and vetoed writes.
	// Nil disables logging.
	Logger *slog.Logger
}

// Type is a schema-aware object constructor produced by Define.
type Type struct {
	schema    Schema
	names     []string
	accessors map[string]*accessor
	opts      Options
}

// Define normalizes shape and returns the Type that constructs instances of
// it. shape is not modified; use NormalizeSchemaInPlace beforehand to observe
// the canonical descriptors.
func Define(shape Shape, opts Options) (*Type, error) {
	s, err := NormalizeSchema(shape)
	if err != nil {
		return nil, err
	}
	t := &Type{
		schema:    s,
		names:     s.Names(),
		accessors: make(map[string]*accessor, len(s)),
		opts:      opts,
	}
	for name, f := range s {
		t.accessors[name] = newAccessor(f)
	}
	return t, nil
}

// MustDefine is Define that panics on error.
func MustDefine(shape Shape, opts Options) *Type {
	t, err := Define(shape, opts)
	if err != nil {
		panic(err)
	}
	return t
}

// New constructs an instance: composite fields get their containers, then
// initial is applied field by field through the regular write path, so
// invalid initial values end up in Errors rather than failing construction.
// Keys that are not fields are ignored.
func (t *Type) New(initial map[string]any) *Object {
	o := &Object{typ: t}
	o.reset()
	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.Set(k, initial[k])
	}
	return o
}

// Field returns the normalized descriptor of name.
func (t *Type) Field(name string) (*Field, bool) {
	f, ok := t.schema[name]
	return f, ok
}

// Names returns the field names in ascending order.
func (t *Type) Names() []string { return append([]string(nil), t.names...) }

// Schema returns the normalized schema. The descriptors are shared with every
// instance and must not be modified.
func (t *Type) Schema() Schema {
	out := make(Schema, len(t.schema))
	for k, f := range t.schema {
		out[k] = f
	}
	return out
}

// Options returns the options the Type was defined with.
func (t *Type) Options() Options { return t.opts }
