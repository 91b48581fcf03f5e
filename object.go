package schemaobject

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/reoring/schemaobject/codec"
	"github.com/reoring/schemaobject/internal/engine"
)

// ErrUntyped is returned when decoding into an Object that was not built by a Type.
var ErrUntyped = errors.New("schemaobject: object has no type")

// Object is an instance of a Type. Reads and writes never fail: coercion
// failures are appended to the error log, which is inspected with Errors.
//
// An Object is not safe for concurrent use.
type Object struct {
	typ   *Type
	store map[string]any
	errs  Issues
}

// StorageSerializer is implemented by values that render themselves for
// ToObject.
type StorageSerializer interface {
	ToObject() map[string]any
}

// InterchangeSerializer is implemented by values that render themselves for
// ToJSON.
type InterchangeSerializer interface {
	ToJSON() map[string]any
}

// Type returns the Type that built the Object.
func (o *Object) Type() *Type { return o.typ }

// Get reads a field: the stored value, or its coerced default when nothing is
// stored. Unknown names read as nil.
func (o *Object) Get(name string) any {
	if o.typ == nil {
		return nil
	}
	a, ok := o.typ.accessors[name]
	if !ok {
		return nil
	}
	r := a.get(o)
	o.record(r.issues)
	return r.value
}

// Set coerces v and stores it under name. Rejected values are recorded in
// Errors and leave the stored value unchanged. Unknown names are ignored.
func (o *Object) Set(name string, v any) {
	if o.typ == nil {
		return
	}
	a, ok := o.typ.accessors[name]
	if !ok {
		return
	}
	r := a.set(o, v)
	o.record(r.issues)
}

// Raw returns the stored value of name without applying defaults.
func (o *Object) Raw(name string) (any, bool) {
	v, ok := o.store[name]
	return v, ok
}

// Array returns the Array of an array field, or nil.
func (o *Object) Array(name string) *Array {
	a, _ := o.Get(name).(*Array)
	return a
}

// Object returns the nested instance of an object field, or nil.
func (o *Object) Object(name string) *Object {
	n, _ := o.Get(name).(*Object)
	return n
}

// Clear empties the value store. Fields with defaults read their defaults
// again; composite fields read nil until they are assigned.
func (o *Object) Clear() { o.store = map[string]any{} }

// reset empties the value store and gives composite fields fresh containers,
// leaving the instance as New(nil) would.
func (o *Object) reset() {
	o.store = map[string]any{}
	for _, name := range o.typ.names {
		if a := o.typ.accessors[name]; a.init != nil {
			a.init(o)
		}
	}
}

// Errors returns a copy of the error log.
func (o *Object) Errors() Issues {
	if len(o.errs) == 0 {
		return nil
	}
	return append(Issues(nil), o.errs...)
}

// ClearErrors empties the error log.
func (o *Object) ClearErrors() { o.errs = nil }

// write is the storage path shared by accessors: the before-set veto, alias
// redirection, the store itself and the after-set hook.
func (o *Object) write(f *Field, v any) result {
	opts := o.typ.opts
	if opts.OnBeforeValueSet != nil && !opts.OnBeforeValueSet(o, v, f.Name) {
		if opts.Logger != nil {
			opts.Logger.Debug("schemaobject: write vetoed", slog.String("field", f.Name))
		}
		return result{}
	}
	if f.Kind == KindAlias {
		return o.typ.accessors[f.Target].set(o, v)
	}
	o.store[f.Name] = v
	if opts.OnValueSet != nil {
		opts.OnValueSet(o, v, f.Name)
	}
	return result{}
}

func (o *Object) record(iss Issues) {
	if len(iss) == 0 {
		return
	}
	o.errs = AppendIssues(o.errs, iss...)
	if l := o.typ.opts.Logger; l != nil {
		for _, it := range iss {
			l.Debug("schemaobject: issue recorded",
				slog.String("field", it.Field),
				slog.String("path", it.Path),
				slog.String("code", it.Code))
		}
	}
}

// entries lists the stored values in field order.
func (o *Object) entries() ([]string, []any) {
	keys := make([]string, 0, len(o.store))
	for _, name := range o.typ.names {
		if _, ok := o.store[name]; ok {
			keys = append(keys, name)
		}
	}
	vals := make([]any, len(keys))
	for i, k := range keys {
		vals[i] = o.store[k]
	}
	return keys, vals
}

func (o *Object) values() []any {
	_, vals := o.entries()
	return vals
}

type serialMode int

const (
	modeStorage serialMode = iota
	modeInterchange
)

// ToObject serializes the Object for storage: nested instances become maps,
// dates stay time.Time.
func (o *Object) ToObject() map[string]any { return o.serialize(modeStorage) }

// ToJSON serializes the Object for interchange: nested instances use their
// own ToJSON and dates become RFC3339 strings.
func (o *Object) ToJSON() map[string]any { return o.serialize(modeInterchange) }

func (o *Object) serialize(mode serialMode) map[string]any {
	if o.typ == nil {
		return nil
	}
	ret := make(map[string]any, len(o.typ.names))
	for _, name := range o.typ.names {
		f := o.typ.schema[name]
		if f.Invisible {
			continue
		}
		v := o.Get(name)
		if v == nil && !o.defined(f) {
			continue
		}
		kind := f.Kind
		if kind == KindAlias {
			kind = o.typ.schema[f.Target].Kind
		}
		switch kind {
		case KindArray:
			switch a := v.(type) {
			case *Array:
				ret[name] = a.Values()
			default:
				if engine.IsSequence(v) {
					ret[name] = engine.Elements(v)
				} else {
					ret[name] = v
				}
			}
		case KindObject:
			ret[name] = serializeNested(v, mode)
		case KindDate:
			ret[name] = serializeDate(v, mode)
		default:
			ret[name] = v
		}
	}
	hook := o.typ.opts.ToObject
	if mode == modeInterchange {
		hook = o.typ.opts.ToJSON
	}
	if hook != nil {
		if replaced := hook(o, ret); replaced != nil {
			ret = replaced
		}
	}
	return ret
}

// defined reports whether a value, possibly nil, is stored for the field.
func (o *Object) defined(f *Field) bool {
	key := f.Name
	if f.Kind == KindAlias {
		key = f.Target
	}
	_, ok := o.store[key]
	return ok
}

func serializeNested(v any, mode serialMode) any {
	switch mode {
	case modeStorage:
		if s, ok := v.(StorageSerializer); ok && !engine.IsNil(v) {
			return s.ToObject()
		}
	case modeInterchange:
		if s, ok := v.(InterchangeSerializer); ok && !engine.IsNil(v) {
			return s.ToJSON()
		}
	}
	if m, ok := v.(map[string]any); ok {
		return cloneDefault(m)
	}
	return v
}

func serializeDate(v any, mode serialMode) any {
	var t time.Time
	switch d := v.(type) {
	case time.Time:
		t = d
	case *time.Time:
		if d == nil {
			return nil
		}
		t = *d
	default:
		return v
	}
	if mode == modeInterchange {
		return codec.FormatTime(t)
	}
	return t
}

// MarshalJSON encodes ToJSON.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o.typ == nil {
		return nil, ErrUntyped
	}
	return codec.MarshalJSON(o.ToJSON())
}

// UnmarshalJSON assigns every member of a JSON object through the write
// path. Rejected members are recorded in Errors; only malformed JSON or a
// non-object document returns an error.
func (o *Object) UnmarshalJSON(b []byte) error {
	if o.typ == nil {
		return ErrUntyped
	}
	v, err := codec.DecodeJSON(b)
	if err != nil {
		return err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return errors.New("schemaobject: JSON document is not an object")
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return nil
}

// MarshalYAML renders ToJSON for gopkg.in/yaml.v3.
func (o *Object) MarshalYAML() (any, error) {
	if o.typ == nil {
		return nil, ErrUntyped
	}
	return o.ToJSON(), nil
}
