package schemaobject

import (
	"github.com/reoring/schemaobject/internal/engine"
)

// result is what an accessor hands back to the Object: a value and the issues
// to append to the Object's error log.
type result struct {
	value  any
	issues Issues
}

// accessor is the read/write pair of one field. Accessors are built once per
// Type and shared by all of its instances.
type accessor struct {
	field *Field
	get   func(o *Object) result
	set   func(o *Object, v any) result
	init  func(o *Object)
}

func newAccessor(f *Field) *accessor {
	a := &accessor{field: f}
	a.get = func(o *Object) result { return readField(o, f) }
	a.set = func(o *Object, v any) result { return writeField(o, f, v) }
	if f.Kind != KindAlias {
		a.init = func(o *Object) { materialize(o, f) }
	}
	return a
}

// readField returns the stored value, or the coerced default when nothing is
// stored. Defaults are recomputed on every read and never stored.
func readField(o *Object, f *Field) result {
	key := f.Name
	if f.Kind == KindAlias {
		key = f.Target
	}
	if v, ok := o.store[key]; ok {
		return result{value: v}
	}
	if f.Default != nil {
		raw := resolveDefault(o, f.Default)
		v, err := typecast(o, raw, nil, f)
		if err != nil {
			// a rejected default reads as the uncoerced value
			return result{value: raw, issues: issuesFromErr(f, raw, err)}
		}
		return result{value: v}
	}
	if f.Kind == KindAlias {
		return o.typ.accessors[f.Target].get(o)
	}
	return result{}
}

// writeField coerces v and hands it to the write path. Read-only fields
// ignore writes; rejected values leave storage untouched.
func writeField(o *Object, f *Field, v any) result {
	if f.ReadOnly {
		return result{}
	}
	if f.Kind == KindAlias {
		if f.Transform != nil {
			v = f.Transform(v, o.store[f.Target], f)
		}
		return o.write(f, v)
	}
	cv, err := typecast(o, v, o.store[f.Name], f)
	if err != nil {
		iss := issuesFromErr(f, v, err)
		// Arrays are refilled in place, so the accepted elements are
		// already visible; commit the container itself.
		if f.Kind != KindArray || cv == nil {
			return result{issues: iss}
		}
		r := o.write(f, cv)
		r.issues = AppendIssues(iss, r.issues...)
		return r
	}
	return o.write(f, cv)
}

// materialize gives composite fields their initial container before any
// caller-supplied value is applied.
func materialize(o *Object, f *Field) {
	var v any
	switch f.Kind {
	case KindObject:
		switch {
		case f.Default != nil && f.ObjectType != nil:
			// same container a read of the default yields after Clear
			v, _ = castObject(cloneDefault(resolveDefault(o, f.Default)), nil, f)
		case f.Default != nil:
			v = cloneDefault(resolveDefault(o, f.Default))
		case f.ObjectType != nil:
			v = f.ObjectType.New(nil)
		default:
			v = map[string]any{}
		}
	case KindArray:
		v = NewArray(o, f)
	default:
		return
	}
	o.write(f, v)
}

func resolveDefault(o *Object, d any) any {
	switch fn := d.(type) {
	case func() any:
		return fn()
	case func(*Object) any:
		return fn(o)
	}
	return d
}

// cloneDefault shallow-copies map and slice defaults so instances never share
// a mutable default container.
func cloneDefault(v any) any {
	switch d := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(d))
		for k, e := range d {
			out[k] = e
		}
		return out
	case []any:
		return append([]any(nil), d...)
	}
	if engine.IsSequence(v) {
		return engine.Elements(v)
	}
	return v
}
