package schemaobject

import (
	"encoding/json"
	"math"
	"time"
	"unicode/utf8"

	"github.com/reoring/schemaobject/codec"
	"github.com/reoring/schemaobject/internal/engine"
)

// maxDateMillis bounds epoch offsets to the representable calendar range
// (±100,000,000 days).
const maxDateMillis = 8.64e15

// Typecast coerces value to the kind described by f and validates it against
// f's constraints. previous is the value currently stored for the field; array
// and object kinds reuse it so that the container identity survives
// reassignment. A failed coercion returns Issues.
func Typecast(value, previous any, f *Field) (any, error) {
	return typecast(nil, value, previous, f)
}

// typecast is Typecast with the owning instance, which becomes the owner of
// Arrays created along the way.
func typecast(o *Object, value, previous any, f *Field) (any, error) {
	if f.Transform != nil {
		value = f.Transform(value, previous, f)
	}
	switch f.Kind {
	case KindString:
		return castString(value, previous, f)
	case KindNumber:
		return castNumber(value, previous, f)
	case KindBoolean:
		return castBoolean(value, previous, f), nil
	case KindDate:
		return castDate(value, previous, f)
	case KindArray:
		return castArray(o, value, previous, f)
	case KindObject:
		return castObject(value, previous, f)
	}
	// any, alias
	return value, nil
}

func mismatch(f *Field, value any) error {
	return Issues{newIssue(f, CodeTypeMismatch, value, map[string]any{"expected": string(f.Kind)})}
}

func castString(value, previous any, f *Field) (any, error) {
	if engine.IsComposite(value) {
		return nil, mismatch(f, value)
	}
	if engine.IsNil(value) {
		return nil, nil
	}
	s := engine.Stringify(value)
	if f.StringTransform != nil {
		s = f.StringTransform(s, previous, f)
	}
	if f.Truncate && f.MaxLength != nil && utf8.RuneCountInString(s) > *f.MaxLength {
		s = string([]rune(s)[:max(*f.MaxLength, 0)])
	}
	if f.Enum != nil && !containsString(f.Enum, s) {
		return nil, Issues{newIssue(f, CodeEnumViolation, s, map[string]any{"got": s})}
	}
	n := utf8.RuneCountInString(s)
	if f.MinLength != nil && n < *f.MinLength {
		return nil, Issues{newIssue(f, CodeLengthViolation, s, map[string]any{"min": *f.MinLength, "got": n})}
	}
	if f.MaxLength != nil && n > *f.MaxLength {
		return nil, Issues{newIssue(f, CodeLengthViolation, s, map[string]any{"max": *f.MaxLength, "got": n})}
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return nil, Issues{newIssue(f, CodePatternViolation, s, map[string]any{"pattern": f.Pattern.String()})}
	}
	return s, nil
}

func containsString(set []string, s string) bool {
	for _, e := range set {
		if e == s {
			return true
		}
	}
	return false
}

func castNumber(value, previous any, f *Field) (any, error) {
	if b, ok := value.(bool); ok {
		if b {
			value = 1.0
		} else {
			value = 0.0
		}
	}
	if engine.IsComposite(value) {
		return nil, mismatch(f, value)
	}
	n, ok := engine.ToNumber(value)
	if !ok {
		return nil, mismatch(f, value)
	}
	if f.NumberTransform != nil {
		n = f.NumberTransform(n, previous, f)
	}
	if f.Min != nil && n < *f.Min {
		return nil, Issues{newIssue(f, CodeRangeViolation, n, map[string]any{"min": *f.Min, "got": n})}
	}
	if f.Max != nil && n > *f.Max {
		return nil, Issues{newIssue(f, CodeRangeViolation, n, map[string]any{"max": *f.Max, "got": n})}
	}
	return n, nil
}

func castBoolean(value, previous any, f *Field) any {
	if s, ok := value.(string); ok && s == "false" {
		return false
	}
	b := engine.Truthy(value)
	if f.BooleanTransform != nil {
		b = f.BooleanTransform(b, previous, f)
	}
	return b
}

func castDate(value, previous any, f *Field) (any, error) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return nil, mismatch(f, value)
		}
		t = *v
	case string:
		pt, err := codec.ParseTime(v)
		if err != nil {
			return nil, mismatch(f, value)
		}
		t = pt
	case json.Number:
		ms, ok := engine.ToNumber(v)
		if !ok || math.Abs(ms) > maxDateMillis {
			return nil, mismatch(f, value)
		}
		t = codec.TimeFromMillis(ms)
	default:
		ms, ok := engine.NumberOf(value)
		if !ok || math.IsNaN(ms) || math.Abs(ms) > maxDateMillis {
			return nil, mismatch(f, value)
		}
		t = codec.TimeFromMillis(ms)
	}
	if f.DateTransform != nil {
		t = f.DateTransform(t, previous, f)
	}
	return t, nil
}

// castArray refills the previous Array in place with the elements of value.
// The returned Array is valid even when some elements were rejected.
func castArray(o *Object, value, previous any, f *Field) (any, error) {
	var src []any
	switch v := value.(type) {
	case *Array:
		if v != nil {
			src = v.Values()
		}
	case *Object:
		if v != nil {
			src = v.values()
		}
	default:
		if engine.IsSequence(v) {
			src = engine.Elements(v)
		} else if _, vals, ok := engine.MapEntries(v); ok {
			src = vals
		}
	}
	arr, _ := previous.(*Array)
	if arr == nil {
		arr = NewArray(o, f)
	}
	// Arrays are never replaced; the values are copied into the existing one.
	arr.Clear()
	if _, err := arr.Push(src...); err != nil {
		return arr, err
	}
	return arr, nil
}

// castObject repopulates the previous instance of the nested type, or builds
// a new one, from the fields of value.
func castObject(value, previous any, f *Field) (any, error) {
	if !engine.IsComposite(value) || engine.IsNil(value) {
		value = map[string]any{}
	}
	if f.ObjectType == nil {
		return value, nil
	}
	keys, vals := objectEntries(value)
	target, _ := previous.(*Object)
	if target != nil && target.typ == f.ObjectType {
		target.reset()
	} else {
		target = f.ObjectType.New(nil)
	}
	for i, k := range keys {
		target.Set(k, vals[i])
	}
	return target, nil
}

// objectEntries lists the key/value pairs of a composite source in a stable
// order. Structs are projected through their JSON encoding.
func objectEntries(v any) ([]string, []any) {
	switch src := v.(type) {
	case *Object:
		return src.entries()
	case map[string]any:
		keys, vals, _ := engine.MapEntries(src)
		return keys, vals
	}
	if keys, vals, ok := engine.MapEntries(v); ok {
		return keys, vals
	}
	if engine.IsSequence(v) {
		return nil, nil
	}
	b, err := codec.MarshalJSON(v)
	if err != nil {
		return nil, nil
	}
	dv, err := codec.DecodeJSON(b)
	if err != nil {
		return nil, nil
	}
	keys, vals, _ := engine.MapEntries(dv)
	return keys, vals
}
