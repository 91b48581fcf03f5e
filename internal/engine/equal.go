package engine

import (
	"math"
	"reflect"
	"time"
)

// SameValue reports whether a and b are the same element for uniqueness
// purposes. Numbers compare by value regardless of their Go type (NaN equals
// NaN), dates by instant, maps, slices and funcs by reference, and other
// comparable values with ==. Non-comparable structs fall back to deep equality.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if fa, ok := NumberOf(a); ok {
		fb, ok := NumberOf(b)
		return ok && (fa == fb || (math.IsNaN(fa) && math.IsNaN(fb)))
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// NumberOf returns the value of a Go numeric type (not numeric strings).
func NumberOf(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Uniq returns the values of batch that are neither repeated earlier in batch
// nor present in existing, preserving first-seen order.
func Uniq(batch, existing []any) []any {
	out := make([]any, 0, len(batch))
	for _, v := range batch {
		if contains(out, v) || contains(existing, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Contains reports whether values holds an element SameValue to v.
func Contains(values []any, v any) bool { return contains(values, v) }

func contains(values []any, v any) bool {
	for _, e := range values {
		if SameValue(e, v) {
			return true
		}
	}
	return false
}
