package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/reoring/schemaobject/codec"
)

var timeType = reflect.TypeOf(time.Time{})

// IsComposite reports whether v is a container or structured value: maps,
// slices, arrays, structs, functions and pointers to any of those.
// time.Time and *time.Time are treated as scalars.
func IsComposite(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return false
	}
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Func:
		return true
	}
	return false
}

// IsSequence reports whether v is a slice or array.
func IsSequence(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// IsNil reports whether v is nil or a nil pointer, map, slice or func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Stringify renders a scalar as a string.
func Stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return string(s)
	case time.Time:
		return codec.FormatTime(s)
	case *time.Time:
		return codec.FormatTime(*s)
	case fmt.Stringer:
		return s.String()
	case error:
		return s.Error()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return FormatNumber(rv.Float())
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

// Truthy reports the truthiness of v: nil, false, zero numbers, NaN and the
// empty string are false; everything else, including empty containers, is true.
func Truthy(v any) bool {
	if IsNil(v) {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != ""
	case json.Number:
		f, ok := ToNumber(b)
		return !ok || f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() > 0
	}
	return true
}

// Elements returns the elements of a slice or array as []any.
func Elements(v any) []any {
	if s, ok := v.([]any); ok {
		return append([]any(nil), s...)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return nil
}

// MapEntries returns the keys (stringified) and values of a map in ascending
// key order. ok is false when v is not a map.
func MapEntries(v any) (keys []string, values []any, ok bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, nil, false
	}
	type entry struct {
		k string
		v any
	}
	es := make([]entry, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		es = append(es, entry{k: Stringify(it.Key().Interface()), v: it.Value().Interface()})
	}
	sort.Slice(es, func(i, j int) bool { return es[i].k < es[j].k })
	keys = make([]string, len(es))
	values = make([]any, len(es))
	for i, e := range es {
		keys[i] = e.k
		values[i] = e.v
	}
	return keys, values, true
}
