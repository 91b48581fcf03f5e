package engine

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// IsNumeric reports whether v is recognized as a finite number.
//
// Numeric strings may carry surrounding whitespace, a 0x/0o/0b integer prefix,
// an exponent, or a leading dot ("  .5", "0x1F", "1e3"). NaN, Inf, booleans
// and empty strings are never numeric.
func IsNumeric(v any) bool {
	_, ok := ToNumber(v)
	return ok
}

// ToNumber converts a numeric value or numeric string to float64.
// Booleans are not converted; callers decide how to map them.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil, bool:
		return 0, false
	case float64:
		return n, finite(n)
	case float32:
		f := float64(n)
		return f, finite(f)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		return parseNumericString(string(n))
	case string:
		return parseNumericString(n)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, finite(f)
	case reflect.String:
		return parseNumericString(rv.String())
	}
	return 0, false
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func parseNumericString(s string) (float64, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, false
	}
	if len(t) > 2 && t[0] == '0' {
		base := 0
		switch t[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(t[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(u), true
		}
	}
	// Only decimal literals remain; this also keeps out "Inf", "NaN", hex
	// floats and digit separators that ParseFloat would otherwise accept.
	for i := 0; i < len(t); i++ {
		c := t[i]
		if (c < '0' || c > '9') && c != '.' && c != 'e' && c != 'E' && c != '+' && c != '-' {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return f, finite(f)
}

// FormatNumber renders a float64 the way it is stringified for string fields:
// integers without a fraction, otherwise the shortest representation.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return trimExponent(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent drops leading zeros of the exponent: "1e-07" becomes "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}
