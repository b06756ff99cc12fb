package cpanel

import (
	"strconv"
	"strings"
)

// Record is one weakly-typed row as it arrives from a collaborator: a field
// is absent, a string, or a JSON number, and upstream flips between those
// freely. All normalization to usable types happens through the accessors
// below; nothing downstream touches the raw values.
type Record map[string]interface{}

// StringField returns the field only when it is present and a string.
func (r Record) StringField(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// NumericField normalizes the field to a float64. JSON numbers pass
// through; strings must be plain decimals (digits with at most one decimal
// point, no sign or exponent). Anything else does not count as numeric.
func (r Record) NumericField(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return NormalizeNumeric(v)
}

// FloatField is the lenient variant: JSON numbers pass through and strings
// parse with the full float syntax (signs, exponents). Used where upstream
// documents a plain float, not a free-form statistic value.
func (r Record) FloatField(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	switch value := v.(type) {
	case float64:
		return value, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NormalizeNumeric applies the strict numeric normalization to a raw field
// value.
func NormalizeNumeric(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case string:
		s := strings.TrimSpace(value)
		if !isPlainDecimal(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isPlainDecimal(s string) bool {
	digits := 0
	dots := 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
