package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt converts a decoded JSON value to int.
// Floats are truncated toward zero; ok is false for non-numeric values and
// for floats outside the int range.
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case float64:
		if math.IsNaN(v) || v < float64(math.MinInt) || v >= float64(math.MaxInt) {
			return 0, false
		}
		return int(v), true
	case float32:
		return ToInt(float64(v))
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return ToInt(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		return i, err == nil
	default:
		return 0, false
	}
}

// ParseCount parses a page parameter (limit or skip) given as text.
// Empty and "0" count as unset and yield fallback. Negative or non-numeric
// values are rejected.
func ParseCount(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: not a number", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid count %q: must not be negative", raw)
	}
	if n == 0 {
		return fallback, nil
	}
	return n, nil
}
