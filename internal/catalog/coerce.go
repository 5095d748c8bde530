package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

func asRecord(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	default:
		return nil, false
	}
}

// toString returns the trimmed value when v is a string, "" otherwise.
func toString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// firstString consults keys in order and returns the first non-empty string value.
func firstString(rec map[string]any, keys []string) string {
	for _, key := range keys {
		if s := toString(rec[key]); s != "" {
			return s
		}
	}
	return ""
}

func firstRecord(rec map[string]any, keys []string) (map[string]any, bool) {
	for _, key := range keys {
		if m, ok := asRecord(rec[key]); ok {
			return m, true
		}
	}
	return nil, false
}

// toFloat accepts finite numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func firstFloat(rec map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		if f, ok := toFloat(rec[key]); ok {
			return f, true
		}
	}
	return 0, false
}

// intOrFallback coerces the first numeric value under keys, truncating fractions.
func intOrFallback(rec map[string]any, keys []string, fallback int) int {
	f, ok := firstFloat(rec, keys)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return fallback
	}
	return int(f)
}

// toID turns an identifier candidate into its string form, or "" when unusable.
func toID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, ok := toFloat(t); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case float64, float32, int, int64:
		if f, ok := toFloat(t); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return ""
}
