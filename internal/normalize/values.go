package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// absentTokens are string values providers use for "no value".
var absentTokens = map[string]bool{
	"":     true,
	"none": true,
	"null": true,
	"-":    true,
	"n/a":  true,
	"na":   true,
	"nan":  true,
}

// ParseNumber coerces a decoded JSON value into a float.
//
// Accepts float64, json.Number, integer types and numeric strings
// (thousands separators are stripped). Anything else, including the
// "None"/"-" placeholders some providers emit, is reported as absent.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if absentTokens[strings.ToLower(s)] {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
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

// Float is ParseNumber returning nil for absent values.
func Float(v any) *float64 {
	f, ok := ParseNumber(v)
	if !ok {
		return nil
	}
	return &f
}

// ParseDate reads a calendar date from an ISO "YYYY-MM-DD" string, a
// timestamp string starting with one ("2023-09-30 00:00:00",
// RFC 3339), or "MM/DD/YYYY". Unix seconds are accepted as numbers.
// The result is always midnight UTC.
func ParseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case string:
		s := strings.TrimSpace(d)
		if len(s) >= 10 {
			if t, err := time.Parse(time.DateOnly, s[:10]); err == nil {
				return t, true
			}
			if t, err := time.Parse("01/02/2006", s[:10]); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case json.Number, float64, int64, int:
		secs, ok := ParseNumber(d)
		if !ok || secs <= 0 {
			return time.Time{}, false
		}
		t := time.Unix(int64(secs), 0).UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	default:
		return time.Time{}, false
	}
}

// firstNumber returns the value of the first alias present with a numeric value.
func firstNumber(fields map[string]any, aliases []string) *float64 {
	for _, key := range aliases {
		if v, ok := fields[key]; ok {
			if f := Float(v); f != nil {
				return f
			}
		}
	}
	return nil
}

// firstDate returns the first alias that parses as a date.
func firstDate(fields map[string]any, aliases []string) (time.Time, bool) {
	for _, key := range aliases {
		if v, ok := fields[key]; ok {
			if t, ok := ParseDate(v); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// firstString returns the first alias holding a non-empty string.
func firstString(fields map[string]any, aliases ...string) string {
	for _, key := range aliases {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
