package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseLeadingInt parses the integer prefix of val.
// Leading whitespace and a single sign are accepted, parsing stops at the first
// non-digit and anything after it is ignored. Floats are truncated toward zero.
// ok is false when no digits could be read or the value overflows int64.
func ParseLeadingInt(val any) (n int64, ok bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		return uintToInt64(uint64(v))
	case uint64:
		return uintToInt64(v)
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return floatToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	case json.Number:
		return parseLeadingDigits(string(v))
	case string:
		return parseLeadingDigits(v)
	case []byte:
		return parseLeadingDigits(string(v))
	case bool:
		return 0, false
	default:
		return parseLeadingDigits(fmt.Sprintf("%v", v))
	}
}

func uintToInt64(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

func floatToInt64(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	t := math.Trunc(v)
	if t > math.MaxInt64 || t < math.MinInt64 {
		return 0, false
	}
	return int64(t), true
}

func parseLeadingDigits(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsJSONArray reports whether raw holds a JSON array.
func IsJSONArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '[' && json.Valid(trimmed)
}

// IsBlank reports whether val counts as absent in client payloads: nil, false,
// numeric zero, NaN and the empty string.
func IsBlank(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	case float64:
		return v == 0 || math.IsNaN(v)
	case float32:
		return v == 0 || math.IsNaN(float64(v))
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		n, ok := ParseLeadingInt(v)
		return ok && n == 0
	default:
		return false
	}
}

// TextOrEmpty converts val to a string, returning "" for blank values.
func TextOrEmpty(val any) string {
	if IsBlank(val) {
		return ""
	}
	return ToString(val)
}

// OptionalString converts val to a string pointer. Blank values become nil.
func OptionalString(val any) *string {
	s := TextOrEmpty(val)
	if s == "" {
		return nil
	}
	return &s
}
