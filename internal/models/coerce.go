package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceDecimal converts a decoded JSON value to a decimal. The feed stores
// some numerics as strings with explicit signs ("+3.5"); anything that does
// not parse is treated as missing, never as an error.
func CoerceDecimal(v any) *decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return nil
	case json.Number:
		if d, err := decimal.NewFromString(val.String()); err == nil {
			return &d
		}
		return nil
	case float64:
		d := decimal.NewFromFloat(val)
		return &d
	case string:
		s := strings.TrimSpace(val)
		s = strings.TrimPrefix(s, "+")
		if s == "" {
			return nil
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return &d
		}
		return nil
	default:
		return nil
	}
}

// CoerceString returns the value as a string, or nil for JSON null and
// non-scalar values.
func CoerceString(v any) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return &val
	case json.Number:
		s := val.String()
		return &s
	default:
		return nil
	}
}

// CoerceInt64 truncates a numeric value to an integer, the way the week
// column is handled everywhere downstream.
func CoerceInt64(v any) *int64 {
	d := CoerceDecimal(v)
	if d == nil {
		return nil
	}
	i := d.IntPart()
	return &i
}

// CoerceBool reads the boolean encodings the results generator emits:
// True/False, true/false, and 0/1 (optionally as floats).
func CoerceBool(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "1.0":
		v := true
		return &v
	case "false", "0", "0.0":
		v := false
		return &v
	default:
		return nil
	}
}
