package models

import (
	"encoding/json"
	"testing"
)

func TestCoerceDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		nil_ bool
	}{
		{"signed string", "+3.5", "3.5", false},
		{"negative string", "-2.25", "-2.25", false},
		{"number", json.Number("17.5"), "17.5", false},
		{"float", 4.0, "4", false},
		{"garbage", "pick'em", "", true},
		{"empty", "", "", true},
		{"nil", nil, "", true},
	}
	for _, tt := range tests {
		got := CoerceDecimal(tt.in)
		if tt.nil_ {
			if got != nil {
				t.Fatalf("%s: CoerceDecimal(%v) = %s, want nil", tt.name, tt.in, got)
			}
			continue
		}
		if got == nil || got.String() != tt.want {
			t.Fatalf("%s: CoerceDecimal(%v) = %v, want %s", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestCoerceInt64(t *testing.T) {
	if got := CoerceInt64(json.Number("18.0")); got == nil || *got != 18 {
		t.Fatalf("CoerceInt64(18.0) = %v, want 18", got)
	}
	if got := CoerceInt64("week one"); got != nil {
		t.Fatalf("CoerceInt64(garbage) = %v, want nil", got)
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		in   string
		want *bool
	}{
		{"True", boolPtr(true)},
		{"false", boolPtr(false)},
		{"1", boolPtr(true)},
		{"0.0", boolPtr(false)},
		{"", nil},
		{"maybe", nil},
	}
	for _, tt := range tests {
		got := CoerceBool(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Fatalf("CoerceBool(%q) = %v, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Fatalf("CoerceBool(%q) = %v, want %v", tt.in, got, *tt.want)
		}
	}
}

func boolPtr(v bool) *bool { return &v }
