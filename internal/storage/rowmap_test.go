package storage

import (
	"testing"
	"time"
)

func TestFormatDateValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"time value", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "10/01/2024"},
		{"iso text", "2024-01-10", "10/01/2024"},
		{"rfc3339 text", "2024-01-10T00:00:00Z", "10/01/2024"},
		{"opaque text passes through", "sometime in january", "sometime in january"},
		{"nil", nil, nil},
		{"fallback stringified", int64(42), "42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatDateValue(tc.in); got != tc.want {
				t.Fatalf("formatDateValue(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatNumberValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"integral float", float64(80), int64(80)},
		{"fractional float", 10.555, 10.56},
		{"two decimals kept", 12.5, 12.5},
		{"int64", int64(7), int64(7)},
		{"numeric text", "12.5", 12.5},
		{"integral text", "100", int64(100)},
		{"nil maps to zero", nil, int64(0)},
		{"non-numeric maps to zero", "n/a", int64(0)},
		{"bool maps to zero", true, int64(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatNumberValue(tc.in); got != tc.want {
				t.Fatalf("formatNumberValue(%v) = %v (%T), want %v (%T)", tc.in, got, got, tc.want, tc.want)
			}
		})
	}
}

func TestIsDateColumn(t *testing.T) {
	for col, want := range map[string]bool{
		"date":       true,
		"entry_date": true,
		"Date":       true,
		"notes":      false,
		"balance":    false,
	} {
		if got := isDateColumn(col); got != want {
			t.Fatalf("isDateColumn(%q) = %v, want %v", col, got, want)
		}
	}
}
