package utils

import "testing"

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"lowercase", "usd", "USD"},
		{"already normalized", "EUR", "EUR"},
		{"padded", " rub ", "RUB"},
		{"empty falls back", "", "RUB"},
		{"too short", "US", "RUB"},
		{"too long", "EURO", "RUB"},
		{"digits fall back", "U5D", "RUB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCurrency(tt.code, "RUB"); got != tt.expected {
				t.Errorf("NormalizeCurrency(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}
