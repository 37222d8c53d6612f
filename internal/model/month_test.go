package model

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2024-05", false},
		{"1999-12", false},
		{"2024-13", true},
		{"2024-5", true},
		{"May 2024", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMonth(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.String() != tt.input {
				t.Errorf("expected %q, got %q", tt.input, m)
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	m, err := ParseMonth("2024-12")
	if err != nil {
		t.Fatal(err)
	}

	from, to := m.Bounds()
	if !from.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected from: %v", from)
	}
	if !to.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected to: %v", to)
	}
}

func TestMonthOf(t *testing.T) {
	at := time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC)
	if got := MonthOf(at); got != "2024-05" {
		t.Errorf("expected 2024-05, got %s", got)
	}
}
