package utils

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		millis int
		want   string
	}{
		{0, "00:00"},
		{1000, "00:01"},
		{61000, "01:01"},
		{3599000, "59:59"},
		{3600000, "01:00:00"},
		{3661000, "01:01:01"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.millis); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q; want %q", tt.millis, got, tt.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"45", 45000, true},
		{"1:30", 90000, true},
		{"01:01:01", 3661000, true},
		{"90", 90000, true},  // bare seconds carry no clock cap
		{"1:90", 0, false},   // trailing fields do
		{"", 0, false},
		{"abc", 0, false},
		{"1:2:3:4", 0, false},
		{"-1:30", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDuration(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, %v; want %d, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
