package main

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Hull", 10, "Hull"},
		{"Hull plating renewal", 10, "Hull pl..."},
		{"Überholung Ruderanlage", 8, "Überh..."},
		{"Hull", 3, "Hul"},
		{"Hull", 1, "H"},
		{"Hull", 0, ""},
		{"Hull", -2, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8, "8"},
		{7.5, "7.5"},
		{7.25, "7.25"},
		{0, "0"},
		{15.5, "15.5"},
	}
	for _, tt := range tests {
		if got := formatHours(tt.in); got != tt.want {
			t.Errorf("formatHours(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDash(t *testing.T) {
	if dash("") != "-" || dash("Acme") != "Acme" {
		t.Error("dash did not substitute empty cells only")
	}
}
