package utils

import (
	"testing"
)

func TestCanonicalDNSName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Example.COM", "example.com"},
		{"example.com.", "example.com"},
		{"example.com...", "example.com"},
		{"  example.com  ", "example.com"},
		{"", ""},
		{".", ""},
		{"WWW.Example.Co.UK.", "www.example.co.uk"},
	}
	for _, tc := range cases {
		if got := CanonicalDNSName(tc.input); got != tc.want {
			t.Errorf("CanonicalDNSName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestGetApexDomain(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"www.example.com", "example.com"},
		{"example.com", "example.com"},
		{"a.b.c.example.com", "example.com"},
		{"www.example.co.uk", "example.co.uk"},
		{"Example.COM.", "example.com"},
		// unparseable inputs fall back to the canonical name
		{"localhost", "localhost"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := GetApexDomain(tc.input); got != tc.want {
			t.Errorf("GetApexDomain(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
