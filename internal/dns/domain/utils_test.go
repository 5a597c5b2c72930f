package domain

import (
	"testing"
)

func TestGenerateCacheKey(t *testing.T) {
	cases := []struct {
		name  string
		rtype RRType
		class RRClass
		want  string
	}{
		{"www.example.com", RRTypeA, RRClassIN, "example.com|www.example.com|A|IN"},
		{"Example.COM.", RRTypeAAAA, RRClassIN, "example.com|example.com|AAAA|IN"},
		{"www.example.co.uk", RRTypeTXT, RRClassIN, "example.co.uk|www.example.co.uk|TXT|IN"},
		{"localhost", RRTypeA, RRClassIN, "localhost|localhost|A|IN"},
	}
	for _, tc := range cases {
		if got := GenerateCacheKey(tc.name, tc.rtype, tc.class); got != tc.want {
			t.Errorf("GenerateCacheKey(%q, %v, %v) = %q, want %q", tc.name, tc.rtype, tc.class, got, tc.want)
		}
	}
}

func TestQuestion_CacheKey(t *testing.T) {
	q := Question{QName: "www.example.com", QType: RRTypeA, QClass: RRClassIN}
	if got, want := q.CacheKey(), "example.com|www.example.com|A|IN"; got != want {
		t.Errorf("CacheKey() = %q, want %q", got, want)
	}
}

func TestResourceRecord_CacheKey(t *testing.T) {
	rr := ResourceRecord{
		Name:  "www.example.com",
		Data:  CNAMERecord{Target: "cdn.example.net"},
		Class: RRClassIN,
	}
	if got, want := rr.CacheKey(), "example.com|www.example.com|CNAME|IN"; got != want {
		t.Errorf("CacheKey() = %q, want %q", got, want)
	}
}
