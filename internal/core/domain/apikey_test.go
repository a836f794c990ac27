package domain

import (
	"testing"
	"time"
)

func TestAPIKey_Usable(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	cases := []struct {
		name string
		key  APIKey
		want bool
	}{
		{"active without expiry", APIKey{Active: true}, true},
		{"active before expiry", APIKey{Active: true, ExpiresAt: &future}, true},
		{"inactive", APIKey{Active: false}, false},
		{"expired", APIKey{Active: true, ExpiresAt: &past}, false},
		{"expiring this instant", APIKey{Active: true, ExpiresAt: &now}, false},
	}
	for _, tc := range cases {
		if got := tc.key.Usable(now); got != tc.want {
			t.Fatalf("%s: Usable = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAPIKey_MaskedValue(t *testing.T) {
	key := APIKey{Value: "tmk_0123456789abcdef0123456789abcdef0123456789abcdef"}
	masked := key.MaskedValue()
	if masked != "tmk_0123...cdef" {
		t.Fatalf("unexpected mask: %q", masked)
	}

	// Short values are returned as-is rather than sliced out of range.
	short := APIKey{Value: "tmk_short"}
	if short.MaskedValue() != "tmk_short" {
		t.Fatalf("short value should pass through, got %q", short.MaskedValue())
	}
}
