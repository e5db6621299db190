package opennotify

import (
	"net/http"
	"testing"
	"time"
)

func TestNormalizeBaseURLTrimsTrailingSlashAndDefaults(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", defaultBaseURL},
		{"http://api.example.com/", "http://api.example.com"},
		{"http://api.example.com", "http://api.example.com"},
	}

	for _, c := range cases {
		if got := normalizeBaseURL(c.input); got != c.expected {
			t.Fatalf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestResolveHTTPClientTimeouts(t *testing.T) {
	cases := []struct {
		timeout  time.Duration
		expected time.Duration
	}{
		{0, defaultHTTPTimeout},
		{-1, 0},
		{3 * time.Second, 3 * time.Second},
	}

	for _, c := range cases {
		client, ok := resolveHTTPClient(nil, c.timeout).(*http.Client)
		if !ok {
			t.Fatalf("expected *http.Client")
		}
		if client.Timeout != c.expected {
			t.Fatalf("timeout %s: expected %s, got %s", c.timeout, c.expected, client.Timeout)
		}
	}
}

func TestResolveHTTPClientUsesProvidedClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	if resolveHTTPClient(custom, time.Second) != custom {
		t.Fatalf("expected provided client to be used")
	}
}

func TestResolvePassesDefaults(t *testing.T) {
	if resolvePasses(0) != defaultPasses || resolvePasses(-2) != defaultPasses {
		t.Fatalf("expected default passes")
	}
	if resolvePasses(7) != 7 {
		t.Fatalf("expected explicit passes to be kept")
	}
}
