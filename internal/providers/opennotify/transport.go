package opennotify

import (
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// resolveHTTPClient prefers the caller's client. A negative timeout means
// "no client timeout"; zero falls back to the default.
func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	switch {
	case timeout < 0:
		return &http.Client{}
	case timeout == 0:
		return &http.Client{Timeout: defaultHTTPTimeout}
	default:
		return &http.Client{Timeout: timeout}
	}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolvePasses(n int) int {
	if n <= 0 {
		return defaultPasses
	}
	return n
}
