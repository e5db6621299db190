package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/iss-spotter/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
// Used to label poller metrics and logs.
func normalizeProviderName(raw string, fetcher providers.Fetcher) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if fetcher != nil {
		return strings.ToLower(fmt.Sprintf("%T", fetcher))
	}
	return "provider"
}
