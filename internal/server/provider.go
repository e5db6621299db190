package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/iss-spotter/internal/config"
	"github.com/preston-bernstein/iss-spotter/internal/providers"
	"github.com/preston-bernstein/iss-spotter/internal/providers/fixture"
	"github.com/preston-bernstein/iss-spotter/internal/providers/opennotify"
)

const (
	providerFixture    = "fixture"
	providerOpenNotify = "opennotify"
)

// upstream pairs a fetcher with the decoder for its wire format.
type upstream struct {
	fetcher providers.Fetcher
	decoder providers.Decoder
	name    string
}

func selectProvider(cfg config.Config, logger *slog.Logger) upstream {
	// the fixture serves open-notify shaped bodies, so both share a decoder
	decoder := opennotify.NewDecoder()

	switch strings.ToLower(cfg.Provider) {
	case providerFixture, "":
		return upstream{fetcher: fixture.New(), decoder: decoder, name: providerFixture}
	case providerOpenNotify:
		client := opennotify.NewClient(opennotify.Config{
			BaseURL: cfg.OpenNotify.BaseURL,
			Timeout: cfg.OpenNotify.Timeout,
			Passes:  cfg.OpenNotify.Passes,
			Logger:  logger,
		})
		return upstream{fetcher: client, decoder: decoder, name: providerOpenNotify}
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return upstream{fetcher: fixture.New(), decoder: decoder, name: providerFixture}
	}
}
