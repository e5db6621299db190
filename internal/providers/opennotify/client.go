package opennotify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/providers"
)

// Config controls how the client reaches the open-notify API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Passes     int
	Logger     *slog.Logger
}

// Client issues one pass-prediction request per Fetch.
type Client struct {
	baseURL    string
	httpClient httpDoer
	passes     int
	logger     *slog.Logger
}

// NewClient constructs an open-notify client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		passes:     resolvePasses(cfg.Passes),
		logger:     cfg.Logger,
	}
}

// Fetch performs a single GET and returns the raw body on a 2xx response.
func (c *Client) Fetch(ctx context.Context, obs spots.Observatory) ([]byte, error) {
	req, err := c.buildRequest(ctx, obs)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
		providers.LogWithProvider(ctx, c.logger, slog.LevelWarn, providerName, "upstream returned non-2xx",
			slog.Int("status", resp.StatusCode),
		)
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", providerName, err)
	}
	return body, nil
}

func (c *Client) buildRequest(ctx context.Context, obs spots.Observatory) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+passesPath, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("lat", formatFloat(obs.Latitude))
	q.Set("lon", formatFloat(obs.Longitude))
	q.Set("altitude", formatFloat(obs.Altitude))
	q.Set("n", strconv.Itoa(c.passes))
	if obs.MinElevation > 0 {
		q.Set("min_elevation", strconv.Itoa(obs.MinElevation))
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
