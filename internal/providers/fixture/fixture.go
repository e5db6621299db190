package fixture

import (
	"context"
	"encoding/json"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

// Provider returns an open-notify shaped payload with passes relative to now.
// Useful for local runs without network access.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

type pass struct {
	Duration int64 `json:"duration"`
	RiseTime int64 `json:"risetime"`
}

type request struct {
	Altitude  float64 `json:"altitude"`
	Datetime  int64   `json:"datetime"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Passes    int     `json:"passes"`
}

type envelope struct {
	Message  string  `json:"message"`
	Request  request `json:"request"`
	Response []pass  `json:"response"`
}

// Fetch returns a deterministic set of upcoming passes for the observatory.
func (p *Provider) Fetch(ctx context.Context, obs spots.Observatory) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := p.now().UTC().Truncate(time.Minute)
	passes := []pass{
		{Duration: 420, RiseTime: start.Add(35 * time.Minute).Unix()},
		{Duration: 610, RiseTime: start.Add(127 * time.Minute).Unix()},
		{Duration: 380, RiseTime: start.Add(220 * time.Minute).Unix()},
	}

	return json.Marshal(envelope{
		Message: "success",
		Request: request{
			Altitude:  obs.Altitude,
			Datetime:  start.Unix(),
			Latitude:  obs.Latitude,
			Longitude: obs.Longitude,
			Passes:    len(passes),
		},
		Response: passes,
	})
}
