package opennotify

import (
	"encoding/json"
	"fmt"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/providers"
	"github.com/preston-bernstein/iss-spotter/internal/timeutil"
)

// Decoder maps the open-notify envelope to spots.
type Decoder struct{}

// NewDecoder returns a Decoder. It holds no state.
func NewDecoder() Decoder {
	return Decoder{}
}

// Decode parses body. Anything other than a "success" envelope is a *providers.DecodeError.
func (Decoder) Decode(body []byte) ([]spots.Spot, error) {
	var payload passesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &providers.DecodeError{Provider: providerName, Err: err}
	}
	if payload.Message != successMessage {
		return nil, &providers.DecodeError{
			Provider: providerName,
			Err:      fmt.Errorf("unexpected message %q", payload.Message),
		}
	}

	out := make([]spots.Spot, 0, len(payload.Response))
	for i, p := range payload.Response {
		if p.Duration < 0 || p.Duration > maxPassSeconds {
			return nil, &providers.DecodeError{
				Provider: providerName,
				Err:      fmt.Errorf("pass %d: duration %ds out of range", i, p.Duration),
			}
		}
		out = append(out, mapPass(p))
	}
	return out, nil
}

func mapPass(p passRecord) spots.Spot {
	return spots.Spot{
		RiseTime:     timeutil.FromUnix(p.RiseTime),
		Duration:     timeutil.Seconds(p.Duration),
		MaxElevation: p.MaxElevation,
	}
}
