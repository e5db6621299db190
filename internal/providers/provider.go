package providers

import (
	"context"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

// Fetcher performs one request for the observatory and returns the raw body.
// Non-2xx responses come back as *StatusError.
type Fetcher interface {
	Fetch(ctx context.Context, obs spots.Observatory) ([]byte, error)
}

// Decoder turns a raw payload into spotting events.
// Failures come back as *DecodeError.
type Decoder interface {
	Decode(body []byte) ([]spots.Spot, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, obs spots.Observatory) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, obs spots.Observatory) ([]byte, error) {
	return f(ctx, obs)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(body []byte) ([]spots.Spot, error)

func (f DecoderFunc) Decode(body []byte) ([]spots.Spot, error) {
	return f(body)
}
