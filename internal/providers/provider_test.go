package providers

import (
	"context"
	"testing"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

func TestFuncAdaptersImplementInterfaces(t *testing.T) {
	var f Fetcher = FetcherFunc(func(ctx context.Context, obs spots.Observatory) ([]byte, error) {
		_ = ctx
		_ = obs
		return []byte("ok"), nil
	})
	var d Decoder = DecoderFunc(func(body []byte) ([]spots.Spot, error) {
		return []spots.Spot{{}}, nil
	})

	body, err := f.Fetch(context.Background(), spots.Observatory{})
	if err != nil || string(body) != "ok" {
		t.Fatalf("unexpected fetch result %q %v", body, err)
	}
	list, err := d.Decode(body)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected decode result %v %v", list, err)
	}
}
