package fixture

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

func TestFixtureFetchReturnsPassesAfterNow(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 20, 0, 30, 0, time.UTC)
	p := New()
	p.now = func() time.Time { return fixed }

	body, err := p.Fetch(context.Background(), spots.Observatory{Latitude: 52.52, Longitude: 13.40})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("expected valid json, got %v", err)
	}
	if env.Message != "success" {
		t.Fatalf("expected success message, got %s", env.Message)
	}
	if env.Request.Latitude != 52.52 || env.Request.Passes != 3 {
		t.Fatalf("unexpected request echo %+v", env.Request)
	}
	if len(env.Response) != 3 {
		t.Fatalf("expected 3 passes, got %d", len(env.Response))
	}
	for _, ps := range env.Response {
		if ps.RiseTime <= fixed.Unix() {
			t.Fatalf("expected pass after now, got %d", ps.RiseTime)
		}
	}
}

func TestFixtureFetchRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Fetch(ctx, spots.Observatory{}); err == nil {
		t.Fatalf("expected context error")
	}
}
