package store

import (
	"testing"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

func TestMemoryStoreSetAndListSpots(t *testing.T) {
	s := NewMemoryStore()
	if len(s.ListSpots()) != 0 || !s.FetchedAt().IsZero() {
		t.Fatalf("expected empty store")
	}

	at := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	list := []spots.Spot{{RiseTime: at.Add(time.Hour), Duration: time.Minute}}
	s.SetSpots(list, at)

	got := s.ListSpots()
	if len(got) != 1 || !got[0].RiseTime.Equal(at.Add(time.Hour)) {
		t.Fatalf("unexpected spots %+v", got)
	}
	if !s.FetchedAt().Equal(at) {
		t.Fatalf("expected fetchedAt %s, got %s", at, s.FetchedAt())
	}

	list[0].Duration = time.Hour
	got[0].Duration = time.Hour
	if s.ListSpots()[0].Duration != time.Minute {
		t.Fatalf("expected store to keep its own copy")
	}
}

func TestMemoryStoreErrorKeepsSpotsUntilNextDelivery(t *testing.T) {
	s := NewMemoryStore()
	at := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	s.SetSpots([]spots.Spot{{RiseTime: at}}, at)

	s.SetError("500 Internal Server Error", at.Add(time.Minute))
	msg, when := s.LastError()
	if msg != "500 Internal Server Error" || !when.Equal(at.Add(time.Minute)) {
		t.Fatalf("unexpected last error %q at %s", msg, when)
	}
	if len(s.ListSpots()) != 1 {
		t.Fatalf("expected spots to be kept after an error")
	}

	s.SetSpots(nil, at.Add(2*time.Minute))
	if msg, _ := s.LastError(); msg != "" {
		t.Fatalf("expected delivery to clear last error, got %q", msg)
	}
}
