package testutil

import (
	"time"

	appspots "github.com/preston-bernstein/iss-spotter/internal/app/spots"
	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/store"
)

// NewServiceWithSpots builds a spots service backed by an in-memory store preloaded with list.
func NewServiceWithSpots(obs spots.Observatory, list []spots.Spot) (*appspots.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	if list != nil {
		ms.SetSpots(list, time.Now().UTC())
	}
	return appspots.NewService(ms, obs), ms
}
