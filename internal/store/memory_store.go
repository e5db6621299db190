package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

// MemoryStore keeps the most recently delivered spots in memory.
type MemoryStore struct {
	mu        sync.RWMutex
	spots     []spots.Spot
	fetchedAt time.Time
	lastErr   string
	lastErrAt time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ListSpots returns a copy of the current spots.
func (s *MemoryStore) ListSpots() []spots.Spot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]spots.Spot, len(s.spots))
	copy(result, s.spots)
	return result
}

// SetSpots replaces the stored list and clears the last error.
func (s *MemoryStore) SetSpots(list []spots.Spot, fetchedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spots = make([]spots.Spot, len(list))
	copy(s.spots, list)
	s.fetchedAt = fetchedAt
	s.lastErr = ""
	s.lastErrAt = time.Time{}
}

// SetError records the most recent failure without dropping stored spots.
func (s *MemoryStore) SetError(msg string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
	s.lastErrAt = at
}

// FetchedAt returns when the stored spots were delivered; zero if never.
func (s *MemoryStore) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// LastError returns the most recent failure message and when it happened.
func (s *MemoryStore) LastError() (string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr, s.lastErrAt
}
