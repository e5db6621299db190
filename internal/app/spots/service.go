package spots

import (
	"time"

	domainspots "github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

// Store defines the contract for keeping the latest delivered spots.
type Store interface {
	ListSpots() []domainspots.Spot
	SetSpots(list []domainspots.Spot, fetchedAt time.Time)
	SetError(msg string, at time.Time)
	FetchedAt() time.Time
	LastError() (string, time.Time)
}

// Service answers visibility questions over the latest delivered spots.
type Service struct {
	store Store
	obs   domainspots.Observatory
	now   func() time.Time
}

// NewService constructs a Service for one observatory.
func NewService(store Store, obs domainspots.Observatory) *Service {
	return &Service{store: store, obs: obs, now: time.Now}
}

// Spots returns the latest list with its observatory and delivery time.
func (s *Service) Spots() domainspots.SpotsResponse {
	return domainspots.SpotsResponse{
		Observatory: s.obs,
		FetchedAt:   s.store.FetchedAt(),
		Spots:       s.store.ListSpots(),
	}
}

// Current returns the pass visible right now, if any.
func (s *Service) Current(day *domainspots.DayTime) (domainspots.Spot, bool) {
	return domainspots.FindCurrent(s.store.ListSpots(), day, s.now())
}

// Upcoming returns the next pass that has not started yet.
func (s *Service) Upcoming(day *domainspots.DayTime) (domainspots.Spot, bool) {
	return domainspots.FindUpcoming(s.store.ListSpots(), day, s.now())
}

// Visible reports whether the station is overhead now.
func (s *Service) Visible() bool {
	return domainspots.IsVisibleNow(s.store.ListSpots(), s.now())
}

// ReplaceSpots stores a freshly delivered list.
func (s *Service) ReplaceSpots(list []domainspots.Spot) {
	s.store.SetSpots(list, s.now().UTC())
}

// RecordFailure keeps the latest failure for /ready and /spots consumers.
func (s *Service) RecordFailure(err error) {
	if err == nil {
		return
	}
	s.store.SetError(err.Error(), s.now().UTC())
}

// LastError returns the latest recorded failure, if any.
func (s *Service) LastError() (string, time.Time) {
	return s.store.LastError()
}

// Observatory returns the parameters the service answers for.
func (s *Service) Observatory() domainspots.Observatory {
	return s.obs
}
