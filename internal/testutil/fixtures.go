package testutil

import (
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

// SampleObservatory returns a valid observatory in Berlin.
func SampleObservatory() spots.Observatory {
	return spots.Observatory{Latitude: 52.52, Longitude: 13.405, Altitude: 34, MinElevation: spots.DefaultMinElevation}
}

// SampleSpots returns one pass in view at now and one starting an hour later.
func SampleSpots(now time.Time) []spots.Spot {
	return []spots.Spot{
		{RiseTime: now.Add(-time.Minute), Duration: 5 * time.Minute, MaxElevation: 40},
		{RiseTime: now.Add(time.Hour), Duration: 6 * time.Minute, MaxElevation: 25},
	}
}
