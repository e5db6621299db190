package spots

import (
	"errors"
	"fmt"
	"time"
)

// DefaultMinElevation is the visibility threshold (degrees above the horizon)
// used by the one-shot helpers when the caller does not provide one.
const DefaultMinElevation = 10

// Observatory identifies one polling target. It is never mutated once a poller owns it.
type Observatory struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Altitude     float64 `json:"altitude"`
	MinElevation int     `json:"minElevation"`
}

var (
	ErrLatitudeRange  = errors.New("latitude must be within -90..90")
	ErrLongitudeRange = errors.New("longitude must be within -180..180")
	ErrAltitudeRange  = errors.New("altitude must be within 0..10000 meters")
)

// Validate checks the coordinates against the ranges the upstream API accepts.
func (o Observatory) Validate() error {
	if o.Latitude < -90 || o.Latitude > 90 {
		return fmt.Errorf("%w: got %v", ErrLatitudeRange, o.Latitude)
	}
	if o.Longitude < -180 || o.Longitude > 180 {
		return fmt.Errorf("%w: got %v", ErrLongitudeRange, o.Longitude)
	}
	if o.Altitude < 0 || o.Altitude > 10000 {
		return fmt.Errorf("%w: got %v", ErrAltitudeRange, o.Altitude)
	}
	return nil
}

// Spot is one predicted visibility window.
type Spot struct {
	RiseTime     time.Time
	Duration     time.Duration
	MaxElevation int
}

// End returns the moment the station drops out of view.
func (s Spot) End() time.Time {
	return s.RiseTime.Add(s.Duration)
}

// IsVisible reports whether now falls inside [RiseTime, End).
func (s Spot) IsVisible(now time.Time) bool {
	return !now.Before(s.RiseTime) && now.Before(s.End())
}

// Until returns the time left before the pass starts; negative once it has begun.
func (s Spot) Until(now time.Time) time.Duration {
	return s.RiseTime.Sub(now)
}

// AtNight reports whether the pass rises outside the given daylight window.
func (s Spot) AtNight(day DayTime) bool {
	return day.AtNight(s.RiseTime)
}

// DayTime is the daylight window for the observatory on a given day.
type DayTime struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// NewDayTime builds a DayTime from unix timestamps (seconds, UTC).
func NewDayTime(sunriseUnix, sunsetUnix int64) DayTime {
	return DayTime{
		Sunrise: time.Unix(sunriseUnix, 0).UTC(),
		Sunset:  time.Unix(sunsetUnix, 0).UTC(),
	}
}

// AtNight reports whether t is before sunrise or after sunset.
func (d DayTime) AtNight(t time.Time) bool {
	return t.Before(d.Sunrise) || t.After(d.Sunset)
}

// SpotsResponse is the payload returned by /spots.
type SpotsResponse struct {
	Observatory Observatory `json:"observatory"`
	FetchedAt   time.Time   `json:"fetchedAt"`
	Spots       []Spot      `json:"spots"`
}
