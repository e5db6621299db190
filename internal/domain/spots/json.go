package spots

import (
	"encoding/json"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/timeutil"
)

type spotJSON struct {
	RiseTime        time.Time `json:"riseTime"`
	EndTime         time.Time `json:"endTime"`
	DurationSeconds int64     `json:"durationSeconds"`
	MaxElevation    int       `json:"maxElevation,omitempty"`
}

// MarshalJSON renders the duration in whole seconds alongside the end time.
func (s Spot) MarshalJSON() ([]byte, error) {
	return json.Marshal(spotJSON{
		RiseTime:        s.RiseTime,
		EndTime:         s.End(),
		DurationSeconds: timeutil.WholeSeconds(s.Duration),
		MaxElevation:    s.MaxElevation,
	})
}

func (s *Spot) UnmarshalJSON(data []byte) error {
	var raw spotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.RiseTime = raw.RiseTime
	s.Duration = timeutil.Seconds(raw.DurationSeconds)
	s.MaxElevation = raw.MaxElevation
	return nil
}
