package spots

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSpotJSONUsesSeconds(t *testing.T) {
	s := Spot{RiseTime: time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC), Duration: 7 * time.Minute}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"durationSeconds":420`) || !strings.Contains(body, `"endTime":"2024-03-01T21:07:00Z"`) {
		t.Fatalf("unexpected json %s", body)
	}
	if strings.Contains(body, "maxElevation") {
		t.Fatalf("expected zero elevation to be omitted, got %s", body)
	}

	var back Spot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.RiseTime.Equal(s.RiseTime) || back.Duration != s.Duration {
		t.Fatalf("expected %+v, got %+v", s, back)
	}
}
