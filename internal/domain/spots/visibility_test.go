package spots

import (
	"testing"
	"time"
)

func samplePasses(base time.Time) []Spot {
	return []Spot{
		{RiseTime: base.Add(-10 * time.Minute), Duration: 5 * time.Minute},
		{RiseTime: base.Add(-2 * time.Minute), Duration: 6 * time.Minute},
		{RiseTime: base.Add(90 * time.Minute), Duration: 4 * time.Minute},
		{RiseTime: base.Add(8 * time.Hour), Duration: 3 * time.Minute},
	}
}

func TestFindCurrent(t *testing.T) {
	now := time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC)
	list := samplePasses(now)

	cur, ok := FindCurrent(list, nil, now)
	if !ok {
		t.Fatalf("expected a current pass")
	}
	if !cur.RiseTime.Equal(now.Add(-2 * time.Minute)) {
		t.Fatalf("unexpected current pass %+v", cur)
	}
	if !IsVisibleNow(list, now) {
		t.Fatalf("expected visible now")
	}
	if IsVisibleNow(list, now.Add(30*time.Minute)) {
		t.Fatalf("expected nothing visible between passes")
	}
}

func TestFindCurrentRejectsDaylightPass(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	list := []Spot{{RiseTime: now.Add(-time.Minute), Duration: 5 * time.Minute}}
	day := DayTime{Sunrise: now.Add(-6 * time.Hour), Sunset: now.Add(5 * time.Hour)}

	if _, ok := FindCurrent(list, &day, now); ok {
		t.Fatalf("expected daylight pass to be rejected")
	}
	if _, ok := FindCurrent(list, nil, now); !ok {
		t.Fatalf("expected pass without daylight filter")
	}
}

func TestFindUpcoming(t *testing.T) {
	now := time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC)
	list := samplePasses(now)

	next, ok := FindUpcoming(list, nil, now)
	if !ok || !next.RiseTime.Equal(now.Add(90*time.Minute)) {
		t.Fatalf("unexpected upcoming pass %+v ok=%v", next, ok)
	}

	// Daylight window covering the 90m pass pushes the answer to the 8h pass.
	day := DayTime{Sunrise: now.Add(time.Hour), Sunset: now.Add(2 * time.Hour)}
	next, ok = FindUpcoming(list, &day, now)
	if !ok || !next.RiseTime.Equal(now.Add(8*time.Hour)) {
		t.Fatalf("expected night pass, got %+v ok=%v", next, ok)
	}

	if _, ok := FindUpcoming(list, nil, now.Add(24*time.Hour)); ok {
		t.Fatalf("expected no upcoming pass")
	}
}
