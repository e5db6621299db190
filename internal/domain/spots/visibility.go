package spots

import "time"

// FindCurrent returns the first spot visible at now. With a non-nil day, a
// pass rising in daylight counts as not visible.
func FindCurrent(list []Spot, day *DayTime, now time.Time) (Spot, bool) {
	for _, s := range list {
		if !s.IsVisible(now) {
			continue
		}
		if day != nil && !s.AtNight(*day) {
			return Spot{}, false
		}
		return s, true
	}
	return Spot{}, false
}

// FindUpcoming returns the first spot rising after now, skipping daylight
// passes when day is non-nil.
func FindUpcoming(list []Spot, day *DayTime, now time.Time) (Spot, bool) {
	for _, s := range list {
		if !s.RiseTime.After(now) {
			continue
		}
		if day != nil && !s.AtNight(*day) {
			continue
		}
		return s, true
	}
	return Spot{}, false
}

// IsVisibleNow is the "currently visible" predicate over a pass list.
func IsVisibleNow(list []Spot, now time.Time) bool {
	_, ok := FindCurrent(list, nil, now)
	return ok
}
