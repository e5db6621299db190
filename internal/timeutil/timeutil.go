package timeutil

import "time"

// FromUnix converts epoch seconds to a UTC time.
func FromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// Seconds converts a whole-second count to a Duration.
func Seconds[T ~int64 | ~int](n T) time.Duration {
	return time.Duration(n) * time.Second
}

// WholeSeconds truncates d to whole seconds.
func WholeSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
