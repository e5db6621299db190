package timeutil

import (
	"testing"
	"time"
)

func TestFromUnixIsUTC(t *testing.T) {
	got := FromUnix(1700000000)
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got.Location())
	}
	if !got.Equal(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestSecondsConversions(t *testing.T) {
	if got := Seconds(int64(420)); got != 7*time.Minute {
		t.Fatalf("expected 7m, got %s", got)
	}
	if got := Seconds(int64(-1)); got != -time.Second {
		t.Fatalf("expected -1s, got %s", got)
	}
	if got := WholeSeconds(90*time.Second + 900*time.Millisecond); got != 90 {
		t.Fatalf("expected truncation to 90, got %d", got)
	}
}
