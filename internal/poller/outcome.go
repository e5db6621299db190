package poller

import (
	"errors"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

// Loading is the exact text callers see until the first successful decode.
const Loading = "loading..."

// ErrLoading matches every loading outcome via errors.Is.
var ErrLoading = errors.New(Loading)

// LoadingError is published for failures that happen before any success.
// Error() is always Loading; Cause keeps the tick's real failure, if any.
type LoadingError struct {
	Cause error
}

func (e *LoadingError) Error() string {
	return Loading
}

func (e *LoadingError) Unwrap() error {
	return e.Cause
}

func (e *LoadingError) Is(target error) bool {
	return target == ErrLoading
}

// IsLoading reports whether err is the loading sentinel, with or without a cause.
func IsLoading(err error) bool {
	return errors.Is(err, ErrLoading)
}

// loadingCause returns the tick failure behind a loading error. The bare
// sentinel published before the first tick has none.
func loadingCause(err error) error {
	var le *LoadingError
	if errors.As(err, &le) {
		return le.Cause
	}
	return nil
}

// Outcome is one published tick result. Err == nil means delivered.
type Outcome struct {
	Spots []spots.Spot
	Err   error
}

// Delivered reports whether the outcome carries fresh spots.
func (o Outcome) Delivered() bool {
	return o.Err == nil
}
