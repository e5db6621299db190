package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// StatusError captures a non-2xx upstream response. Error() renders the
// status line ("500 Internal Server Error") so callers can match on it.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.StatusCode)
	if text == "" {
		return fmt.Sprintf("%d", e.StatusCode)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, text)
}

// DecodeError wraps a malformed or unexpected response body.
type DecodeError struct {
	Provider string
	Err      error
}

func (e *DecodeError) Error() string {
	msg := "malformed response"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Provider != "" {
		return e.Provider + ": " + msg
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// AsDecodeError attempts to unwrap an error into a DecodeError.
func AsDecodeError(err error) (*DecodeError, bool) {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr, true
	}
	return nil, false
}

// Kind classifies a fetch/decode failure for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	if _, ok := AsStatusError(err); ok {
		return "status"
	}
	if _, ok := AsDecodeError(err); ok {
		return "decode"
	}
	return "transport"
}
