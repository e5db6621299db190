package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Info(nil, "x")
	Warn(nil, "x")
	Error(nil, "x", errors.New("boom"))
}

func TestErrorAppendsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "fetch failed", errors.New("boom"))

	if !strings.Contains(buf.String(), "error=boom") {
		t.Fatalf("expected error field, got %q", buf.String())
	}
}
