package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

// FetchStep is one scripted Fetch result.
type FetchStep struct {
	Body []byte
	Err  error
}

// StubFetcher is a test double for providers.Fetcher. It replays Steps in
// order and repeats the last one once exhausted. When Gate is set every call
// waits for a value on it (or ctx cancellation) before returning.
type StubFetcher struct {
	Steps  []FetchStep
	Gate   chan struct{}
	Calls  atomic.Int32
	Notify chan struct{}

	mu       sync.Mutex
	observed []spots.Observatory
}

// Fetch returns the next scripted step while tracking calls.
func (s *StubFetcher) Fetch(ctx context.Context, obs spots.Observatory) ([]byte, error) {
	n := int(s.Calls.Add(1))
	s.mu.Lock()
	s.observed = append(s.observed, obs)
	s.mu.Unlock()

	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if len(s.Steps) == 0 {
		return nil, nil
	}
	idx := n - 1
	if idx >= len(s.Steps) {
		idx = len(s.Steps) - 1
	}
	step := s.Steps[idx]
	return step.Body, step.Err
}

// Observed returns the observatories passed to Fetch so far.
func (s *StubFetcher) Observed() []spots.Observatory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]spots.Observatory, len(s.observed))
	copy(out, s.observed)
	return out
}

// DecodeResult is what StubDecoder returns for a given body.
type DecodeResult struct {
	Spots []spots.Spot
	Err   error
}

// StubDecoder is a test double for providers.Decoder keyed by body text.
// Bodies without an entry get Default.
type StubDecoder struct {
	Results map[string]DecodeResult
	Default DecodeResult
	Calls   atomic.Int32
}

// Decode looks up the body in Results.
func (s *StubDecoder) Decode(body []byte) ([]spots.Spot, error) {
	s.Calls.Add(1)
	if res, ok := s.Results[string(body)]; ok {
		return res.Spots, res.Err
	}
	return s.Default.Spots, s.Default.Err
}

// Message is one call recorded by StubPublisher.
type Message struct {
	Topic    string
	Retained bool
	Payload  []byte
}

// StubPublisher is a test double for mqtt.Client publishing.
type StubPublisher struct {
	Err error

	mu       sync.Mutex
	messages []Message
	closed   bool
}

// Publish records the message and returns Err.
func (s *StubPublisher) Publish(ctx context.Context, topic string, retained bool, payload []byte) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.messages = append(s.messages, Message{Topic: topic, Retained: retained, Payload: payload})
	return nil
}

// Close marks the publisher closed.
func (s *StubPublisher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Messages returns a copy of the recorded messages.
func (s *StubPublisher) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Closed reports whether Close was called.
func (s *StubPublisher) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
