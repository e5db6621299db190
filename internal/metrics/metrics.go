package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
	errorsByKind    map[string]int
}

// Recorder keeps in-memory counters for tests and /ready, and forwards to
// OpenTelemetry instruments when Setup configured them.
type Recorder struct {
	mu         sync.Mutex
	stats      map[string]*providerStats
	ticks      map[string]int
	superseded int
	published  map[string]int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*providerStats),
		ticks:     make(map[string]int),
		published: make(map[string]int),
		otel:      otel,
	}
}

// RecordFetchAttempt counts one upstream call. kind is the error class ("ok" on success).
func (r *Recorder) RecordFetchAttempt(provider string, duration time.Duration, kind string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{errorsByKind: make(map[string]int)}
		r.stats[provider] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if kind != OutcomeOK {
		stats.errors++
		stats.errorsByKind[kind]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(provider, duration, kind)
	}
}

// RecordPollerTick counts one fetch-decode-publish cycle by its published outcome.
func (r *Recorder) RecordPollerTick(duration time.Duration, outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ticks[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPollerTick(duration, outcome)
	}
}

// RecordSupersede counts an unread outcome replaced by a newer one.
func (r *Recorder) RecordSupersede() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.superseded++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSupersede()
	}
}

// RecordPublish counts a delivered result pushed to a downstream sink (stream, mqtt).
func (r *Recorder) RecordPublish(sink string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.published[sink]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPublish(sink, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the stats recorded for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
	ErrorsByKind    map[string]int
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	kinds := make(map[string]int, len(stats.errorsByKind))
	for k, v := range stats.errorsByKind {
		kinds[k] = v
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
		ErrorsByKind:    kinds,
	}
}

// FetchCalls returns the total attempts recorded for a provider.
func (r *Recorder) FetchCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// FetchErrors returns the failed attempts recorded for a provider.
func (r *Recorder) FetchErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// Ticks returns how many poller ticks ended with outcome.
func (r *Recorder) Ticks(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks[outcome]
}

// Superseded returns how many unread outcomes were overwritten.
func (r *Recorder) Superseded() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.superseded
}

// Published returns how many results were pushed to sink.
func (r *Recorder) Published(sink string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.published[sink]
}
