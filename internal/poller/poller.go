package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/logging"
	"github.com/preston-bernstein/iss-spotter/internal/metrics"
	"github.com/preston-bernstein/iss-spotter/internal/providers"
)

const (
	defaultInterval = 10 * time.Minute
	defaultProvider = "upstream"
)

// Poller runs fetch, decode, publish, wait on its own goroutine and hands
// each outcome to a Mailbox.
type Poller struct {
	fetcher  providers.Fetcher
	decoder  providers.Decoder
	obs      spots.Observatory
	mailbox  *Mailbox
	logger   *slog.Logger
	metrics  *metrics.Recorder
	provider string
	interval time.Duration
	once     bool
	now      func() time.Time

	timer    *time.Timer
	done     chan struct{}
	exited   chan struct{}
	cancel   context.CancelFunc
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	// only touched by the loop goroutine
	succeeded bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	Ticks               int
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Option customizes a Poller.
type Option func(*Poller)

// WithLogger sets the logger used for tick logs.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) { p.logger = logger }
}

// WithMetrics sets the recorder for tick, fetch and supersede counters.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(p *Poller) { p.metrics = rec }
}

// WithProviderName labels fetch metrics and logs.
func WithProviderName(name string) Option {
	return func(p *Poller) {
		if name != "" {
			p.provider = name
		}
	}
}

// WithOnce makes the poller exit right after its first delivered outcome.
func WithOnce() Option {
	return func(p *Poller) { p.once = true }
}

// WithMailbox publishes into mb instead of a fresh mailbox.
func WithMailbox(mb *Mailbox) Option {
	return func(p *Poller) {
		if mb != nil {
			p.mailbox = mb
		}
	}
}

// New constructs a Poller for one observatory. A non-positive interval falls back to the default.
func New(fetcher providers.Fetcher, decoder providers.Decoder, obs spots.Observatory, interval time.Duration, opts ...Option) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	p := &Poller{
		fetcher:  fetcher,
		decoder:  decoder,
		obs:      obs,
		mailbox:  NewMailbox(),
		provider: defaultProvider,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mailbox returns the slot this poller publishes into.
func (p *Poller) Mailbox() *Mailbox {
	return p.mailbox
}

// Start spawns the polling goroutine. It runs until ctx is cancelled, Stop
// is called, or (once mode) the first delivery.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started || p.stopped() {
		p.startMu.Unlock()
		return
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.startMu.Unlock()

	p.timer = time.NewTimer(p.interval)
	p.mailbox.Publish(Outcome{Err: ErrLoading})

	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.exited)
	defer p.timer.Stop()

	p.logInfo("poller started",
		slog.Duration(logging.FieldInterval, p.interval),
		slog.Float64(logging.FieldLatitude, p.obs.Latitude),
		slog.Float64(logging.FieldLongitude, p.obs.Longitude),
	)

	for {
		if delivered := p.tick(ctx); delivered && p.once {
			p.logInfo("poller finished after first delivery")
			return
		}

		// a full interval after the tick ends, however long it took
		p.rearm()
		select {
		case <-ctx.Done():
			p.logInfo("poller stopped")
			return
		case <-p.done:
			p.logInfo("poller stopped")
			return
		case <-p.timer.C:
		}
	}
}

// Stop signals the loop, cancels any in-flight fetch, and waits for the
// goroutine to exit or ctx to expire. Safe to call more than once.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})

	p.startMu.Lock()
	started := p.started
	cancel := p.cancel
	p.startMu.Unlock()
	if !started {
		return nil
	}
	cancel()

	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) stopped() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Done is closed once the polling goroutine has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.exited
}

// tick runs one fetch-decode-publish cycle and reports whether it delivered.
func (p *Poller) tick(ctx context.Context) bool {
	start := p.now()
	p.recordAttempt(start)

	out := p.poll(ctx)
	if out.Err != nil && ctx.Err() != nil {
		// aborted by Stop; nothing worth publishing
		return false
	}

	label := metrics.OutcomeDelivered
	if out.Err != nil {
		p.recordFailure(out.Err, start)
		label = metrics.OutcomeFailed
		if !p.succeeded {
			out.Err = &LoadingError{Cause: out.Err}
			label = metrics.OutcomeLoading
		}
		p.logWarn("poller tick failed", out.Err,
			slog.String(logging.FieldErrorKind, providers.Kind(loadingCauseOr(out.Err))),
			slog.String(logging.FieldOutcome, label),
		)
	} else {
		p.succeeded = true
		p.recordSuccess(start)
		p.logInfo("poller delivered spots",
			slog.Int(logging.FieldCount, len(out.Spots)),
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		)
	}

	if p.mailbox.Publish(out) {
		p.metrics.RecordSupersede()
	}
	p.metrics.RecordPollerTick(time.Since(start), label)
	return out.Err == nil
}

func (p *Poller) poll(ctx context.Context) Outcome {
	start := time.Now()
	body, err := p.fetcher.Fetch(ctx, p.obs)
	p.metrics.RecordFetchAttempt(p.provider, time.Since(start), providers.Kind(err))
	if err != nil {
		return Outcome{Err: err}
	}

	list, err := p.decoder.Decode(body)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Spots: list}
}

func loadingCauseOr(err error) error {
	if cause := loadingCause(err); cause != nil {
		return cause
	}
	return err
}

func (p *Poller) rearm() {
	if !p.timer.Stop() {
		select {
		case <-p.timer.C:
		default:
		}
	}
	p.timer.Reset(p.interval)
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, append(args, slog.String(logging.FieldProvider, p.provider))...)
}

func (p *Poller) logWarn(msg string, err error, args ...any) {
	if p.logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, p.provider), "error", loadingCauseOr(err))
	p.logger.Warn(msg, args...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.Ticks++
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Observatory returns the parameters this poller was built for.
func (p *Poller) Observatory() spots.Observatory {
	return p.obs
}
