package poller

import (
	"context"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/providers"
)

// Handle is the caller's side of a running poller.
type Handle struct {
	poller  *Poller
	mailbox *Mailbox
}

// Init starts a continuous poller for obs and returns its handle.
func Init(fetcher providers.Fetcher, decoder providers.Decoder, obs spots.Observatory, interval time.Duration, opts ...Option) *Handle {
	return Start(context.Background(), New(fetcher, decoder, obs, interval, opts...))
}

// Start runs p under ctx and wraps it in a Handle.
func Start(ctx context.Context, p *Poller) *Handle {
	p.Start(ctx)
	return &Handle{poller: p, mailbox: p.Mailbox()}
}

// TryTake returns the latest unread outcome. It never blocks.
func (h *Handle) TryTake() (Outcome, bool) {
	return h.mailbox.TryTake()
}

// Update is the tri-state read: ok=false means nothing new, otherwise
// either spots or an error (including the loading sentinel).
func (h *Handle) Update() ([]spots.Spot, bool, error) {
	o, ok := h.TryTake()
	if !ok {
		return nil, false, nil
	}
	return o.Spots, true, o.Err
}

// Notify receives after each publish.
func (h *Handle) Notify() <-chan struct{} {
	return h.mailbox.Notify()
}

// Status reports the poller's recent health.
func (h *Handle) Status() Status {
	return h.poller.Status()
}

// Observatory returns the polled parameters.
func (h *Handle) Observatory() spots.Observatory {
	return h.poller.Observatory()
}

// Close stops the poller and waits for it to exit.
func (h *Handle) Close(ctx context.Context) error {
	return h.poller.Stop(ctx)
}

// Update reads h; see Handle.Update.
func Update(h *Handle) ([]spots.Spot, bool, error) {
	return h.Update()
}
