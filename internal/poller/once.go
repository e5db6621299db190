package poller

import (
	"context"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/providers"
)

const (
	// OnceInterval is the retry cadence of a one-shot poller.
	OnceInterval = time.Second
	// pollWait is how long the blocking variant sleeps between reads.
	pollWait = 50 * time.Millisecond
)

// Result is what SpotAsync delivers.
type Result struct {
	Spots []spots.Spot
	Err   error
}

// waiter suspends the one-shot loop until the next read is worth trying.
type waiter interface {
	wait(ctx context.Context) error
}

type sleepWaiter struct {
	d time.Duration
}

func (w sleepWaiter) wait(ctx context.Context) error {
	t := time.NewTimer(w.d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type notifyWaiter struct {
	ch <-chan struct{}
}

func (w notifyWaiter) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.ch:
		return nil
	}
}

// once starts a one-shot poller and reads until a delivery or a real
// failure. The bare loading sentinel keeps it waiting; a loading error that
// carries a tick failure ends it with that failure. The poller has exited
// by the time once returns.
func once(ctx context.Context, fetcher providers.Fetcher, decoder providers.Decoder, obs spots.Observatory, newWaiter func(*Handle) waiter, opts ...Option) ([]spots.Spot, error) {
	opts = append(opts[:len(opts):len(opts)], WithOnce())
	h := Start(ctx, New(fetcher, decoder, obs, OnceInterval, opts...))
	w := newWaiter(h)

	list, err := drain(ctx, h, w)
	if stopErr := h.Close(context.WithoutCancel(ctx)); err == nil && stopErr != nil {
		return nil, stopErr
	}
	return list, err
}

func drain(ctx context.Context, h *Handle, w waiter) ([]spots.Spot, error) {
	for {
		if o, ok := h.TryTake(); ok {
			if o.Err == nil {
				return o.Spots, nil
			}
			if !IsLoading(o.Err) {
				return nil, o.Err
			}
			if cause := loadingCause(o.Err); cause != nil {
				return nil, cause
			}
		}
		if err := w.wait(ctx); err != nil {
			return nil, err
		}
	}
}

// Spot fetches passes for one location once, blocking until done. The
// default elevation threshold applies.
func Spot(ctx context.Context, fetcher providers.Fetcher, decoder providers.Decoder, latitude, longitude, altitude float64, opts ...Option) ([]spots.Spot, error) {
	return SpotObservatory(ctx, fetcher, decoder, defaultObservatory(latitude, longitude, altitude), opts...)
}

// SpotObservatory is Spot with caller-supplied parameters.
func SpotObservatory(ctx context.Context, fetcher providers.Fetcher, decoder providers.Decoder, obs spots.Observatory, opts ...Option) ([]spots.Spot, error) {
	return once(ctx, fetcher, decoder, obs, func(*Handle) waiter {
		return sleepWaiter{d: pollWait}
	}, opts...)
}

// SpotAsync is Spot without blocking the caller. The channel receives
// exactly one Result and is then closed.
func SpotAsync(ctx context.Context, fetcher providers.Fetcher, decoder providers.Decoder, latitude, longitude, altitude float64, opts ...Option) <-chan Result {
	return SpotObservatoryAsync(ctx, fetcher, decoder, defaultObservatory(latitude, longitude, altitude), opts...)
}

// SpotObservatoryAsync is SpotAsync with caller-supplied parameters.
func SpotObservatoryAsync(ctx context.Context, fetcher providers.Fetcher, decoder providers.Decoder, obs spots.Observatory, opts ...Option) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		list, err := once(ctx, fetcher, decoder, obs, func(h *Handle) waiter {
			return notifyWaiter{ch: h.Notify()}
		}, opts...)
		out <- Result{Spots: list, Err: err}
	}()
	return out
}

func defaultObservatory(latitude, longitude, altitude float64) spots.Observatory {
	return spots.Observatory{
		Latitude:     latitude,
		Longitude:    longitude,
		Altitude:     altitude,
		MinElevation: spots.DefaultMinElevation,
	}
}
