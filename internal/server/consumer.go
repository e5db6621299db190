package server

import (
	"context"
	"log/slog"
	"time"

	appspots "github.com/preston-bernstein/iss-spotter/internal/app/spots"
	domainspots "github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/logging"
	"github.com/preston-bernstein/iss-spotter/internal/metrics"
	"github.com/preston-bernstein/iss-spotter/internal/poller"
	"github.com/preston-bernstein/iss-spotter/internal/stream"
)

const (
	sinkStream = "stream"
	sinkMQTT   = "mqtt"
)

// Source is the read side of a poller's mailbox.
type Source interface {
	TryTake() (poller.Outcome, bool)
	Notify() <-chan struct{}
}

// Broadcaster pushes frames to live clients.
type Broadcaster interface {
	Broadcast(msg stream.Message) error
}

// SpotsSink mirrors deliveries somewhere outside the process.
type SpotsSink interface {
	PublishSpots(ctx context.Context, obs domainspots.Observatory, list []domainspots.Spot, visible bool) error
}

// Consumer drains poller outcomes into the service and fans them out.
type Consumer struct {
	source      Source
	svc         *appspots.Service
	broadcaster Broadcaster
	sink        SpotsSink
	logger      *slog.Logger
	metrics     *metrics.Recorder
	interval    time.Duration
	now         func() time.Time

	// loop-only state
	fannedOut   bool
	lastVisible bool
}

// NewConsumer wires a consumer. broadcaster and sink are optional.
func NewConsumer(source Source, svc *appspots.Service, broadcaster Broadcaster, sink SpotsSink, logger *slog.Logger, recorder *metrics.Recorder) *Consumer {
	return &Consumer{
		source:      source,
		svc:         svc,
		broadcaster: broadcaster,
		sink:        sink,
		logger:      logger,
		metrics:     recorder,
		interval:    consumeInterval,
		now:         time.Now,
	}
}

// Run drains on every publish and re-checks visibility on a timer until ctx ends.
func (c *Consumer) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.source.Notify():
			c.Drain(ctx)
		case <-ticker.C:
			if !c.Drain(ctx) {
				c.refreshVisibility(ctx)
			}
		}
	}
}

// Drain handles at most one pending outcome and reports whether there was one.
func (c *Consumer) Drain(ctx context.Context) bool {
	out, ok := c.source.TryTake()
	if !ok {
		return false
	}
	if out.Err != nil {
		c.handleFailure(out.Err)
	} else {
		c.handleDelivery(ctx, out.Spots)
	}
	return true
}

func (c *Consumer) handleDelivery(ctx context.Context, list []domainspots.Spot) {
	c.svc.ReplaceSpots(list)
	c.fanOut(ctx, list, c.svc.Visible())
}

func (c *Consumer) handleFailure(err error) {
	// nothing has been attempted yet
	if err == poller.ErrLoading {
		return
	}

	c.svc.RecordFailure(err)
	if c.broadcaster != nil {
		err := c.broadcaster.Broadcast(stream.ErrorMessage(err, c.now().UTC()))
		c.metrics.RecordPublish(sinkStream, err)
	}
}

// refreshVisibility republishes when a pass starts or ends between deliveries.
func (c *Consumer) refreshVisibility(ctx context.Context) {
	if !c.fannedOut {
		return
	}
	visible := c.svc.Visible()
	if visible == c.lastVisible {
		return
	}
	c.fanOut(ctx, c.svc.Spots().Spots, visible)
}

func (c *Consumer) fanOut(ctx context.Context, list []domainspots.Spot, visible bool) {
	c.fannedOut = true
	c.lastVisible = visible

	if c.broadcaster != nil {
		err := c.broadcaster.Broadcast(stream.SpotsMessage(list, visible, c.now().UTC()))
		c.metrics.RecordPublish(sinkStream, err)
		if err != nil {
			logging.Warn(c.logger, "stream broadcast failed", "error", err)
		}
	}

	if c.sink != nil {
		err := c.sink.PublishSpots(ctx, c.svc.Observatory(), list, visible)
		c.metrics.RecordPublish(sinkMQTT, err)
		if err != nil {
			logging.Warn(c.logger, "mqtt publish failed", "error", err)
		}
	}
}
