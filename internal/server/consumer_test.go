package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainspots "github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/metrics"
	"github.com/preston-bernstein/iss-spotter/internal/mqtt"
	"github.com/preston-bernstein/iss-spotter/internal/poller"
	"github.com/preston-bernstein/iss-spotter/internal/stream"
	"github.com/preston-bernstein/iss-spotter/internal/teststubs"
	"github.com/preston-bernstein/iss-spotter/internal/testutil"
)

type consumerFixture struct {
	mailbox   *poller.Mailbox
	consumer  *Consumer
	broadcast *testutil.StubBroadcaster
	publisher *teststubs.StubPublisher
	recorder  *metrics.Recorder
}

func newConsumerFixture(t *testing.T) consumerFixture {
	t.Helper()
	svc, _ := testutil.NewServiceWithSpots(testutil.SampleObservatory(), nil)
	mb := poller.NewMailbox()
	bc := &testutil.StubBroadcaster{}
	pub := &teststubs.StubPublisher{}
	rec := metrics.NewRecorder()
	c := NewConsumer(mb, svc, bc, mqtt.NewSpotsPublisher(pub, "iss", nil), nil, rec)
	return consumerFixture{mailbox: mb, consumer: c, broadcast: bc, publisher: pub, recorder: rec}
}

func TestConsumerDrainDeliversToAllSinks(t *testing.T) {
	f := newConsumerFixture(t)
	list := testutil.SampleSpots(time.Now())
	f.mailbox.Publish(poller.Outcome{Spots: list})

	require.True(t, f.consumer.Drain(context.Background()))
	assert.False(t, f.consumer.Drain(context.Background()), "outcome must be consumed once")

	resp := f.consumer.svc.Spots()
	assert.Len(t, resp.Spots, 2)
	assert.False(t, resp.FetchedAt.IsZero())

	frames := f.broadcast.Messages()
	require.Len(t, frames, 1)
	assert.Equal(t, stream.MessageTypeSpots, frames[0].Type)
	assert.True(t, frames[0].Visible)

	msgs := f.publisher.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "iss/spots", msgs[0].Topic)
	assert.Equal(t, "true", string(msgs[1].Payload))

	assert.Equal(t, 1, f.recorder.Published(sinkStream))
	assert.Equal(t, 1, f.recorder.Published(sinkMQTT))
}

func TestConsumerIgnoresBareLoadingSentinel(t *testing.T) {
	f := newConsumerFixture(t)
	f.mailbox.Publish(poller.Outcome{Err: poller.ErrLoading})

	require.True(t, f.consumer.Drain(context.Background()))
	msg, _ := f.consumer.svc.LastError()
	assert.Empty(t, msg)
	assert.Empty(t, f.broadcast.Messages())
}

func TestConsumerRecordsFailures(t *testing.T) {
	f := newConsumerFixture(t)
	f.mailbox.Publish(poller.Outcome{Err: &poller.LoadingError{Cause: errors.New("500 Internal Server Error")}})

	require.True(t, f.consumer.Drain(context.Background()))
	msg, at := f.consumer.svc.LastError()
	assert.Equal(t, "loading...", msg)
	assert.False(t, at.IsZero())

	frames := f.broadcast.Messages()
	require.Len(t, frames, 1)
	assert.Equal(t, stream.MessageTypeError, frames[0].Type)
	assert.Equal(t, "loading...", frames[0].Error)
	assert.Empty(t, f.publisher.Messages(), "failures are not mirrored to mqtt")
}

func TestConsumerKeepsPublishingWhenSinkFails(t *testing.T) {
	f := newConsumerFixture(t)
	f.publisher.Err = errors.New("broker down")
	f.broadcast.Err = errors.New("no clients")

	f.mailbox.Publish(poller.Outcome{Spots: testutil.SampleSpots(time.Now())})
	require.True(t, f.consumer.Drain(context.Background()))

	assert.Len(t, f.consumer.svc.Spots().Spots, 2)
	assert.Equal(t, 1, f.recorder.Published(sinkMQTT))
	assert.Equal(t, 1, f.recorder.Published(sinkStream))
}

func TestConsumerRefreshesVisibilityOnChange(t *testing.T) {
	f := newConsumerFixture(t)
	now := time.Now()
	// pass ends well inside the test window
	list := []domainspots.Spot{{RiseTime: now.Add(-time.Minute), Duration: time.Minute + 300*time.Millisecond}}
	f.mailbox.Publish(poller.Outcome{Spots: list})
	require.True(t, f.consumer.Drain(context.Background()))
	require.True(t, f.broadcast.Messages()[0].Visible)

	f.consumer.refreshVisibility(context.Background())
	require.Len(t, f.broadcast.Messages(), 1, "no change, no frame")

	time.Sleep(400 * time.Millisecond)
	f.consumer.refreshVisibility(context.Background())

	frames := f.broadcast.Messages()
	require.Len(t, frames, 2)
	assert.False(t, frames[1].Visible)
	assert.Equal(t, "false", string(f.publisher.Messages()[3].Payload))
}

func TestConsumerRefreshBeforeFirstDeliveryIsNoop(t *testing.T) {
	f := newConsumerFixture(t)
	f.consumer.refreshVisibility(context.Background())
	assert.Empty(t, f.broadcast.Messages())
}

func TestConsumerRunDrainsOnNotify(t *testing.T) {
	f := newConsumerFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.consumer.Run(ctx)
		close(done)
	}()

	f.mailbox.Publish(poller.Outcome{Spots: testutil.SampleSpots(time.Now())})
	require.Eventually(t, func() bool { return len(f.broadcast.Messages()) == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
}
