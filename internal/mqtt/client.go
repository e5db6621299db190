package mqtt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/preston-bernstein/iss-spotter/internal/logging"
)

const (
	publishQoS     = 1
	publishTimeout = 5 * time.Second
	connectPoll    = 200 * time.Millisecond
	quiesceMillis  = 250
)

// ErrStopped is returned by Connect and Publish after Close.
var ErrStopped = errors.New("mqtt client stopped")

// ErrNotConnected is returned when publishing without a broker connection.
var ErrNotConnected = errors.New("mqtt client not connected")

// Config describes the broker connection.
type Config struct {
	Broker   string
	Port     int
	ClientID string
	Logger   *slog.Logger
}

// Client wraps a paho client with connection state and an idempotent Close.
type Client struct {
	client    paho.Client
	logger    *slog.Logger
	mu        sync.RWMutex
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewClient builds a client that reconnects on its own once connected.
func NewClient(cfg Config) *Client {
	c := &Client{
		logger: cfg.Logger,
		stopCh: make(chan struct{}),
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Broker, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	opts.SetOnConnectHandler(func(_ paho.Client) {
		c.setConnected(true)
		logging.Info(c.logger, "mqtt connected", "broker", cfg.Broker, "port", cfg.Port)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		c.setConnected(false)
		logging.Warn(c.logger, "mqtt connection lost", "error", err)
	})

	c.client = paho.NewClient(opts)
	return c
}

// Connect waits for the initial connection, honoring ctx and Close.
func (c *Client) Connect(ctx context.Context) error {
	select {
	case <-c.stopCh:
		return ErrStopped
	default:
	}
	if c.IsConnected() {
		return nil
	}

	token := c.client.Connect()
	for {
		if token.WaitTimeout(connectPoll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			return ErrStopped
		default:
		}
	}
}

// Publish sends payload at QoS 1 and waits for the broker to acknowledge it.
func (c *Client) Publish(ctx context.Context, topic string, retained bool, payload []byte) error {
	select {
	case <-c.stopCh:
		return ErrStopped
	default:
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, publishQoS, retained, payload)
	wait := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < wait {
			wait = d
		}
	}
	if !token.WaitTimeout(wait) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	connected := c.connected
	c.mu.RUnlock()
	return connected && c.client.IsConnected()
}

// Close disconnects from the broker. Safe to call more than once.
func (c *Client) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		c.client.Disconnect(quiesceMillis)
		c.setConnected(false)
		logging.Info(c.logger, "mqtt disconnected")
	})
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}
