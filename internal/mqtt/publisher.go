package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/logging"
)

// DefaultTopicPrefix roots every topic when none is configured.
const DefaultTopicPrefix = "iss-spotter"

// Sender is the transport SpotsPublisher writes through.
type Sender interface {
	Publish(ctx context.Context, topic string, retained bool, payload []byte) error
	Close()
}

// SpotsPublisher mirrors the latest delivered spots onto retained topics.
type SpotsPublisher struct {
	sender Sender
	prefix string
	logger *slog.Logger
}

type spotsPayload struct {
	Observatory spots.Observatory `json:"observatory"`
	Spots       []spots.Spot      `json:"spots"`
}

// NewSpotsPublisher constructs a publisher rooted at prefix.
func NewSpotsPublisher(sender Sender, prefix string, logger *slog.Logger) *SpotsPublisher {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &SpotsPublisher{sender: sender, prefix: prefix, logger: logger}
}

// SpotsTopic carries the full list as JSON.
func (p *SpotsPublisher) SpotsTopic() string { return p.prefix + "/spots" }

// VisibleTopic carries "true" while a pass is overhead.
func (p *SpotsPublisher) VisibleTopic() string { return p.prefix + "/visible" }

// PublishSpots writes the list and the visibility flag, both retained.
func (p *SpotsPublisher) PublishSpots(ctx context.Context, obs spots.Observatory, list []spots.Spot, visible bool) error {
	if list == nil {
		list = []spots.Spot{}
	}
	data, err := json.Marshal(spotsPayload{Observatory: obs, Spots: list})
	if err != nil {
		return fmt.Errorf("marshal spots: %w", err)
	}
	if err := p.sender.Publish(ctx, p.SpotsTopic(), true, data); err != nil {
		return err
	}
	if err := p.sender.Publish(ctx, p.VisibleTopic(), true, []byte(strconv.FormatBool(visible))); err != nil {
		return err
	}
	if p.logger != nil {
		p.logger.Debug("published spots",
			slog.String(logging.FieldTopic, p.SpotsTopic()),
			slog.Int(logging.FieldCount, len(list)),
		)
	}
	return nil
}

// Close releases the underlying sender.
func (p *SpotsPublisher) Close() {
	p.sender.Close()
}
