package stream

import (
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

// MessageType tags what a stream message carries.
type MessageType string

const (
	MessageTypeSpots MessageType = "spots"
	MessageTypeError MessageType = "error"
)

// Message is one frame pushed to websocket clients.
type Message struct {
	Type    MessageType  `json:"type"`
	At      time.Time    `json:"at"`
	Visible bool         `json:"visible"`
	Spots   []spots.Spot `json:"spots,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SpotsMessage builds a delivery frame.
func SpotsMessage(list []spots.Spot, visible bool, at time.Time) Message {
	return Message{Type: MessageTypeSpots, At: at, Visible: visible, Spots: list}
}

// ErrorMessage builds a failure frame.
func ErrorMessage(err error, at time.Time) Message {
	return Message{Type: MessageTypeError, At: at, Error: err.Error()}
}
