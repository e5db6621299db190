package testutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

// PassesBody renders list in the open-notify response envelope.
func PassesBody(obs spots.Observatory, list []spots.Spot) []byte {
	type pass struct {
		Duration     int64 `json:"duration"`
		RiseTime     int64 `json:"risetime"`
		MaxElevation int   `json:"max_elevation,omitempty"`
	}
	passes := make([]pass, 0, len(list))
	for _, s := range list {
		passes = append(passes, pass{Duration: int64(s.Duration / time.Second), RiseTime: s.RiseTime.Unix(), MaxElevation: s.MaxElevation})
	}
	body, err := json.Marshal(map[string]any{
		"message": "success",
		"request": map[string]any{
			"latitude":  obs.Latitude,
			"longitude": obs.Longitude,
			"altitude":  obs.Altitude,
			"passes":    len(passes),
			"datetime":  time.Now().Unix(),
		},
		"response": passes,
	})
	if err != nil {
		panic(fmt.Sprintf("marshal passes: %v", err))
	}
	return body
}

// FailureBody is an open-notify envelope reporting an upstream failure.
func FailureBody(reason string) []byte {
	body, err := json.Marshal(map[string]string{"message": "failure", "reason": reason})
	if err != nil {
		panic(fmt.Sprintf("marshal failure: %v", err))
	}
	return body
}
