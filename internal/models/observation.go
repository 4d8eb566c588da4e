package models

import "time"

// Observation is a single poll-log entry.
type Observation struct {
	ObservationID string    `json:"observation_id"`
	ObservedAt    time.Time `json:"observed_at"`
	Type          string    `json:"type"`        // POLL | POLL_ERROR | CURVE_UPDATE
	Description   string    `json:"description"` // human-readable
	Metadata      any       `json:"metadata,omitempty"`
}
