package model

import "time"

const EventSeeded = "seeded"

// DatasetEvent is published to Kafka after the customers table was replaced.
type DatasetEvent struct {
	ID         string    `json:"id"` // ULID
	Type       string    `json:"type"`
	Rows       int       `json:"rows"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}
