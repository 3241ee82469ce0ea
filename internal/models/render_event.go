package models

import "time"

// Render audit event types.
const (
	EventTotalsMismatch   = "TOTALS_MISMATCH"
	EventMalformedSegment = "MALFORMED_SEGMENT"
	EventTripIngested     = "TRIP_INGESTED"
	EventTripDeleted      = "TRIP_DELETED"
)

// KnownEventType reports whether t is one of the audit event types above.
func KnownEventType(t string) bool {
	switch t {
	case EventTotalsMismatch, EventMalformedSegment, EventTripIngested, EventTripDeleted:
		return true
	}
	return false
}

// RenderEvent is a single audit log entry.
type RenderEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // TOTALS_MISMATCH | MALFORMED_SEGMENT | TRIP_INGESTED | TRIP_DELETED
	TripID      string    `json:"trip_id,omitempty"`
	Day         int       `json:"day,omitempty"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
