package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TimelineStatus enumerates the fine-grained progress events a driver can
// report against a job. It is a wider enum than the shipment status.
type TimelineStatus string

const (
	TimelineOrderPlaced    TimelineStatus = "ORDER_PLACED"
	TimelinePickedUp       TimelineStatus = "PICKED_UP"
	TimelineInTransit      TimelineStatus = "IN_TRANSIT"
	TimelineOutForDelivery TimelineStatus = "OUT_FOR_DELIVERY"
	TimelineDelivered      TimelineStatus = "DELIVERED"
	TimelineCancelled      TimelineStatus = "CANCELLED"
)

var ErrInvalidTimelineStatus = errors.New("timeline status is invalid")

// ParseTimelineStatus validates a raw status value from transport payloads.
func ParseTimelineStatus(raw string) (TimelineStatus, error) {
	status := TimelineStatus(raw)
	switch status {
	case TimelineOrderPlaced, TimelinePickedUp, TimelineInTransit,
		TimelineOutForDelivery, TimelineDelivered, TimelineCancelled:
		return status, nil
	default:
		return "", ErrInvalidTimelineStatus
	}
}

// TimelineEntry is one event in a job's append-only status ledger. Entries are
// never mutated or deleted through normal flow; the single entry flagged
// IsCurrent represents the job's present state.
type TimelineEntry struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	Status      TimelineStatus
	Timestamp   time.Time
	Location    string
	Description string
	IsCurrent   bool
}

// NewTimelineEntry builds a ledger entry for the given job. The timestamp is
// stamped by the ledger at append time, not here.
func NewTimelineEntry(jobID uuid.UUID, status TimelineStatus, location, description string) (*TimelineEntry, error) {
	if _, err := ParseTimelineStatus(string(status)); err != nil {
		return nil, err
	}
	return &TimelineEntry{
		ID:          uuid.New(),
		JobID:       jobID,
		Status:      status,
		Location:    location,
		Description: description,
	}, nil
}
