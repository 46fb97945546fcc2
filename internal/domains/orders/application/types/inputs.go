package types

import (
	"time"

	"github.com/google/uuid"
)

// StopInput carries one end of a job in create/update commands.
type StopInput struct {
	Address       string
	City          string
	ContactPerson string
	ContactPhone  string
}

// CreateJobInput captures the request to place a new transportation job.
type CreateJobInput struct {
	CustomerID        *uuid.UUID
	ServiceType       string
	CargoDescription  string
	Pickup            StopInput
	Delivery          StopInput
	RequestedPickupAt time.Time
	// IdempotencyKey deduplicates retried create requests when the durable
	// orchestrator is enabled.
	IdempotencyKey string
}

// UpdateJobContactsInput corrects contact details on an existing job. The
// core fields of a job stay immutable after creation.
type UpdateJobContactsInput struct {
	ID       uuid.UUID
	Pickup   *StopInput
	Delivery *StopInput
}

// JobIdentifier addresses a single job.
type JobIdentifier struct {
	ID uuid.UUID
}

// ReportProgressInput is a driver-reported status event for a job.
type ReportProgressInput struct {
	JobID       uuid.UUID
	Status      string
	Location    string
	Description string
}
