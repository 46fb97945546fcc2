package mapper

import (
	"time"

	"github.com/google/uuid"

	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	"github.com/sslogistics/logipro/internal/domains/orders/domain"
)

// Stop is the HTTP representation of one end of a job.
type Stop struct {
	Address       string `json:"address"`
	City          string `json:"city"`
	ContactPerson string `json:"contactPerson,omitempty"`
	ContactPhone  string `json:"contactPhone,omitempty"`
}

// CreateJobRequest captures the inbound payload for placing a job.
type CreateJobRequest struct {
	CustomerID        *uuid.UUID `json:"customerId,omitempty"`
	ServiceType       string     `json:"serviceType"`
	CargoDescription  string     `json:"cargoDescription"`
	Pickup            Stop       `json:"pickup"`
	Delivery          Stop       `json:"delivery"`
	RequestedPickupAt time.Time  `json:"requestedPickupAt"`
}

// UpdateJobContactsRequest corrects contact details on the pickup/delivery
// stops. Nil stops stay unchanged.
type UpdateJobContactsRequest struct {
	Pickup   *Stop `json:"pickup,omitempty"`
	Delivery *Stop `json:"delivery,omitempty"`
}

// ReportProgressRequest is a driver-reported status event.
type ReportProgressRequest struct {
	Status      string `json:"status"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// TimelineEntry is the HTTP representation of one ledger entry.
type TimelineEntry struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	IsCurrent   bool      `json:"isCurrent"`
}

// Job is the HTTP representation of a job with its derived status.
type Job struct {
	ID                uuid.UUID       `json:"id"`
	JobNumber         int64           `json:"jobNumber"`
	CustomerID        *uuid.UUID      `json:"customerId,omitempty"`
	ServiceType       string          `json:"serviceType"`
	CargoDescription  string          `json:"cargoDescription"`
	Pickup            Stop            `json:"pickup"`
	Delivery          Stop            `json:"delivery"`
	RequestedPickupAt time.Time       `json:"requestedPickupAt"`
	Status            string          `json:"status"`
	Timeline          []TimelineEntry `json:"timeline,omitempty"`
	CreatedAt         time.Time       `json:"createdAt,omitempty"`
	UpdatedAt         time.Time       `json:"updatedAt,omitempty"`
}

// ToCreateInput maps an inbound payload into the application command.
func ToCreateInput(payload CreateJobRequest, idempotencyKey string) jobtypes.CreateJobInput {
	return jobtypes.CreateJobInput{
		CustomerID:        payload.CustomerID,
		ServiceType:       payload.ServiceType,
		CargoDescription:  payload.CargoDescription,
		Pickup:            toStopInput(payload.Pickup),
		Delivery:          toStopInput(payload.Delivery),
		RequestedPickupAt: payload.RequestedPickupAt,
		IdempotencyKey:    idempotencyKey,
	}
}

// ToContactsInput maps a contact correction payload into the application command.
func ToContactsInput(id uuid.UUID, payload UpdateJobContactsRequest) jobtypes.UpdateJobContactsInput {
	input := jobtypes.UpdateJobContactsInput{ID: id}
	if payload.Pickup != nil {
		stop := toStopInput(*payload.Pickup)
		input.Pickup = &stop
	}
	if payload.Delivery != nil {
		stop := toStopInput(*payload.Delivery)
		input.Delivery = &stop
	}
	return input
}

// ToProgressInput maps a driver progress payload into the application command.
func ToProgressInput(jobID uuid.UUID, payload ReportProgressRequest) jobtypes.ReportProgressInput {
	return jobtypes.ReportProgressInput{
		JobID:       jobID,
		Status:      payload.Status,
		Location:    payload.Location,
		Description: payload.Description,
	}
}

// FromProjection maps a job projection into the transport shape.
func FromProjection(p *jobtypes.JobProjection) Job {
	if p == nil || p.Job == nil {
		return Job{}
	}
	return Job{
		ID:                p.Job.ID,
		JobNumber:         p.Job.JobNumber,
		CustomerID:        p.Job.CustomerID,
		ServiceType:       string(p.Job.ServiceType),
		CargoDescription:  p.Job.CargoDescription,
		Pickup:            fromStop(p.Job.Pickup),
		Delivery:          fromStop(p.Job.Delivery),
		RequestedPickupAt: p.Job.RequestedPickupAt,
		Status:            string(p.Status),
		Timeline:          FromTimeline(p.Timeline),
		CreatedAt:         p.Metadata.CreatedAt,
		UpdatedAt:         p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps a projection slice into transport shapes.
func FromProjectionList(list []*jobtypes.JobProjection) []Job {
	result := make([]Job, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}

// FromTimeline maps ledger entries into transport shapes.
func FromTimeline(entries []*domain.TimelineEntry) []TimelineEntry {
	if len(entries) == 0 {
		return nil
	}
	result := make([]TimelineEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, FromTimelineEntry(entry))
	}
	return result
}

// FromTimelineEntry maps one ledger entry into the transport shape.
func FromTimelineEntry(entry *domain.TimelineEntry) TimelineEntry {
	if entry == nil {
		return TimelineEntry{}
	}
	return TimelineEntry{
		ID:          entry.ID,
		JobID:       entry.JobID,
		Status:      string(entry.Status),
		Timestamp:   entry.Timestamp,
		Location:    entry.Location,
		Description: entry.Description,
		IsCurrent:   entry.IsCurrent,
	}
}

func toStopInput(s Stop) jobtypes.StopInput {
	return jobtypes.StopInput{
		Address:       s.Address,
		City:          s.City,
		ContactPerson: s.ContactPerson,
		ContactPhone:  s.ContactPhone,
	}
}

func fromStop(s domain.Stop) Stop {
	return Stop{
		Address:       s.Address,
		City:          s.City,
		ContactPerson: s.ContactPerson,
		ContactPhone:  s.ContactPhone,
	}
}
