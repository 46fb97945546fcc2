package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ShipmentStatus is the operational state of a shipment.
type ShipmentStatus string

// The shipment enum is deliberately coarser than the job timeline enum. The
// fine-grained progress lives in the timeline ledger; the shipment only needs
// enough state to drive assignment and delivery handling.
const (
	ShipmentPending   ShipmentStatus = "PENDING"
	ShipmentAssigned  ShipmentStatus = "ASSIGNED"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
	ShipmentFailed    ShipmentStatus = "FAILED"
)

var (
	ErrInvalidShipmentStatus = errors.New("invalid shipment status")
	ErrShipmentDelivered     = errors.New("shipment already delivered")
)

var shipmentStatuses = map[ShipmentStatus]struct{}{
	ShipmentPending:   {},
	ShipmentAssigned:  {},
	ShipmentInTransit: {},
	ShipmentDelivered: {},
	ShipmentFailed:    {},
}

// ParseShipmentStatus validates a raw status value.
func ParseShipmentStatus(raw string) (ShipmentStatus, error) {
	status := ShipmentStatus(raw)
	if _, ok := shipmentStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidShipmentStatus, raw)
	}
	return status, nil
}

// Shipment is the execution side of a job: who moves it, with what, and how
// far along it is. Exactly one shipment exists per job.
type Shipment struct {
	ID                   uuid.UUID
	JobID                uuid.UUID
	Status               ShipmentStatus
	DriverID             *uuid.UUID
	VehicleID            *uuid.UUID
	EstimatedDepartureAt *time.Time
	ActualDepartureAt    *time.Time
	EstimatedArrivalAt   *time.Time
	ActualArrivalAt      *time.Time
	ProofOfDelivery      []string
}

// NewShipment provisions the shipment for a job in its initial state.
func NewShipment(id, jobID uuid.UUID) *Shipment {
	return &Shipment{
		ID:     id,
		JobID:  jobID,
		Status: ShipmentPending,
	}
}

// ResetForProvisioning returns the shipment to its just-provisioned state.
// Used when a job is re-submitted and its shipment already exists.
func (s *Shipment) ResetForProvisioning() {
	s.Status = ShipmentPending
	s.DriverID = nil
	s.VehicleID = nil
	s.EstimatedDepartureAt = nil
	s.ActualDepartureAt = nil
	s.EstimatedArrivalAt = nil
	s.ActualArrivalAt = nil
	s.ProofOfDelivery = nil
}

// NextStatus derives the status that follows an assignment change when the
// request carried no explicit status. A full crew on a pending shipment moves
// it to ASSIGNED; an incomplete or cleared crew demotes ASSIGNED back to
// PENDING. Anything already in motion keeps its status.
func (s *Shipment) NextStatus(driverID, vehicleID *uuid.UUID) ShipmentStatus {
	fullCrew := driverID != nil && vehicleID != nil
	switch s.Status {
	case ShipmentPending:
		if fullCrew {
			return ShipmentAssigned
		}
		return ShipmentPending
	case ShipmentAssigned:
		if !fullCrew {
			return ShipmentPending
		}
		return ShipmentAssigned
	default:
		return s.Status
	}
}

// ApplyStatus moves the shipment to the given status. A delivered shipment
// is terminal except for marking it FAILED, which stays available for
// after-the-fact dispute handling.
func (s *Shipment) ApplyStatus(status ShipmentStatus, now time.Time) error {
	if _, ok := shipmentStatuses[status]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidShipmentStatus, status)
	}
	if s.Status == ShipmentDelivered && status != ShipmentDelivered && status != ShipmentFailed {
		return ErrShipmentDelivered
	}
	s.Status = status
	switch status {
	case ShipmentInTransit:
		if s.ActualDepartureAt == nil {
			at := now.UTC()
			s.ActualDepartureAt = &at
		}
	case ShipmentDelivered:
		if s.ActualArrivalAt == nil {
			at := now.UTC()
			s.ActualArrivalAt = &at
		}
	}
	return nil
}

// Assign sets or clears the crew. Clearing is always allowed; validation of
// the driver and vehicle preconditions lives in the application layer where
// the other aggregates are reachable.
func (s *Shipment) Assign(driverID, vehicleID *uuid.UUID) {
	s.DriverID = driverID
	s.VehicleID = vehicleID
}

// AttachProof appends proof-of-delivery references, skipping duplicates.
func (s *Shipment) AttachProof(urls []string) {
	for _, url := range urls {
		if url == "" || s.hasProof(url) {
			continue
		}
		s.ProofOfDelivery = append(s.ProofOfDelivery, url)
	}
}

func (s *Shipment) hasProof(url string) bool {
	for _, existing := range s.ProofOfDelivery {
		if existing == url {
			return true
		}
	}
	return false
}

// MirrorTimeline reflects a job timeline status onto the shipment. Only the
// in-motion statuses carry over; everything else leaves the shipment alone.
func (s *Shipment) MirrorTimeline(timelineStatus string, now time.Time) (bool, error) {
	switch ShipmentStatus(timelineStatus) {
	case ShipmentInTransit, ShipmentDelivered:
		if err := s.ApplyStatus(ShipmentStatus(timelineStatus), now); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}
