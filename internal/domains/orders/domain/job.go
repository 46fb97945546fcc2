package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceType classifies the transportation service a customer requested.
type ServiceType string

const (
	ServiceResidentialMoving ServiceType = "RESIDENTIAL_MOVING"
	ServiceOfficeRelocation  ServiceType = "OFFICE_RELOCATION"
	ServicePalletDelivery    ServiceType = "PALLET_DELIVERY"
	ServiceSmallDeliveries   ServiceType = "SMALL_DELIVERIES"
)

// FirstJobNumber is the human-readable number assigned to the first job ever created.
const FirstJobNumber int64 = 1001

var (
	ErrEmptyCargo         = errors.New("cargo description is required")
	ErrInvalidServiceType = errors.New("service type is invalid")
	ErrIncompleteStop     = errors.New("stop requires address, city, contact person, and contact phone")
	ErrMissingPickupDate  = errors.New("requested pickup date is required")
)

// Stop describes one end of a transportation job.
type Stop struct {
	Address       string
	City          string
	ContactPerson string
	ContactPhone  string
}

// Validate ensures every contact field of the stop is present.
func (s Stop) Validate() error {
	if strings.TrimSpace(s.Address) == "" ||
		strings.TrimSpace(s.City) == "" ||
		strings.TrimSpace(s.ContactPerson) == "" ||
		strings.TrimSpace(s.ContactPhone) == "" {
		return ErrIncompleteStop
	}
	return nil
}

// Job is the aggregate root for a transportation request. It owns the status
// timeline and is paired one-to-one with a shipment. Its core fields are
// immutable after creation; only contact details may be corrected.
type Job struct {
	ID                uuid.UUID
	JobNumber         int64
	CustomerID        *uuid.UUID
	ServiceType       ServiceType
	CargoDescription  string
	Pickup            Stop
	Delivery          Stop
	RequestedPickupAt time.Time
}

// NewJob validates the invariants and builds a new Job aggregate. The job
// number is assigned later by the repository from an atomic sequence.
func NewJob(id uuid.UUID, customerID *uuid.UUID, serviceType ServiceType, cargo string, pickup, delivery Stop, requestedPickupAt time.Time) (*Job, error) {
	job := &Job{ID: id, CustomerID: customerID}
	if err := job.UpdateServiceType(serviceType); err != nil {
		return nil, err
	}
	if err := job.UpdateCargo(cargo); err != nil {
		return nil, err
	}
	if err := job.UpdateStops(pickup, delivery); err != nil {
		return nil, err
	}
	if requestedPickupAt.IsZero() {
		return nil, ErrMissingPickupDate
	}
	job.RequestedPickupAt = requestedPickupAt
	return job, nil
}

// UpdateServiceType validates known service values.
func (j *Job) UpdateServiceType(serviceType ServiceType) error {
	if serviceType == "" {
		serviceType = ServiceSmallDeliveries
	}
	switch serviceType {
	case ServiceResidentialMoving, ServiceOfficeRelocation, ServicePalletDelivery, ServiceSmallDeliveries:
		j.ServiceType = serviceType
		return nil
	default:
		return ErrInvalidServiceType
	}
}

// UpdateCargo mutates the cargo description ensuring the invariant.
func (j *Job) UpdateCargo(cargo string) error {
	if strings.TrimSpace(cargo) == "" {
		return ErrEmptyCargo
	}
	j.CargoDescription = cargo
	return nil
}

// UpdateStops replaces pickup and delivery contact details.
func (j *Job) UpdateStops(pickup, delivery Stop) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := delivery.Validate(); err != nil {
		return err
	}
	j.Pickup = pickup
	j.Delivery = delivery
	return nil
}

// DetachCustomer clears the customer reference. Used when a customer account
// is deleted; the job itself survives.
func (j *Job) DetachCustomer() {
	j.CustomerID = nil
}
