package mapper

import (
	"time"

	"github.com/google/uuid"

	transporttypes "github.com/sslogistics/logipro/internal/domains/transportation/application/types"
	"github.com/sslogistics/logipro/internal/domains/transportation/domain"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// NullableRef preserves field presence for partial assignment updates: the
// JSON key absent means "unchanged", an explicit null means "clear".
type NullableRef struct {
	Present bool
	ID      *uuid.UUID
}

// UnmarshalJSON records presence before decoding the value.
func (n *NullableRef) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.ID = nil
		return nil
	}
	var id uuid.UUID
	if err := id.UnmarshalText(trimQuotes(data)); err != nil {
		return err
	}
	n.ID = &id
	return nil
}

func trimQuotes(data []byte) []byte {
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return data[1 : len(data)-1]
	}
	return data
}

// UpdateAssignmentRequest captures a crew change payload.
type UpdateAssignmentRequest struct {
	DriverID  NullableRef `json:"driverId"`
	VehicleID NullableRef `json:"vehicleId"`
	Status    *string     `json:"status,omitempty"`
}

// AttachProofRequest adds proof-of-delivery references.
type AttachProofRequest struct {
	URLs []string `json:"urls"`
}

// CreateDriverRequest registers a driver profile.
type CreateDriverRequest struct {
	UserID        uuid.UUID `json:"userId"`
	LicenseNumber string    `json:"licenseNumber"`
	Phone         string    `json:"phone,omitempty"`
}

// CreateVehicleRequest registers a fleet vehicle.
type CreateVehicleRequest struct {
	LicensePlate string `json:"licensePlate"`
	Model        string `json:"model,omitempty"`
	CapacityKG   int    `json:"capacityKg,omitempty"`
}

// UpdateVehicleStatusRequest changes a vehicle's availability.
type UpdateVehicleStatusRequest struct {
	Status string `json:"status"`
}

// Shipment is the HTTP representation of a shipment.
type Shipment struct {
	ID                   uuid.UUID  `json:"id"`
	JobID                uuid.UUID  `json:"jobId"`
	Status               string     `json:"status"`
	DriverID             *uuid.UUID `json:"driverId,omitempty"`
	VehicleID            *uuid.UUID `json:"vehicleId,omitempty"`
	EstimatedDepartureAt *time.Time `json:"estimatedDepartureAt,omitempty"`
	ActualDepartureAt    *time.Time `json:"actualDepartureAt,omitempty"`
	EstimatedArrivalAt   *time.Time `json:"estimatedArrivalAt,omitempty"`
	ActualArrivalAt      *time.Time `json:"actualArrivalAt,omitempty"`
	ProofOfDelivery      []string   `json:"proofOfDelivery,omitempty"`
	CreatedAt            time.Time  `json:"createdAt,omitempty"`
	UpdatedAt            time.Time  `json:"updatedAt,omitempty"`
}

// Driver is the HTTP representation of a driver profile.
type Driver struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	LicenseNumber string    `json:"licenseNumber"`
	Phone         string    `json:"phone,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// Vehicle is the HTTP representation of a fleet vehicle.
type Vehicle struct {
	ID           uuid.UUID `json:"id"`
	LicensePlate string    `json:"licensePlate"`
	Model        string    `json:"model,omitempty"`
	CapacityKG   int       `json:"capacityKg,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// ToAssignmentInput maps a crew change payload into the application command.
func ToAssignmentInput(shipmentID uuid.UUID, payload UpdateAssignmentRequest) transporttypes.UpdateAssignmentInput {
	return transporttypes.UpdateAssignmentInput{
		ShipmentID: shipmentID,
		Driver:     transporttypes.RefUpdate{Set: payload.DriverID.Present, ID: payload.DriverID.ID},
		Vehicle:    transporttypes.RefUpdate{Set: payload.VehicleID.Present, ID: payload.VehicleID.ID},
		Status:     payload.Status,
	}
}

// ToProofInput maps a proof payload into the application command.
func ToProofInput(shipmentID uuid.UUID, payload AttachProofRequest) transporttypes.AttachProofInput {
	return transporttypes.AttachProofInput{ShipmentID: shipmentID, URLs: payload.URLs}
}

// FromShipment maps a shipment projection into the transport shape.
func FromShipment(p *projection.Projection[*domain.Shipment]) Shipment {
	if p == nil || p.Entity == nil {
		return Shipment{}
	}
	s := p.Entity
	return Shipment{
		ID:                   s.ID,
		JobID:                s.JobID,
		Status:               string(s.Status),
		DriverID:             s.DriverID,
		VehicleID:            s.VehicleID,
		EstimatedDepartureAt: s.EstimatedDepartureAt,
		ActualDepartureAt:    s.ActualDepartureAt,
		EstimatedArrivalAt:   s.EstimatedArrivalAt,
		ActualArrivalAt:      s.ActualArrivalAt,
		ProofOfDelivery:      s.ProofOfDelivery,
		CreatedAt:            p.Metadata.CreatedAt,
		UpdatedAt:            p.Metadata.UpdatedAt,
	}
}

// FromShipmentList maps shipment projections into transport shapes.
func FromShipmentList(list []*projection.Projection[*domain.Shipment]) []Shipment {
	result := make([]Shipment, 0, len(list))
	for _, p := range list {
		result = append(result, FromShipment(p))
	}
	return result
}

// FromDriver maps a driver projection into the transport shape.
func FromDriver(p *projection.Projection[*domain.Driver]) Driver {
	if p == nil || p.Entity == nil {
		return Driver{}
	}
	return Driver{
		ID:            p.Entity.ID,
		UserID:        p.Entity.UserID,
		LicenseNumber: p.Entity.LicenseNumber,
		Phone:         p.Entity.Phone,
		CreatedAt:     p.Metadata.CreatedAt,
		UpdatedAt:     p.Metadata.UpdatedAt,
	}
}

// FromDriverList maps driver projections into transport shapes.
func FromDriverList(list []*projection.Projection[*domain.Driver]) []Driver {
	result := make([]Driver, 0, len(list))
	for _, p := range list {
		result = append(result, FromDriver(p))
	}
	return result
}

// FromVehicle maps a vehicle projection into the transport shape.
func FromVehicle(p *projection.Projection[*domain.Vehicle]) Vehicle {
	if p == nil || p.Entity == nil {
		return Vehicle{}
	}
	return Vehicle{
		ID:           p.Entity.ID,
		LicensePlate: p.Entity.LicensePlate,
		Model:        p.Entity.Model,
		CapacityKG:   p.Entity.CapacityKG,
		Status:       string(p.Entity.Status),
		CreatedAt:    p.Metadata.CreatedAt,
		UpdatedAt:    p.Metadata.UpdatedAt,
	}
}

// FromVehicleList maps vehicle projections into transport shapes.
func FromVehicleList(list []*projection.Projection[*domain.Vehicle]) []Vehicle {
	result := make([]Vehicle, 0, len(list))
	for _, p := range list {
		result = append(result, FromVehicle(p))
	}
	return result
}
