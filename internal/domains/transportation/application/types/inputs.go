package types

import "github.com/google/uuid"

// RefUpdate is a tri-state reference change for partial updates: leave the
// field alone (Set=false), clear it (Set=true, ID=nil), or point it at a new
// aggregate (Set=true, ID!=nil).
type RefUpdate struct {
	Set bool
	ID  *uuid.UUID
}

// Value returns the reference that will hold after applying the update to
// the given prior value.
func (r RefUpdate) Value(prior *uuid.UUID) *uuid.UUID {
	if !r.Set {
		return prior
	}
	return r.ID
}

// UpdateAssignmentInput mutates a shipment's crew and, optionally, its
// status. An omitted status is derived from the resulting assignment.
type UpdateAssignmentInput struct {
	ShipmentID uuid.UUID
	Driver     RefUpdate
	Vehicle    RefUpdate
	Status     *string
}

// AttachProofInput adds proof-of-delivery references to a shipment.
type AttachProofInput struct {
	ShipmentID uuid.UUID
	URLs       []string
}

// CreateDriverInput registers a driver profile for an existing user account.
type CreateDriverInput struct {
	UserID        uuid.UUID
	LicenseNumber string
	Phone         string
}

// CreateVehicleInput registers a fleet vehicle.
type CreateVehicleInput struct {
	LicensePlate string
	Model        string
	CapacityKG   int
}

// UpdateVehicleStatusInput changes a vehicle's availability.
type UpdateVehicleStatusInput struct {
	VehicleID uuid.UUID
	Status    string
}
