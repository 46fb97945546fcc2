package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// VehicleStatus is the availability state of a vehicle.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleInUse       VehicleStatus = "IN_USE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

var (
	ErrInvalidVehicleStatus = errors.New("invalid vehicle status")
	ErrVehicleUnavailable   = errors.New("vehicle is not available for assignment")
	ErrEmptyPlate           = errors.New("license plate is required")
)

var vehicleStatuses = map[VehicleStatus]struct{}{
	VehicleAvailable:   {},
	VehicleInUse:       {},
	VehicleMaintenance: {},
}

// ParseVehicleStatus validates a raw vehicle status value.
func ParseVehicleStatus(raw string) (VehicleStatus, error) {
	status := VehicleStatus(raw)
	if _, ok := vehicleStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidVehicleStatus, raw)
	}
	return status, nil
}

// Vehicle is fleet reference data. Its status gates assignment: only an
// AVAILABLE vehicle may be attached to a shipment.
type Vehicle struct {
	ID           uuid.UUID
	LicensePlate string
	Model        string
	CapacityKG   int
	Status       VehicleStatus
}

// NewVehicle creates a vehicle in the AVAILABLE state.
func NewVehicle(id uuid.UUID, licensePlate, model string, capacityKG int) (*Vehicle, error) {
	plate := strings.ToUpper(strings.TrimSpace(licensePlate))
	if plate == "" {
		return nil, ErrEmptyPlate
	}
	return &Vehicle{
		ID:           id,
		LicensePlate: plate,
		Model:        strings.TrimSpace(model),
		CapacityKG:   capacityKG,
		Status:       VehicleAvailable,
	}, nil
}

// Assignable reports whether the vehicle may be attached to a shipment.
func (v *Vehicle) Assignable() error {
	if v.Status != VehicleAvailable {
		return fmt.Errorf("%w: vehicle %s is %s", ErrVehicleUnavailable, v.LicensePlate, v.Status)
	}
	return nil
}

// SetStatus moves the vehicle to the given availability state.
func (v *Vehicle) SetStatus(status VehicleStatus) error {
	if _, ok := vehicleStatuses[status]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidVehicleStatus, status)
	}
	v.Status = status
	return nil
}
