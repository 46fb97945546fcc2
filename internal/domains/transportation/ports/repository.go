package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sslogistics/logipro/internal/domains/transportation/domain"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var (
	ErrShipmentNotFound = errors.New("shipment not found")
	ErrDriverNotFound   = errors.New("driver not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
)

// ShipmentRepository persists shipments (outbound/driven port).
type ShipmentRepository interface {
	// EnsureForJob creates the job's shipment if absent and returns it. The
	// one-shipment-per-job rule rests on a uniqueness constraint in the
	// store, not on a read-then-insert check: a concurrent duplicate insert
	// must surface as the existing row, never as a second shipment.
	EnsureForJob(ctx context.Context, shipment *domain.Shipment) (*projection.Projection[*domain.Shipment], error)
	GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Shipment], error)
	GetByJob(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Shipment], error)
	Save(ctx context.Context, shipment *domain.Shipment) (*projection.Projection[*domain.Shipment], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Shipment], error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*projection.Projection[*domain.Shipment], error)
	DeleteByJob(ctx context.Context, jobID uuid.UUID) error
}

// DriverRepository persists driver profiles.
type DriverRepository interface {
	Create(ctx context.Context, driver *domain.Driver) (*projection.Projection[*domain.Driver], error)
	GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Driver], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Driver], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VehicleRepository persists fleet vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*projection.Projection[*domain.Vehicle], error)
	GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Vehicle], error)
	Save(ctx context.Context, vehicle *domain.Vehicle) (*projection.Projection[*domain.Vehicle], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Vehicle], error)
	Delete(ctx context.Context, id uuid.UUID) error
}
