package ports

import (
	"context"

	"github.com/google/uuid"

	transporttypes "github.com/sslogistics/logipro/internal/domains/transportation/application/types"
	"github.com/sslogistics/logipro/internal/domains/transportation/domain"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// Service defines the transportation use cases exposed to adapters
// (inbound/driving port).
type Service interface {
	// ProvisionShipment ensures the job's shipment exists and is reset to the
	// unassigned PENDING state. Safe to call repeatedly for the same job.
	ProvisionShipment(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Shipment], error)
	GetShipment(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Shipment], error)
	GetShipmentByJob(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Shipment], error)
	ListShipments(ctx context.Context) ([]*projection.Projection[*domain.Shipment], error)
	ListShipmentsByDriver(ctx context.Context, driverID uuid.UUID) ([]*projection.Projection[*domain.Shipment], error)
	// UpdateAssignment applies a crew change, running the driver and vehicle
	// preconditions and the auto-transition rule.
	UpdateAssignment(ctx context.Context, input transporttypes.UpdateAssignmentInput) (*projection.Projection[*domain.Shipment], error)
	// MirrorProgress reflects a driver-reported timeline status onto the
	// shipment. Jobs without a shipment are skipped silently.
	MirrorProgress(ctx context.Context, jobID uuid.UUID, timelineStatus string) error
	// ReleaseShipmentForJob removes the job's shipment when the job itself is
	// removed. A job without a shipment is a no-op.
	ReleaseShipmentForJob(ctx context.Context, jobID uuid.UUID) error
	AttachProofOfDelivery(ctx context.Context, input transporttypes.AttachProofInput) (*projection.Projection[*domain.Shipment], error)

	CreateDriver(ctx context.Context, input transporttypes.CreateDriverInput) (*projection.Projection[*domain.Driver], error)
	GetDriver(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Driver], error)
	ListDrivers(ctx context.Context) ([]*projection.Projection[*domain.Driver], error)
	DeleteDriver(ctx context.Context, id uuid.UUID) error

	CreateVehicle(ctx context.Context, input transporttypes.CreateVehicleInput) (*projection.Projection[*domain.Vehicle], error)
	GetVehicle(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Vehicle], error)
	ListVehicles(ctx context.Context) ([]*projection.Projection[*domain.Vehicle], error)
	UpdateVehicleStatus(ctx context.Context, input transporttypes.UpdateVehicleStatusInput) (*projection.Projection[*domain.Vehicle], error)
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
}
