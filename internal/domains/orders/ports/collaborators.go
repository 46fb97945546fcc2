package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sslogistics/logipro/internal/domains/orders/domain"
)

// ErrShipmentNotFound signals the job has no provisioned shipment yet.
var ErrShipmentNotFound = errors.New("shipment not found for job")

// ShipmentSummary is the coarse shipment view the orders context needs for
// status resolution.
type ShipmentSummary struct {
	Status          string
	DriverAssigned  bool
	VehicleAssigned bool
}

// ShipmentProvisioner is the transportation collaborator consumed at job
// creation and on driver progress reports.
type ShipmentProvisioner interface {
	// EnsureForJob idempotently provisions the job's shipment in the
	// unassigned PENDING state. A duplicate call is a no-op success.
	EnsureForJob(ctx context.Context, jobID uuid.UUID) error
	// SummaryForJob returns the coarse shipment state, or ErrShipmentNotFound.
	SummaryForJob(ctx context.Context, jobID uuid.UUID) (*ShipmentSummary, error)
	// MirrorProgress loosely synchronizes the shipment status with a
	// driver-reported timeline status. Jobs without a shipment are skipped.
	MirrorProgress(ctx context.Context, jobID uuid.UUID, status domain.TimelineStatus) error
	// ReleaseForJob removes the job's shipment when the job is deleted. A job
	// without a shipment is a no-op.
	ReleaseForJob(ctx context.Context, jobID uuid.UUID) error
}

// Invoicer is the billing collaborator invoked at provisioning time and on
// job deletion.
type Invoicer interface {
	EnsureDraftForJob(ctx context.Context, jobID uuid.UUID, serviceType domain.ServiceType) error
	// DropForJob removes the job's invoice when the job is deleted. A job
	// without an invoice is a no-op.
	DropForJob(ctx context.Context, jobID uuid.UUID) error
}
