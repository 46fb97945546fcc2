package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	transporttypes "github.com/sslogistics/logipro/internal/domains/transportation/application/types"
	"github.com/sslogistics/logipro/internal/domains/transportation/domain"
	"github.com/sslogistics/logipro/internal/domains/transportation/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// Service orchestrates the transportation bounded context: shipment
// provisioning, the assignment state machine, and fleet reference data.
type Service struct {
	shipments ports.ShipmentRepository
	drivers   ports.DriverRepository
	vehicles  ports.VehicleRepository
	users     ports.UserDirectory
	logger    *slog.Logger
	now       func() time.Time
}

// Option customizes the service construction.
type Option func(*Service)

// WithLogger injects the logger used for skipped-mirror notices.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the transportation service with its dependencies.
func NewService(shipments ports.ShipmentRepository, drivers ports.DriverRepository, vehicles ports.VehicleRepository, users ports.UserDirectory, opts ...Option) *Service {
	s := &Service{
		shipments: shipments,
		drivers:   drivers,
		vehicles:  vehicles,
		users:     users,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ProvisionShipment ensures the job's shipment exists and resets it to the
// unassigned PENDING state. A job is never created with a pre-existing
// assignment, so re-provisioning clears any prior crew and progress.
func (s *Service) ProvisionShipment(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Shipment], error) {
	candidate := domain.NewShipment(uuid.New(), jobID)
	existing, err := s.shipments.EnsureForJob(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("ensure shipment for job %s: %w", jobID, err)
	}
	shipment := existing.Entity
	shipment.ResetForProvisioning()
	return s.shipments.Save(ctx, shipment)
}

func (s *Service) GetShipment(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Shipment], error) {
	return s.shipments.GetByID(ctx, id)
}

func (s *Service) GetShipmentByJob(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Shipment], error) {
	return s.shipments.GetByJob(ctx, jobID)
}

func (s *Service) ListShipments(ctx context.Context) ([]*projection.Projection[*domain.Shipment], error) {
	return s.shipments.List(ctx)
}

func (s *Service) ListShipmentsByDriver(ctx context.Context, driverID uuid.UUID) ([]*projection.Projection[*domain.Shipment], error) {
	return s.shipments.ListByDriver(ctx, driverID)
}

// UpdateAssignment applies a crew change to a shipment. Unchanged fields keep
// their prior value. An explicit status in the same request wins over the
// auto-transition, except that DELIVERED never regresses to an earlier
// active state.
func (s *Service) UpdateAssignment(ctx context.Context, input transporttypes.UpdateAssignmentInput) (*projection.Projection[*domain.Shipment], error) {
	current, err := s.shipments.GetByID(ctx, input.ShipmentID)
	if err != nil {
		return nil, err
	}
	shipment := current.Entity

	finalDriver := input.Driver.Value(shipment.DriverID)
	finalVehicle := input.Vehicle.Value(shipment.VehicleID)

	if input.Driver.Set && input.Driver.ID != nil {
		if err := s.checkDriverActive(ctx, *input.Driver.ID); err != nil {
			return nil, err
		}
	}
	// Clearing a vehicle is always allowed; only attaching one checks
	// availability.
	if input.Vehicle.Set && input.Vehicle.ID != nil {
		if err := s.checkVehicleAssignable(ctx, *input.Vehicle.ID); err != nil {
			return nil, err
		}
	}

	next := shipment.NextStatus(finalDriver, finalVehicle)
	if input.Status != nil {
		parsed, err := domain.ParseShipmentStatus(*input.Status)
		if err != nil {
			return nil, mapError(err)
		}
		next = parsed
	}

	shipment.Assign(finalDriver, finalVehicle)
	if err := shipment.ApplyStatus(next, s.now()); err != nil {
		return nil, mapError(err)
	}
	return s.shipments.Save(ctx, shipment)
}

// MirrorProgress reflects a driver-reported timeline status onto the
// shipment. Only IN_TRANSIT and DELIVERED carry over; a job without a
// shipment is skipped rather than failed, since the timeline remains the
// richer source of truth.
func (s *Service) MirrorProgress(ctx context.Context, jobID uuid.UUID, timelineStatus string) error {
	current, err := s.shipments.GetByJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, ports.ErrShipmentNotFound) {
			s.log().InfoContext(ctx, "skipping status mirror, job has no shipment",
				slog.String("job_id", jobID.String()),
				slog.String("status", timelineStatus))
			return nil
		}
		return err
	}
	shipment := current.Entity
	changed, err := shipment.MirrorTimeline(timelineStatus, s.now())
	if err != nil {
		return mapError(err)
	}
	if !changed {
		return nil
	}
	_, err = s.shipments.Save(ctx, shipment)
	return err
}

// ReleaseShipmentForJob removes the job's shipment as part of job deletion.
// Shipments are never deleted independently of their job, so this is the only
// removal path. A missing shipment is a no-op.
func (s *Service) ReleaseShipmentForJob(ctx context.Context, jobID uuid.UUID) error {
	if err := s.shipments.DeleteByJob(ctx, jobID); err != nil {
		if errors.Is(err, ports.ErrShipmentNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// AttachProofOfDelivery appends proof references to a shipment.
func (s *Service) AttachProofOfDelivery(ctx context.Context, input transporttypes.AttachProofInput) (*projection.Projection[*domain.Shipment], error) {
	current, err := s.shipments.GetByID(ctx, input.ShipmentID)
	if err != nil {
		return nil, err
	}
	shipment := current.Entity
	shipment.AttachProof(input.URLs)
	return s.shipments.Save(ctx, shipment)
}

// CreateDriver registers a driver profile after verifying the backing user
// account is active.
func (s *Service) CreateDriver(ctx context.Context, input transporttypes.CreateDriverInput) (*projection.Projection[*domain.Driver], error) {
	driver, err := domain.NewDriver(uuid.New(), input.UserID, input.LicenseNumber, input.Phone)
	if err != nil {
		return nil, mapError(err)
	}
	active, err := s.users.IsActiveUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, mapError(fmt.Errorf("%w: user %s", domain.ErrDriverInactive, input.UserID))
	}
	return s.drivers.Create(ctx, driver)
}

func (s *Service) GetDriver(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Driver], error) {
	return s.drivers.GetByID(ctx, id)
}

func (s *Service) ListDrivers(ctx context.Context) ([]*projection.Projection[*domain.Driver], error) {
	return s.drivers.List(ctx)
}

func (s *Service) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	return s.drivers.Delete(ctx, id)
}

// CreateVehicle registers a fleet vehicle in the AVAILABLE state.
func (s *Service) CreateVehicle(ctx context.Context, input transporttypes.CreateVehicleInput) (*projection.Projection[*domain.Vehicle], error) {
	vehicle, err := domain.NewVehicle(uuid.New(), input.LicensePlate, input.Model, input.CapacityKG)
	if err != nil {
		return nil, mapError(err)
	}
	return s.vehicles.Create(ctx, vehicle)
}

func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Vehicle], error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *Service) ListVehicles(ctx context.Context) ([]*projection.Projection[*domain.Vehicle], error) {
	return s.vehicles.List(ctx)
}

// UpdateVehicleStatus changes a vehicle's availability state.
func (s *Service) UpdateVehicleStatus(ctx context.Context, input transporttypes.UpdateVehicleStatusInput) (*projection.Projection[*domain.Vehicle], error) {
	current, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	vehicle := current.Entity
	status, err := domain.ParseVehicleStatus(input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	if err := vehicle.SetStatus(status); err != nil {
		return nil, mapError(err)
	}
	return s.vehicles.Save(ctx, vehicle)
}

func (s *Service) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	return s.vehicles.Delete(ctx, id)
}

func (s *Service) checkDriverActive(ctx context.Context, driverID uuid.UUID) error {
	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	active, err := s.users.IsActiveUser(ctx, driver.Entity.UserID)
	if err != nil {
		return err
	}
	if !active {
		return mapError(fmt.Errorf("%w: driver %s", domain.ErrDriverInactive, driverID))
	}
	return nil
}

func (s *Service) checkVehicleAssignable(ctx context.Context, vehicleID uuid.UUID) error {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if err := vehicle.Entity.Assignable(); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *Service) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

var _ ports.Service = (*Service)(nil)
