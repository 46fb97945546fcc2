package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sslogistics/logipro/internal/domains/transportation/domain"
	"github.com/sslogistics/logipro/internal/domains/transportation/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var (
	_ ports.ShipmentRepository = (*ShipmentRepository)(nil)
	_ ports.DriverRepository   = (*DriverRepository)(nil)
	_ ports.VehicleRepository  = (*VehicleRepository)(nil)
)

type shipmentRow struct {
	shipment  domain.Shipment
	createdAt time.Time
	updatedAt time.Time
}

// ShipmentRepository is an in-memory shipment store. The job-to-shipment
// uniqueness is enforced by keying on job ID under the mutex, giving the
// same ensure-once guarantee as the database constraint.
type ShipmentRepository struct {
	mu    sync.Mutex
	byJob map[uuid.UUID]*shipmentRow
	now   func() time.Time
}

// NewShipmentRepository creates an empty in-memory shipment store.
func NewShipmentRepository() *ShipmentRepository {
	return &ShipmentRepository{
		byJob: make(map[uuid.UUID]*shipmentRow),
		now:   time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (r *ShipmentRepository) WithClock(now func() time.Time) *ShipmentRepository {
	r.now = now
	return r
}

func (r *ShipmentRepository) EnsureForJob(_ context.Context, shipment *domain.Shipment) (*projection.Projection[*domain.Shipment], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byJob[shipment.JobID]; ok {
		return shipmentProjection(existing), nil
	}
	now := r.now().UTC()
	row := &shipmentRow{shipment: *shipment, createdAt: now, updatedAt: now}
	r.byJob[shipment.JobID] = row
	return shipmentProjection(row), nil
}

func (r *ShipmentRepository) GetByID(_ context.Context, id uuid.UUID) (*projection.Projection[*domain.Shipment], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.byJob {
		if row.shipment.ID == id {
			return shipmentProjection(row), nil
		}
	}
	return nil, ports.ErrShipmentNotFound
}

func (r *ShipmentRepository) GetByJob(_ context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Shipment], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.byJob[jobID]
	if !ok {
		return nil, ports.ErrShipmentNotFound
	}
	return shipmentProjection(row), nil
}

func (r *ShipmentRepository) Save(_ context.Context, shipment *domain.Shipment) (*projection.Projection[*domain.Shipment], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.byJob[shipment.JobID]
	if !ok || row.shipment.ID != shipment.ID {
		return nil, ports.ErrShipmentNotFound
	}
	row.shipment = *shipment
	row.updatedAt = r.now().UTC()
	return shipmentProjection(row), nil
}

func (r *ShipmentRepository) List(_ context.Context) ([]*projection.Projection[*domain.Shipment], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*shipmentRow, 0, len(r.byJob))
	for _, row := range r.byJob {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].createdAt.After(rows[j].createdAt) })
	result := make([]*projection.Projection[*domain.Shipment], 0, len(rows))
	for _, row := range rows {
		result = append(result, shipmentProjection(row))
	}
	return result, nil
}

func (r *ShipmentRepository) ListByDriver(_ context.Context, driverID uuid.UUID) ([]*projection.Projection[*domain.Shipment], error) {
	all, err := r.List(context.Background())
	if err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Shipment], 0, len(all))
	for _, p := range all {
		if p.Entity.DriverID != nil && *p.Entity.DriverID == driverID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *ShipmentRepository) DeleteByJob(_ context.Context, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byJob[jobID]; !ok {
		return ports.ErrShipmentNotFound
	}
	delete(r.byJob, jobID)
	return nil
}

func shipmentProjection(row *shipmentRow) *projection.Projection[*domain.Shipment] {
	clone := row.shipment
	clone.ProofOfDelivery = append([]string(nil), row.shipment.ProofOfDelivery...)
	return projection.New(&clone, row.createdAt, row.updatedAt)
}

type driverRow struct {
	driver    domain.Driver
	createdAt time.Time
	updatedAt time.Time
}

// DriverRepository is an in-memory driver profile store.
type DriverRepository struct {
	mu      sync.Mutex
	drivers map[uuid.UUID]*driverRow
}

// NewDriverRepository creates an empty in-memory driver store.
func NewDriverRepository() *DriverRepository {
	return &DriverRepository{drivers: make(map[uuid.UUID]*driverRow)}
}

func (r *DriverRepository) Create(_ context.Context, driver *domain.Driver) (*projection.Projection[*domain.Driver], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	row := &driverRow{driver: *driver, createdAt: now, updatedAt: now}
	r.drivers[driver.ID] = row
	return driverProjection(row), nil
}

func (r *DriverRepository) GetByID(_ context.Context, id uuid.UUID) (*projection.Projection[*domain.Driver], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.drivers[id]
	if !ok {
		return nil, ports.ErrDriverNotFound
	}
	return driverProjection(row), nil
}

func (r *DriverRepository) List(_ context.Context) ([]*projection.Projection[*domain.Driver], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*driverRow, 0, len(r.drivers))
	for _, row := range r.drivers {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].createdAt.After(rows[j].createdAt) })
	result := make([]*projection.Projection[*domain.Driver], 0, len(rows))
	for _, row := range rows {
		result = append(result, driverProjection(row))
	}
	return result, nil
}

func (r *DriverRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drivers[id]; !ok {
		return ports.ErrDriverNotFound
	}
	delete(r.drivers, id)
	return nil
}

func driverProjection(row *driverRow) *projection.Projection[*domain.Driver] {
	clone := row.driver
	return projection.New(&clone, row.createdAt, row.updatedAt)
}

type vehicleRow struct {
	vehicle   domain.Vehicle
	createdAt time.Time
	updatedAt time.Time
}

// VehicleRepository is an in-memory fleet store.
type VehicleRepository struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]*vehicleRow
}

// NewVehicleRepository creates an empty in-memory vehicle store.
func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{vehicles: make(map[uuid.UUID]*vehicleRow)}
}

func (r *VehicleRepository) Create(_ context.Context, vehicle *domain.Vehicle) (*projection.Projection[*domain.Vehicle], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	row := &vehicleRow{vehicle: *vehicle, createdAt: now, updatedAt: now}
	r.vehicles[vehicle.ID] = row
	return vehicleProjection(row), nil
}

func (r *VehicleRepository) GetByID(_ context.Context, id uuid.UUID) (*projection.Projection[*domain.Vehicle], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.vehicles[id]
	if !ok {
		return nil, ports.ErrVehicleNotFound
	}
	return vehicleProjection(row), nil
}

func (r *VehicleRepository) Save(_ context.Context, vehicle *domain.Vehicle) (*projection.Projection[*domain.Vehicle], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.vehicles[vehicle.ID]
	if !ok {
		return nil, ports.ErrVehicleNotFound
	}
	row.vehicle = *vehicle
	row.updatedAt = time.Now().UTC()
	return vehicleProjection(row), nil
}

func (r *VehicleRepository) List(_ context.Context) ([]*projection.Projection[*domain.Vehicle], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*vehicleRow, 0, len(r.vehicles))
	for _, row := range r.vehicles {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].createdAt.After(rows[j].createdAt) })
	result := make([]*projection.Projection[*domain.Vehicle], 0, len(rows))
	for _, row := range rows {
		result = append(result, vehicleProjection(row))
	}
	return result, nil
}

func (r *VehicleRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; !ok {
		return ports.ErrVehicleNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func vehicleProjection(row *vehicleRow) *projection.Projection[*domain.Vehicle] {
	clone := row.vehicle
	return projection.New(&clone, row.createdAt, row.updatedAt)
}
