package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/sslogistics/logipro/internal/domains/transportation/domain"
	"github.com/sslogistics/logipro/internal/domains/transportation/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var (
	_ ports.ShipmentRepository = (*ShipmentRepository)(nil)
	_ ports.DriverRepository   = (*DriverRepository)(nil)
	_ ports.VehicleRepository  = (*VehicleRepository)(nil)
)

// shipmentRecord maps the shipment aggregate. The unique index on job_id is
// what makes provisioning idempotent under concurrency: a losing duplicate
// insert surfaces as a duplicated-key error and is resolved to the winner's
// row.
type shipmentRecord struct {
	ID                   uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	JobID                uuid.UUID      `gorm:"column:job_id;type:uuid;uniqueIndex:uniq_shipment_job;not null"`
	Status               string         `gorm:"column:status;type:varchar(32)"`
	DriverID             *uuid.UUID     `gorm:"column:driver_id;type:uuid;index"`
	VehicleID            *uuid.UUID     `gorm:"column:vehicle_id;type:uuid;index"`
	EstimatedDepartureAt *time.Time     `gorm:"column:estimated_departure_at"`
	ActualDepartureAt    *time.Time     `gorm:"column:actual_departure_at"`
	EstimatedArrivalAt   *time.Time     `gorm:"column:estimated_arrival_at"`
	ActualArrivalAt      *time.Time     `gorm:"column:actual_arrival_at"`
	ProofOfDelivery      pq.StringArray `gorm:"column:proof_of_delivery;type:text[]"`
	CreatedAt            time.Time      `gorm:"column:created_at;index"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
}

func (shipmentRecord) TableName() string { return "shipments" }

type driverRecord struct {
	ID            uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex"`
	LicenseNumber string    `gorm:"column:license_number"`
	Phone         string    `gorm:"column:phone"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (driverRecord) TableName() string { return "drivers" }

type vehicleRecord struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	LicensePlate string    `gorm:"column:license_plate;uniqueIndex"`
	Model        string    `gorm:"column:model"`
	CapacityKG   int       `gorm:"column:capacity_kg"`
	Status       string    `gorm:"column:status;type:varchar(32)"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (vehicleRecord) TableName() string { return "vehicles" }

// ShipmentRepository persists shipments in PostgreSQL using GORM.
type ShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository wires the PostgreSQL shipment store.
func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	repo := &ShipmentRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&shipmentRecord{})
	}
	return repo
}

// EnsureForJob inserts the candidate shipment, treating a duplicate-key hit
// on job_id as "already provisioned" and returning the existing row.
func (r *ShipmentRepository) EnsureForJob(ctx context.Context, shipment *domain.Shipment) (*projection.Projection[*domain.Shipment], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toShipmentRecord(shipment)
	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}
	return r.GetByJob(ctx, shipment.JobID)
}

func (r *ShipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Shipment], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shipmentRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrShipmentNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *ShipmentRepository) GetByJob(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Shipment], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shipmentRecord
	if err := r.db.WithContext(ctx).First(&record, "job_id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrShipmentNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *ShipmentRepository) Save(ctx context.Context, shipment *domain.Shipment) (*projection.Projection[*domain.Shipment], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toShipmentRecord(shipment)
	result := r.db.WithContext(ctx).Model(&shipmentRecord{}).Where("id = ?", shipment.ID).Updates(map[string]any{
		"status":                 record.Status,
		"driver_id":              record.DriverID,
		"vehicle_id":             record.VehicleID,
		"estimated_departure_at": record.EstimatedDepartureAt,
		"actual_departure_at":    record.ActualDepartureAt,
		"estimated_arrival_at":   record.EstimatedArrivalAt,
		"actual_arrival_at":      record.ActualArrivalAt,
		"proof_of_delivery":      record.ProofOfDelivery,
		"updated_at":             gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrShipmentNotFound
	}
	return r.GetByID(ctx, shipment.ID)
}

func (r *ShipmentRepository) List(ctx context.Context) ([]*projection.Projection[*domain.Shipment], error) {
	return r.list(ctx, nil)
}

func (r *ShipmentRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*projection.Projection[*domain.Shipment], error) {
	return r.list(ctx, map[string]any{"driver_id": driverID})
}

func (r *ShipmentRepository) list(ctx context.Context, conds map[string]any) ([]*projection.Projection[*domain.Shipment], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []shipmentRecord
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if len(conds) > 0 {
		query = query.Where(conds)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Shipment], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *ShipmentRepository) DeleteByJob(ctx context.Context, jobID uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&shipmentRecord{}, "job_id = ?", jobID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrShipmentNotFound
	}
	return nil
}

func (r *ShipmentRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres shipment repository not configured")
	}
	return nil
}

func toShipmentRecord(shipment *domain.Shipment) shipmentRecord {
	return shipmentRecord{
		ID:                   shipment.ID,
		JobID:                shipment.JobID,
		Status:               string(shipment.Status),
		DriverID:             shipment.DriverID,
		VehicleID:            shipment.VehicleID,
		EstimatedDepartureAt: shipment.EstimatedDepartureAt,
		ActualDepartureAt:    shipment.ActualDepartureAt,
		EstimatedArrivalAt:   shipment.EstimatedArrivalAt,
		ActualArrivalAt:      shipment.ActualArrivalAt,
		ProofOfDelivery:      pq.StringArray(shipment.ProofOfDelivery),
	}
}

func (r shipmentRecord) toProjection() *projection.Projection[*domain.Shipment] {
	return projection.New(&domain.Shipment{
		ID:                   r.ID,
		JobID:                r.JobID,
		Status:               domain.ShipmentStatus(r.Status),
		DriverID:             r.DriverID,
		VehicleID:            r.VehicleID,
		EstimatedDepartureAt: r.EstimatedDepartureAt,
		ActualDepartureAt:    r.ActualDepartureAt,
		EstimatedArrivalAt:   r.EstimatedArrivalAt,
		ActualArrivalAt:      r.ActualArrivalAt,
		ProofOfDelivery:      []string(r.ProofOfDelivery),
	}, r.CreatedAt, r.UpdatedAt)
}

// DriverRepository persists driver profiles in PostgreSQL.
type DriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository wires the PostgreSQL driver store.
func NewDriverRepository(db *gorm.DB) *DriverRepository {
	repo := &DriverRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&driverRecord{})
	}
	return repo
}

func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) (*projection.Projection[*domain.Driver], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := driverRecord{
		ID:            driver.ID,
		UserID:        driver.UserID,
		LicenseNumber: driver.LicenseNumber,
		Phone:         driver.Phone,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, driver.ID)
}

func (r *DriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Driver], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record driverRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrDriverNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *DriverRepository) List(ctx context.Context) ([]*projection.Projection[*domain.Driver], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []driverRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Driver], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *DriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&driverRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrDriverNotFound
	}
	return nil
}

func (r *DriverRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres driver repository not configured")
	}
	return nil
}

func (r driverRecord) toProjection() *projection.Projection[*domain.Driver] {
	return projection.New(&domain.Driver{
		ID:            r.ID,
		UserID:        r.UserID,
		LicenseNumber: r.LicenseNumber,
		Phone:         r.Phone,
	}, r.CreatedAt, r.UpdatedAt)
}

// VehicleRepository persists fleet vehicles in PostgreSQL.
type VehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository wires the PostgreSQL vehicle store.
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	repo := &VehicleRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&vehicleRecord{})
	}
	return repo
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (*projection.Projection[*domain.Vehicle], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toVehicleRecord(vehicle)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, vehicle.ID)
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Vehicle], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record vehicleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrVehicleNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *VehicleRepository) Save(ctx context.Context, vehicle *domain.Vehicle) (*projection.Projection[*domain.Vehicle], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&vehicleRecord{}).Where("id = ?", vehicle.ID).Updates(map[string]any{
		"model":       vehicle.Model,
		"capacity_kg": vehicle.CapacityKG,
		"status":      string(vehicle.Status),
		"updated_at":  gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrVehicleNotFound
	}
	return r.GetByID(ctx, vehicle.ID)
}

func (r *VehicleRepository) List(ctx context.Context) ([]*projection.Projection[*domain.Vehicle], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []vehicleRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Vehicle], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&vehicleRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrVehicleNotFound
	}
	return nil
}

func (r *VehicleRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres vehicle repository not configured")
	}
	return nil
}

func toVehicleRecord(vehicle *domain.Vehicle) vehicleRecord {
	return vehicleRecord{
		ID:           vehicle.ID,
		LicensePlate: vehicle.LicensePlate,
		Model:        vehicle.Model,
		CapacityKG:   vehicle.CapacityKG,
		Status:       string(vehicle.Status),
	}
}

func (r vehicleRecord) toProjection() *projection.Projection[*domain.Vehicle] {
	return projection.New(&domain.Vehicle{
		ID:           r.ID,
		LicensePlate: r.LicensePlate,
		Model:        r.Model,
		CapacityKG:   r.CapacityKG,
		Status:       domain.VehicleStatus(r.Status),
	}, r.CreatedAt, r.UpdatedAt)
}
