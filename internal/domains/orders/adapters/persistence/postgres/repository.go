package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sslogistics/logipro/internal/domains/orders/domain"
	"github.com/sslogistics/logipro/internal/domains/orders/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var (
	_ ports.Repository     = (*Repository)(nil)
	_ ports.TimelineLedger = (*Repository)(nil)
)

// Repository persists jobs and their timeline ledger in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&jobNumberSeq{}, &jobRecord{}, &timelineRecord{})
	}
	return repo
}

// jobRecord maps the job aggregate to a relational table.
type jobRecord struct {
	ID                    uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	JobNumber             int64      `gorm:"column:job_number;uniqueIndex"`
	CustomerID            *uuid.UUID `gorm:"column:customer_id;type:uuid;index"`
	ServiceType           string     `gorm:"column:service_type;type:varchar(32)"`
	CargoDescription      string     `gorm:"column:cargo_description"`
	PickupAddress         string     `gorm:"column:pickup_address"`
	PickupCity            string     `gorm:"column:pickup_city"`
	PickupContactPerson   string     `gorm:"column:pickup_contact_person"`
	PickupContactPhone    string     `gorm:"column:pickup_contact_phone"`
	DeliveryAddress       string     `gorm:"column:delivery_address"`
	DeliveryCity          string     `gorm:"column:delivery_city"`
	DeliveryContactPerson string     `gorm:"column:delivery_contact_person"`
	DeliveryContactPhone  string     `gorm:"column:delivery_contact_phone"`
	RequestedPickupAt     time.Time  `gorm:"column:requested_pickup_at"`
	CreatedAt             time.Time  `gorm:"column:created_at;index"`
	UpdatedAt             time.Time  `gorm:"column:updated_at"`
}

func (jobRecord) TableName() string { return "jobs" }

// timelineRecord maps one ledger entry. The seq column is a bigserial used to
// break same-timestamp ordering ties by insertion order.
type timelineRecord struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	JobID       uuid.UUID `gorm:"column:job_id;type:uuid;index:idx_job_timeline_job;not null"`
	Status      string    `gorm:"column:status;type:varchar(32)"`
	Timestamp   time.Time `gorm:"column:timestamp;index"`
	Location    string    `gorm:"column:location"`
	Description string    `gorm:"column:description"`
	IsCurrent   bool      `gorm:"column:is_current;index:idx_job_timeline_current,where:is_current"`
	Seq         int64     `gorm:"column:seq;autoIncrement"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (timelineRecord) TableName() string { return "job_timeline_entries" }

// jobNumberSeq backs the atomic human-readable job number sequence. A single
// row holds the last assigned number; assignment is an upsert-increment so
// concurrent creators never read the same value.
type jobNumberSeq struct {
	ID    int16 `gorm:"primaryKey;column:id"`
	Value int64 `gorm:"column:value"`
}

func (jobNumberSeq) TableName() string { return "job_number_seq" }

const nextJobNumberSQL = `
INSERT INTO job_number_seq (id, value)
VALUES (1, ?)
ON CONFLICT (id) DO UPDATE
  SET value = job_number_seq.value + 1
RETURNING value`

// Create inserts a job, assigning its sequential number in the same
// transaction so two concurrent creators cannot collide.
func (r *Repository) Create(ctx context.Context, job *domain.Job) (*projection.Projection[*domain.Job], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.New("job is nil")
	}
	record := toJobRecord(job)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(nextJobNumberSQL, domain.FirstJobNumber).Scan(&record.JobNumber).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	job.JobNumber = record.JobNumber
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a job by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Job], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record jobRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Update overwrites a job's mutable columns. The job number never changes.
func (r *Repository) Update(ctx context.Context, job *domain.Job) (*projection.Projection[*domain.Job], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.New("job is nil")
	}
	record := toJobRecord(job)
	result := r.db.WithContext(ctx).Model(&jobRecord{}).Where("id = ?", job.ID).Updates(map[string]any{
		"customer_id":             record.CustomerID,
		"cargo_description":       record.CargoDescription,
		"pickup_address":          record.PickupAddress,
		"pickup_city":             record.PickupCity,
		"pickup_contact_person":   record.PickupContactPerson,
		"pickup_contact_phone":    record.PickupContactPhone,
		"delivery_address":        record.DeliveryAddress,
		"delivery_city":           record.DeliveryCity,
		"delivery_contact_person": record.DeliveryContactPerson,
		"delivery_contact_phone":  record.DeliveryContactPhone,
		"updated_at":              gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, job.ID)
}

// Delete removes a job and cascades to its timeline entries in one transaction.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&timelineRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&jobRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

// List returns all jobs ordered newest first.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Job], error) {
	return r.list(ctx, nil)
}

// ListByCustomer returns a customer's jobs ordered newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*projection.Projection[*domain.Job], error) {
	return r.list(ctx, map[string]any{"customer_id": customerID})
}

func (r *Repository) list(ctx context.Context, conds map[string]any) ([]*projection.Projection[*domain.Job], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []jobRecord
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if len(conds) > 0 {
		query = query.Where(conds)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Job], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

// Append stamps and inserts a ledger entry. The jobs row is locked for the
// duration of the transaction, so concurrent appends for the same job
// serialize and the flag flip plus insert stay atomic. Without the lock two
// READ COMMITTED writers could each flip the rows in their own snapshot and
// both land a current entry.
func (r *Repository) Append(ctx context.Context, entry *domain.TimelineEntry, markCurrent bool) (*domain.TimelineEntry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.New("timeline entry is nil")
	}
	record := timelineRecord{
		ID:          entry.ID,
		JobID:       entry.JobID,
		Status:      string(entry.Status),
		Timestamp:   time.Now().UTC(),
		Location:    entry.Location,
		Description: entry.Description,
		IsCurrent:   markCurrent,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked jobRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&locked, "id = ?", entry.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		if markCurrent {
			if err := tx.Model(&timelineRecord{}).
				Where("job_id = ? AND is_current AND id <> ?", entry.JobID, entry.ID).
				Update("is_current", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// Current returns the single entry flagged current for the job.
func (r *Repository) Current(ctx context.Context, jobID uuid.UUID) (*domain.TimelineEntry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record timelineRecord
	if err := r.db.WithContext(ctx).First(&record, "job_id = ? AND is_current", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNoCurrentEntry
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// History returns a job's entries ordered by timestamp, then insertion order.
func (r *Repository) History(ctx context.Context, jobID uuid.UUID) ([]*domain.TimelineEntry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []timelineRecord
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("timestamp ASC, seq ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.TimelineEntry, 0, len(records))
	for i := range records {
		result = append(result, records[i].toDomain())
	}
	return result, nil
}

const repairCurrentFlagsSQL = `
WITH conflicted AS (
  SELECT job_id
  FROM job_timeline_entries
  WHERE is_current
  GROUP BY job_id
  HAVING COUNT(*) > 1
), keep AS (
  SELECT DISTINCT ON (job_id) id
  FROM job_timeline_entries
  WHERE is_current AND job_id IN (SELECT job_id FROM conflicted)
  ORDER BY job_id, timestamp DESC, seq DESC
)
UPDATE job_timeline_entries e
SET is_current = FALSE
FROM conflicted c
WHERE e.job_id = c.job_id
  AND e.is_current
  AND e.id NOT IN (SELECT id FROM keep)`

// RepairCurrentFlags demotes stale current flags for jobs that ended up with
// more than one. The newest entry per job, by timestamp then insertion order,
// keeps its flag. Returns the number of demoted rows.
func (r *Repository) RepairCurrentFlags(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Exec(repairCurrentFlagsSQL)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres orders repository not configured")
	}
	return nil
}

func toJobRecord(job *domain.Job) jobRecord {
	return jobRecord{
		ID:                    job.ID,
		JobNumber:             job.JobNumber,
		CustomerID:            job.CustomerID,
		ServiceType:           string(job.ServiceType),
		CargoDescription:      job.CargoDescription,
		PickupAddress:         job.Pickup.Address,
		PickupCity:            job.Pickup.City,
		PickupContactPerson:   job.Pickup.ContactPerson,
		PickupContactPhone:    job.Pickup.ContactPhone,
		DeliveryAddress:       job.Delivery.Address,
		DeliveryCity:          job.Delivery.City,
		DeliveryContactPerson: job.Delivery.ContactPerson,
		DeliveryContactPhone:  job.Delivery.ContactPhone,
		RequestedPickupAt:     job.RequestedPickupAt,
	}
}

func (r jobRecord) toDomain() *domain.Job {
	return &domain.Job{
		ID:               r.ID,
		JobNumber:        r.JobNumber,
		CustomerID:       r.CustomerID,
		ServiceType:      domain.ServiceType(r.ServiceType),
		CargoDescription: r.CargoDescription,
		Pickup: domain.Stop{
			Address:       r.PickupAddress,
			City:          r.PickupCity,
			ContactPerson: r.PickupContactPerson,
			ContactPhone:  r.PickupContactPhone,
		},
		Delivery: domain.Stop{
			Address:       r.DeliveryAddress,
			City:          r.DeliveryCity,
			ContactPerson: r.DeliveryContactPerson,
			ContactPhone:  r.DeliveryContactPhone,
		},
		RequestedPickupAt: r.RequestedPickupAt,
	}
}

func (r jobRecord) toProjection() *projection.Projection[*domain.Job] {
	return projection.New(r.toDomain(), r.CreatedAt, r.UpdatedAt)
}

func (r timelineRecord) toDomain() *domain.TimelineEntry {
	return &domain.TimelineEntry{
		ID:          r.ID,
		JobID:       r.JobID,
		Status:      domain.TimelineStatus(r.Status),
		Timestamp:   r.Timestamp,
		Location:    r.Location,
		Description: r.Description,
		IsCurrent:   r.IsCurrent,
	}
}
