package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sslogistics/logipro/internal/domains/billing/domain"
	"github.com/sslogistics/logipro/internal/domains/billing/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// invoiceRecord maps the invoice aggregate. The unique index on job_id makes
// drafting idempotent under concurrency.
type invoiceRecord struct {
	ID            uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	JobID         uuid.UUID  `gorm:"column:job_id;type:uuid;uniqueIndex:uniq_invoice_job;not null"`
	Status        string     `gorm:"column:status;type:varchar(16)"`
	AmountCents   int64      `gorm:"column:amount_cents"`
	IssuedAt      time.Time  `gorm:"column:issued_at"`
	DueAt         time.Time  `gorm:"column:due_at"`
	PaidAt        *time.Time `gorm:"column:paid_at"`
	PaymentMethod *string    `gorm:"column:payment_method;type:varchar(16)"`
	CreatedAt     time.Time  `gorm:"column:created_at;index"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (invoiceRecord) TableName() string { return "invoices" }

// Repository persists invoices in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires the PostgreSQL invoice store.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&invoiceRecord{})
	}
	return repo
}

// EnsureForJob inserts the candidate draft, treating a duplicate-key hit on
// job_id as "already drafted" and returning the existing invoice.
func (r *Repository) EnsureForJob(ctx context.Context, invoice *domain.Invoice) (*projection.Projection[*domain.Invoice], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(invoice)
	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}
	return r.GetByJob(ctx, invoice.JobID)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Invoice], error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *Repository) GetByJob(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Invoice], error) {
	return r.getBy(ctx, "job_id = ?", jobID)
}

func (r *Repository) getBy(ctx context.Context, cond string, arg any) (*projection.Projection[*domain.Invoice], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record invoiceRecord
	if err := r.db.WithContext(ctx).First(&record, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *Repository) Save(ctx context.Context, invoice *domain.Invoice) (*projection.Projection[*domain.Invoice], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(invoice)
	result := r.db.WithContext(ctx).Model(&invoiceRecord{}).Where("id = ?", invoice.ID).Updates(map[string]any{
		"status":         record.Status,
		"paid_at":        record.PaidAt,
		"payment_method": record.PaymentMethod,
		"updated_at":     gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, invoice.ID)
}

func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Invoice], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []invoiceRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Invoice], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *Repository) DeleteByJob(ctx context.Context, jobID uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&invoiceRecord{}, "job_id = ?", jobID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres invoice repository not configured")
	}
	return nil
}

func toRecord(invoice *domain.Invoice) invoiceRecord {
	record := invoiceRecord{
		ID:          invoice.ID,
		JobID:       invoice.JobID,
		Status:      string(invoice.Status),
		AmountCents: invoice.AmountCents,
		IssuedAt:    invoice.IssuedAt,
		DueAt:       invoice.DueAt,
		PaidAt:      invoice.PaidAt,
	}
	if invoice.PaymentMethod != nil {
		method := string(*invoice.PaymentMethod)
		record.PaymentMethod = &method
	}
	return record
}

func (r invoiceRecord) toProjection() *projection.Projection[*domain.Invoice] {
	invoice := &domain.Invoice{
		ID:          r.ID,
		JobID:       r.JobID,
		Status:      domain.InvoiceStatus(r.Status),
		AmountCents: r.AmountCents,
		IssuedAt:    r.IssuedAt,
		DueAt:       r.DueAt,
		PaidAt:      r.PaidAt,
	}
	if r.PaymentMethod != nil {
		method := domain.PaymentMethod(*r.PaymentMethod)
		invoice.PaymentMethod = &method
	}
	return projection.New(invoice, r.CreatedAt, r.UpdatedAt)
}
