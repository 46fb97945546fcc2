package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	billingtypes "github.com/sslogistics/logipro/internal/domains/billing/application/types"
	"github.com/sslogistics/logipro/internal/domains/billing/domain"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var ErrNotFound = errors.New("invoice not found")

// Repository persists invoices (outbound/driven port).
type Repository interface {
	// EnsureForJob inserts the candidate invoice unless the job already has
	// one, in which case the existing invoice is returned untouched. The
	// uniqueness rests on a constraint in the store.
	EnsureForJob(ctx context.Context, invoice *domain.Invoice) (*projection.Projection[*domain.Invoice], error)
	GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Invoice], error)
	GetByJob(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Invoice], error)
	Save(ctx context.Context, invoice *domain.Invoice) (*projection.Projection[*domain.Invoice], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Invoice], error)
	DeleteByJob(ctx context.Context, jobID uuid.UUID) error
}

// Service defines the billing use cases (inbound/driving port).
type Service interface {
	// EnsureDraftForJob idempotently drafts the job's invoice with a total
	// computed from the rate card.
	EnsureDraftForJob(ctx context.Context, jobID uuid.UUID, serviceType string) (*projection.Projection[*domain.Invoice], error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Invoice], error)
	GetInvoiceByJob(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Invoice], error)
	ListInvoices(ctx context.Context) ([]*projection.Projection[*domain.Invoice], error)
	SendInvoice(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Invoice], error)
	RecordPayment(ctx context.Context, input billingtypes.RecordPaymentInput) (*projection.Projection[*domain.Invoice], error)
	VoidInvoice(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Invoice], error)
	// DeleteInvoiceByJob removes the job's invoice when the job itself is
	// removed. A job without an invoice is a no-op.
	DeleteInvoiceByJob(ctx context.Context, jobID uuid.UUID) error
}
