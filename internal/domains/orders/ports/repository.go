package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sslogistics/logipro/internal/domains/orders/domain"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var (
	// ErrNotFound signals the referenced job does not exist.
	ErrNotFound = errors.New("job not found")
	// ErrNoCurrentEntry signals the job has no timeline entry flagged current.
	ErrNoCurrentEntry = errors.New("no current timeline entry")
)

// Repository persists job aggregates. Create assigns the sequential job
// number atomically; callers must not pre-populate it.
type Repository interface {
	Create(ctx context.Context, job *domain.Job) (*projection.Projection[*domain.Job], error)
	GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Job], error)
	Update(ctx context.Context, job *domain.Job) (*projection.Projection[*domain.Job], error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Job], error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*projection.Projection[*domain.Job], error)
}

// TimelineLedger is the append-only status event log per job.
//
// Append stamps the entry with the current time and persists it in a single
// atomic unit of work: when markCurrent is set, every other current entry for
// the same job is flipped to false in the same transaction, so no reader ever
// observes two current entries. Appending to a missing job fails with
// ErrNotFound and leaves no partial writes.
type TimelineLedger interface {
	Append(ctx context.Context, entry *domain.TimelineEntry, markCurrent bool) (*domain.TimelineEntry, error)
	Current(ctx context.Context, jobID uuid.UUID) (*domain.TimelineEntry, error)
	History(ctx context.Context, jobID uuid.UUID) ([]*domain.TimelineEntry, error)
}
