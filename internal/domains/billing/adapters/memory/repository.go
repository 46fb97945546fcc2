package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sslogistics/logipro/internal/domains/billing/domain"
	"github.com/sslogistics/logipro/internal/domains/billing/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type row struct {
	invoice   domain.Invoice
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory invoice store. Keying on job ID under the mutex
// gives the same ensure-once guarantee as the database constraint.
type Repository struct {
	mu    sync.Mutex
	byJob map[uuid.UUID]*row
}

// NewRepository creates an empty in-memory invoice store.
func NewRepository() *Repository {
	return &Repository{byJob: make(map[uuid.UUID]*row)}
}

func (r *Repository) EnsureForJob(_ context.Context, invoice *domain.Invoice) (*projection.Projection[*domain.Invoice], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byJob[invoice.JobID]; ok {
		return toProjection(existing), nil
	}
	now := time.Now().UTC()
	entry := &row{invoice: *invoice, createdAt: now, updatedAt: now}
	r.byJob[invoice.JobID] = entry
	return toProjection(entry), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*projection.Projection[*domain.Invoice], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.byJob {
		if entry.invoice.ID == id {
			return toProjection(entry), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) GetByJob(_ context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Invoice], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.byJob[jobID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return toProjection(entry), nil
}

func (r *Repository) Save(_ context.Context, invoice *domain.Invoice) (*projection.Projection[*domain.Invoice], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.byJob[invoice.JobID]
	if !ok || entry.invoice.ID != invoice.ID {
		return nil, ports.ErrNotFound
	}
	entry.invoice = *invoice
	entry.updatedAt = time.Now().UTC()
	return toProjection(entry), nil
}

func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Invoice], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*row, 0, len(r.byJob))
	for _, entry := range r.byJob {
		rows = append(rows, entry)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].createdAt.After(rows[j].createdAt) })
	result := make([]*projection.Projection[*domain.Invoice], 0, len(rows))
	for _, entry := range rows {
		result = append(result, toProjection(entry))
	}
	return result, nil
}

func (r *Repository) DeleteByJob(_ context.Context, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byJob[jobID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.byJob, jobID)
	return nil
}

func toProjection(entry *row) *projection.Projection[*domain.Invoice] {
	clone := entry.invoice
	return projection.New(&clone, entry.createdAt, entry.updatedAt)
}
