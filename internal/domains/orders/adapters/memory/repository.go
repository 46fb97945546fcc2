package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sslogistics/logipro/internal/domains/orders/domain"
	"github.com/sslogistics/logipro/internal/domains/orders/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var (
	_ ports.Repository     = (*Repository)(nil)
	_ ports.TimelineLedger = (*Repository)(nil)
)

type jobRecord struct {
	job       domain.Job
	createdAt time.Time
	updatedAt time.Time
}

type ledgerRecord struct {
	entry domain.TimelineEntry
	seq   int64
}

// Repository is an in-memory orders persistence adapter for development and
// tests. It implements both the job repository and the timeline ledger so the
// "one current entry" flip and the append happen under a single lock, mirroring
// the transactional guarantee of the Postgres adapter.
type Repository struct {
	mu         sync.RWMutex
	jobs       map[uuid.UUID]*jobRecord
	entries    map[uuid.UUID][]*ledgerRecord
	nextNumber int64
	nextSeq    int64
	now        func() time.Time
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		jobs:       map[uuid.UUID]*jobRecord{},
		entries:    map[uuid.UUID][]*ledgerRecord{},
		nextNumber: domain.FirstJobNumber,
		now:        time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create stores a new job and assigns the next sequential job number.
func (r *Repository) Create(_ context.Context, job *domain.Job) (*projection.Projection[*domain.Job], error) {
	if job == nil {
		return nil, errors.New("job is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *job
	clone.JobNumber = r.nextNumber
	r.nextNumber++
	now := r.now()
	r.jobs[clone.ID] = &jobRecord{job: clone, createdAt: now, updatedAt: now}
	job.JobNumber = clone.JobNumber
	return projectJob(r.jobs[clone.ID]), nil
}

// GetByID fetches a job by identifier.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*projection.Projection[*domain.Job], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.jobs[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectJob(record), nil
}

// Update overwrites a stored job's mutable fields.
func (r *Repository) Update(_ context.Context, job *domain.Job) (*projection.Projection[*domain.Job], error) {
	if job == nil {
		return nil, errors.New("job is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.jobs[job.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	number := record.job.JobNumber
	record.job = *job
	record.job.JobNumber = number
	record.updatedAt = r.now()
	return projectJob(record), nil
}

// Delete removes a job and cascades to its timeline entries.
func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.jobs, id)
	delete(r.entries, id)
	return nil
}

// List returns all jobs ordered newest first.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Job], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*jobRecord, 0, len(r.jobs))
	for _, record := range r.jobs {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].createdAt.After(records[j].createdAt) })
	result := make([]*projection.Projection[*domain.Job], 0, len(records))
	for _, record := range records {
		result = append(result, projectJob(record))
	}
	return result, nil
}

// ListByCustomer returns a customer's jobs ordered newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*projection.Projection[*domain.Job], error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Job], 0, len(all))
	for _, item := range all {
		if item.Entity.CustomerID != nil && *item.Entity.CustomerID == customerID {
			result = append(result, item)
		}
	}
	return result, nil
}

// Append stamps and stores a timeline entry. With markCurrent set, every
// other current entry for the job is flipped to false under the same lock.
func (r *Repository) Append(_ context.Context, entry *domain.TimelineEntry, markCurrent bool) (*domain.TimelineEntry, error) {
	if entry == nil {
		return nil, errors.New("timeline entry is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[entry.JobID]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := *entry
	clone.Timestamp = r.now()
	clone.IsCurrent = markCurrent
	if markCurrent {
		for _, existing := range r.entries[entry.JobID] {
			existing.entry.IsCurrent = false
		}
	}
	r.nextSeq++
	r.entries[entry.JobID] = append(r.entries[entry.JobID], &ledgerRecord{entry: clone, seq: r.nextSeq})
	result := clone
	return &result, nil
}

// Current returns the single entry flagged current for the job.
func (r *Repository) Current(_ context.Context, jobID uuid.UUID) (*domain.TimelineEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.entries[jobID] {
		if record.entry.IsCurrent {
			result := record.entry
			return &result, nil
		}
	}
	return nil, ports.ErrNoCurrentEntry
}

// History returns all entries for a job ordered by timestamp ascending, with
// insertion order breaking same-timestamp ties.
func (r *Repository) History(_ context.Context, jobID uuid.UUID) ([]*domain.TimelineEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := append([]*ledgerRecord{}, r.entries[jobID]...)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].entry.Timestamp.Equal(records[j].entry.Timestamp) {
			return records[i].seq < records[j].seq
		}
		return records[i].entry.Timestamp.Before(records[j].entry.Timestamp)
	})
	result := make([]*domain.TimelineEntry, 0, len(records))
	for _, record := range records {
		entry := record.entry
		result = append(result, &entry)
	}
	return result, nil
}

func projectJob(record *jobRecord) *projection.Projection[*domain.Job] {
	clone := record.job
	return projection.New(&clone, record.createdAt, record.updatedAt)
}
