package types

import (
	"time"

	"github.com/sslogistics/logipro/internal/domains/orders/domain"
)

// JobMetadata captures infrastructure timestamps associated with a persisted job.
type JobMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobProjection transports a job aggregate together with its derived status,
// ledger history, and persistence metadata.
type JobProjection struct {
	Job      *domain.Job
	Status   domain.JobStatus
	Timeline []*domain.TimelineEntry
	Metadata JobMetadata
}

// NewJobProjection wraps an aggregate with persistence metadata.
func NewJobProjection(job *domain.Job, createdAt, updatedAt time.Time) *JobProjection {
	if job == nil {
		return nil
	}
	return &JobProjection{
		Job:    job,
		Status: domain.JobStatusPending,
		Metadata: JobMetadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}
