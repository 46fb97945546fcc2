package ports

import (
	"context"

	"github.com/google/uuid"

	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	"github.com/sslogistics/logipro/internal/domains/orders/domain"
)

// Service defines the orders use cases exposed to adapters (inbound/driving port).
type Service interface {
	CreateJob(ctx context.Context, input jobtypes.CreateJobInput) (*jobtypes.JobProjection, error)
	GetJob(ctx context.Context, input jobtypes.JobIdentifier) (*jobtypes.JobProjection, error)
	ListJobs(ctx context.Context) ([]*jobtypes.JobProjection, error)
	ListJobsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*jobtypes.JobProjection, error)
	UpdateJobContacts(ctx context.Context, input jobtypes.UpdateJobContactsInput) (*jobtypes.JobProjection, error)
	DeleteJob(ctx context.Context, input jobtypes.JobIdentifier) error
	// ResolveStatus derives the externally visible status. It never fails:
	// unexpected resolution errors collapse to PENDING.
	ResolveStatus(ctx context.Context, jobID uuid.UUID) domain.JobStatus
	ReportProgress(ctx context.Context, input jobtypes.ReportProgressInput) (*domain.TimelineEntry, error)
	Timeline(ctx context.Context, jobID uuid.UUID) ([]*domain.TimelineEntry, error)
}

// WorkflowOrchestrator exposes the durable job provisioning flow.
type WorkflowOrchestrator interface {
	CreateJob(ctx context.Context, input jobtypes.CreateJobInput) (*jobtypes.JobProjection, error)
}
