package jobs

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	ordersports "github.com/sslogistics/logipro/internal/domains/orders/ports"
)

const (
	// PersistJobActivityName persists a job and its shipment without drafting the invoice.
	PersistJobActivityName = "orders.activities.PersistJob"
	// DraftInvoiceActivityName drafts the invoice for an existing job.
	DraftInvoiceActivityName = "orders.activities.DraftInvoice"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	persistService ordersports.Service
	repo           ordersports.Repository
	invoicer       ordersports.Invoicer
}

// NewActivities wires the orders collaborators into the Temporal activities bundle.
// persistService should be constructed without an invoicer so drafting stays in
// its own activity with its own retry policy.
func NewActivities(persistService ordersports.Service, repo ordersports.Repository, invoicer ordersports.Invoicer) *Activities {
	return &Activities{
		persistService: persistService,
		repo:           repo,
		invoicer:       invoicer,
	}
}

// PersistJob stores a new job, provisions its shipment, and returns the projection.
func (a *Activities) PersistJob(ctx context.Context, input jobtypes.CreateJobInput) (*jobtypes.JobProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.persistService == nil {
		logger.Error("job persist activity not initialized")
		return nil, errors.New("job persist activity not initialized")
	}
	logger.Info("PersistJob activity started", "serviceType", input.ServiceType)
	projection, err := a.persistService.CreateJob(ctx, input)
	if err != nil {
		logger.Error("PersistJob activity failed", "error", err)
		return nil, err
	}
	if projection != nil && projection.Job != nil {
		logger.Info("PersistJob activity completed", "jobId", projection.Job.ID, "jobNumber", projection.Job.JobNumber)
	} else {
		logger.Info("PersistJob activity completed")
	}
	return projection, nil
}

// DraftInvoice loads a job and ensures its draft invoice exists. Drafting is
// idempotent on the billing side, so a retried attempt converges on the same
// invoice.
func (a *Activities) DraftInvoice(ctx context.Context, input jobtypes.JobIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("invoice draft activity not initialized", "jobId", input.ID)
		return errors.New("invoice draft activity not initialized")
	}
	if a.invoicer == nil {
		logger.Info("invoicer not configured; skipping", "jobId", input.ID)
		return nil
	}
	if a.repo == nil {
		logger.Error("job repository not configured for invoicing", "jobId", input.ID)
		return errors.New("job repository not configured for invoicing")
	}

	logger.Info("DraftInvoice activity started", "jobId", input.ID)
	projection, err := a.repo.GetByID(ctx, input.ID)
	if err != nil {
		logger.Error("DraftInvoice failed to load job", "jobId", input.ID, "error", err)
		return err
	}
	if projection == nil || projection.Entity == nil {
		logger.Error("DraftInvoice missing job projection", "jobId", input.ID)
		return errors.New("job projection missing for invoicing")
	}
	if err := a.invoicer.EnsureDraftForJob(ctx, projection.Entity.ID, projection.Entity.ServiceType); err != nil {
		logger.Error("DraftInvoice failed", "jobId", input.ID, "error", err)
		return err
	}
	logger.Info("DraftInvoice activity completed", "jobId", input.ID)
	return nil
}
