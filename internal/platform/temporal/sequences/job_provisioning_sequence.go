package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	jobactivities "github.com/sslogistics/logipro/internal/platform/temporal/activities/jobs"
)

// RunJobProvisioningSequence executes the ordered set of activities needed to
// place a job: persist the aggregate with its shipment, then draft the
// invoice with a separate retry policy.
func RunJobProvisioningSequence(ctx workflow.Context, input jobtypes.CreateJobInput) (*jobtypes.JobProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("job provisioning sequence started", "serviceType", input.ServiceType)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	invoiceOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var projection jobtypes.JobProjection
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), jobactivities.PersistJobActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("job provisioning sequence failed", "error", err)
		return nil, err
	}
	if projection.Job != nil {
		logger.Info("job provisioning sequence persisted", "jobId", projection.Job.ID, "jobNumber", projection.Job.JobNumber)

		invoiceInput := jobtypes.JobIdentifier{ID: projection.Job.ID}
		if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, invoiceOptions), jobactivities.DraftInvoiceActivityName, invoiceInput).Get(ctx, nil); err != nil {
			logger.Error("job provisioning sequence invoicing failed", "jobId", projection.Job.ID, "error", err)
			return &projection, err
		}
		logger.Info("job provisioning sequence invoiced", "jobId", projection.Job.ID)
	}
	return &projection, nil
}
