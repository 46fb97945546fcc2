package jobs

import (
	"strings"

	"go.temporal.io/sdk/workflow"

	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	"github.com/sslogistics/logipro/internal/platform/temporal/sequences"
)

const (
	// JobCreationWorkflowName is the public identifier for registering the workflow.
	JobCreationWorkflowName = "orders.workflows.JobCreation"
	// JobCreationTaskQueue is the queue consumed by the worker processing job workflows.
	JobCreationTaskQueue = "JOB_PROVISIONING"
)

// JobCreationWorkflowInput captures the payload required to place a new job.
type JobCreationWorkflowInput struct {
	Command jobtypes.CreateJobInput
	TraceID string
}

// JobCreationWorkflow orchestrates the activities needed to place a job and
// provision its dependent records.
func JobCreationWorkflow(ctx workflow.Context, input JobCreationWorkflowInput) (*jobtypes.JobProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("JobCreationWorkflow started", withTraceID(input.TraceID, "serviceType", input.Command.ServiceType)...)
	// Requests without a client key still need persist-activity retries to
	// converge on one job, so the deterministic workflow ID stands in.
	if strings.TrimSpace(input.Command.IdempotencyKey) == "" {
		input.Command.IdempotencyKey = workflow.GetInfo(ctx).WorkflowExecution.ID
	}
	projection, err := sequences.RunJobProvisioningSequence(ctx, input.Command)
	if err != nil {
		logger.Error("JobCreationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	if projection != nil && projection.Job != nil {
		logger.Info("JobCreationWorkflow completed", withTraceID(input.TraceID, "jobId", projection.Job.ID)...)
	} else {
		logger.Info("JobCreationWorkflow completed", withTraceID(input.TraceID)...)
	}
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
