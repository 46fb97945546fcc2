package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	"github.com/sslogistics/logipro/internal/domains/orders/ports"
	jobworkflows "github.com/sslogistics/logipro/internal/platform/temporal/workflows/jobs"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalJobWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineJobWorkflows)(nil)
)

// TemporalJobWorkflows starts job workflows on a Temporal cluster.
type TemporalJobWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalJobWorkflows wires a Temporal client into the orchestrator.
func NewTemporalJobWorkflows(c client.Client) *TemporalJobWorkflows {
	return &TemporalJobWorkflows{client: c, taskQueue: jobworkflows.JobCreationTaskQueue}
}

// CreateJob starts the Temporal workflow that places a job and provisions its
// dependent records. A retried request with the same idempotency key attaches
// to the already-running workflow instead of starting a second one.
func (o *TemporalJobWorkflows) CreateJob(ctx context.Context, input jobtypes.CreateJobInput) (*jobtypes.JobProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal job workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildJobCreationWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		jobworkflows.JobCreationWorkflow,
		jobworkflows.JobCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var projection jobtypes.JobProjection
			if err := existingRun.Get(ctx, &projection); err != nil {
				return nil, err
			}
			return &projection, nil
		}
		return nil, err
	}
	var projection jobtypes.JobProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, err
	}
	return &projection, nil
}

// InlineJobWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineJobWorkflows struct {
	service ports.Service
}

// NewInlineJobWorkflows wraps the orders service for synchronous execution.
func NewInlineJobWorkflows(service ports.Service) *InlineJobWorkflows {
	return &InlineJobWorkflows{service: service}
}

// CreateJob delegates to the application service without durable orchestration.
func (o *InlineJobWorkflows) CreateJob(ctx context.Context, input jobtypes.CreateJobInput) (*jobtypes.JobProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline job workflows not configured")
	}
	return o.service.CreateJob(ctx, input)
}

func buildJobCreationWorkflowID(input jobtypes.CreateJobInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("job-creation-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("job-creation-%d-%s", time.Now().UnixNano(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// Use the first 16 hex chars to keep workflow IDs readable while remaining deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
