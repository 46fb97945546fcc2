package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	"github.com/sslogistics/logipro/internal/domains/orders/domain"
	"github.com/sslogistics/logipro/internal/domains/orders/ports"
)

const tracerName = "github.com/sslogistics/logipro/internal/domains/orders/adapters/observability/service"

// Service decorates an orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// CreateJob persists a new job and provisions its dependent records with instrumentation.
func (s *Service) CreateJob(ctx context.Context, input jobtypes.CreateJobInput) (*jobtypes.JobProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateJob", attribute.String("job.service_type", input.ServiceType))
	defer span.End()

	s.logInfo(ctx, "creating job", slog.String("service_type", input.ServiceType))
	result, err := s.inner.CreateJob(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create job", slog.String("service_type", input.ServiceType))
	}
	if result != nil && result.Job != nil {
		span.SetAttributes(attribute.Int64("job.number", result.Job.JobNumber))
		s.metrics.recordJobCreated(ctx, result.Job.ServiceType)
		s.logInfo(ctx, "job created",
			slog.String("job_id", result.Job.ID.String()),
			slog.Int64("job_number", result.Job.JobNumber))
	}
	return result, nil
}

// GetJob loads a single job projection.
func (s *Service) GetJob(ctx context.Context, input jobtypes.JobIdentifier) (*jobtypes.JobProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetJob", attribute.String("job.id", input.ID.String()))
	defer span.End()

	result, err := s.inner.GetJob(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load job", slog.String("job_id", input.ID.String()))
	}
	return result, nil
}

// ListJobs exposes all jobs for back-office screens.
func (s *Service) ListJobs(ctx context.Context) ([]*jobtypes.JobProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListJobs")
	defer span.End()

	result, err := s.inner.ListJobs(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list jobs")
	}
	span.SetAttributes(attribute.Int("job.result.count", len(result)))
	return result, nil
}

// ListJobsByCustomer exposes a customer's jobs.
func (s *Service) ListJobsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*jobtypes.JobProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListJobsByCustomer", attribute.String("customer.id", customerID.String()))
	defer span.End()

	result, err := s.inner.ListJobsByCustomer(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer jobs", slog.String("customer_id", customerID.String()))
	}
	span.SetAttributes(attribute.Int("job.result.count", len(result)))
	return result, nil
}

// UpdateJobContacts corrects contact details on an existing job.
func (s *Service) UpdateJobContacts(ctx context.Context, input jobtypes.UpdateJobContactsInput) (*jobtypes.JobProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateJobContacts", attribute.String("job.id", input.ID.String()))
	defer span.End()

	s.logInfo(ctx, "updating job contacts", slog.String("job_id", input.ID.String()))
	result, err := s.inner.UpdateJobContacts(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update job contacts", slog.String("job_id", input.ID.String()))
	}
	return result, nil
}

// DeleteJob removes a job with its ledger and shipment.
func (s *Service) DeleteJob(ctx context.Context, input jobtypes.JobIdentifier) error {
	ctx, span := s.startSpan(ctx, "Service.DeleteJob", attribute.String("job.id", input.ID.String()))
	defer span.End()

	s.logInfo(ctx, "deleting job", slog.String("job_id", input.ID.String()))
	if err := s.inner.DeleteJob(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete job", slog.String("job_id", input.ID.String()))
	}
	s.metrics.recordJobDeleted(ctx)
	s.logInfo(ctx, "job deleted", slog.String("job_id", input.ID.String()))
	return nil
}

// ResolveStatus derives the externally visible status.
func (s *Service) ResolveStatus(ctx context.Context, jobID uuid.UUID) domain.JobStatus {
	ctx, span := s.startSpan(ctx, "Service.ResolveStatus", attribute.String("job.id", jobID.String()))
	defer span.End()

	status := s.inner.ResolveStatus(ctx, jobID)
	span.SetAttributes(attribute.String("job.status", string(status)))
	return status
}

// ReportProgress appends a driver-reported status event to the ledger.
func (s *Service) ReportProgress(ctx context.Context, input jobtypes.ReportProgressInput) (*domain.TimelineEntry, error) {
	ctx, span := s.startSpan(ctx, "Service.ReportProgress",
		attribute.String("job.id", input.JobID.String()),
		attribute.String("job.reported_status", input.Status),
	)
	defer span.End()

	s.logInfo(ctx, "reporting progress",
		slog.String("job_id", input.JobID.String()),
		slog.String("status", input.Status))
	result, err := s.inner.ReportProgress(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to report progress", slog.String("job_id", input.JobID.String()))
	}
	if result != nil {
		s.metrics.recordProgressReported(ctx, result.Status)
		s.logInfo(ctx, "progress recorded",
			slog.String("job_id", input.JobID.String()),
			slog.String("status", string(result.Status)))
	}
	return result, nil
}

// Timeline exposes a job's full ledger history.
func (s *Service) Timeline(ctx context.Context, jobID uuid.UUID) ([]*domain.TimelineEntry, error) {
	ctx, span := s.startSpan(ctx, "Service.Timeline", attribute.String("job.id", jobID.String()))
	defer span.End()

	result, err := s.inner.Timeline(ctx, jobID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load timeline", slog.String("job_id", jobID.String()))
	}
	span.SetAttributes(attribute.Int("timeline.result.count", len(result)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	jobsCreated      metric.Int64Counter
	jobsDeleted      metric.Int64Counter
	progressReported metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	jobsCreated, _ := m.Int64Counter("orders.service.jobs_created", metric.WithDescription("Number of jobs created"))
	jobsDeleted, _ := m.Int64Counter("orders.service.jobs_deleted", metric.WithDescription("Number of jobs deleted"))
	progressReported, _ := m.Int64Counter("orders.service.progress_reported", metric.WithDescription("Number of driver progress reports"))
	return serviceMetrics{
		jobsCreated:      jobsCreated,
		jobsDeleted:      jobsDeleted,
		progressReported: progressReported,
	}
}

func (m serviceMetrics) recordJobCreated(ctx context.Context, serviceType domain.ServiceType) {
	addCounter(ctx, m.jobsCreated, 1, attribute.String("job.service_type", string(serviceType)))
}

func (m serviceMetrics) recordJobDeleted(ctx context.Context) {
	addCounter(ctx, m.jobsDeleted, 1)
}

func (m serviceMetrics) recordProgressReported(ctx context.Context, status domain.TimelineStatus) {
	addCounter(ctx, m.progressReported, 1, attribute.String("timeline.status", string(status)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
