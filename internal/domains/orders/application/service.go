package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	"github.com/sslogistics/logipro/internal/domains/orders/domain"
	"github.com/sslogistics/logipro/internal/domains/orders/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// Service orchestrates the orders bounded context use cases: job lifecycle,
// the timeline ledger, and status resolution.
type Service struct {
	repo        ports.Repository
	ledger      ports.TimelineLedger
	shipments   ports.ShipmentProvisioner
	invoices    ports.Invoicer
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
}

// Option customizes the service construction.
type Option func(*Service)

// WithInvoicer wires the billing collaborator invoked at provisioning time.
func WithInvoicer(invoicer ports.Invoicer) Option {
	return func(s *Service) { s.invoices = invoicer }
}

// WithIdempotencyStore wires the store that lets retried creates replay the
// originally claimed job instead of minting a duplicate.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithLogger injects the logger used for best-effort read-path warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, ledger ports.TimelineLedger, shipments ports.ShipmentProvisioner, opts ...Option) *Service {
	s := &Service{repo: repo, ledger: ledger, shipments: shipments}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateJob persists a new job and provisions its dependent records. This is
// the single authoritative provisioning call site: the shipment (and, when
// billing is wired, a draft invoice) is ensured here and nowhere else. When
// the request carries an idempotency key, the key claims the job ID before
// the insert, so a retry converges on the job the first attempt claimed
// instead of duplicating it. Reusing a key with a different payload is a
// conflict.
func (s *Service) CreateJob(ctx context.Context, input jobtypes.CreateJobInput) (*jobtypes.JobProjection, error) {
	job, err := domain.NewJob(
		uuid.New(),
		input.CustomerID,
		domain.ServiceType(input.ServiceType),
		input.CargoDescription,
		stopFromInput(input.Pickup),
		stopFromInput(input.Delivery),
		input.RequestedPickupAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || s.idempotency == nil {
		saved, err := s.repo.Create(ctx, job)
		if err != nil {
			return nil, mapError(err)
		}
		return s.provisionJob(ctx, saved)
	}
	hash, err := FingerprintCreateJob(input)
	if err != nil {
		return nil, err
	}
	record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
		Key:         key,
		RequestHash: hash,
		JobID:       job.ID,
	})
	if err != nil {
		return nil, err
	}
	// A replayed key carries the job ID the first attempt claimed.
	job.ID = record.JobID
	saved, err := s.getOrCreate(ctx, job)
	if err != nil {
		return nil, mapError(err)
	}
	return s.provisionJob(ctx, saved)
}

// getOrCreate makes the insert itself convergent: a job row that already
// exists under the claimed ID is the earlier attempt's work, not an error.
func (s *Service) getOrCreate(ctx context.Context, job *domain.Job) (*projection.Projection[*domain.Job], error) {
	found, err := s.repo.GetByID(ctx, job.ID)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	created, err := s.repo.Create(ctx, job)
	if err == nil {
		return created, nil
	}
	// Lost a concurrent race for the same key; the winner's row is ours.
	if found, getErr := s.repo.GetByID(ctx, job.ID); getErr == nil {
		return found, nil
	}
	return nil, err
}

func (s *Service) provisionJob(ctx context.Context, saved *projection.Projection[*domain.Job]) (*jobtypes.JobProjection, error) {
	if err := s.shipments.EnsureForJob(ctx, saved.Entity.ID); err != nil {
		return nil, fmt.Errorf("provision shipment for job %s: %w", saved.Entity.ID, err)
	}
	if s.invoices != nil {
		if err := s.invoices.EnsureDraftForJob(ctx, saved.Entity.ID, saved.Entity.ServiceType); err != nil {
			return nil, fmt.Errorf("provision invoice for job %s: %w", saved.Entity.ID, err)
		}
	}
	return s.project(ctx, saved), nil
}

// GetJob loads a single job with its resolved status and ledger history.
func (s *Service) GetJob(ctx context.Context, input jobtypes.JobIdentifier) (*jobtypes.JobProjection, error) {
	found, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, found), nil
}

// ListJobs returns every job with resolved statuses, newest first.
func (s *Service) ListJobs(ctx context.Context) ([]*jobtypes.JobProjection, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return s.projectList(ctx, found), nil
}

// ListJobsByCustomer returns a customer's jobs with resolved statuses.
func (s *Service) ListJobsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*jobtypes.JobProjection, error) {
	found, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, mapError(err)
	}
	return s.projectList(ctx, found), nil
}

// UpdateJobContacts corrects pickup/delivery contact details. All other job
// fields are immutable after creation.
func (s *Service) UpdateJobContacts(ctx context.Context, input jobtypes.UpdateJobContactsInput) (*jobtypes.JobProjection, error) {
	found, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	job := found.Entity
	pickup, delivery := job.Pickup, job.Delivery
	if input.Pickup != nil {
		pickup = stopFromInput(*input.Pickup)
	}
	if input.Delivery != nil {
		delivery = stopFromInput(*input.Delivery)
	}
	if err := job.UpdateStops(pickup, delivery); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, job)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, saved), nil
}

// DeleteJob removes a job together with its timeline, shipment, and invoice.
// The job row and its ledger go first; the collaborator cascades are
// best-effort afterwards, since a leftover shipment or invoice is repairable
// while a half-deleted job is not.
func (s *Service) DeleteJob(ctx context.Context, input jobtypes.JobIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	if err := s.shipments.ReleaseForJob(ctx, input.ID); err != nil {
		s.warn(ctx, "job deletion: shipment release failed", input.ID, err)
	}
	if s.invoices != nil {
		if err := s.invoices.DropForJob(ctx, input.ID); err != nil {
			s.warn(ctx, "job deletion: invoice removal failed", input.ID, err)
		}
	}
	return nil
}

// ResolveStatus derives the externally visible job status: the current
// timeline entry wins; without one the coarse shipment status applies; a job
// with neither is PENDING. Resolution is best-effort and never surfaces an
// error to the caller.
func (s *Service) ResolveStatus(ctx context.Context, jobID uuid.UUID) domain.JobStatus {
	entry, err := s.ledger.Current(ctx, jobID)
	switch {
	case err == nil:
		return domain.JobStatusFromTimeline(entry.Status)
	case !errors.Is(err, ports.ErrNoCurrentEntry):
		s.warn(ctx, "status resolution: ledger lookup failed, defaulting to PENDING", jobID, err)
		return domain.JobStatusPending
	}
	summary, err := s.shipments.SummaryForJob(ctx, jobID)
	switch {
	case err == nil:
		return domain.JobStatusFromShipment(summary.Status)
	case errors.Is(err, ports.ErrShipmentNotFound):
		return domain.JobStatusPending
	default:
		s.warn(ctx, "status resolution: shipment lookup failed, defaulting to PENDING", jobID, err)
		return domain.JobStatusPending
	}
}

// ReportProgress records a driver-reported status event. The entry is always
// appended as the new current entry; no transition validation is applied to
// the driver channel. IN_TRANSIT and DELIVERED reports are mirrored onto the
// shipment so the coarse status stays loosely synchronized.
func (s *Service) ReportProgress(ctx context.Context, input jobtypes.ReportProgressInput) (*domain.TimelineEntry, error) {
	status, err := domain.ParseTimelineStatus(input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	entry, err := domain.NewTimelineEntry(input.JobID, status, input.Location, input.Description)
	if err != nil {
		return nil, mapError(err)
	}
	appended, err := s.ledger.Append(ctx, entry, true)
	if err != nil {
		return nil, mapError(err)
	}
	if status == domain.TimelineInTransit || status == domain.TimelineDelivered {
		if err := s.shipments.MirrorProgress(ctx, input.JobID, status); err != nil {
			return nil, fmt.Errorf("mirror progress onto shipment for job %s: %w", input.JobID, err)
		}
	}
	return appended, nil
}

// Timeline returns the full ledger history for a job, oldest first.
func (s *Service) Timeline(ctx context.Context, jobID uuid.UUID) ([]*domain.TimelineEntry, error) {
	if _, err := s.repo.GetByID(ctx, jobID); err != nil {
		return nil, mapError(err)
	}
	history, err := s.ledger.History(ctx, jobID)
	if err != nil {
		return nil, mapError(err)
	}
	return history, nil
}

func (s *Service) project(ctx context.Context, source *projection.Projection[*domain.Job]) *jobtypes.JobProjection {
	if source == nil || source.Entity == nil {
		return nil
	}
	result := jobtypes.NewJobProjection(source.Entity, source.Metadata.CreatedAt, source.Metadata.UpdatedAt)
	result.Status = s.ResolveStatus(ctx, source.Entity.ID)
	if history, err := s.ledger.History(ctx, source.Entity.ID); err == nil {
		result.Timeline = history
	}
	return result
}

func (s *Service) projectList(ctx context.Context, sources []*projection.Projection[*domain.Job]) []*jobtypes.JobProjection {
	result := make([]*jobtypes.JobProjection, 0, len(sources))
	for _, source := range sources {
		if projected := s.project(ctx, source); projected != nil {
			result = append(result, projected)
		}
	}
	return result
}

func (s *Service) warn(ctx context.Context, msg string, jobID uuid.UUID, err error) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg,
		slog.String("job.id", jobID.String()),
		slog.String("error", err.Error()),
	)
}

func stopFromInput(input jobtypes.StopInput) domain.Stop {
	return domain.Stop{
		Address:       input.Address,
		City:          input.City,
		ContactPerson: input.ContactPerson,
		ContactPhone:  input.ContactPhone,
	}
}

var _ ports.Service = (*Service)(nil)
