package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	billingtypes "github.com/sslogistics/logipro/internal/domains/billing/application/types"
	"github.com/sslogistics/logipro/internal/domains/billing/domain"
	"github.com/sslogistics/logipro/internal/domains/billing/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// ErrInvalidInput signals the request violated a billing invariant.
var ErrInvalidInput = errors.New("invalid billing input")

// Service implements the billing use cases over a repository and a rate card.
type Service struct {
	repo    ports.Repository
	pricing domain.Pricing
	now     func() time.Time
}

// Option customizes the service construction.
type Option func(*Service)

// WithPricing overrides the default rate card.
func WithPricing(pricing domain.Pricing) Option {
	return func(s *Service) { s.pricing = pricing }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the billing service.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		pricing: domain.DefaultPricing(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// EnsureDraftForJob drafts the job's invoice with the rate card total and a
// due date two weeks out. Calling it again for the same job returns the
// existing invoice regardless of its current state.
func (s *Service) EnsureDraftForJob(ctx context.Context, jobID uuid.UUID, serviceType string) (*projection.Projection[*domain.Invoice], error) {
	draft := domain.NewDraft(uuid.New(), jobID, s.pricing.TotalCents(serviceType), s.now())
	return s.repo.EnsureForJob(ctx, draft)
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Invoice], error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetInvoiceByJob(ctx context.Context, jobID uuid.UUID) (*projection.Projection[*domain.Invoice], error) {
	return s.repo.GetByJob(ctx, jobID)
}

func (s *Service) ListInvoices(ctx context.Context) ([]*projection.Projection[*domain.Invoice], error) {
	return s.repo.List(ctx)
}

func (s *Service) SendInvoice(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Invoice], error) {
	return s.mutate(ctx, id, func(invoice *domain.Invoice) error {
		return invoice.Send()
	})
}

func (s *Service) RecordPayment(ctx context.Context, input billingtypes.RecordPaymentInput) (*projection.Projection[*domain.Invoice], error) {
	method, err := domain.ParsePaymentMethod(input.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.mutate(ctx, input.InvoiceID, func(invoice *domain.Invoice) error {
		return invoice.RecordPayment(method, s.now())
	})
}

func (s *Service) VoidInvoice(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.Invoice], error) {
	return s.mutate(ctx, id, func(invoice *domain.Invoice) error {
		return invoice.Void()
	})
}

// DeleteInvoiceByJob removes the job's invoice as part of job deletion. A job
// without an invoice is a no-op.
func (s *Service) DeleteInvoiceByJob(ctx context.Context, jobID uuid.UUID) error {
	if err := s.repo.DeleteByJob(ctx, jobID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, apply func(*domain.Invoice) error) (*projection.Projection[*domain.Invoice], error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice := current.Entity
	if err := apply(invoice); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.Save(ctx, invoice)
}

var _ ports.Service = (*Service)(nil)
