package application

import (
	"context"
	"errors"
	"fmt"

	quotestypes "github.com/sslogistics/logipro/internal/domains/quotes/application/types"
	"github.com/sslogistics/logipro/internal/domains/quotes/domain"
	"github.com/sslogistics/logipro/internal/domains/quotes/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// ErrInvalidInput signals the request violated a quoting invariant.
var ErrInvalidInput = errors.New("invalid quote input")

// Service implements the quoting use cases over the rate-sheet store.
type Service struct {
	config ports.ConfigStore
}

// NewService wires the quote service.
func NewService(config ports.ConfigStore) *Service {
	return &Service{config: config}
}

// CalculateQuote prices the inquiry against whatever rate sheet is stored at
// the time of the call.
func (s *Service) CalculateQuote(ctx context.Context, input quotestypes.CalculateQuoteInput) (*domain.Quote, error) {
	stored, err := s.config.Load(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := domain.Calculate(*stored.Entity, domain.QuoteRequest{
		Origin:        input.Origin,
		Destination:   input.Destination,
		ServiceType:   input.ServiceType,
		JobType:       domain.JobType(input.JobType),
		WeightLB:      input.WeightLB,
		DistanceMiles: input.DistanceMiles,
		RoomCount:     input.RoomCount,
		PalletCount:   input.PalletCount,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return quote, nil
}

func (s *Service) GetRateConfig(ctx context.Context) (*projection.Projection[*domain.RateConfig], error) {
	return s.config.Load(ctx)
}

// UpdateRateConfig merges the partial update into the stored rate sheet and
// persists the result if it still validates.
func (s *Service) UpdateRateConfig(ctx context.Context, input quotestypes.UpdateRateConfigInput) (*projection.Projection[*domain.RateConfig], error) {
	stored, err := s.config.Load(ctx)
	if err != nil {
		return nil, err
	}
	next := stored.Entity.Clone()
	if input.BaseRatePerMileCents != nil {
		next.BaseRatePerMileCents = *input.BaseRatePerMileCents
	}
	if input.ServiceMultipliers != nil {
		next.ServiceMultipliers = input.ServiceMultipliers
	}
	if input.WeightFactorCentsPerPound != nil {
		next.WeightFactorCentsPerPound = *input.WeightFactorCentsPerPound
	}
	if input.MinimumChargeCents != nil {
		next.MinimumChargeCents = *input.MinimumChargeCents
	}
	if err := next.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.config.Save(ctx, next)
}

var _ ports.Service = (*Service)(nil)
