package ports

import (
	"context"

	quotestypes "github.com/sslogistics/logipro/internal/domains/quotes/application/types"
	"github.com/sslogistics/logipro/internal/domains/quotes/domain"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// ConfigStore persists the single rate sheet (outbound/driven port).
type ConfigStore interface {
	// Load returns the stored rate sheet, seeding the defaults when none
	// exists yet.
	Load(ctx context.Context) (*projection.Projection[*domain.RateConfig], error)
	// Save replaces the stored rate sheet.
	Save(ctx context.Context, config domain.RateConfig) (*projection.Projection[*domain.RateConfig], error)
}

// Service defines the quoting use cases (inbound/driving port).
type Service interface {
	// CalculateQuote prices an inquiry against the current rate sheet.
	CalculateQuote(ctx context.Context, input quotestypes.CalculateQuoteInput) (*domain.Quote, error)
	GetRateConfig(ctx context.Context) (*projection.Projection[*domain.RateConfig], error)
	// UpdateRateConfig applies a partial rate-sheet change; omitted fields
	// keep their stored values.
	UpdateRateConfig(ctx context.Context, input quotestypes.UpdateRateConfigInput) (*projection.Projection[*domain.RateConfig], error)
}
