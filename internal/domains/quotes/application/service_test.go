package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	quotesmemory "github.com/sslogistics/logipro/internal/domains/quotes/adapters/memory"
	quotestypes "github.com/sslogistics/logipro/internal/domains/quotes/application/types"
	"github.com/sslogistics/logipro/internal/domains/quotes/domain"
)

func TestCalculateQuote_UsesStoredRateSheet(t *testing.T) {
	svc := NewService(quotesmemory.NewConfigStore())
	ctx := context.Background()

	quote, err := svc.CalculateQuote(ctx, quotestypes.CalculateQuoteInput{
		Origin:        "Chicago",
		Destination:   "St. Louis",
		ServiceType:   "OFFICE_RELOCATION",
		DistanceMiles: 300,
	})
	require.NoError(t, err)
	// 300 mi * 250c * 2.0 from the default rate sheet.
	require.Equal(t, int64(150000), quote.TotalCents)

	doubled := int64(500)
	_, err = svc.UpdateRateConfig(ctx, quotestypes.UpdateRateConfigInput{
		BaseRatePerMileCents: &doubled,
	})
	require.NoError(t, err)

	quote, err = svc.CalculateQuote(ctx, quotestypes.CalculateQuoteInput{
		Origin:        "Chicago",
		Destination:   "St. Louis",
		ServiceType:   "OFFICE_RELOCATION",
		DistanceMiles: 300,
	})
	require.NoError(t, err)
	require.Equal(t, int64(300000), quote.TotalCents)
}

func TestCalculateQuote_InvalidInquiryRejected(t *testing.T) {
	svc := NewService(quotesmemory.NewConfigStore())

	_, err := svc.CalculateQuote(context.Background(), quotestypes.CalculateQuoteInput{
		Origin:      "Chicago",
		Destination: "St. Louis",
		ServiceType: "TELEPORTATION",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidServiceType)
}

func TestGetRateConfig_SeedsDefaults(t *testing.T) {
	svc := NewService(quotesmemory.NewConfigStore())

	config, err := svc.GetRateConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.DefaultRateConfig(), *config.Entity)
}

func TestUpdateRateConfig_PartialUpdateKeepsOtherFields(t *testing.T) {
	svc := NewService(quotesmemory.NewConfigStore())
	ctx := context.Background()

	minimum := int64(9900)
	updated, err := svc.UpdateRateConfig(ctx, quotestypes.UpdateRateConfigInput{
		MinimumChargeCents: &minimum,
	})
	require.NoError(t, err)
	require.Equal(t, minimum, updated.Entity.MinimumChargeCents)

	defaults := domain.DefaultRateConfig()
	require.Equal(t, defaults.BaseRatePerMileCents, updated.Entity.BaseRatePerMileCents)
	require.Equal(t, defaults.ServiceMultipliers, updated.Entity.ServiceMultipliers)
	require.Equal(t, defaults.WeightFactorCentsPerPound, updated.Entity.WeightFactorCentsPerPound)
}

func TestUpdateRateConfig_RejectsInvalidRates(t *testing.T) {
	svc := NewService(quotesmemory.NewConfigStore())
	ctx := context.Background()

	zero := int64(0)
	_, err := svc.UpdateRateConfig(ctx, quotestypes.UpdateRateConfigInput{
		BaseRatePerMileCents: &zero,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	// The stored sheet is untouched after a rejected update.
	config, err := svc.GetRateConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultRateConfig().BaseRatePerMileCents, config.Entity.BaseRatePerMileCents)
}
