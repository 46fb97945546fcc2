package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate_CommercialPalletLoad(t *testing.T) {
	quote, err := Calculate(DefaultRateConfig(), QuoteRequest{
		Origin:        "Chicago",
		Destination:   "Detroit",
		ServiceType:   "PALLET_DELIVERY",
		JobType:       JobCommercial,
		DistanceMiles: 280,
		WeightLB:      2400,
		PalletCount:   4,
	})
	require.NoError(t, err)

	// 280 mi * 250c * 1.2 + 2400 lb * 0.15c + 4 pallets * 7500c.
	require.Equal(t, int64(84000), quote.Breakdown.ServiceCostCents)
	require.Equal(t, int64(360), quote.Breakdown.WeightCostCents)
	require.Equal(t, int64(30000), quote.Breakdown.JobTypeCostCents)
	require.Equal(t, int64(114360), quote.TotalCents)
	require.Equal(t, PricingPerCWT, quote.RecommendedPricing)
	require.Equal(t, "2-4 days", quote.EstimatedTransitDays)
}

func TestCalculate_ResidentialRoomsRecommendHourly(t *testing.T) {
	quote, err := Calculate(DefaultRateConfig(), QuoteRequest{
		Origin:        "Oak Park",
		Destination:   "Evanston",
		ServiceType:   "RESIDENTIAL_MOVING",
		JobType:       JobResidential,
		DistanceMiles: 60,
		RoomCount:     3,
	})
	require.NoError(t, err)

	require.Equal(t, int64(15000), quote.Breakdown.JobTypeCostCents)
	require.Equal(t, PricingHourly, quote.RecommendedPricing)
	require.Equal(t, "1-2 days", quote.EstimatedTransitDays)
}

func TestCalculate_MinimumChargeFloor(t *testing.T) {
	config := DefaultRateConfig()
	config.BaseRatePerMileCents = 1

	quote, err := Calculate(config, QuoteRequest{
		Origin:        "A",
		Destination:   "B",
		ServiceType:   "SMALL_DELIVERIES",
		DistanceMiles: 5,
	})
	require.NoError(t, err)
	require.Equal(t, config.MinimumChargeCents, quote.TotalCents)
}

func TestCalculate_DefaultsToCommercialFlatRate(t *testing.T) {
	quote, err := Calculate(DefaultRateConfig(), QuoteRequest{
		Origin:        "Milwaukee",
		Destination:   "Madison",
		ServiceType:   "SMALL_DELIVERIES",
		DistanceMiles: 80,
	})
	require.NoError(t, err)
	require.Equal(t, JobCommercial, quote.JobType)
	require.Equal(t, PricingFlatRate, quote.RecommendedPricing)
}

func TestCalculate_EstimatesDistanceWhenAbsent(t *testing.T) {
	quote, err := Calculate(DefaultRateConfig(), QuoteRequest{
		Origin:      "Springfield, IL",
		Destination: "A",
		ServiceType: "SMALL_DELIVERIES",
	})
	require.NoError(t, err)
	require.Equal(t, EstimateDistanceMiles("Springfield, IL", "A"), quote.DistanceMiles)
	require.Equal(t, float64(140), quote.DistanceMiles)
}

func TestCalculate_RejectsBadRequests(t *testing.T) {
	config := DefaultRateConfig()

	_, err := Calculate(config, QuoteRequest{Destination: "B", ServiceType: "SMALL_DELIVERIES"})
	require.ErrorIs(t, err, ErrMissingStop)

	_, err = Calculate(config, QuoteRequest{Origin: "A", Destination: "B", ServiceType: "DRONE_DROP"})
	require.ErrorIs(t, err, ErrInvalidServiceType)

	_, err = Calculate(config, QuoteRequest{Origin: "A", Destination: "B", ServiceType: "SMALL_DELIVERIES", JobType: "INDUSTRIAL"})
	require.ErrorIs(t, err, ErrInvalidJobType)

	_, err = Calculate(config, QuoteRequest{Origin: "A", Destination: "B", ServiceType: "SMALL_DELIVERIES", WeightLB: -1})
	require.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestEstimateDistanceMiles_FloorsAtFifty(t *testing.T) {
	require.Equal(t, float64(50), EstimateDistanceMiles("same", "size"))
	require.Equal(t, float64(50), EstimateDistanceMiles("abc", "abcdef"))
	require.Equal(t, float64(100), EstimateDistanceMiles("a", "abcdefghijk"))
}

func TestRateConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultRateConfig().Validate())

	zeroRate := DefaultRateConfig()
	zeroRate.BaseRatePerMileCents = 0
	require.Error(t, zeroRate.Validate())

	freeMinimum := DefaultRateConfig()
	freeMinimum.MinimumChargeCents = 0
	require.Error(t, freeMinimum.Validate())

	badMultiplier := DefaultRateConfig()
	badMultiplier.ServiceMultipliers["RESIDENTIAL_MOVING"] = -1
	require.Error(t, badMultiplier.Validate())
}
