package logiproserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	quotesapp "github.com/sslogistics/logipro/internal/domains/quotes/application"
	quotestypes "github.com/sslogistics/logipro/internal/domains/quotes/application/types"
	quotesdomain "github.com/sslogistics/logipro/internal/domains/quotes/domain"
	quotesports "github.com/sslogistics/logipro/internal/domains/quotes/ports"
	apierrors "github.com/sslogistics/logipro/internal/shared/errors"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// QuotesAPI wires HTTP transport with the quoting use cases.
type QuotesAPI struct {
	service quotesports.Service
}

// NewQuotesAPI creates a QuotesAPI backed by the provided service.
func NewQuotesAPI(service quotesports.Service) QuotesAPI {
	return QuotesAPI{service: service}
}

// CalculateQuoteRequest is a public pricing inquiry.
type CalculateQuoteRequest struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	ServiceType   string  `json:"serviceType"`
	JobType       string  `json:"jobType,omitempty"`
	WeightLB      float64 `json:"weightLb,omitempty"`
	DistanceMiles float64 `json:"distanceMiles,omitempty"`
	RoomCount     int     `json:"roomCount,omitempty"`
	PalletCount   int     `json:"palletCount,omitempty"`
}

// QuoteBreakdown itemizes the quoted total.
type QuoteBreakdown struct {
	BaseRatePerMileCents int64   `json:"baseRatePerMileCents"`
	DistanceCostCents    int64   `json:"distanceCostCents"`
	ServiceMultiplier    float64 `json:"serviceMultiplier"`
	ServiceCostCents     int64   `json:"serviceCostCents"`
	WeightCostCents      int64   `json:"weightCostCents"`
	JobTypeCostCents     int64   `json:"jobTypeCostCents"`
	MinimumChargeCents   int64   `json:"minimumChargeCents"`
}

// Quote is the HTTP representation of a calculated quote.
type Quote struct {
	TotalCents           int64          `json:"totalCents"`
	DistanceMiles        float64        `json:"distanceMiles"`
	ServiceType          string         `json:"serviceType"`
	JobType              string         `json:"jobType"`
	RecommendedPricing   string         `json:"recommendedPricing"`
	EstimatedTransitDays string         `json:"estimatedTransitDays"`
	Breakdown            QuoteBreakdown `json:"breakdown"`
}

// RateConfig is the HTTP representation of the calculator rate sheet.
type RateConfig struct {
	BaseRatePerMileCents      int64              `json:"baseRatePerMileCents"`
	ServiceMultipliers        map[string]float64 `json:"serviceMultipliers"`
	WeightFactorCentsPerPound float64            `json:"weightFactorCentsPerPound"`
	MinimumChargeCents        int64              `json:"minimumChargeCents"`
	CreatedAt                 time.Time          `json:"createdAt,omitempty"`
	UpdatedAt                 time.Time          `json:"updatedAt,omitempty"`
}

// UpdateRateConfigRequest is a partial rate-sheet update; absent fields keep
// their stored values.
type UpdateRateConfigRequest struct {
	BaseRatePerMileCents      *int64             `json:"baseRatePerMileCents"`
	ServiceMultipliers        map[string]float64 `json:"serviceMultipliers"`
	WeightFactorCentsPerPound *float64           `json:"weightFactorCentsPerPound"`
	MinimumChargeCents        *int64             `json:"minimumChargeCents"`
}

// Post /v1/quotes/calculate
// Price a shipping inquiry (public)
func (api *QuotesAPI) CalculateQuote(c *gin.Context) {
	var payload CalculateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	quote, err := api.service.CalculateQuote(c.Request.Context(), quotestypes.CalculateQuoteInput{
		Origin:        payload.Origin,
		Destination:   payload.Destination,
		ServiceType:   payload.ServiceType,
		JobType:       payload.JobType,
		WeightLB:      payload.WeightLB,
		DistanceMiles: payload.DistanceMiles,
		RoomCount:     payload.RoomCount,
		PalletCount:   payload.PalletCount,
	})
	if err != nil {
		respondQuoteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromQuote(quote))
}

// Get /v1/quotes/config
// Load the calculator rate sheet
func (api *QuotesAPI) GetRateConfig(c *gin.Context) {
	config, err := api.service.GetRateConfig(c.Request.Context())
	if err != nil {
		respondQuoteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromRateConfig(config))
}

// Put /v1/quotes/config
// Update the calculator rate sheet
func (api *QuotesAPI) UpdateRateConfig(c *gin.Context) {
	var payload UpdateRateConfigRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	config, err := api.service.UpdateRateConfig(c.Request.Context(), quotestypes.UpdateRateConfigInput{
		BaseRatePerMileCents:      payload.BaseRatePerMileCents,
		ServiceMultipliers:        payload.ServiceMultipliers,
		WeightFactorCentsPerPound: payload.WeightFactorCentsPerPound,
		MinimumChargeCents:        payload.MinimumChargeCents,
	})
	if err != nil {
		respondQuoteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromRateConfig(config))
}

func fromQuote(quote *quotesdomain.Quote) Quote {
	if quote == nil {
		return Quote{}
	}
	return Quote{
		TotalCents:           quote.TotalCents,
		DistanceMiles:        quote.DistanceMiles,
		ServiceType:          quote.ServiceType,
		JobType:              string(quote.JobType),
		RecommendedPricing:   quote.RecommendedPricing,
		EstimatedTransitDays: quote.EstimatedTransitDays,
		Breakdown: QuoteBreakdown{
			BaseRatePerMileCents: quote.Breakdown.BaseRatePerMileCents,
			DistanceCostCents:    quote.Breakdown.DistanceCostCents,
			ServiceMultiplier:    quote.Breakdown.ServiceMultiplier,
			ServiceCostCents:     quote.Breakdown.ServiceCostCents,
			WeightCostCents:      quote.Breakdown.WeightCostCents,
			JobTypeCostCents:     quote.Breakdown.JobTypeCostCents,
			MinimumChargeCents:   quote.Breakdown.MinimumChargeCents,
		},
	}
}

func fromRateConfig(p *projection.Projection[*quotesdomain.RateConfig]) RateConfig {
	if p == nil || p.Entity == nil {
		return RateConfig{}
	}
	config := p.Entity
	return RateConfig{
		BaseRatePerMileCents:      config.BaseRatePerMileCents,
		ServiceMultipliers:        config.ServiceMultipliers,
		WeightFactorCentsPerPound: config.WeightFactorCentsPerPound,
		MinimumChargeCents:        config.MinimumChargeCents,
		CreatedAt:                 p.Metadata.CreatedAt,
		UpdatedAt:                 p.Metadata.UpdatedAt,
	}
}

func respondQuoteServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, quotesapp.ErrInvalidInput) {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	respondError(c, http.StatusInternalServerError, err)
}
