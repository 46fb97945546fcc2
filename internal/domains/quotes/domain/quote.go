package domain

import (
	"errors"
	"math"
)

// JobType distinguishes household moves from freight work for surcharge and
// pricing-model purposes.
type JobType string

const (
	JobResidential JobType = "RESIDENTIAL"
	JobCommercial  JobType = "COMMERCIAL"
)

// Pricing models the calculator recommends to the sales team.
const (
	PricingFlatRate = "FLAT_RATE"
	PricingHourly   = "HOURLY"
	PricingPerCWT   = "CWT"
)

const (
	roomSurchargeCents   = 5000
	palletSurchargeCents = 7500
	// Commercial loads above this weight are better priced per hundredweight.
	cwtWeightThresholdLB = 1000
)

var (
	ErrInvalidServiceType = errors.New("service type is invalid")
	ErrInvalidJobType     = errors.New("job type is invalid")
	ErrMissingStop        = errors.New("origin and destination are required")
	ErrNegativeQuantity   = errors.New("weights, distances, and counts must not be negative")
)

var knownServiceTypes = map[string]struct{}{
	"RESIDENTIAL_MOVING": {},
	"OFFICE_RELOCATION":  {},
	"PALLET_DELIVERY":    {},
	"SMALL_DELIVERIES":   {},
}

// QuoteRequest is a prospective customer's pricing inquiry.
type QuoteRequest struct {
	Origin        string
	Destination   string
	ServiceType   string
	JobType       JobType
	WeightLB      float64
	DistanceMiles float64
	RoomCount     int
	PalletCount   int
}

// Validate checks the inquiry before any rates are applied. A zero distance
// means "estimate it for me" and is allowed.
func (r QuoteRequest) Validate() error {
	if r.Origin == "" || r.Destination == "" {
		return ErrMissingStop
	}
	if _, ok := knownServiceTypes[r.ServiceType]; !ok {
		return ErrInvalidServiceType
	}
	switch r.JobType {
	case JobResidential, JobCommercial, "":
	default:
		return ErrInvalidJobType
	}
	if r.WeightLB < 0 || r.DistanceMiles < 0 || r.RoomCount < 0 || r.PalletCount < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// Breakdown itemizes how a quote total was assembled.
type Breakdown struct {
	BaseRatePerMileCents int64
	DistanceCostCents    int64
	ServiceMultiplier    float64
	ServiceCostCents     int64
	WeightCostCents      int64
	JobTypeCostCents     int64
	MinimumChargeCents   int64
}

// Quote is the calculator's answer to a pricing inquiry.
type Quote struct {
	TotalCents           int64
	DistanceMiles        float64
	ServiceType          string
	JobType              JobType
	RecommendedPricing   string
	EstimatedTransitDays string
	Breakdown            Breakdown
}

// Calculate prices a quote request against the rate sheet. Requests without a
// distance get one estimated from the stops.
func Calculate(config RateConfig, request QuoteRequest) (*Quote, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	distance := request.DistanceMiles
	if distance == 0 {
		distance = EstimateDistanceMiles(request.Origin, request.Destination)
	}

	distanceCost := distance * float64(config.BaseRatePerMileCents)
	multiplier := config.MultiplierFor(request.ServiceType)
	serviceCost := distanceCost * multiplier
	weightCost := request.WeightLB * config.WeightFactorCentsPerPound

	jobType := request.JobType
	if jobType == "" {
		jobType = JobCommercial
	}
	var jobTypeCost float64
	recommendation := PricingFlatRate
	switch jobType {
	case JobResidential:
		jobTypeCost = float64(request.RoomCount) * roomSurchargeCents
		recommendation = PricingHourly
	case JobCommercial:
		jobTypeCost = float64(request.PalletCount) * palletSurchargeCents
		if request.WeightLB > cwtWeightThresholdLB {
			recommendation = PricingPerCWT
		}
	}

	total := int64(math.Round(serviceCost + weightCost + jobTypeCost))
	if total < config.MinimumChargeCents {
		total = config.MinimumChargeCents
	}

	return &Quote{
		TotalCents:           total,
		DistanceMiles:        distance,
		ServiceType:          request.ServiceType,
		JobType:              jobType,
		RecommendedPricing:   recommendation,
		EstimatedTransitDays: estimateTransitDays(distance),
		Breakdown: Breakdown{
			BaseRatePerMileCents: config.BaseRatePerMileCents,
			DistanceCostCents:    int64(math.Round(distanceCost)),
			ServiceMultiplier:    multiplier,
			ServiceCostCents:     int64(math.Round(serviceCost)),
			WeightCostCents:      int64(math.Round(weightCost)),
			JobTypeCostCents:     int64(math.Round(jobTypeCost)),
			MinimumChargeCents:   config.MinimumChargeCents,
		},
	}, nil
}

// EstimateDistanceMiles is a placeholder heuristic derived from the stop
// strings, floored at 50 miles.
// TODO: replace with a road-distance lookup against a maps provider.
func EstimateDistanceMiles(origin, destination string) float64 {
	diff := len(origin) - len(destination)
	if diff < 0 {
		diff = -diff
	}
	miles := float64(diff * 10)
	if miles < 50 {
		return 50
	}
	return miles
}

func estimateTransitDays(distanceMiles float64) string {
	switch {
	case distanceMiles < 100:
		return "1-2 days"
	case distanceMiles < 500:
		return "2-4 days"
	case distanceMiles < 1000:
		return "4-7 days"
	default:
		return "7-14 days"
	}
}
