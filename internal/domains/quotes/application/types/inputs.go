package types

// CalculateQuoteInput carries a pricing inquiry into the quote service.
type CalculateQuoteInput struct {
	Origin        string
	Destination   string
	ServiceType   string
	JobType       string
	WeightLB      float64
	DistanceMiles float64
	RoomCount     int
	PalletCount   int
}

// UpdateRateConfigInput is a partial rate-sheet update. Nil fields keep the
// stored value.
type UpdateRateConfigInput struct {
	BaseRatePerMileCents      *int64
	ServiceMultipliers        map[string]float64
	WeightFactorCentsPerPound *float64
	MinimumChargeCents        *int64
}
