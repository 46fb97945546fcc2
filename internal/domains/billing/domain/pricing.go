package domain

// Pricing computes invoice totals from a base fee plus a per-service-type
// surcharge. Unknown service types fall back to the base fee alone.
type Pricing struct {
	BaseFeeCents   int64
	SurchargeCents map[string]int64
}

// DefaultPricing mirrors the back office rate card. Values are cents.
func DefaultPricing() Pricing {
	return Pricing{
		BaseFeeCents: 15000,
		SurchargeCents: map[string]int64{
			"RESIDENTIAL_MOVING": 35000,
			"OFFICE_RELOCATION":  60000,
			"SMALL_DELIVERIES":   5000,
			"PALLET_DELIVERY":    45000,
		},
	}
}

// TotalCents returns the invoice total for a service type.
func (p Pricing) TotalCents(serviceType string) int64 {
	return p.BaseFeeCents + p.SurchargeCents[serviceType]
}
