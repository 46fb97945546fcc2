package domain

import "errors"

// RateConfig is the manager-tunable rate sheet behind the public quote
// calculator. Exactly one config exists; updates replace it in place.
type RateConfig struct {
	BaseRatePerMileCents      int64
	ServiceMultipliers        map[string]float64
	WeightFactorCentsPerPound float64
	MinimumChargeCents        int64
}

// DefaultRateConfig returns the rate sheet the calculator ships with.
func DefaultRateConfig() RateConfig {
	return RateConfig{
		BaseRatePerMileCents: 250,
		ServiceMultipliers: map[string]float64{
			"RESIDENTIAL_MOVING": 1.5,
			"OFFICE_RELOCATION":  2.0,
			"PALLET_DELIVERY":    1.2,
			"SMALL_DELIVERIES":   1.0,
		},
		WeightFactorCentsPerPound: 0.15,
		MinimumChargeCents:        5000,
	}
}

// Validate rejects rate sheets that would produce free or negative quotes.
func (c RateConfig) Validate() error {
	if c.BaseRatePerMileCents <= 0 {
		return errors.New("base rate per mile must be positive")
	}
	if c.WeightFactorCentsPerPound < 0 {
		return errors.New("weight factor must not be negative")
	}
	if c.MinimumChargeCents <= 0 {
		return errors.New("minimum charge must be positive")
	}
	for serviceType, multiplier := range c.ServiceMultipliers {
		if multiplier <= 0 {
			return errors.New("service multiplier for " + serviceType + " must be positive")
		}
	}
	return nil
}

// MultiplierFor returns the configured multiplier for a service type, or 1
// when the rate sheet has no entry for it.
func (c RateConfig) MultiplierFor(serviceType string) float64 {
	if multiplier, ok := c.ServiceMultipliers[serviceType]; ok {
		return multiplier
	}
	return 1
}

// Clone deep-copies the config so callers can mutate their copy freely.
func (c RateConfig) Clone() RateConfig {
	clone := c
	clone.ServiceMultipliers = make(map[string]float64, len(c.ServiceMultipliers))
	for serviceType, multiplier := range c.ServiceMultipliers {
		clone.ServiceMultipliers[serviceType] = multiplier
	}
	return clone
}
