package pricing

import (
	"fmt"

	"frostbar-backend/internal/domain"
)

// ErrUnknownTier is returned when a machine tier has no price in the rate
// table. An unrecognized tier is a configuration bug and must fail loudly
// rather than fall back to a default rate.
var ErrUnknownTier = fmt.Errorf("unknown machine tier")

// RateTable holds every externally adjustable pricing constant. Instances are
// value types; the quote service builds one per request from current settings,
// so a calculation never observes a half-applied settings change.
type RateTable struct {
	DeliveryFee         float64
	SalesTaxRate        float64
	ProcessingFeeRate   float64
	ServiceDiscountRate float64
	TierPrices          map[string]float64
	MixerPrices         map[string]float64
	ExtraPrices         map[string]float64
}

// RatesFromSettings converts persisted settings into a rate table.
func RatesFromSettings(s *domain.PricingSettings) RateTable {
	return RateTable{
		DeliveryFee:         s.DeliveryFee,
		SalesTaxRate:        s.SalesTaxRate,
		ProcessingFeeRate:   s.ProcessingFeeRate,
		ServiceDiscountRate: s.ServiceDiscountRate,
		TierPrices:          s.TierPrices,
		MixerPrices:         s.MixerPrices,
		ExtraPrices:         s.ExtraPrices,
	}
}

// BasePrice returns the per-day base rate for a machine tier.
func (r RateTable) BasePrice(tier domain.MachineTier) (float64, error) {
	price, ok := r.TierPrices[string(tier)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return price, nil
}

// MixerSurcharge returns the per-day surcharge for a mixer id. Unknown or
// empty ids cost nothing: an empty slot means the customer supplies their own
// mix, and an order may reference a mixer that has since left the catalog.
func (r RateTable) MixerSurcharge(mixerID string) float64 {
	return r.MixerPrices[mixerID]
}

// ExtraPrice returns the per-day unit price for an extra. Unknown extras are
// reported so callers can reject them at order intake.
func (r RateTable) ExtraPrice(extraID string) (float64, bool) {
	price, ok := r.ExtraPrices[extraID]
	return price, ok
}
