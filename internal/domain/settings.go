package domain

import "time"

// PricingSettings is the admin-adjustable rate table. A single row is kept in
// Postgres; the config file only seeds it on first boot.
type PricingSettings struct {
	DeliveryFee         float64            `json:"delivery_fee"`
	SalesTaxRate        float64            `json:"sales_tax_rate"`
	ProcessingFeeRate   float64            `json:"processing_fee_rate"`
	ServiceDiscountRate float64            `json:"service_discount_rate"`
	TierPrices          map[string]float64 `json:"tier_prices"`
	MixerPrices         map[string]float64 `json:"mixer_prices"`
	ExtraPrices         map[string]float64 `json:"extra_prices"`
	UpdatedOn           time.Time          `json:"updated_on"`
}
