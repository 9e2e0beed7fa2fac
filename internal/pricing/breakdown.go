package pricing

import (
	"frostbar-backend/internal/domain"
)

// QuoteInput carries the order-form fields that drive the price calculation.
type QuoteInput struct {
	Tier            domain.MachineTier      `json:"tier"`
	Mixers          []string                `json:"mixers"`
	Extras          []domain.ExtraSelection `json:"extras"`
	StartDate       string                  `json:"start_date"`
	EndDate         string                  `json:"end_date"`
	ServiceDiscount bool                    `json:"service_discount"`
}

// PriceBreakdown is the fully itemized result of a quote. All values are
// dollar amounts kept at full float precision; rounding happens only when a
// value is formatted for display or persisted as cents.
type PriceBreakdown struct {
	BasePrice             float64 `json:"base_price"`
	MixerPrice            float64 `json:"mixer_price"`
	PerDayRate            float64 `json:"per_day_rate"`
	RentalDays            int     `json:"rental_days"`
	ExtrasTotal           float64 `json:"extras_total"`
	DeliveryFee           float64 `json:"delivery_fee"`
	Subtotal              float64 `json:"subtotal"`
	ServiceDiscountAmount float64 `json:"service_discount_amount"`
	DiscountedSubtotal    float64 `json:"discounted_subtotal"`
	SalesTax              float64 `json:"sales_tax"`
	ProcessingFee         float64 `json:"processing_fee"`
	FinalTotal            float64 `json:"final_total"`
}

// Calculate assembles a price breakdown from form inputs and the current rate
// table. It is a pure function: safe to call per keystroke or per request,
// recomputed from scratch every time.
//
// The operation order is fixed; reordering or rounding between steps moves
// the visible total by cents.
func Calculate(in QuoteInput, rates RateTable) (PriceBreakdown, error) {
	basePrice, err := rates.BasePrice(in.Tier)
	if err != nil {
		return PriceBreakdown{}, err
	}

	var mixerPrice float64
	for _, mixerID := range in.Mixers {
		mixerPrice += rates.MixerSurcharge(mixerID)
	}

	perDayRate := basePrice + mixerPrice
	rentalDays := RentalDays(in.StartDate, in.EndDate)

	// Extras are billed per rental day, not as a one-time charge.
	var extrasTotal float64
	for _, sel := range in.Extras {
		unitPrice, ok := rates.ExtraPrice(sel.ID)
		if !ok {
			continue
		}
		qty := sel.Quantity
		if qty < 1 {
			qty = 1
		}
		extrasTotal += unitPrice * float64(qty) * float64(rentalDays)
	}

	subtotal := perDayRate*float64(rentalDays) + rates.DeliveryFee + extrasTotal

	var discountAmount float64
	discountedSubtotal := subtotal
	if in.ServiceDiscount {
		discountAmount = subtotal * rates.ServiceDiscountRate
		discountedSubtotal = subtotal - discountAmount
	}

	salesTax := discountedSubtotal * rates.SalesTaxRate
	processingFee := discountedSubtotal * rates.ProcessingFeeRate
	finalTotal := discountedSubtotal + salesTax + processingFee

	return PriceBreakdown{
		BasePrice:             basePrice,
		MixerPrice:            mixerPrice,
		PerDayRate:            perDayRate,
		RentalDays:            rentalDays,
		ExtrasTotal:           extrasTotal,
		DeliveryFee:           rates.DeliveryFee,
		Subtotal:              subtotal,
		ServiceDiscountAmount: discountAmount,
		DiscountedSubtotal:    discountedSubtotal,
		SalesTax:              salesTax,
		ProcessingFee:         processingFee,
		FinalTotal:            finalTotal,
	}, nil
}
