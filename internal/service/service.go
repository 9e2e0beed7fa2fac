package service

import (
	"context"

	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/pricing"
)

// QuoteService computes price breakdowns from the live rate table.
type QuoteService interface {
	Quote(ctx context.Context, in pricing.QuoteInput) (pricing.PriceBreakdown, error)
	CurrentRates(ctx context.Context) pricing.RateTable
}

// SettingsService manages the admin-adjustable rate table.
type SettingsService interface {
	Get(ctx context.Context) (*domain.PricingSettings, error)
	Update(ctx context.Context, settings *domain.PricingSettings) error
}

// PlaceOrderRequest carries a submitted order form.
type PlaceOrderRequest struct {
	CustomerName    string                  `json:"customer_name"`
	CustomerEmail   string                  `json:"customer_email"`
	CustomerPhone   string                  `json:"customer_phone"`
	DeliveryAddress string                  `json:"delivery_address"`
	Tier            domain.MachineTier      `json:"tier"`
	Mixers          []string                `json:"mixers"`
	Extras          []domain.ExtraSelection `json:"extras"`
	StartDate       string                  `json:"start_date"`
	EndDate         string                  `json:"end_date"`
	DeliveryWindow  string                  `json:"delivery_window"`
	ServiceDiscount bool                    `json:"service_discount"`
	CardToken       string                  `json:"card_token"`
}

// PlaceOrderResult is the order plus its priced breakdown. Warning carries a
// non-blocking availability notice (the check errored, not "machine booked").
type PlaceOrderResult struct {
	Order     *domain.Order          `json:"order"`
	Breakdown pricing.PriceBreakdown `json:"breakdown"`
	Warning   string                 `json:"warning,omitempty"`
}

// OrderService runs the order lifecycle.
type OrderService interface {
	PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResult, error)
	GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListOrders(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error)
	CancelOrder(ctx context.Context, orderNumber, reason string) (*domain.Order, error)
}

// EmailService sends customer notifications.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order) error
	SendOrderCancellation(ctx context.Context, order *domain.Order, reason string) error
	SendDeliveryReminder(ctx context.Context, order *domain.Order) error
}
