package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ExtraSelection is an extra line item as chosen on the order form.
type ExtraSelection struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"` // defaults to 1, minimum 1
}

// Order is a submitted rental order. Monetary totals are captured once at
// creation time, in cents, from the live rate table; later rate changes do
// not reprice an existing order.
type Order struct {
	ID              int64            `json:"id"`
	OrderNumber     string           `json:"order_number"` // external reference, uuid-based
	CustomerName    string           `json:"customer_name"`
	CustomerEmail   string           `json:"customer_email"`
	CustomerPhone   string           `json:"customer_phone"`
	DeliveryAddress string           `json:"delivery_address"`
	Tier            MachineTier      `json:"tier"`
	Mixers          []string         `json:"mixers"`
	Extras          []ExtraSelection `json:"extras"`
	StartDate       string           `json:"start_date"` // YYYY-MM-DD
	EndDate         string           `json:"end_date"`   // YYYY-MM-DD
	// Delivery window is display-only and never affects price.
	DeliveryWindow  string      `json:"delivery_window,omitempty"`
	ServiceDiscount bool        `json:"service_discount"`
	RentalDays      int         `json:"rental_days"`
	SubtotalCents   int64       `json:"subtotal_cents"`
	TotalCents      int64       `json:"total_cents"`
	Status          OrderStatus `json:"status"`
	PaymentID       string      `json:"payment_id,omitempty"`
	CancelReason    string      `json:"cancel_reason,omitempty"`
	CreatedOn       time.Time   `json:"created_on"`
	UpdatedOn       time.Time   `json:"updated_on"`
}
