package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusHeld     ReservationStatus = "HELD"
	ReservationStatusBooked   ReservationStatus = "BOOKED"
	ReservationStatusReleased ReservationStatus = "RELEASED"
)

// HoldDuration is how long a HELD reservation (and its PENDING order) waits
// for payment capture before the cleanup job releases it.
const HoldDuration = 30 * time.Minute

// Reservation blocks a machine tier for a date range. A HELD reservation is
// created before payment capture and promoted to BOOKED on success; expired
// holds are released by a scheduled job.
type Reservation struct {
	ID        int64             `json:"id"`
	OrderID   int64             `json:"order_id"`
	Tier      MachineTier       `json:"tier"`
	StartDate string            `json:"start_date"` // YYYY-MM-DD
	EndDate   string            `json:"end_date"`   // YYYY-MM-DD
	Status    ReservationStatus `json:"status"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"` // for HELD reservations
	CreatedOn time.Time         `json:"created_on"`
}
