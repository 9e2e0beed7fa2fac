package availability

import (
	"context"

	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/logger"
	"frostbar-backend/internal/repository"
)

// Result is the outcome of an availability check. ServiceError is set when
// the lookup itself failed; it is deliberately distinct from Available=false
// so a transient backend failure warns the customer instead of blocking a
// legitimate booking.
type Result struct {
	Available    bool   `json:"available"`
	ServiceError string `json:"error,omitempty"`
}

// DefaultFleet is the number of machines owned per tier. Bookings for a tier
// and date range are available while active reservations stay under this.
var DefaultFleet = map[domain.MachineTier]int{
	domain.MachineTierSingle: 4,
	domain.MachineTierDouble: 3,
	domain.MachineTierTriple: 2,
}

// Checker answers whether a machine tier is bookable for a date range.
type Checker struct {
	reservations repository.ReservationRepository
	fleet        map[domain.MachineTier]int
}

func NewChecker(reservations repository.ReservationRepository, fleet map[domain.MachineTier]int) *Checker {
	if fleet == nil {
		fleet = DefaultFleet
	}
	return &Checker{reservations: reservations, fleet: fleet}
}

// Check counts active reservations overlapping the range and compares against
// fleet size. Lookup failures come back as a soft warning, not "unavailable".
func (c *Checker) Check(ctx context.Context, tier domain.MachineTier, startDate, endDate string) Result {
	units, ok := c.fleet[tier]
	if !ok {
		return Result{Available: false}
	}

	count, err := c.reservations.CountActiveOverlapping(ctx, tier, startDate, endDate)
	if err != nil {
		logger.Warn("Availability lookup failed", "tier", tier, "start", startDate, "end", endDate, "error", err)
		return Result{Available: false, ServiceError: "availability could not be verified"}
	}

	return Result{Available: count < units}
}
