package repository

import (
	"context"
	"time"

	"frostbar-backend/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error)

	// Job queries
	ListStartingOn(ctx context.Context, startDate string) ([]domain.Order, error)
	ListEndedBefore(ctx context.Context, date string) ([]domain.Order, error)
	ListExpiredPending(ctx context.Context, cutoff time.Time) ([]domain.Order, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByOrderID(ctx context.Context, orderID int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	CountActiveOverlapping(ctx context.Context, tier domain.MachineTier, startDate, endDate string) (int, error)
	ReleaseExpiredHolds(ctx context.Context) (int64, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.PricingSettings, error)
	Save(ctx context.Context, settings *domain.PricingSettings) error
}
