package postgres

import (
	"context"
	"database/sql"
	"time"

	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (order_id, tier, start_date, end_date, status, expires_at, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		res.OrderID, res.Tier, res.StartDate, res.EndDate, res.Status, res.ExpiresAt, time.Now(),
	).Scan(&res.ID)
}

func (r *reservationRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	query := `SELECT id, order_id, tier, start_date, end_date, status, expires_at, created_on
	          FROM reservations WHERE order_id = $1`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&res.ID, &res.OrderID, &res.Tier, &res.StartDate, &res.EndDate, &res.Status, &res.ExpiresAt, &res.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	query := `UPDATE reservations SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

// CountActiveOverlapping counts HELD and BOOKED reservations for a tier whose
// date range intersects [startDate, endDate]. Ranges stored as yyyy-mm-dd
// strings compare correctly as dates.
func (r *reservationRepository) CountActiveOverlapping(ctx context.Context, tier domain.MachineTier, startDate, endDate string) (int, error) {
	var count int
	query := `SELECT count(*) FROM reservations
	          WHERE tier = $1 AND status IN ($2, $3)
	          AND start_date <= $4 AND end_date >= $5`
	err := r.db.QueryRowContext(ctx, query,
		tier, domain.ReservationStatusHeld, domain.ReservationStatusBooked, endDate, startDate,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reservationRepository) ReleaseExpiredHolds(ctx context.Context) (int64, error) {
	query := `UPDATE reservations SET status = $1 WHERE status = $2 AND expires_at < $3`
	result, err := r.db.ExecContext(ctx, query, domain.ReservationStatusReleased, domain.ReservationStatusHeld, time.Now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
