package postgres_test

import (
	"context"
	"testing"
	"time"

	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	expiresAt := time.Now().Add(30 * time.Minute)
	res := &domain.Reservation{
		OrderID:   5,
		Tier:      domain.MachineTierSingle,
		StartDate: "2026-06-12",
		EndDate:   "2026-06-14",
		Status:    domain.ReservationStatusHeld,
		ExpiresAt: &expiresAt,
	}

	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(res.OrderID, res.Tier, res.StartDate, res.EndDate, res.Status, res.ExpiresAt, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	err = repo.Create(ctx, res)
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CountActiveOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	// Overlap is start <= requested end AND end >= requested start.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
		WithArgs(domain.MachineTierSingle, domain.ReservationStatusHeld, domain.ReservationStatusBooked, "2026-06-14", "2026-06-12").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountActiveOverlapping(ctx, domain.MachineTierSingle, "2026-06-12", "2026-06-14")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_ReleaseExpiredHolds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs(domain.ReservationStatusReleased, domain.ReservationStatusHeld, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	released, err := repo.ReleaseExpiredHolds(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs(domain.ReservationStatusBooked, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStatus(ctx, 9, domain.ReservationStatusBooked)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
