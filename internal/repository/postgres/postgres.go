package postgres

import (
	"database/sql"

	"frostbar-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.OrderRepository
	repository.ReservationRepository
	repository.SettingsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		OrderRepository:       NewOrderRepository(db),
		ReservationRepository: NewReservationRepository(db),
		SettingsRepository:    NewSettingsRepository(db),
	}
}
