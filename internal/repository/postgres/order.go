package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/repository"

	"github.com/lib/pq"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone, delivery_address,
	tier, mixers, extras, start_date, end_date, delivery_window, service_discount,
	rental_days, subtotal_cents, total_cents, status, payment_id, cancel_reason, created_on, updated_on`

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	extras, err := json.Marshal(o.Extras)
	if err != nil {
		return fmt.Errorf("failed to encode extras: %w", err)
	}

	query := `INSERT INTO orders (order_number, customer_name, customer_email, customer_phone, delivery_address,
	          tier, mixers, extras, start_date, end_date, delivery_window, service_discount,
	          rental_days, subtotal_cents, total_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.DeliveryAddress,
		o.Tier, pq.Array(o.Mixers), extras, o.StartDate, o.EndDate, o.DeliveryWindow, o.ServiceDiscount,
		o.RentalDays, o.SubtotalCents, o.TotalCents, o.Status, time.Now(), time.Now(),
	).Scan(&o.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrder(r.db.QueryRowContext(ctx, query, id))
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	return r.scanOrder(r.db.QueryRowContext(ctx, query, orderNumber))
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	query := `UPDATE orders SET status=$1, payment_id=$2, cancel_reason=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, o.Status, o.PaymentID, o.CancelReason, time.Now(), o.ID)
	return err
}

func (r *orderRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + orderColumns + ` FROM orders`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *orderRepository) ListStartingOn(ctx context.Context, startDate string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE start_date = $1 AND status = $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, startDate, domain.OrderStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) ListEndedBefore(ctx context.Context, date string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE end_date < $1 AND status IN ($2, $3) ORDER BY end_date`
	rows, err := r.db.QueryContext(ctx, query, date, domain.OrderStatusConfirmed, domain.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 AND created_on < $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *orderRepository) scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	var extras []byte
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.DeliveryAddress,
		&o.Tier, pq.Array(&o.Mixers), &extras, &o.StartDate, &o.EndDate, &o.DeliveryWindow, &o.ServiceDiscount,
		&o.RentalDays, &o.SubtotalCents, &o.TotalCents, &o.Status, &o.PaymentID, &o.CancelReason, &o.CreatedOn, &o.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if len(extras) > 0 {
		if err := json.Unmarshal(extras, &o.Extras); err != nil {
			return nil, fmt.Errorf("failed to decode extras: %w", err)
		}
	}
	return o, nil
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o := domain.Order{}
		var extras []byte
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.DeliveryAddress,
			&o.Tier, pq.Array(&o.Mixers), &extras, &o.StartDate, &o.EndDate, &o.DeliveryWindow, &o.ServiceDiscount,
			&o.RentalDays, &o.SubtotalCents, &o.TotalCents, &o.Status, &o.PaymentID, &o.CancelReason, &o.CreatedOn, &o.UpdatedOn,
		); err != nil {
			return nil, err
		}
		if len(extras) > 0 {
			if err := json.Unmarshal(extras, &o.Extras); err != nil {
				return nil, fmt.Errorf("failed to decode extras: %w", err)
			}
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
