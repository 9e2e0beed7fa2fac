package service_test

import (
	"context"
	"time"

	"frostbar-backend/internal/clients"
	"frostbar-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListStartingOn(ctx context.Context, startDate string) ([]domain.Order, error) {
	args := m.Called(ctx, startDate)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListEndedBefore(ctx context.Context, date string) ([]domain.Order, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByOrderID(ctx context.Context, orderID int64) (*domain.Reservation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockReservationRepo) CountActiveOverlapping(ctx context.Context, tier domain.MachineTier, startDate, endDate string) (int, error) {
	args := m.Called(ctx, tier, startDate, endDate)
	return args.Int(0), args.Error(1)
}
func (m *MockReservationRepo) ReleaseExpiredHolds(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.PricingSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingSettings), args.Error(1)
}
func (m *MockSettingsRepo) Save(ctx context.Context, settings *domain.PricingSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockPaymentClient
type MockPaymentClient struct {
	mock.Mock
}

func (m *MockPaymentClient) Capture(ctx context.Context, req *clients.CaptureRequest) (*clients.CaptureResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.CaptureResponse), args.Error(1)
}
func (m *MockPaymentClient) Refund(ctx context.Context, paymentID string, amountCents int64) error {
	args := m.Called(ctx, paymentID, amountCents)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderCancellation(ctx context.Context, order *domain.Order, reason string) error {
	args := m.Called(ctx, order, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendDeliveryReminder(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockPublisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	args := m.Called(ctx, order, previous)
	return args.Error(0)
}
func (m *MockPublisher) PublishOrderCancelled(ctx context.Context, order *domain.Order, reason string) error {
	args := m.Called(ctx, order, reason)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
