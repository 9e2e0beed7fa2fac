package service_test

import (
	"context"
	"errors"
	"testing"

	"frostbar-backend/internal/availability"
	"frostbar-backend/internal/cache"
	"frostbar-backend/internal/clients"
	"frostbar-backend/internal/config"
	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixture struct {
	orderRepo       *MockOrderRepo
	reservationRepo *MockReservationRepo
	settingsRepo    *MockSettingsRepo
	payments        *MockPaymentClient
	emailSvc        *MockEmailService
	publisher       *MockPublisher
	svc             service.OrderService
}

func testPricingDefaults() config.PricingConfig {
	return config.PricingConfig{
		DeliveryFee:         20.00,
		SalesTaxRate:        0.0825,
		ProcessingFeeRate:   0.03,
		ServiceDiscountRate: 0.10,
		TierPrices: map[string]float64{
			"single": 124.95,
			"double": 149.95,
			"triple": 174.95,
		},
		MixerPrices: map[string]float64{
			"margarita": 19.95,
		},
		ExtraPrices: map[string]float64{
			"table": 14.95,
		},
	}
}

func newOrderServiceFixture() *orderServiceFixture {
	f := &orderServiceFixture{
		orderRepo:       new(MockOrderRepo),
		reservationRepo: new(MockReservationRepo),
		settingsRepo:    new(MockSettingsRepo),
		payments:        new(MockPaymentClient),
		emailSvc:        new(MockEmailService),
		publisher:       new(MockPublisher),
	}

	// The cache points at a closed port; every lookup degrades to a miss and
	// the quote service falls through to the mocked settings repo.
	settingsCache := cache.NewSettingsCache(config.RedisConfig{Addr: "127.0.0.1:1", TTLSeconds: 1})
	quoteSvc := service.NewQuoteService(f.settingsRepo, settingsCache, testPricingDefaults())
	checker := availability.NewChecker(f.reservationRepo, nil)

	f.svc = service.NewOrderService(
		f.orderRepo,
		f.reservationRepo,
		quoteSvc,
		checker,
		f.payments,
		f.emailSvc,
		f.publisher,
	)
	return f
}

func defaultSettings() *domain.PricingSettings {
	d := testPricingDefaults()
	return &domain.PricingSettings{
		DeliveryFee:         d.DeliveryFee,
		SalesTaxRate:        d.SalesTaxRate,
		ProcessingFeeRate:   d.ProcessingFeeRate,
		ServiceDiscountRate: d.ServiceDiscountRate,
		TierPrices:          d.TierPrices,
		MixerPrices:         d.MixerPrices,
		ExtraPrices:         d.ExtraPrices,
	}
}

func validPlaceOrderRequest() *service.PlaceOrderRequest {
	return &service.PlaceOrderRequest{
		CustomerName:    "Dana Field",
		CustomerEmail:   "dana@example.com",
		CustomerPhone:   "555-0100",
		DeliveryAddress: "12 Shore Rd",
		Tier:            domain.MachineTierSingle,
		StartDate:       "2026-06-12",
		EndDate:         "2026-06-12",
		CardToken:       "tok_visa",
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.settingsRepo.On("Get", ctx).Return(defaultSettings(), nil)
		f.reservationRepo.On("CountActiveOverlapping", ctx, domain.MachineTierSingle, "2026-06-12", "2026-06-12").Return(0, nil)
		f.orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = 7
		}).Return(nil)
		f.reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Reservation).ID = 11
		}).Return(nil)
		f.payments.On("Capture", ctx, mock.AnythingOfType("*clients.CaptureRequest")).
			Return(&clients.CaptureResponse{PaymentID: "pay_123", Status: "succeeded"}, nil)
		f.orderRepo.On("Update", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		f.reservationRepo.On("UpdateStatus", ctx, int64(11), domain.ReservationStatusBooked).Return(nil)
		f.emailSvc.On("SendOrderConfirmation", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		f.publisher.On("PublishOrderCreated", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

		result, err := f.svc.PlaceOrder(ctx, validPlaceOrderRequest())
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, domain.OrderStatusConfirmed, result.Order.Status)
		assert.Equal(t, "pay_123", result.Order.PaymentID)
		assert.Equal(t, 1, result.Order.RentalDays)
		// 124.95 + 20.00 delivery, then 8.25% tax and 3% processing fee.
		assert.Equal(t, int64(14495), result.Order.SubtotalCents)
		assert.Equal(t, int64(16126), result.Order.TotalCents)
		assert.Empty(t, result.Warning)
		f.reservationRepo.AssertCalled(t, "UpdateStatus", ctx, int64(11), domain.ReservationStatusBooked)
	})

	t.Run("Machine Unavailable", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.settingsRepo.On("Get", ctx).Return(defaultSettings(), nil)
		// Fleet holds four single-tank machines; all four are reserved.
		f.reservationRepo.On("CountActiveOverlapping", ctx, domain.MachineTierSingle, "2026-06-12", "2026-06-12").Return(4, nil)

		result, err := f.svc.PlaceOrder(ctx, validPlaceOrderRequest())
		assert.ErrorIs(t, err, service.ErrMachineUnavailable)
		assert.Nil(t, result)
		f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Availability Lookup Failure Is A Warning", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.settingsRepo.On("Get", ctx).Return(defaultSettings(), nil)
		f.reservationRepo.On("CountActiveOverlapping", ctx, domain.MachineTierSingle, "2026-06-12", "2026-06-12").
			Return(0, errors.New("connection reset"))
		f.orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		f.reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		f.payments.On("Capture", ctx, mock.AnythingOfType("*clients.CaptureRequest")).
			Return(&clients.CaptureResponse{PaymentID: "pay_456", Status: "succeeded"}, nil)
		f.orderRepo.On("Update", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		f.reservationRepo.On("UpdateStatus", ctx, mock.AnythingOfType("int64"), domain.ReservationStatusBooked).Return(nil)
		f.emailSvc.On("SendOrderConfirmation", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		f.publisher.On("PublishOrderCreated", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

		result, err := f.svc.PlaceOrder(ctx, validPlaceOrderRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, result.Warning)
		assert.Equal(t, domain.OrderStatusConfirmed, result.Order.Status)
	})

	t.Run("Payment Declined", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.settingsRepo.On("Get", ctx).Return(defaultSettings(), nil)
		f.reservationRepo.On("CountActiveOverlapping", ctx, domain.MachineTierSingle, "2026-06-12", "2026-06-12").Return(0, nil)
		f.orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		f.reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Reservation).ID = 21
		}).Return(nil)
		f.payments.On("Capture", ctx, mock.AnythingOfType("*clients.CaptureRequest")).
			Return(nil, errors.New("card declined"))
		f.reservationRepo.On("UpdateStatus", ctx, int64(21), domain.ReservationStatusReleased).Return(nil)
		f.orderRepo.On("Update", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

		result, err := f.svc.PlaceOrder(ctx, validPlaceOrderRequest())
		assert.ErrorIs(t, err, service.ErrPaymentDeclined)
		assert.Nil(t, result)
		// The hold must reopen so the dates become bookable again.
		f.reservationRepo.AssertCalled(t, "UpdateStatus", ctx, int64(21), domain.ReservationStatusReleased)
	})

	t.Run("Validation Failures", func(t *testing.T) {
		f := newOrderServiceFixture()

		cases := []struct {
			name   string
			mutate func(*service.PlaceOrderRequest)
			field  string
		}{
			{"missing name", func(r *service.PlaceOrderRequest) { r.CustomerName = " " }, "customer_name"},
			{"bad email", func(r *service.PlaceOrderRequest) { r.CustomerEmail = "not-an-email" }, "customer_email"},
			{"missing address", func(r *service.PlaceOrderRequest) { r.DeliveryAddress = "" }, "delivery_address"},
			{"unknown tier", func(r *service.PlaceOrderRequest) { r.Tier = "mega" }, "tier"},
			{"too many mixers", func(r *service.PlaceOrderRequest) { r.Mixers = []string{"a", "b"} }, "mixers"},
			{"bad start date", func(r *service.PlaceOrderRequest) { r.StartDate = "June 12" }, "start_date"},
			{"inverted dates", func(r *service.PlaceOrderRequest) { r.StartDate = "2026-06-14"; r.EndDate = "2026-06-12" }, "end_date"},
			{"negative extra quantity", func(r *service.PlaceOrderRequest) {
				r.Extras = []domain.ExtraSelection{{ID: "table", Quantity: -1}}
			}, "extras"},
			{"missing card", func(r *service.PlaceOrderRequest) { r.CardToken = "" }, "card_token"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validPlaceOrderRequest()
				tc.mutate(req)

				_, err := f.svc.PlaceOrder(ctx, req)
				var validationErr *service.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tc.field, validationErr.Field)
			})
		}
	})
}

func TestOrderService_CancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Refunds And Releases", func(t *testing.T) {
		f := newOrderServiceFixture()
		order := &domain.Order{
			ID:          3,
			OrderNumber: "FB-ABCD1234",
			Status:      domain.OrderStatusConfirmed,
			PaymentID:   "pay_123",
			TotalCents:  16126,
		}
		f.orderRepo.On("GetByOrderNumber", ctx, "FB-ABCD1234").Return(order, nil)
		f.payments.On("Refund", ctx, "pay_123", int64(16126)).Return(nil)
		f.reservationRepo.On("GetByOrderID", ctx, int64(3)).
			Return(&domain.Reservation{ID: 9, OrderID: 3, Status: domain.ReservationStatusBooked}, nil)
		f.reservationRepo.On("UpdateStatus", ctx, int64(9), domain.ReservationStatusReleased).Return(nil)
		f.orderRepo.On("Update", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		f.emailSvc.On("SendOrderCancellation", ctx, mock.AnythingOfType("*domain.Order"), "weather").Return(nil)
		f.publisher.On("PublishOrderCancelled", ctx, mock.AnythingOfType("*domain.Order"), "weather").Return(nil)

		cancelled, err := f.svc.CancelOrder(ctx, "FB-ABCD1234", "weather")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
		assert.Equal(t, "weather", cancelled.CancelReason)
		f.payments.AssertCalled(t, "Refund", ctx, "pay_123", int64(16126))
	})

	t.Run("Already Cancelled Is A No-Op", func(t *testing.T) {
		f := newOrderServiceFixture()
		order := &domain.Order{OrderNumber: "FB-ABCD1234", Status: domain.OrderStatusCancelled}
		f.orderRepo.On("GetByOrderNumber", ctx, "FB-ABCD1234").Return(order, nil)

		cancelled, err := f.svc.CancelOrder(ctx, "FB-ABCD1234", "again")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
		f.payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Completed Cannot Be Cancelled", func(t *testing.T) {
		f := newOrderServiceFixture()
		order := &domain.Order{OrderNumber: "FB-ABCD1234", Status: domain.OrderStatusCompleted}
		f.orderRepo.On("GetByOrderNumber", ctx, "FB-ABCD1234").Return(order, nil)

		_, err := f.svc.CancelOrder(ctx, "FB-ABCD1234", "late")
		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("Unknown Order", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.orderRepo.On("GetByOrderNumber", ctx, "FB-MISSING1").Return(nil, errors.New("sql: no rows"))

		_, err := f.svc.CancelOrder(ctx, "FB-MISSING1", "")
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})
}

func TestOrderService_ListOrders_ClampsPaging(t *testing.T) {
	ctx := context.Background()
	f := newOrderServiceFixture()
	f.orderRepo.On("List", ctx, "", int32(1), int32(20)).Return([]domain.Order{}, int32(0), nil)

	_, _, err := f.svc.ListOrders(ctx, "", 0, 500)
	require.NoError(t, err)
	f.orderRepo.AssertCalled(t, "List", ctx, "", int32(1), int32(20))
}
