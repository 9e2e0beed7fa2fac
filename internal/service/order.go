package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"frostbar-backend/internal/availability"
	"frostbar-backend/internal/clients"
	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/events"
	"frostbar-backend/internal/logger"
	"frostbar-backend/internal/pricing"
	"frostbar-backend/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrMachineUnavailable = errors.New("machine is already booked for the requested dates")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPaymentDeclined    = errors.New("payment was declined")
)

// ValidationError marks bad order-form input; handlers map it to a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type orderService struct {
	orderRepo       repository.OrderRepository
	reservationRepo repository.ReservationRepository
	quoteSvc        QuoteService
	checker         *availability.Checker
	payments        clients.PaymentClient
	emailSvc        EmailService
	publisher       events.Publisher
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	reservationRepo repository.ReservationRepository,
	quoteSvc QuoteService,
	checker *availability.Checker,
	payments clients.PaymentClient,
	emailSvc EmailService,
	publisher events.Publisher,
) OrderService {
	return &orderService{
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		quoteSvc:        quoteSvc,
		checker:         checker,
		payments:        payments,
		emailSvc:        emailSvc,
		publisher:       publisher,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	breakdown, err := s.quoteSvc.Quote(ctx, pricing.QuoteInput{
		Tier:            req.Tier,
		Mixers:          req.Mixers,
		Extras:          req.Extras,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		ServiceDiscount: req.ServiceDiscount,
	})
	if err != nil {
		return nil, err
	}

	// An availability lookup failure is a soft warning, never a hard block:
	// a transient backend error must not turn away a legitimate booking.
	var warning string
	check := s.checker.Check(ctx, req.Tier, req.StartDate, req.EndDate)
	if check.ServiceError != "" {
		warning = check.ServiceError
	} else if !check.Available {
		return nil, ErrMachineUnavailable
	}

	order := &domain.Order{
		OrderNumber:     newOrderNumber(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Tier:            req.Tier,
		Mixers:          req.Mixers,
		Extras:          req.Extras,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		DeliveryWindow:  req.DeliveryWindow,
		ServiceDiscount: req.ServiceDiscount,
		RentalDays:      breakdown.RentalDays,
		SubtotalCents:   pricing.ToCents(breakdown.Subtotal),
		TotalCents:      pricing.ToCents(breakdown.FinalTotal),
		Status:          domain.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	expiresAt := time.Now().Add(domain.HoldDuration)
	reservation := &domain.Reservation{
		OrderID:   order.ID,
		Tier:      req.Tier,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.ReservationStatusHeld,
		ExpiresAt: &expiresAt,
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to hold reservation: %w", err)
	}

	capture, err := s.payments.Capture(ctx, &clients.CaptureRequest{
		OrderNumber: order.OrderNumber,
		AmountCents: order.TotalCents,
		Currency:    "usd",
		CardToken:   req.CardToken,
		Description: fmt.Sprintf("Frozen drink machine rental %s to %s", order.StartDate, order.EndDate),
	})
	if err != nil {
		// Release the hold so the dates reopen immediately.
		_ = s.reservationRepo.UpdateStatus(ctx, reservation.ID, domain.ReservationStatusReleased)
		order.Status = domain.OrderStatusCancelled
		order.CancelReason = "payment declined"
		_ = s.orderRepo.Update(ctx, order)
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}

	order.Status = domain.OrderStatusConfirmed
	order.PaymentID = capture.PaymentID
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	if err := s.reservationRepo.UpdateStatus(ctx, reservation.ID, domain.ReservationStatusBooked); err != nil {
		return nil, err
	}

	// Notification and event publishing are best-effort; the booking stands.
	if err := s.emailSvc.SendOrderConfirmation(ctx, order); err != nil {
		logger.Warn("Failed to send order confirmation", "order_number", order.OrderNumber, "error", err)
	}
	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		logger.Warn("Failed to publish order created event", "order_number", order.OrderNumber, "error", err)
	}

	return &PlaceOrderResult{Order: order, Breakdown: breakdown, Warning: warning}, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.orderRepo.List(ctx, status, page, pageSize)
}

func (s *orderService) CancelOrder(ctx context.Context, orderNumber, reason string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == domain.OrderStatusCancelled {
		return order, nil
	}
	if order.Status == domain.OrderStatusCompleted {
		return nil, &ValidationError{Field: "status", Message: "completed orders cannot be cancelled"}
	}

	if order.PaymentID != "" {
		if err := s.payments.Refund(ctx, order.PaymentID, order.TotalCents); err != nil {
			return nil, fmt.Errorf("refund failed: %w", err)
		}
	}

	if reservation, err := s.reservationRepo.GetByOrderID(ctx, order.ID); err == nil {
		_ = s.reservationRepo.UpdateStatus(ctx, reservation.ID, domain.ReservationStatusReleased)
	}

	order.Status = domain.OrderStatusCancelled
	order.CancelReason = reason
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendOrderCancellation(ctx, order, reason); err != nil {
		logger.Warn("Failed to send cancellation email", "order_number", order.OrderNumber, "error", err)
	}
	if err := s.publisher.PublishOrderCancelled(ctx, order, reason); err != nil {
		logger.Warn("Failed to publish order cancelled event", "order_number", order.OrderNumber, "error", err)
	}

	return order, nil
}

func (s *orderService) validate(req *PlaceOrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return &ValidationError{Field: "customer_name", Message: "name is required"}
	}
	if strings.TrimSpace(req.CustomerEmail) == "" || !strings.Contains(req.CustomerEmail, "@") {
		return &ValidationError{Field: "customer_email", Message: "a valid email is required"}
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return &ValidationError{Field: "delivery_address", Message: "delivery address is required"}
	}

	spec, ok := domain.SpecForTier(req.Tier)
	if !ok {
		return &ValidationError{Field: "tier", Message: fmt.Sprintf("unknown machine tier %q", req.Tier)}
	}
	if len(req.Mixers) > spec.MaxMixerSlots {
		return &ValidationError{
			Field:   "mixers",
			Message: fmt.Sprintf("%s machines hold at most %d mixer(s)", req.Tier, spec.MaxMixerSlots),
		}
	}

	// Quoting is permissive about dates; a submitted order is not.
	start, err := pricing.ParseCalendarDate(req.StartDate)
	if err != nil {
		return &ValidationError{Field: "start_date", Message: "start date must be yyyy-mm-dd"}
	}
	end, err := pricing.ParseCalendarDate(req.EndDate)
	if err != nil {
		return &ValidationError{Field: "end_date", Message: "return date must be yyyy-mm-dd"}
	}
	if end.Before(start) {
		return &ValidationError{Field: "end_date", Message: "return date must not be before the start date"}
	}

	for _, extra := range req.Extras {
		// Zero means "not set" and defaults to 1 in the calculation.
		if extra.Quantity < 0 {
			return &ValidationError{Field: "extras", Message: "extra quantity must not be negative"}
		}
	}

	if strings.TrimSpace(req.CardToken) == "" {
		return &ValidationError{Field: "card_token", Message: "payment card is required"}
	}
	return nil
}

func newOrderNumber() string {
	// Short, customer-facing reference.
	return "FB-" + strings.ToUpper(uuid.NewString()[:8])
}
