package jobs

import (
	"context"
	"time"

	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/logger"
	"frostbar-backend/internal/pricing"
)

const expiredHoldCancelReason = "payment not completed before hold expired"

// ReleaseExpiredHolds frees reservation holds whose payment never completed,
// so the machines count as available again, and cancels the PENDING orders
// those holds were protecting.
func (jr *JobRunner) ReleaseExpiredHolds() {
	jr.runWithRecovery("ReleaseExpiredHolds", func() {
		ctx := context.Background()

		released, err := jr.store.ReservationRepository.ReleaseExpiredHolds(ctx)
		if err != nil {
			logger.Error("Failed to release expired holds", "error", err)
			return
		}

		if released > 0 {
			logger.Info("Released expired reservation holds", "count", released)
		}

		cutoff := time.Now().Add(-domain.HoldDuration)
		orders, err := jr.store.OrderRepository.ListExpiredPending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list expired pending orders", "error", err)
			return
		}

		cancelled := 0
		for i := range orders {
			order := &orders[i]
			order.Status = domain.OrderStatusCancelled
			order.CancelReason = expiredHoldCancelReason

			if err := jr.store.OrderRepository.Update(ctx, order); err != nil {
				logger.Error("Failed to cancel expired pending order",
					"order_number", order.OrderNumber, "error", err)
				continue
			}

			if err := jr.services.Events.PublishOrderCancelled(ctx, order, expiredHoldCancelReason); err != nil {
				logger.Error("Failed to publish cancellation event",
					"order_number", order.OrderNumber, "error", err)
			}
			cancelled++
		}

		if cancelled > 0 {
			logger.Info("Cancelled expired pending orders", "count", cancelled)
		}
	})
}

// SendDeliveryReminders emails customers whose rental starts tomorrow.
func (jr *JobRunner) SendDeliveryReminders() {
	jr.runWithRecovery("SendDeliveryReminders", func() {
		ctx := context.Background()

		tomorrow := pricing.FormatCalendarDate(time.Now().AddDate(0, 0, 1))
		orders, err := jr.store.OrderRepository.ListStartingOn(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list orders starting tomorrow", "error", err)
			return
		}

		sent := 0
		for i := range orders {
			order := &orders[i]
			if err := jr.services.Email.SendDeliveryReminder(ctx, order); err != nil {
				logger.Error("Failed to send delivery reminder",
					"order_number", order.OrderNumber, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent delivery reminders", "count", sent, "start_date", tomorrow)
	})
}

// CompleteFinishedOrders marks orders as COMPLETED once their rental period
// has fully ended.
func (jr *JobRunner) CompleteFinishedOrders() {
	jr.runWithRecovery("CompleteFinishedOrders", func() {
		ctx := context.Background()

		today := pricing.FormatCalendarDate(time.Now())
		orders, err := jr.store.OrderRepository.ListEndedBefore(ctx, today)
		if err != nil {
			logger.Error("Failed to list finished orders", "error", err)
			return
		}

		completed := 0
		for i := range orders {
			order := &orders[i]
			previous := order.Status
			order.Status = domain.OrderStatusCompleted

			if err := jr.store.OrderRepository.Update(ctx, order); err != nil {
				logger.Error("Failed to complete order",
					"order_number", order.OrderNumber, "error", err)
				continue
			}

			if res, err := jr.store.ReservationRepository.GetByOrderID(ctx, order.ID); err == nil && res != nil {
				if err := jr.store.ReservationRepository.UpdateStatus(ctx, res.ID, domain.ReservationStatusReleased); err != nil {
					logger.Error("Failed to release reservation",
						"order_number", order.OrderNumber, "error", err)
				}
			}

			if err := jr.services.Events.PublishOrderStatusChanged(ctx, order, previous); err != nil {
				logger.Error("Failed to publish completion event",
					"order_number", order.OrderNumber, "error", err)
			}
			completed++
		}

		logger.Info("Completed finished orders", "count", completed)
	})
}
