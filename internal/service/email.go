package service

import (
	"context"
	"fmt"

	"frostbar-backend/internal/config"
	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/logger"
	"frostbar-backend/internal/pricing"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	bccEmail  string
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &emailService{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		bccEmail:  cfg.BccEmail,
	}
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	subject := fmt.Sprintf("Order %s confirmed — your frozen drink machine is booked", order.OrderNumber)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour rental is confirmed!\n\nMachine: %s tank\nRental dates: %s to %s (%d day(s))\nTotal charged: %s\n\nWe'll deliver to:\n%s\n\nSee you soon,\nThe Frostbar Team",
		order.CustomerName,
		order.Tier,
		order.StartDate,
		order.EndDate,
		order.RentalDays,
		pricing.FormatUSD(float64(order.TotalCents)/100),
		order.DeliveryAddress,
	)
	return s.send(ctx, order.CustomerEmail, order.CustomerName, subject, body)
}

func (s *emailService) SendOrderCancellation(ctx context.Context, order *domain.Order, reason string) error {
	subject := fmt.Sprintf("Order %s cancelled", order.OrderNumber)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour rental order %s has been cancelled.",
		order.CustomerName,
		order.OrderNumber,
	)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nAny captured payment will be refunded to your card.\n\nThe Frostbar Team"
	return s.send(ctx, order.CustomerEmail, order.CustomerName, subject, body)
}

func (s *emailService) SendDeliveryReminder(ctx context.Context, order *domain.Order) error {
	subject := "Your frozen drink machine arrives tomorrow"
	window := order.DeliveryWindow
	if window == "" {
		window = "during the day"
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nA reminder that your %s-tank machine will be delivered on %s, %s.\n\nDelivery address:\n%s\n\nThe Frostbar Team",
		order.CustomerName,
		order.Tier,
		order.StartDate,
		window,
		order.DeliveryAddress,
	)
	return s.send(ctx, order.CustomerEmail, order.CustomerName, subject, body)
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	if s.bccEmail != "" && len(message.Personalizations) > 0 {
		message.Personalizations[0].AddBCCs(mail.NewEmail("", s.bccEmail))
	}

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil, "to", toEmail)
	return nil
}
