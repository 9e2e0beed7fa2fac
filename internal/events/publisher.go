package events

import (
	"context"
	"encoding/json"
	"time"

	"frostbar-backend/internal/config"
	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventType identifies an order lifecycle event.
type EventType string

const (
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	EventTypeOrderCancelled     EventType = "order.cancelled"
)

// OrderEvent is the envelope published to the orders topic. Downstream
// consumers (accounting export among them) key off OrderNumber.
type OrderEvent struct {
	ID          string          `json:"id"`
	Type        EventType       `json:"type"`
	OrderNumber string          `json:"order_number"`
	Data        json.RawMessage `json:"data"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Publisher emits order lifecycle events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
	PublishOrderCancelled(ctx context.Context, order *domain.Order, reason string) error
	Close() error
}

// KafkaPublisher publishes order events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderCreated, order.OrderNumber, data))
}

func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	payload := struct {
		Order          *domain.Order      `json:"order"`
		PreviousStatus domain.OrderStatus `json:"previous_status"`
		NewStatus      domain.OrderStatus `json:"new_status"`
	}{order, previous, order.Status}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderStatusChanged, order.OrderNumber, data))
}

func (p *KafkaPublisher) PublishOrderCancelled(ctx context.Context, order *domain.Order, reason string) error {
	payload := struct {
		Order  *domain.Order `json:"order"`
		Reason string        `json:"reason"`
	}{order, reason}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderCancelled, order.OrderNumber, data))
}

func (p *KafkaPublisher) publish(ctx context.Context, event *OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error("Failed to publish order event", "event_id", event.ID, "event_type", event.Type, "order_number", event.OrderNumber, "error", err)
		return err
	}

	logger.Debug("Order event published", "event_id", event.ID, "event_type", event.Type, "order_number", event.OrderNumber)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newEvent(eventType EventType, orderNumber string, data []byte) *OrderEvent {
	return &OrderEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		OrderNumber: orderNumber,
		Data:        data,
		Timestamp:   time.Now(),
	}
}

// NopPublisher is used when event publishing is disabled in config.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, *domain.Order) error { return nil }
func (NopPublisher) PublishOrderStatusChanged(context.Context, *domain.Order, domain.OrderStatus) error {
	return nil
}
func (NopPublisher) PublishOrderCancelled(context.Context, *domain.Order, string) error { return nil }
func (NopPublisher) Close() error                                                       { return nil }
