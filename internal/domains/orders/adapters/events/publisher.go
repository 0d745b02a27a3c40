// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
	"github.com/freshharvest/harvest-api/internal/platform/kafka"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// Envelope is the JSON record written to the topic.
type Envelope struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

type placedPayload struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

type statusPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// KafkaPublisher writes events keyed by order id.
type KafkaPublisher struct {
	writer kafka.MessageWriter
	newID  func() string
}

func NewKafkaPublisher(writer kafka.MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, newID: uuid.NewString}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	if p == nil || p.writer == nil {
		return errors.New("kafka publisher not configured")
	}
	envelope, err := p.envelope(event)
	if err != nil {
		return err
	}
	if err := kafka.PublishJSON(ctx, p.writer, envelope.OrderID, envelope); err != nil {
		return fmt.Errorf("publish %s: %w", envelope.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *KafkaPublisher) envelope(event domain.Event) (Envelope, error) {
	env := Envelope{
		EventID:    p.newID(),
		Type:       event.EventName(),
		OccurredAt: event.OccurredAt().UTC(),
	}
	switch e := event.(type) {
	case domain.OrderPlaced:
		env.OrderID = e.OrderID
		env.Payload = placedPayload{
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Quantity:    e.Quantity,
			Subtotal:    e.Subtotal,
		}
	case domain.OrderStatusChanged:
		env.OrderID = e.OrderID
		env.Payload = statusPayload{From: string(e.FromStatus), To: string(e.ToStatus)}
	default:
		return Envelope{}, fmt.Errorf("unsupported event %s", event.EventName())
	}
	return env, nil
}
