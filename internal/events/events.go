package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusTopic = "localbite.orders.status"

	EventOrderRequested = "order.requested"
	EventOrderUpdated   = "order.status_changed"
)

// OrderEvent is published whenever an order is created or changes status.
type OrderEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    uuid.UUID `json:"order_id"`
	OrderCode  string    `json:"order_code"`
	Status     string    `json:"status"`
	PrevStatus string    `json:"prev_status,omitempty"`
	MealID     uuid.UUID `json:"meal_id"`
	CookID     uuid.UUID `json:"cook_id"`
	FoodieID   uuid.UUID `json:"foodie_id"`
	Actor      string    `json:"actor"`
}

type Publisher interface {
	Publish(ctx context.Context, topic string, msg []byte) error
	Close() error
}

// PublishJSON marshals v and publishes it on topic.
func PublishJSON(ctx context.Context, p Publisher, topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.Publish(ctx, topic, payload)
}

// NoopPublisher drops every message. Used when NATS_URL is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) error { return nil }
func (NoopPublisher) Close() error                                  { return nil }
