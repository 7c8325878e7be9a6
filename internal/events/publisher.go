package events

import (
	"context"
	"encoding/json"
	"time"

	gpubsub "cloud.google.com/go/pubsub/v2"
	"github.com/sincrochat/catalog-backend/pkg/logger"
	"github.com/sincrochat/catalog-backend/pkg/pubsub"
)

// OrderSubmitted is emitted after the upstream accepted an order. Consumers
// (analytics, notifications) are external; publishing is strictly best-effort
// and never blocks or fails the checkout.
type OrderSubmitted struct {
	EventType    string    `json:"event_type"`
	OrderID      string    `json:"order_id"`
	SessionToken string    `json:"session_token"`
	BusinessID   string    `json:"business_id,omitempty"`
	ItemCount    int       `json:"item_count"`
	Subtotal     int64     `json:"subtotal"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

const orderSubmittedType = "order.submitted"

// Publisher fans domain events out to Pub/Sub. A nil Publisher (eventing
// disabled) is valid and drops everything.
type Publisher struct {
	client *pubsub.Client
	logg   *logger.Logger
}

func NewPublisher(client *pubsub.Client, logg *logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client, logg: logg}
}

// OrderSubmittedEvent publishes the event and waits for the broker ack so the
// failure (if any) lands in the logs of the request that caused it.
func (p *Publisher) OrderSubmittedEvent(ctx context.Context, event OrderSubmitted) {
	if p == nil || p.client == nil {
		return
	}

	event.EventType = orderSubmittedType
	if event.SubmittedAt.IsZero() {
		event.SubmittedAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.warn(ctx, "order event encode failed")
		return
	}

	publisher := p.client.OrderPublisher()
	if publisher == nil {
		p.warn(ctx, "order topic not configured")
		return
	}

	result := publisher.Publish(ctx, &gpubsub.Message{
		Data:       data,
		Attributes: map[string]string{"event_type": orderSubmittedType},
	})
	if _, err := result.Get(ctx); err != nil {
		if p.logg != nil {
			p.logg.Error(ctx, "order event publish failed", err)
		}
	}
}

func (p *Publisher) warn(ctx context.Context, msg string) {
	if p.logg != nil {
		p.logg.Warn(ctx, msg)
	}
}
