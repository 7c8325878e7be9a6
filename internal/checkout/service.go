package checkout

import (
	"context"

	"github.com/sincrochat/catalog-backend/internal/cart"
	"github.com/sincrochat/catalog-backend/internal/events"
	pkgerrors "github.com/sincrochat/catalog-backend/pkg/errors"
	"github.com/sincrochat/catalog-backend/pkg/logger"
)

const (
	OrderTypeDelivery = "delivery"
	OrderTypePickUp   = "pick_up"
)

// OrderItem mirrors one cart line item in the upstream order payload. Prices
// are exactly what the cart engine computed; the upstream does not re-derive
// them.
type OrderItem struct {
	ProductID  string                   `json:"product_id"`
	BasePrice  int64                    `json:"base_price"`
	Quantity   int                      `json:"quantity"`
	UnitPrice  int64                    `json:"unit_price"`
	TotalPrice int64                    `json:"total_price"`
	Modifiers  []cart.ModifierSelection `json:"modifiers"`
	Notes      string                   `json:"notes,omitempty"`
}

type OrderPayload struct {
	SessionToken    string      `json:"session_token"`
	CustomerID      string      `json:"customer_id"`
	Type            string      `json:"type"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	Items           []OrderItem `json:"items"`
}

// Input is what the storefront collects before submitting.
type Input struct {
	SessionToken    string
	CustomerID      string
	Type            string
	DeliveryAddress string
	BusinessID      string
}

type orderSubmitter interface {
	SubmitOrder(ctx context.Context, payload any) (string, error)
}

type eventPublisher interface {
	OrderSubmittedEvent(ctx context.Context, event events.OrderSubmitted)
}

// Service turns a cart into an upstream order: build the payload 1:1 from the
// line items, submit, clear the cart on success.
type Service interface {
	Checkout(ctx context.Context, engine *cart.Engine, input Input) (string, error)
}

type service struct {
	upstream orderSubmitter
	events   eventPublisher
	logg     *logger.Logger
}

func NewService(upstream orderSubmitter, publisher eventPublisher, logg *logger.Logger) (Service, error) {
	if upstream == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order submitter required")
	}
	return &service{upstream: upstream, events: publisher, logg: logg}, nil
}

func (s *service) Checkout(ctx context.Context, engine *cart.Engine, input Input) (string, error) {
	if engine == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart engine required")
	}
	if input.Type != OrderTypeDelivery && input.Type != OrderTypePickUp {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order type must be delivery or pick_up")
	}
	if input.Type == OrderTypeDelivery && input.DeliveryAddress == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "delivery orders require an address")
	}

	items := engine.Items()
	if len(items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	payload := BuildPayload(input, items)

	orderID, err := s.upstream.SubmitOrder(ctx, payload)
	if err != nil {
		return "", err
	}

	if s.events != nil {
		s.events.OrderSubmittedEvent(ctx, events.OrderSubmitted{
			OrderID:      orderID,
			SessionToken: input.SessionToken,
			BusinessID:   input.BusinessID,
			ItemCount:    engine.Count(),
			Subtotal:     engine.Subtotal(),
		})
	}

	engine.Clear(ctx)

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "order_id", orderID), "order submitted")
	}
	return orderID, nil
}

// BuildPayload maps line items 1:1 into the order payload shape.
func BuildPayload(input Input, items []cart.LineItem) OrderPayload {
	orderItems := make([]OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, OrderItem{
			ProductID:  item.Product.ID,
			BasePrice:  item.Product.Price,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.LineTotal,
			Modifiers:  item.Modifiers,
			Notes:      item.Notes,
		})
	}
	return OrderPayload{
		SessionToken:    input.SessionToken,
		CustomerID:      input.CustomerID,
		Type:            input.Type,
		DeliveryAddress: input.DeliveryAddress,
		Items:           orderItems,
	}
}
