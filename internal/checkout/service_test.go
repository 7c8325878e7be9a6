package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sincrochat/catalog-backend/internal/cart"
	"github.com/sincrochat/catalog-backend/internal/events"
	pkgerrors "github.com/sincrochat/catalog-backend/pkg/errors"
)

type stubSubmitter struct {
	orderID  string
	err      error
	payloads []OrderPayload
}

func (s *stubSubmitter) SubmitOrder(_ context.Context, payload any) (string, error) {
	if typed, ok := payload.(OrderPayload); ok {
		s.payloads = append(s.payloads, typed)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.orderID, nil
}

type stubPublisher struct {
	published []events.OrderSubmitted
}

func (s *stubPublisher) OrderSubmittedEvent(_ context.Context, event events.OrderSubmitted) {
	s.published = append(s.published, event)
}

func newCartWithItem(t *testing.T) *cart.Engine {
	t.Helper()
	engine := cart.NewEngine(cart.NewMemoryStorage(), nil)
	ctx := context.Background()
	engine.InitSession(ctx, "tok-a")
	err := engine.AddToCart(ctx, cart.AddInput{
		CatalogProductID: "cp-1",
		Product:          cart.ProductSnapshot{ID: "p1", Name: "Burger", Price: 1000},
		Quantity:         2,
		Modifiers: []cart.ModifierSelection{
			{GroupName: "Extras", Items: []cart.SubItemSelection{{ItemID: "e1", Name: "Cheese", Price: 500, Quantity: 1}}},
		},
		Notes: "no onions",
	})
	require.NoError(t, err)
	return engine
}

func TestCheckoutSubmitsExactCartPricing(t *testing.T) {
	t.Parallel()

	submitter := &stubSubmitter{orderID: "ord-1"}
	publisher := &stubPublisher{}
	svc, err := NewService(submitter, publisher, nil)
	require.NoError(t, err)

	engine := newCartWithItem(t)
	orderID, err := svc.Checkout(context.Background(), engine, Input{
		SessionToken: "tok-a",
		CustomerID:   "cust-1",
		Type:         OrderTypePickUp,
		BusinessID:   "b1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-1", orderID)

	require.Len(t, submitter.payloads, 1)
	payload := submitter.payloads[0]
	assert.Equal(t, "tok-a", payload.SessionToken)
	assert.Equal(t, "cust-1", payload.CustomerID)

	require.Len(t, payload.Items, 1)
	item := payload.Items[0]
	assert.Equal(t, "p1", item.ProductID)
	assert.Equal(t, int64(1000), item.BasePrice)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, int64(1500), item.UnitPrice)
	assert.Equal(t, int64(3000), item.TotalPrice)
	assert.Equal(t, "no onions", item.Notes)
	assert.Len(t, item.Modifiers, 1)

	assert.Empty(t, engine.Items(), "cart must be cleared after a successful checkout")

	require.Len(t, publisher.published, 1)
	event := publisher.published[0]
	assert.Equal(t, "ord-1", event.OrderID)
	assert.Equal(t, 2, event.ItemCount)
	assert.Equal(t, int64(3000), event.Subtotal)
}

func TestCheckoutEmptyCartIsStateConflict(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubSubmitter{orderID: "ord-1"}, nil, nil)
	require.NoError(t, err)

	engine := cart.NewEngine(cart.NewMemoryStorage(), nil)
	engine.InitSession(context.Background(), "tok-a")

	_, err = svc.Checkout(context.Background(), engine, Input{SessionToken: "tok-a", Type: OrderTypePickUp})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestCheckoutDeliveryRequiresAddress(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubSubmitter{orderID: "ord-1"}, nil, nil)
	require.NoError(t, err)

	engine := newCartWithItem(t)
	_, err = svc.Checkout(context.Background(), engine, Input{SessionToken: "tok-a", Type: OrderTypeDelivery})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCheckoutRejectsUnknownOrderType(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubSubmitter{orderID: "ord-1"}, nil, nil)
	require.NoError(t, err)

	engine := newCartWithItem(t)
	_, err = svc.Checkout(context.Background(), engine, Input{SessionToken: "tok-a", Type: "teleport"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCheckoutKeepsCartOnUpstreamFailure(t *testing.T) {
	t.Parallel()

	submitter := &stubSubmitter{err: errors.New("upstream down")}
	svc, err := NewService(submitter, nil, nil)
	require.NoError(t, err)

	engine := newCartWithItem(t)
	_, err = svc.Checkout(context.Background(), engine, Input{SessionToken: "tok-a", Type: OrderTypePickUp})
	require.Error(t, err)
	assert.Len(t, engine.Items(), 1, "failed checkout must not clear the cart")
}
