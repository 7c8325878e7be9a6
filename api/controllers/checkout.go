package controllers

import (
	"net/http"

	"github.com/sincrochat/catalog-backend/api/middleware"
	"github.com/sincrochat/catalog-backend/api/responses"
	"github.com/sincrochat/catalog-backend/api/validators"
	"github.com/sincrochat/catalog-backend/internal/cart"
	checkoutsvc "github.com/sincrochat/catalog-backend/internal/checkout"
	pkgerrors "github.com/sincrochat/catalog-backend/pkg/errors"
	"github.com/sincrochat/catalog-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerID      string `json:"customer_id" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=delivery pick_up"`
	DeliveryAddress string `json:"delivery_address"`
	BusinessID      string `json:"business_id"`
}

type checkoutResponse struct {
	OrderID string `json:"order_id"`
}

// Checkout submits the current cart as an order and clears it on success.
func Checkout(svc checkoutsvc.Service, carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.SessionTokenFromContext(r.Context())
		engine := carts.Engine(middleware.ClientScopeFromContext(r.Context()))
		engine.EnsureSession(r.Context(), token)

		orderID, err := svc.Checkout(r.Context(), engine, checkoutsvc.Input{
			SessionToken:    token,
			CustomerID:      payload.CustomerID,
			Type:            payload.Type,
			DeliveryAddress: payload.DeliveryAddress,
			BusinessID:      payload.BusinessID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutResponse{OrderID: orderID})
	}
}
