package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sincrochat/catalog-backend/api/middleware"
	"github.com/sincrochat/catalog-backend/api/responses"
	"github.com/sincrochat/catalog-backend/api/validators"
	cartsvc "github.com/sincrochat/catalog-backend/internal/cart"
	pkgerrors "github.com/sincrochat/catalog-backend/pkg/errors"
	"github.com/sincrochat/catalog-backend/pkg/logger"
)

// engineFor binds the scoped engine to the request's catalog token before any
// operation touches it.
func engineFor(carts *cartsvc.Manager, r *http.Request) *cartsvc.Engine {
	engine := carts.Engine(middleware.ClientScopeFromContext(r.Context()))
	engine.EnsureSession(r.Context(), middleware.SessionTokenFromContext(r.Context()))
	return engine
}

// CartFetch returns the current cart snapshot.
func CartFetch(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}
		responses.WriteSuccess(w, engineFor(carts, r).Snapshot())
	}
}

// CartAddItem adds (or merges) a configured product into the cart.
func CartAddItem(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine := engineFor(carts, r)
		if err := engine.AddToCart(r.Context(), toAddInput(payload)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, engine.Snapshot())
	}
}

// CartUpdateQuantity sets a line item's quantity; 0 removes it.
func CartUpdateQuantity(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine := engineFor(carts, r)
		engine.UpdateQuantity(r.Context(), chi.URLParam(r, "itemID"), *payload.Quantity)

		responses.WriteSuccess(w, engine.Snapshot())
	}
}

// CartRemoveItem deletes a line item; unknown ids are a no-op.
func CartRemoveItem(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		engine := engineFor(carts, r)
		engine.Remove(r.Context(), chi.URLParam(r, "itemID"))

		responses.WriteSuccess(w, engine.Snapshot())
	}
}

// CartClear empties the cart and its durable storage.
func CartClear(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		engine := engineFor(carts, r)
		engine.Clear(r.Context())

		responses.WriteSuccess(w, engine.Snapshot())
	}
}

// CartToggle flips the drawer-open flag.
func CartToggle(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		engine := engineFor(carts, r)
		engine.ToggleOpen()

		responses.WriteSuccess(w, engine.Snapshot())
	}
}
