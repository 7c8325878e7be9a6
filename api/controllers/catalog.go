package controllers

import (
	"context"
	"net/http"

	"github.com/sincrochat/catalog-backend/api/middleware"
	"github.com/sincrochat/catalog-backend/api/responses"
	"github.com/sincrochat/catalog-backend/internal/catalog"
	pkgerrors "github.com/sincrochat/catalog-backend/pkg/errors"
	"github.com/sincrochat/catalog-backend/pkg/logger"
)

type catalogFetcher interface {
	FetchBundle(ctx context.Context, token string) (*catalog.Bundle, error)
}

// CatalogFetch relays the upstream catalog bundle for the request's token.
func CatalogFetch(client catalogFetcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog client unavailable"))
			return
		}

		token := middleware.SessionTokenFromContext(r.Context())
		bundle, err := client.FetchBundle(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, bundle)
	}
}
