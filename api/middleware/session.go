package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sincrochat/catalog-backend/api/responses"
	pkgerrors "github.com/sincrochat/catalog-backend/pkg/errors"
	"github.com/sincrochat/catalog-backend/pkg/logger"
)

const (
	tokenHeader = "X-Catalog-Token"
	tokenQuery  = "t"

	clientCookie    = "sincro_client"
	clientCookieTTL = 365 * 24 * time.Hour
)

// SessionContext resolves the two identifiers every cart request needs: the
// catalog link token (header or ?t= query, matching the original link shape)
// and the client scope cookie that partitions cart storage per device. The
// cookie is minted on first contact. The token is treated as opaque; the
// upstream owns validation.
func SessionContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(tokenHeader)
			if token == "" {
				token = r.URL.Query().Get(tokenQuery)
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "catalog token missing"))
				return
			}

			scope := clientScope(w, r)

			ctx := WithSessionToken(r.Context(), token)
			ctx = WithClientScope(ctx, scope)
			if logg != nil {
				ctx = logg.WithSessionToken(ctx, token)
				ctx = logg.WithClientScope(ctx, scope)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientScope(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(clientCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scope := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookie,
		Value:    scope,
		Path:     "/",
		MaxAge:   int(clientCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return scope
}
