package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Storefront pages are served from the catalog web origin; everything else is
// a messaging-app webview hitting the same host.
var defaultCORSOrigins = []string{
	"http://localhost:4321", // local storefront dev server
	"https://catalog.sincro.chat",
}

// CORS returns middleware that applies the storefront's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Catalog-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
