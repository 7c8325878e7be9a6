package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sincrochat/catalog-backend/api/controllers"
	cartcontrollers "github.com/sincrochat/catalog-backend/api/controllers/cart"
	"github.com/sincrochat/catalog-backend/api/middleware"
	cartsvc "github.com/sincrochat/catalog-backend/internal/cart"
	"github.com/sincrochat/catalog-backend/internal/catalog"
	checkoutsvc "github.com/sincrochat/catalog-backend/internal/checkout"
	"github.com/sincrochat/catalog-backend/pkg/config"
	"github.com/sincrochat/catalog-backend/pkg/logger"
	"github.com/sincrochat/catalog-backend/pkg/metrics"
	"github.com/sincrochat/catalog-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient redis.Pinger,
	catalogClient *catalog.Client,
	carts *cartsvc.Manager,
	checkoutService checkoutsvc.Service,
	requestMetrics *metrics.RequestMetrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(requestMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SessionContext(logg))

		r.Get("/catalog", controllers.CatalogFetch(catalogClient, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(carts, logg))
			r.Delete("/", cartcontrollers.CartClear(carts, logg))
			r.Post("/toggle", cartcontrollers.CartToggle(carts, logg))
			r.Post("/items", cartcontrollers.CartAddItem(carts, logg))
			r.Patch("/items/{itemID}", cartcontrollers.CartUpdateQuantity(carts, logg))
			r.Delete("/items/{itemID}", cartcontrollers.CartRemoveItem(carts, logg))
		})

		r.Post("/checkout", controllers.Checkout(checkoutService, carts, logg))
	})

	return r
}
