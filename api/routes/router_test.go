package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cartsvc "github.com/sincrochat/catalog-backend/internal/cart"
	"github.com/sincrochat/catalog-backend/internal/checkout"
	"github.com/sincrochat/catalog-backend/pkg/config"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Checkout(context.Context, *cartsvc.Engine, checkout.Input) (string, error) {
	return "ord-1", nil
}

func newTestHandler() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"

	carts := cartsvc.NewManager(func(string) cartsvc.Storage {
		return cartsvc.NewMemoryStorage()
	}, nil)

	return NewRouter(cfg, nil, stubPinger{}, nil, carts, stubCheckoutService{}, nil)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, w.Code)
		}
	}
}

func TestCartRoutesRequireToken(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without token, got %d", w.Code)
	}
}

func TestCartFlowThroughRouter(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()

	body := `{"catalog_product_id": "cp-1", "product": {"id": "p1", "name": "Burger", "price": 1000}, "quantity": 1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items?t=tok-a", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("add item returned %d: %s", w.Code, w.Body.String())
	}

	// The same anonymous client gets a fresh scope per request without the
	// cookie, so reuse the minted one.
	var cookie string
	for _, c := range w.Result().Cookies() {
		if c.Name == "sincro_client" {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("expected client scope cookie to be minted")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart?t=tok-a", nil)
	req.AddCookie(&http.Cookie{Name: "sincro_client", Value: cookie})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("cart fetch returned %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"count":1`) {
		t.Fatalf("expected persisted item in snapshot: %s", w.Body.String())
	}
}

func TestCheckoutThroughRouter(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()

	body := `{"customer_id": "cust-1", "type": "pick_up"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout?t=tok-a", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("checkout returned %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "ord-1") {
		t.Fatalf("expected order id in response: %s", w.Body.String())
	}
}
