package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sincrochat/catalog-backend/api/middleware"
	cartsvc "github.com/sincrochat/catalog-backend/internal/cart"
	"github.com/sincrochat/catalog-backend/pkg/types"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	manager := cartsvc.NewManager(func(string) cartsvc.Storage {
		return cartsvc.NewMemoryStorage()
	}, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := req.Header.Get("X-Catalog-Token")
			if token == "" {
				token = "tok-a"
			}
			ctx := middleware.WithSessionToken(req.Context(), token)
			ctx = middleware.WithClientScope(ctx, "client-test")
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/cart", CartFetch(manager, nil))
	r.Post("/cart/items", CartAddItem(manager, nil))
	r.Patch("/cart/items/{itemID}", CartUpdateQuantity(manager, nil))
	r.Delete("/cart/items/{itemID}", CartRemoveItem(manager, nil))
	r.Delete("/cart", CartClear(manager, nil))
	r.Post("/cart/toggle", CartToggle(manager, nil))
	return r
}

func doJSON(t *testing.T, router *chi.Mux, method, path, body, token string) (*httptest.ResponseRecorder, cartsvc.Snapshot) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Catalog-Token", token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var snap cartsvc.Snapshot
	if w.Code < 300 {
		var envelope types.SuccessEnvelope
		if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
			t.Fatalf("decoding envelope: %v", err)
		}
		raw, err := json.Marshal(envelope.Data)
		if err != nil {
			t.Fatalf("re-encoding data: %v", err)
		}
		if err := json.Unmarshal(raw, &snap); err != nil {
			t.Fatalf("decoding snapshot: %v", err)
		}
	}
	return w, snap
}

const addBurger = `{
	"catalog_product_id": "cp-1",
	"product": {"id": "p1", "name": "Burger", "price": 1000},
	"quantity": 2
}`

func TestAddItemAndMerge(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w, snap := doJSON(t, router, http.MethodPost, "/cart/items", addBurger, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(snap.Items) != 1 || snap.Count != 2 || snap.Subtotal != 2000 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	// Same configuration again: merged, not appended.
	_, snap = doJSON(t, router, http.MethodPost, "/cart/items", strings.Replace(addBurger, `"quantity": 2`, `"quantity": 1`, 1), "")
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 3 || snap.Subtotal != 3000 {
		t.Fatalf("expected merge, got %+v", snap)
	}
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	body := strings.Replace(addBurger, `"quantity": 2`, `"quantity": 0`, 1)

	w, _ := doJSON(t, router, http.MethodPost, "/cart/items", body, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateQuantityAndZeroRemoves(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	_, snap := doJSON(t, router, http.MethodPost, "/cart/items", addBurger, "")
	itemID := snap.Items[0].ID

	_, snap = doJSON(t, router, http.MethodPatch, "/cart/items/"+itemID, `{"quantity": 5}`, "")
	if snap.Items[0].Quantity != 5 || snap.Items[0].LineTotal != 5000 {
		t.Fatalf("unexpected item after update %+v", snap.Items[0])
	}

	_, snap = doJSON(t, router, http.MethodPatch, "/cart/items/"+itemID, `{"quantity": 0}`, "")
	if len(snap.Items) != 0 || snap.Count != 0 {
		t.Fatalf("quantity 0 must remove the item: %+v", snap)
	}
}

func TestRemoveUnknownItemIsNoOp(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	_, _ = doJSON(t, router, http.MethodPost, "/cart/items", addBurger, "")

	w, snap := doJSON(t, router, http.MethodDelete, "/cart/items/does-not-exist", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unknown id must not error, got %d", w.Code)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("cart should be untouched, got %+v", snap)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	_, _ = doJSON(t, router, http.MethodPost, "/cart/items", addBurger, "")

	_, snap := doJSON(t, router, http.MethodDelete, "/cart", "", "")
	if len(snap.Items) != 0 || snap.Subtotal != 0 {
		t.Fatalf("expected empty cart, got %+v", snap)
	}
}

func TestTokenSwitchResetsCart(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	_, _ = doJSON(t, router, http.MethodPost, "/cart/items", addBurger, "tok-a")

	_, snap := doJSON(t, router, http.MethodGet, "/cart", "", "tok-b")
	if len(snap.Items) != 0 {
		t.Fatalf("new token must start with an empty cart, got %+v", snap)
	}
}

func TestToggleFlipsOpenFlag(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	_, snap := doJSON(t, router, http.MethodPost, "/cart/toggle", "", "")
	if !snap.IsOpen {
		t.Fatal("expected cart open after toggle")
	}
	_, snap = doJSON(t, router, http.MethodPost, "/cart/toggle", "", "")
	if snap.IsOpen {
		t.Fatal("expected cart closed after second toggle")
	}
}
