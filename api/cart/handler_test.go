package cart

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"techmart_server/api/middleware"
	"techmart_server/lib"
	"techmart_server/services"
	"techmart_server/store"
	"techmart_server/structs"
	"techmart_server/structs/tables"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type cartTestEnv struct {
	memory *store.Memory
	router chi.Router
	token  string
	laptop tables.Product
}

func newCartTestEnv(t *testing.T) *cartTestEnv {
	t.Helper()

	memory := store.NewMemory()
	client := memory.Client()
	logger := gecho.NewDefaultLogger()
	cfg := &structs.Config{
		RateLimit: &structs.RateLimitConfig{Enabled: false},
	}

	memory.SeedProfile(tables.Profile{Email: "shopper@example.com", FullName: "Shopper"}, "secret123")
	laptop := memory.SeedProduct(tables.Product{Name: "UltraBook Pro", Price: 1999.99})

	session, err := client.Auth.SignIn(context.Background(), "shopper@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	mw := middleware.NewMiddleware(logger, cfg, client.Auth, nil)
	cartManager := services.NewCartManager(logger, client.Auth, client.Carts)
	crm := NewCartRoutesManager(logger, cartManager, mw)

	router := chi.NewRouter()
	crm.RegisterRoutes(router)

	return &cartTestEnv{
		memory: memory,
		router: router,
		token:  session.Token,
		laptop: laptop,
	}
}

func (env *cartTestEnv) do(t *testing.T, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.AddCookie(&http.Cookie{Name: lib.SessionCookieName, Value: env.token})
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestCartRoutesRequireAuthentication(t *testing.T) {
	env := newCartTestEnv(t)

	if rec := env.do(t, http.MethodGet, "/cart/", "", false); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/cart/items", `{"product_id":"`+env.laptop.ID.String()+`"}`, false); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated POST, got %d", rec.Code)
	}
}

func TestCartAddAndGet(t *testing.T) {
	env := newCartTestEnv(t)

	body := `{"product_id":"` + env.laptop.ID.String() + `","quantity":2,"selected_variants":{"ram":"16GB"}}`
	rec := env.do(t, http.MethodPost, "/cart/items", body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 adding item, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/cart/", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for GET cart, got %d", rec.Code)
	}

	body = rec.Body.String()
	if !strings.Contains(body, `"total_items":2`) {
		t.Fatalf("expected 2 total items in response: %s", body)
	}
	if !strings.Contains(body, `"quantity":2`) {
		t.Fatalf("expected item quantity 2 in response: %s", body)
	}
	if !strings.Contains(body, `"ram":"16GB"`) {
		t.Fatalf("expected selected variants in response: %s", body)
	}
}

func TestCartAddSameProductTwiceBumpsQuantity(t *testing.T) {
	env := newCartTestEnv(t)

	body := `{"product_id":"` + env.laptop.ID.String() + `"}`
	if rec := env.do(t, http.MethodPost, "/cart/items", body, true); rec.Code != http.StatusOK {
		t.Fatalf("first add failed: %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/cart/items", body, true); rec.Code != http.StatusOK {
		t.Fatalf("second add failed: %d", rec.Code)
	}

	rows := env.memory.CartRows()
	if len(rows) != 1 {
		t.Fatalf("expected a single stored row, got %d", len(rows))
	}
	if rows[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 after duplicate add, got %d", rows[0].Quantity)
	}
}

func TestCartCheckoutClearsCart(t *testing.T) {
	env := newCartTestEnv(t)

	body := `{"product_id":"` + env.laptop.ID.String() + `","quantity":3}`
	if rec := env.do(t, http.MethodPost, "/cart/items", body, true); rec.Code != http.StatusOK {
		t.Fatalf("add failed: %d", rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/cart/checkout", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on checkout, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Order Placed Successfully") {
		t.Fatalf("missing confirmation message: %s", rec.Body.String())
	}

	if len(env.memory.CartRows()) != 0 {
		t.Fatalf("expected cart rows deleted after checkout")
	}

	// Checking out an empty cart is rejected.
	if rec := env.do(t, http.MethodPost, "/cart/checkout", "", true); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty-cart checkout, got %d", rec.Code)
	}
}

func TestCartInvalidProductID(t *testing.T) {
	env := newCartTestEnv(t)

	rec := env.do(t, http.MethodPost, "/cart/items", `{"quantity":1}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing product_id, got %d", rec.Code)
	}
}
