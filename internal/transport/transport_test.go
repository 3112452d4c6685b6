package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"atelier-store/internal/admin"
	"atelier-store/internal/cart"
	"atelier-store/internal/catalog"
	"atelier-store/internal/checkout"
	"atelier-store/internal/gateway"
	"atelier-store/internal/middleware"
	"atelier-store/internal/orders"
	"atelier-store/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// memStore is an in-memory store.Store so handler tests run without
// redis.
type memStore struct {
	values map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return value, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.values, key)
	return nil
}

// testEnv wires the full handler surface against in-memory
// collaborators, mirroring the server assembly.
type testEnv struct {
	router  chi.Router
	catalog *catalog.Repository
	orders  *orders.Store
	guard   *admin.Guard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	kv := newMemStore()
	catalogRepo := catalog.NewRepository(catalog.SeedProducts())
	orderStore := orders.NewStore()
	cartManager := cart.NewManager(kv, logger)

	cardGateway := &gateway.MockCardGateway{CheckoutURL: "https://checkout.stripe.com/test-session"}
	altCardGateway := &gateway.MockAltCardGateway{AuthorizationURL: "https://checkout.paystack.com/test-transaction"}
	cryptoGateway := &gateway.MockCryptoGateway{Orders: orderStore, Logger: logger}

	checkoutManager := checkout.NewManager(cartManager, checkout.Gateways{
		Card:    cardGateway,
		AltCard: altCardGateway,
		Crypto:  cryptoGateway,
	}, time.Second, logger)

	guard, err := admin.NewGuard(kv, "admin@example.com", "password", "test-secret", logger)
	if err != nil {
		t.Fatalf("NewGuard: %v", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.SessionMiddleware())

	NewCatalogHandler(catalogRepo, logger).RegisterRoutes(router)
	NewCartHandler(cartManager, catalogRepo, logger).RegisterRoutes(router)
	NewCheckoutHandler(checkoutManager, logger).RegisterRoutes(router)
	NewPaymentHandler(cardGateway, altCardGateway, cryptoGateway, logger).RegisterRoutes(router)
	NewAdminHandler(guard, catalogRepo, orderStore, logger).RegisterRoutes(router, middleware.AdminAuthMiddleware(guard, logger))

	return &testEnv{
		router:  router,
		catalog: catalogRepo,
		orders:  orderStore,
		guard:   guard,
	}
}

// do performs a request under a fixed shopper session cookie and
// returns the recorded response.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "test-session"})
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
