package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier-store/internal/domain"
	"atelier-store/internal/middleware"
)

func (e *testEnv) loginAdmin(t *testing.T) *http.Cookie {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/admin/login", LoginRequest{
		Email:    "admin@example.com",
		Password: "password",
	})
	requireStatus(t, rec, http.StatusOK)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.AdminCookieName {
			return cookie
		}
	}
	t.Fatal("login response did not set the admin cookie")
	return nil
}

func TestAdminLoginRejectsWrongCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/admin/login", LoginRequest{
		Email:    "admin@example.com",
		Password: "letmein",
	})
	requireStatus(t, rec, http.StatusUnauthorized)

	// Failed login leaves the session logged out.
	var session domain.AdminSession
	decodeBody(t, env.do(t, http.MethodGet, "/api/admin/session", nil), &session)
	if session.IsLoggedIn {
		t.Fatal("failed login left a logged-in session")
	}
}

func TestAdminLoginValidatesPayload(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Email: "not-an-email", Password: "password"})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestAdminLoginAndSession(t *testing.T) {
	env := newTestEnv(t)

	env.loginAdmin(t)

	var session domain.AdminSession
	decodeBody(t, env.do(t, http.MethodGet, "/api/admin/session", nil), &session)
	if !session.IsLoggedIn || session.Email != "admin@example.com" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestAdminLogout(t *testing.T) {
	env := newTestEnv(t)

	env.loginAdmin(t)
	rec := env.do(t, http.MethodPost, "/api/admin/logout", nil)
	requireStatus(t, rec, http.StatusOK)

	var session domain.AdminSession
	decodeBody(t, env.do(t, http.MethodGet, "/api/admin/session", nil), &session)
	if session.IsLoggedIn {
		t.Fatal("expected logged-out session after logout")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/orders"},
		{http.MethodGet, "/api/admin/collections/men/"},
		{http.MethodPost, "/api/admin/collections/men/"},
	}

	for _, tc := range paths {
		rec := env.do(t, tc.method, tc.path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestProtectedRoutesAcceptBearerToken(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAdmin(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "test-session"})
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	requireStatus(t, rec, http.StatusOK)
}

func TestCollectionCRUD(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAdmin(t)

	// Create
	rec := env.do(t, http.MethodPost, "/api/admin/collections/men/", CreateProductRequest{
		Title: "Linen Blazer",
		Price: 129.99,
		Image: "https://example.com/blazer.jpg",
	}, cookie)
	requireStatus(t, rec, http.StatusCreated)

	var created domain.Product
	decodeBody(t, rec, &created)
	if created.ID == "" || created.Category != domain.CategoryMen {
		t.Fatalf("unexpected created product: %+v", created)
	}

	// List includes it
	rec = env.do(t, http.MethodGet, "/api/admin/collections/men/", nil, cookie)
	requireStatus(t, rec, http.StatusOK)
	var listed []domain.Product
	decodeBody(t, rec, &listed)
	if len(listed) != 5 {
		t.Fatalf("expected 5 men products after create, got %d", len(listed))
	}

	// Update
	rec = env.do(t, http.MethodPut, "/api/admin/collections/men/", UpdateProductRequest{
		ID:    created.ID,
		Price: 99.99,
	}, cookie)
	requireStatus(t, rec, http.StatusOK)
	var updated domain.Product
	decodeBody(t, rec, &updated)
	if updated.Price != 99.99 || updated.Title != "Linen Blazer" {
		t.Fatalf("unexpected updated product: %+v", updated)
	}

	// Delete
	rec = env.do(t, http.MethodDelete, "/api/admin/collections/men/?id="+created.ID, nil, cookie)
	requireStatus(t, rec, http.StatusOK)
	rec = env.do(t, http.MethodDelete, "/api/admin/collections/men/?id="+created.ID, nil, cookie)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestCollectionCRUDRejectsInvalidCollection(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAdmin(t)

	rec := env.do(t, http.MethodGet, "/api/admin/collections/furniture/", nil, cookie)
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestDeleteProductRequiresID(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAdmin(t)

	rec := env.do(t, http.MethodDelete, "/api/admin/collections/men/", nil, cookie)
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestCreateProductValidatesPayload(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAdmin(t)

	rec := env.do(t, http.MethodPost, "/api/admin/collections/men/", CreateProductRequest{
		Title: "Free Blazer",
		Price: 0,
		Image: "https://example.com/blazer.jpg",
	}, cookie)
	requireStatus(t, rec, http.StatusBadRequest)

	var envelope middleware.ErrorResponse
	decodeBody(t, rec, &envelope)
	if envelope.Error.Details["validation_errors"] == nil {
		t.Fatalf("expected validation_errors, got %+v", envelope.Error)
	}
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAdmin(t)

	rec := env.do(t, http.MethodGet, "/api/admin/orders", nil, cookie)
	requireStatus(t, rec, http.StatusOK)

	var listed []domain.Order
	decodeBody(t, rec, &listed)
	if len(listed) != 0 {
		t.Fatalf("expected no orders yet, got %d", len(listed))
	}

	env.orders.Create("CRYPTO-1", "ada@example.com", "bitcoin", 119.98, nil, domain.ShippingAddress{})

	rec = env.do(t, http.MethodGet, "/api/admin/orders", nil, cookie)
	decodeBody(t, rec, &listed)
	if len(listed) != 1 || listed[0].Reference != "CRYPTO-1" {
		t.Fatalf("unexpected orders: %+v", listed)
	}
}
