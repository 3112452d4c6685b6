package transport

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier-store/internal/middleware"
)

func TestGetCartStartsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/cart", nil)
	requireStatus(t, rec, http.StatusOK)

	var cart CartResponse
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 0 || cart.TotalItems != 0 || cart.TotalPrice != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
	if cart.IsOpen {
		t.Fatal("cart should start closed")
	}
}

func TestAddItemMergesSizelessProducts(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "men-1"})
	rec := env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "men-1"})
	requireStatus(t, rec, http.StatusOK)

	var cart CartResponse
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Items[0].Quantity)
	}
	if math.Abs(cart.TotalPrice-119.98) > 1e-9 {
		t.Fatalf("expected total 119.98, got %f", cart.TotalPrice)
	}
}

func TestAddItemSizedVariantsStayDistinct(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "women-1", Size: "S"})
	rec := env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "women-1", Size: "M"})
	requireStatus(t, rec, http.StatusOK)

	var cart CartResponse
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(cart.Items))
	}
	if cart.Items[0].Product.Size == cart.Items[1].Product.Size {
		t.Fatalf("sizes must differ: %+v", cart.Items)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "men-999"})
	requireStatus(t, rec, http.StatusNotFound)
}

func TestAddItemRejectsUnknownSize(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "women-1", Size: "XXL"})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestUpdateItemToZeroRemovesLine(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "men-1"})
	rec := env.do(t, http.MethodPut, "/api/cart/items/0", UpdateItemRequest{Quantity: 0})
	requireStatus(t, rec, http.StatusOK)

	var cart CartResponse
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 0 || cart.TotalItems != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestUpdateItemInvalidIndex(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/cart/items/abc", UpdateItemRequest{Quantity: 2})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestRemoveItemOutOfRangeLeavesCartUnchanged(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "men-1"})
	rec := env.do(t, http.MethodDelete, "/api/cart/items/5", nil)
	requireStatus(t, rec, http.StatusOK)

	var cart CartResponse
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 1 {
		t.Fatalf("out-of-range remove mutated the cart: %+v", cart)
	}
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "men-1"})
	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "men-2"})

	rec := env.do(t, http.MethodDelete, "/api/cart", nil)
	requireStatus(t, rec, http.StatusOK)

	var cart CartResponse
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", cart)
	}
}

func TestSetOpenIndependentOfContents(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/cart/open", SetOpenRequest{Open: true})
	requireStatus(t, rec, http.StatusOK)

	var cart CartResponse
	decodeBody(t, rec, &cart)
	if !cart.IsOpen {
		t.Fatal("expected open cart")
	}

	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "men-1"})
	rec = env.do(t, http.MethodDelete, "/api/cart", nil)
	decodeBody(t, rec, &cart)
	if !cart.IsOpen {
		t.Fatal("clearing must not close the drawer")
	}
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "men-1"})

	// A different shopper session sees an empty cart.
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "other-session"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	requireStatus(t, rec, http.StatusOK)

	var other CartResponse
	decodeBody(t, rec, &other)
	if other.TotalItems != 0 {
		t.Fatalf("cart leaked into another session: %+v", other)
	}

	var original CartResponse
	decodeBody(t, env.do(t, http.MethodGet, "/api/cart", nil), &original)
	if original.TotalItems != 1 {
		t.Fatalf("expected 1 item in original session, got %d", original.TotalItems)
	}
}
