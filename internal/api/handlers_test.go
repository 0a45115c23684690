package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloudkitchen/internal/domain"
	"cloudkitchen/internal/middleware"
	"cloudkitchen/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSession injects a resolved session the way the session middleware
// would, so handlers can be exercised without a live upstream auth flow.
func stubSession(p domain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxToken, "test-token")
		c.Set(middleware.CtxPrincipal, p)
		c.Next()
	}
}

func newUpstream(t *testing.T, mux *http.ServeMux) *upstream.Client {
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return upstream.New(srv.URL, 5*time.Second)
}

func staffPrincipal() domain.Principal {
	return domain.Principal{ID: "s1", Email: "staff@ck.io", Role: domain.RoleAdmin}
}

func userPrincipal() domain.Principal {
	return domain.Principal{ID: "u1", Email: "user@ck.io", Role: domain.RoleUser}
}

func TestQuoteHandlerDeliveryAndPickup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cart":{"items":[
			{"menuItem":{"_id":"m1","title":"Burger","price":10},"qty":2},
			{"menuItem":{"_id":"m2","title":"Fries","price":5},"qty":1}
		]}}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.GET("/checkout/quote", stubSession(userPrincipal()), QuoteHandler(ck))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout/quote?method=delivery", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"33.24"`)
	assert.Contains(t, w.Body.String(), `"canPlaceOrder":true`)

	// Switching the method recomputes the delivery fee without any other change.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout/quote?method=pickup", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"28.25"`)
}

func TestQuoteHandlerEmptyCartDisablesPlacement(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cart":{"items":[]}}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.GET("/checkout/quote", stubSession(userPrincipal()), QuoteHandler(ck))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout/quote", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"canPlaceOrder":false`)
	assert.Contains(t, w.Body.String(), `"0.00"`)
}

func TestQuoteHandlerRejectsUnknownMethod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ck := newUpstream(t, http.NewServeMux())

	r := gin.New()
	r.GET("/checkout/quote", stubSession(userPrincipal()), QuoteHandler(ck))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout/quote?method=drone", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandlerEmptyCart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cart":{"items":[]}}`))
	})
	mux.HandleFunc("/checkout", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("an empty cart must never reach the upstream checkout")
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/checkout", stubSession(userPrincipal()), CheckoutHandler(ck))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"method":"pickup"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "empty")
}

func TestCheckoutHandlerDeliveryNeedsAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ck := newUpstream(t, http.NewServeMux())

	r := gin.New()
	r.POST("/checkout", stubSession(userPrincipal()), CheckoutHandler(ck))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"method":"delivery"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "address")
}

func TestCheckoutHandlerPlacesOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cart":{"items":[{"menuItem":{"_id":"m1","title":"Burger","price":10},"qty":1}]}}`))
	})
	mux.HandleFunc("/checkout", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"order":{"_id":"o9","status":"placed","method":"delivery","items":[],"total":16.29}}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/checkout", stubSession(userPrincipal()), CheckoutHandler(ck))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"method":"delivery","addressId":"a1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"o9"`)
}

func TestUpdateOrderStatusIllegalTransition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/o1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order":{"_id":"o1","status":"ready","method":"pickup","items":[]}}`))
	})
	mux.HandleFunc("/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("illegal transitions must never reach the upstream")
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/orders/:id/status", stubSession(staffPrincipal()), UpdateOrderStatusHandler(ck))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/o1/status", strings.NewReader(`{"to":"completed"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateOrderStatusLegalTransition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var forwarded bool
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/o1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order":{"_id":"o1","status":"accepted","method":"pickup","items":[]}}`))
	})
	mux.HandleFunc("/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		forwarded = true
		w.Write([]byte(`{}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/orders/:id/status", stubSession(staffPrincipal()), UpdateOrderStatusHandler(ck))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/o1/status", strings.NewReader(`{"to":"prepping"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, forwarded)
}

func TestUpdateOrderStatusUpstreamRejectionSurfaces(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/o1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order":{"_id":"o1","status":"accepted","method":"pickup","items":[]}}`))
	})
	mux.HandleFunc("/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Order already completed"}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/orders/:id/status", stubSession(staffPrincipal()), UpdateOrderStatusHandler(ck))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/o1/status", strings.NewReader(`{"to":"prepping"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	// A rejected transition surfaces as an error, never applied locally.
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Order already completed")
}

func TestCancelOrderGating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/ready1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order":{"_id":"ready1","status":"ready","method":"pickup","items":[]}}`))
	})
	mux.HandleFunc("/orders/acc1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order":{"_id":"acc1","status":"accepted","method":"pickup","items":[]}}`))
	})
	mux.HandleFunc("/orders/acc1/cancel", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/orders/:id/cancel", stubSession(userPrincipal()), CancelOrderHandler(ck))

	// Ready orders can no longer be cancelled.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders/ready1/cancel", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Accepted orders still can.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders/acc1/cancel", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetOrderDecoratesActions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/o1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order":{"_id":"o1","status":"accepted","method":"delivery","items":[]}}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.GET("/orders/:id", stubSession(userPrincipal()), GetOrderHandler(ck))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/o1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"nextStatus":"prepping"`)
	assert.Contains(t, w.Body.String(), `"cancellable":true`)
}

func TestListOrdersAuthFailureRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"jwt expired"}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.GET("/orders", stubSession(userPrincipal()), ListOrdersHandler(ck))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), middleware.LoginRedirect)
}

func TestListOrdersRejectsUnknownStatusFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ck := newUpstream(t, http.NewServeMux())

	r := gin.New()
	r.GET("/orders", stubSession(userPrincipal()), ListOrdersHandler(ck))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?status=sideways", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
