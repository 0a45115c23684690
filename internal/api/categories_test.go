package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cloudkitchen/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadRedis returns a client whose commands all fail; cache writes are
// best-effort so handlers must not care.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

const categoriesBody = `{"categories":[
	{"_id":"a","name":"Soups","slug":"soups","order":0,"isActive":true},
	{"_id":"b","name":"Mains","slug":"mains","order":1,"isActive":true},
	{"_id":"c","name":"Desserts","slug":"desserts","order":2,"isActive":true}
]}`

func TestMoveCategorySubmitsFullOrdering(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var submitted []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/menu-categories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(categoriesBody))
	})
	mux.HandleFunc("/menu-categories/reorder", func(w http.ResponseWriter, r *http.Request) {
		submitted, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/admin/categories/:id/move", stubSession(staffPrincipal()), MoveCategoryHandler(ck, deadRedis()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/categories/a/move", strings.NewReader(`{"direction":"down"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// The full {_id, order} array goes upstream with dense 0-based positions.
	assert.JSONEq(t, `{"order":[{"_id":"b","order":0},{"_id":"a","order":1},{"_id":"c","order":2}]}`, string(submitted))

	// The response carries the applied permutation.
	var resp struct {
		Categories []domain.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Categories, 3)
	assert.Equal(t, "b", resp.Categories[0].ID)
	assert.Equal(t, "a", resp.Categories[1].ID)
	for i, c := range resp.Categories {
		assert.Equal(t, i, c.Order)
	}
}

func TestMoveCategoryRollbackOnUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/menu-categories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(categoriesBody))
	})
	mux.HandleFunc("/menu-categories/reorder", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"stale ordering"}`))
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/admin/categories/:id/move", stubSession(staffPrincipal()), MoveCategoryHandler(ck, deadRedis()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/categories/a/move", strings.NewReader(`{"direction":"down"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// The optimistic permutation is discarded; the authoritative list comes back.
	require.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		Categories []domain.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Categories, 3)
	assert.Equal(t, "a", resp.Categories[0].ID)
	assert.Equal(t, "b", resp.Categories[1].ID)
}

func TestMoveCategoryOffTheEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/menu-categories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(categoriesBody))
	})
	mux.HandleFunc("/menu-categories/reorder", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("out-of-range moves must never reach the upstream")
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/admin/categories/:id/move", stubSession(staffPrincipal()), MoveCategoryHandler(ck, deadRedis()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/categories/a/move", strings.NewReader(`{"direction":"up"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReorderCategoriesValidatesDensity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	mux.HandleFunc("/menu-categories/reorder", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("non-dense orderings must never reach the upstream")
	})
	ck := newUpstream(t, mux)

	r := gin.New()
	r.POST("/admin/categories/reorder", stubSession(staffPrincipal()), ReorderCategoriesHandler(ck, deadRedis()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/categories/reorder",
		strings.NewReader(`{"order":[{"id":"a","order":0},{"id":"b","order":2}]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
