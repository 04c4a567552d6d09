package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inmobiliaria/backend/internal/infrastructure/cache"
	"github.com/inmobiliaria/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("store down")
}
func (failingStore) IsProcessed(context.Context, string) (bool, error) { return false, nil }
func (failingStore) Forget(context.Context, string) error            { return nil }
func (failingStore) Close() error                                    { return nil }

func idempotentRouter(t *testing.T, status *int) (*gin.Engine, *cache.InMemoryIdempotencyStore) {
	t.Helper()
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	router := gin.New()
	router.Use(RequestID())
	router.POST("/sales", Idempotency(store, time.Hour), func(c *gin.Context) {
		c.Status(*status)
	})
	return router, store
}

func postSale(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sales", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_RejectsReplay(t *testing.T) {
	status := http.StatusCreated
	router, _ := idempotentRouter(t, &status)

	first := postSale(router, "key-1")
	second := postSale(router, "key-1")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeDuplicateRequest, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)
}

func TestIdempotency_FailedRequestReleasesKey(t *testing.T) {
	status := http.StatusConflict
	router, store := idempotentRouter(t, &status)

	assert.Equal(t, http.StatusConflict, postSale(router, "key-2").Code)
	assert.Zero(t, store.Size())

	status = http.StatusCreated
	assert.Equal(t, http.StatusCreated, postSale(router, "key-2").Code)
	assert.Equal(t, 1, store.Size())
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	status := http.StatusCreated
	router, store := idempotentRouter(t, &status)

	assert.Equal(t, http.StatusCreated, postSale(router, "").Code)
	assert.Equal(t, http.StatusCreated, postSale(router, "").Code)
	assert.Zero(t, store.Size())
}

func TestIdempotency_RejectsLongKey(t *testing.T) {
	status := http.StatusCreated
	router, _ := idempotentRouter(t, &status)

	assert.Equal(t, http.StatusBadRequest, postSale(router, strings.Repeat("k", MaxIdempotencyKeyLength+1)).Code)
}

func TestIdempotency_StoreErrorDoesNotBlock(t *testing.T) {
	router := gin.New()
	router.POST("/sales", Idempotency(failingStore{}, time.Hour), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	assert.Equal(t, http.StatusCreated, postSale(router, "key-3").Code)
	assert.Equal(t, http.StatusCreated, postSale(router, "key-3").Code)
}
