package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uni-3/my-url-shortener/internal/middleware"
	"github.com/uni-3/my-url-shortener/internal/ratelimit"
	"github.com/uni-3/my-url-shortener/internal/store"
	"go.uber.org/zap"
)

type failingLimitStore struct{}

func (failingLimitStore) Record(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, context.DeadlineExceeded
}

func setupLimitedAPI(t *testing.T, limitStore ratelimit.Store) *chi.Mux {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RateLimiter(api, ratelimit.NewLimiter(limitStore), zap.NewNop()))

	handler := func(_ context.Context, _ *struct{}) (*testOutput, error) {
		out := &testOutput{}
		out.Body.OK = true

		return out, nil
	}

	huma.Register(api, huma.Operation{
		OperationID: "limited",
		Method:      http.MethodGet,
		Path:        "/limited",
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 2},
				},
			},
		},
	}, handler)

	huma.Register(api, huma.Operation{
		OperationID: "unlimited",
		Method:      http.MethodGet,
		Path:        "/unlimited",
	}, handler)

	return router
}

func get(router *chi.Mux, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Real-IP", ip)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("blocks a client past the endpoint limit", func(t *testing.T) {
		router := setupLimitedAPI(t, store.NewRateLimitMemoryStore())

		assert.Equal(t, http.StatusOK, get(router, "/limited", "1.1.1.1").Code)
		assert.Equal(t, http.StatusOK, get(router, "/limited", "1.1.1.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, get(router, "/limited", "1.1.1.1").Code)
	})

	t.Run("limits clients independently", func(t *testing.T) {
		router := setupLimitedAPI(t, store.NewRateLimitMemoryStore())

		for i := 0; i < 2; i++ {
			require.Equal(t, http.StatusOK, get(router, "/limited", "1.1.1.1").Code)
		}

		assert.Equal(t, http.StatusOK, get(router, "/limited", "2.2.2.2").Code)
	})

	t.Run("skips endpoints without rate limit metadata", func(t *testing.T) {
		router := setupLimitedAPI(t, store.NewRateLimitMemoryStore())

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, get(router, "/unlimited", "1.1.1.1").Code)
		}
	})

	t.Run("returns 500 when the limit store fails", func(t *testing.T) {
		router := setupLimitedAPI(t, failingLimitStore{})

		assert.Equal(t, http.StatusInternalServerError, get(router, "/limited", "1.1.1.1").Code)
	})
}
