package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
)

func newClaims(userID uuid.UUID, role string) *authDomain.AccessClaims {
	return &authDomain.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		Email:            "john@example.com",
		Name:             "John Doe",
		Role:             role,
	}
}

func newRateLimitedRouter(t *testing.T, middleware gin.HandlerFunc, claims *authDomain.AccessClaims) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	if claims != nil {
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
			c.Next()
		})
	}
	router.Use(middleware)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Success_WithinLimit", func(t *testing.T) {
		claims := newClaims(uuid.Must(uuid.NewV7()), "investor")
		router := newRateLimitedRouter(t, RateLimitMiddleware(t.Context(), 10, 20, logger), claims)

		for range 5 {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("Error_ExceedsBurst", func(t *testing.T) {
		claims := newClaims(uuid.Must(uuid.NewV7()), "investor")
		router := newRateLimitedRouter(t, RateLimitMiddleware(t.Context(), 1, 2, logger), claims)

		for range 2 {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	})

	t.Run("Success_IndependentPerUser", func(t *testing.T) {
		middleware := RateLimitMiddleware(t.Context(), 1, 1, logger)
		first := newRateLimitedRouter(t, middleware, newClaims(uuid.Must(uuid.NewV7()), "investor"))
		second := newRateLimitedRouter(t, middleware, newClaims(uuid.Must(uuid.NewV7()), "investor"))

		w := httptest.NewRecorder()
		first.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		second.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NoClaims", func(t *testing.T) {
		router := newRateLimitedRouter(t, RateLimitMiddleware(t.Context(), 10, 10, logger), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestIPRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Error_SameIPExceedsBurst", func(t *testing.T) {
		router := newRateLimitedRouter(t, IPRateLimitMiddleware(t.Context(), 1, 1, logger), nil)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:5678"
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("Success_DifferentIPs", func(t *testing.T) {
		router := newRateLimitedRouter(t, IPRateLimitMiddleware(t.Context(), 1, 1, logger), nil)

		for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = addr
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestRateLimiterStore_RemoveIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newRateLimiterStore(ctx, 1, 1)
	store.getLimiter("stale")
	store.getLimiter("fresh")

	val, ok := store.limiters.Load("stale")
	require.True(t, ok)
	entry := val.(*rateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.removeIdle(time.Now().Add(-time.Hour))

	_, staleFound := store.limiters.Load("stale")
	_, freshFound := store.limiters.Load("fresh")
	assert.False(t, staleFound)
	assert.True(t, freshFound)
}

func TestRateLimiterStore_GetLimiterReuses(t *testing.T) {
	store := newRateLimiterStore(t.Context(), 1, 1)

	assert.Same(t, store.getLimiter("key"), store.getLimiter("key"))
}
