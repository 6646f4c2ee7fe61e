package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/onboarding/internal/metrics"
)

func TestMetricsServer(t *testing.T) {
	provider, err := metrics.NewProvider("onboarding")
	require.NoError(t, err)
	defer func() { assert.NoError(t, provider.Shutdown(context.Background())) }()

	business, err := metrics.NewBusinessMetrics(provider.MeterProvider(), "onboarding")
	require.NoError(t, err)
	business.RecordOperation(context.Background(), metrics.DomainInvestor, "profile_select_type", metrics.StatusSuccess)

	var logs bytes.Buffer
	server := NewMetricsServer("localhost", 0, slog.New(slog.NewJSONHandler(&logs, nil)), provider)

	t.Run("Success_ScrapeIsQuiet", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.Contains(t, w.Body.String(), "onboarding_operations_total")
		assert.Empty(t, logs.String())
	})

	t.Run("Success_Health", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_UnknownPathIsLogged", func(t *testing.T) {
		logs.Reset()
		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/investor-profile", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, logs.String(), "metrics request failed")
	})
}
