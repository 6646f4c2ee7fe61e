package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/onboarding/internal/investor/domain"
	userDomain "github.com/allisson/onboarding/internal/user/domain"
)

// logLines decodes every JSON line written by a slog JSON handler.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestRequestLoggerMiddleware(t *testing.T) {
	newRouter := func(logs *bytes.Buffer) *gin.Engine {
		router := gin.New()
		router.Use(requestid.New())
		router.Use(RequestLoggerMiddleware(slog.New(slog.NewJSONHandler(logs, nil))))
		router.GET("/v1/investor-profiles/:id", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		router.POST("/v1/investor-profile", func(c *gin.Context) {
			c.Status(http.StatusConflict)
		})
		router.GET("/boom", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})
		return router
	}

	t.Run("Success_LogsRouteTemplateNotProfileID", func(t *testing.T) {
		var logs bytes.Buffer
		profileID := uuid.Must(uuid.NewV7()).String()

		w := httptest.NewRecorder()
		newRouter(&logs).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/investor-profiles/"+profileID, nil))

		lines := logLines(t, &logs)
		require.Len(t, lines, 1)
		assert.Equal(t, "INFO", lines[0]["level"])
		assert.Equal(t, "/v1/investor-profiles/:id", lines[0]["route"])
		assert.Equal(t, w.Header().Get("X-Request-Id"), lines[0]["request_id"])
		assert.NotContains(t, logs.String(), profileID)
	})

	t.Run("Success_LevelFollowsStatus", func(t *testing.T) {
		tests := []struct {
			name   string
			method string
			path   string
			level  string
		}{
			{name: "Conflict", method: http.MethodPost, path: "/v1/investor-profile", level: "WARN"},
			{name: "ServerError", method: http.MethodGet, path: "/boom", level: "ERROR"},
			{name: "Unmatched", method: http.MethodGet, path: "/nope", level: "WARN"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var logs bytes.Buffer
				newRouter(&logs).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))

				lines := logLines(t, &logs)
				require.Len(t, lines, 1)
				assert.Equal(t, tt.level, lines[0]["level"])
			})
		}
	})
}

func TestSetupRouter_RequestLogIncludesAuthenticatedUser(t *testing.T) {
	var logs bytes.Buffer
	f := newRouterFixtureWithLogger(t, slog.New(slog.NewJSONHandler(&logs, nil)))

	userID := uuid.Must(uuid.NewV7())
	f.investorUseCase.On("GetByUserID", mock.Anything, userID).Return(nil, domain.ErrProfileNotFound).Once()

	w := f.do(http.MethodGet, "/v1/investor-profile", f.bearer(t, userID, userDomain.RoleInvestor))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var requestLine map[string]any
	for _, line := range logLines(t, &logs) {
		if line["msg"] == "http request" {
			requestLine = line
		}
	}
	require.NotNil(t, requestLine)
	assert.Equal(t, userID.String(), requestLine["user_id"])
	assert.Equal(t, "/v1/investor-profile", requestLine["route"])
}

func TestNoStoreMiddleware(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("Success_VersionedRoutesAreNotCacheable", func(t *testing.T) {
		w := f.do(http.MethodGet, "/v1/investor-profile", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	})

	t.Run("Success_ProbesStayCacheable", func(t *testing.T) {
		w := f.do(http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Cache-Control"))
	})
}
