package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/onboarding/internal/httputil"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const (
		offsetMsg = "invalid offset parameter: must be a non-negative integer"
		limitMsg  = "invalid limit parameter: must be between 1 and 100"
	)

	tests := []struct {
		name           string
		query          string
		expectedOffset int
		expectedLimit  int
		errorMsg       string
	}{
		{name: "Defaults", query: "", expectedOffset: 0, expectedLimit: httputil.DefaultPageLimit},
		{name: "SecondPage", query: "offset=25&limit=25", expectedOffset: 25, expectedLimit: 25},
		{name: "MaxLimit", query: "limit=100", expectedOffset: 0, expectedLimit: httputil.MaxPageLimit},
		{name: "WithFilters", query: "action=investor.tax_id_revealed&offset=10", expectedOffset: 10, expectedLimit: 50},
		{name: "NegativeOffset", query: "offset=-1", errorMsg: offsetMsg},
		{name: "EmptyOffset", query: "offset=", errorMsg: offsetMsg},
		{name: "TextOffset", query: "offset=abc", errorMsg: offsetMsg},
		{name: "ZeroLimit", query: "limit=0", errorMsg: limitMsg},
		{name: "LimitAboveMax", query: "limit=101", errorMsg: limitMsg},
		{name: "TextLimit", query: "limit=xyz", errorMsg: limitMsg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/v1/audit-logs?"+tt.query, nil)

			offset, limit, err := httputil.ParsePagination(c)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
				assert.Zero(t, offset)
				assert.Zero(t, limit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOffset, offset)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestNextOffset(t *testing.T) {
	t.Run("FullPage", func(t *testing.T) {
		next := httputil.NextOffset(50, 50, 50)
		require.NotNil(t, next)
		assert.Equal(t, 100, *next)
	})

	t.Run("ShortPage", func(t *testing.T) {
		assert.Nil(t, httputil.NextOffset(50, 50, 12))
	})

	t.Run("EmptyPage", func(t *testing.T) {
		assert.Nil(t, httputil.NextOffset(0, 50, 0))
	})
}
