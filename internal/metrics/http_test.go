package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("mealguard_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), provider.Namespace()))
	router.GET("/v1/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": "me"})
	})
	router.DELETE("/v1/admin/accounts/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	serve := func(method, path string) int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return w.Code
	}

	for range 3 {
		assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/v1/me"))
	}
	assert.Equal(t, http.StatusNoContent, serve(http.MethodDelete, "/v1/admin/accounts/0190a1b2-0000-7000-8000-000000000001"))
	assert.Equal(t, http.StatusNoContent, serve(http.MethodDelete, "/v1/admin/accounts/0190a1b2-0000-7000-8000-000000000002"))
	assert.Equal(t, http.StatusNotFound, serve(http.MethodGet, "/wp-login.php"))

	output := scrape(t, provider)

	assertMetricLine(t, output, `mealguard_test_http_requests_total`,
		`method="GET".*path="/v1/me".*status_code="200"`, `3`)
	assertMetricLine(t, output, `mealguard_test_http_requests_total`,
		`method="DELETE".*path="/v1/admin/accounts/:id".*status_code="204"`, `2`)
	assertMetricLine(t, output, `mealguard_test_http_requests_total`,
		`path="unknown".*status_code="404"`, `1`)
	assert.NotContains(t, output, "0190a1b2")
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RoutePattern", input: "/v1/admin/accounts/:id", expected: "/v1/admin/accounts/:id"},
		{name: "Unmatched", input: "", expected: "unknown"},
		{name: "Root", input: "/", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, routeLabel(tt.input))
		})
	}
}
