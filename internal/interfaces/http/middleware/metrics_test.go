package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/audiozoom/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *telemetry.Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestHTTPMetrics(t *testing.T) {
	m := telemetry.NewMetrics("az")

	router := gin.New()
	router.Use(HTTPMetrics(m, "/health"))
	router.GET("/health", okHandler)
	router.GET("/api/users/:userId", okHandler)

	for _, path := range []string{"/api/users/1", "/api/users/2", "/health", "/nope"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, m)
	assert.Contains(t, body, `az_http_requests_total{method="GET",route="/api/users/:userId",status="200"} 2`)
	assert.Contains(t, body, `az_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.False(t, strings.Contains(body, `route="/health"`))
}

func TestHTTPMetrics_NilMetrics(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(nil))
	router.GET("/test", okHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
