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

func newInstrumentedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("membership")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "membership"))
	return router
}

func TestHTTPMetricsMiddleware_PassesRequestsThrough(t *testing.T) {
	router := newInstrumentedRouter(t)
	router.GET("/v1/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": []string{}})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPMetricsMiddleware_RecordsAcrossMethodsAndStatuses(t *testing.T) {
	router := newInstrumentedRouter(t)
	router.GET("/v1/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": []string{}})
	})
	router.POST("/v1/users", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"id": "1"})
	})
	router.GET("/broken", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/users", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/users", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHTTPMetricsMiddleware_PathParamsUseRoutePattern(t *testing.T) {
	router := newInstrumentedRouter(t)
	router.GET("/v1/profiles/:id", func(c *gin.Context) {
		assert.Equal(t, "/v1/profiles/:id", routePattern(c))
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	for _, id := range []string{"123", "456"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/profiles/"+id, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestHTTPMetricsMiddleware_UnmatchedRouteIsUnknown(t *testing.T) {
	router := newInstrumentedRouter(t)
	router.NoRoute(func(c *gin.Context) {
		assert.Equal(t, "unknown", routePattern(c))
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/path", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
