package middleware_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/configs"
	ctxPkg "github.com/yeisme/csvvault/pkg/context"
	"github.com/yeisme/csvvault/pkg/metrics"
	"github.com/yeisme/csvvault/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, ctxPkg.RequestID(c.Request.Context()))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(middleware.HeaderRequestID)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")

	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderRequestID))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(middleware.BodyLimitMiddleware(8))
	r.POST("/", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)

		var maxErr *http.MaxBytesError
		if assert.ErrorAs(t, err, &maxErr) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "File too large")

	// 未声明长度的请求体由 MaxBytesReader 截断
	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("0123456789")))
	req.ContentLength = -1

	w = serve(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, key := range []string{"global", "ip", "header:X-Client"} {
		t.Run(key, func(t *testing.T) {
			r := gin.New()
			r.Use(middleware.RateLimitMiddleware(ctx, configs.RateLimitConfig{
				Enabled: true, RPS: 0.001, Burst: 1, Key: key, SkipPaths: []string{"/health"},
			}))
			r.GET("/files", func(c *gin.Context) { c.Status(http.StatusOK) })
			r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

			assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/files", nil)).Code)
			assert.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodGet, "/files", nil)).Code)

			for i := 0; i < 3; i++ {
				assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
			}
		})
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimitMiddleware(context.Background(), configs.RateLimitConfig{}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
}

func TestCircuitBreaker(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CircuitBreakerMiddleware(configs.CircuitBreakerConfig{
		Enabled:           true,
		FailureRate:       0.5,
		MinRequests:       2,
		IntervalSeconds:   60,
		TimeoutSeconds:    60,
		MaxRequestsInHalf: 1,
	}))
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	assert.Equal(t, http.StatusInternalServerError, serve(r, httptest.NewRequest(http.MethodGet, "/fail", nil)).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(r, httptest.NewRequest(http.MethodGet, "/fail", nil)).Code)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "temporarily unavailable")
}

func TestPrometheus(t *testing.T) {
	require.NoError(t, metrics.InitMetrics(configs.MetricsConfig{Enabled: true, Path: "/metrics"}))

	r := gin.New()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/files/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(metrics.RequestCounter.WithLabelValues(http.MethodGet, "/files/:id", "404"))

	serve(r, httptest.NewRequest(http.MethodGet, "/files/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/files/2", nil))

	after := testutil.ToFloat64(metrics.RequestCounter.WithLabelValues(http.MethodGet, "/files/:id", "404"))
	assert.InDelta(t, 2, after-before, 0.001, "route template used as path label")
	assert.Zero(t, testutil.ToFloat64(metrics.InFlightRequests))
}

func TestGzipAndCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware(), middleware.GzipMiddleware("/metrics"))
	r.GET("/files", func(c *gin.Context) { c.String(http.StatusOK, strings.Repeat("a", 2048)) })

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Origin", "http://example.com")

	w := serve(r, req)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Less(t, w.Body.Len(), 2048)

	pre := httptest.NewRequest(http.MethodOptions, "/files", nil)
	pre.Header.Set("Origin", "http://example.com")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w = serve(r, pre)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAccessLogAndTracing(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.TracingMiddleware(), middleware.GinLoggerMiddleware("/health"))
	r.POST("/files", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusCreated, "text/plain", bytes.ToUpper(body))
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/files", strings.NewReader("ok")))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
