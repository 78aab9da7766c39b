package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/router"
)

func testConfig(t *testing.T) *configs.AppConfig {
	t.Helper()

	gin.SetMode(gin.TestMode)

	tmp := t.TempDir()

	cfg := configs.Default()
	cfg.DB.DSN = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_foreign_keys=1", filepath.Join(tmp, "app.db"))
	cfg.DB.MaxOpenConns = 1
	cfg.DB.LogLevel = "silent"
	cfg.Upload.Dir = filepath.Join(tmp, "uploads")
	cfg.Server.ShutdownTimeout = 5

	return cfg
}

func TestNewEngine_Routes(t *testing.T) {
	cfg := testConfig(t)

	engine := NewEngine(context.Background(), cfg, nil, nil)

	routes := map[string]bool{}
	for _, r := range router.Routes(engine) {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{"GET /files", "POST /files", "GET /files/:id", "GET /health", "GET /health/db"} {
		assert.True(t, routes[want], want)
	}

	assert.False(t, routes["GET /swagger/*any"], "swagger only in debug")
	assert.False(t, routes["GET /metrics"], "metrics disabled by default")

	// 未注入处理器时返回 501
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestApp_ServeAndShutdown(t *testing.T) {
	cfg := testConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := New(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, a.manager.MQ)
	require.NotNil(t, a.manager.KV)
	assert.True(t, a.manager.MQ.HasHandlers(), "event log sink registered")
	assert.Len(t, a.scheduler.GetJobInfos(), 1)

	done := make(chan error, 1)

	go func() { done <- a.serve(ctx, "127.0.0.1:0") }()

	select {
	case <-a.manager.MQ.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("event router did not start")
	}

	detail, err := a.Files().Ingest(ctx, strings.NewReader("a,b\n1,x\n"), "live.csv")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/files/%d", detail.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	a.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"component":"mq","status":"ok"`)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not shut down")
	}
}
