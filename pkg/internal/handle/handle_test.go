package handle_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/configs"
	ctxPkg "github.com/yeisme/csvvault/pkg/context"
	"github.com/yeisme/csvvault/pkg/internal/handle"
	"github.com/yeisme/csvvault/pkg/internal/repository"
	"github.com/yeisme/csvvault/pkg/internal/service"
	"github.com/yeisme/csvvault/pkg/internal/storage"
	"github.com/yeisme/csvvault/pkg/internal/storage/db"
	"github.com/yeisme/csvvault/pkg/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
	db     *db.Client
}

func newServer(t *testing.T, maxSize int64) *testServer {
	t.Helper()

	ctx := context.Background()
	tmp := t.TempDir()

	client, err := db.New(ctx, &configs.DBConfig{
		Type:         configs.SQLite,
		DSN:          fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_foreign_keys=1", filepath.Join(tmp, "api.db")),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(ctx))

	t.Cleanup(func() { _ = client.Close() })

	svc := service.NewFileService(repository.NewFileRepository(client.DB), configs.UploadConfig{
		Dir:               filepath.Join(tmp, "uploads"),
		AllowedExtensions: []string{"csv"},
	})
	h := handle.NewFileHandlers(svc, false)
	mgr := &storage.Manager{DB: client}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(ctxPkg.WithStorageManager(c.Request.Context(), mgr))
		if maxSize > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		}

		c.Next()
	})
	r.GET("/files", h.List())
	r.POST("/files", h.Upload())
	r.GET("/files/:id", h.Get())
	r.GET("/health", handle.Health)
	r.GET("/health/db", handle.HealthDB)
	r.GET("/health/s3", handle.HealthS3)

	return &testServer{engine: r, db: client}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	return w
}

func uploadRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/files", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func TestUploadAndGet(t *testing.T) {
	s := newServer(t, 0)

	w := s.do(uploadRequest(t, handle.FileField, "sample.csv", "a,b,c\n1,foo,01/02/2020\n"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[types.FileDetail](t, w)
	assert.Equal(t, "sample.csv", created.Name)
	require.Len(t, created.Columns, 3)
	assert.Equal(t, "datetime", created.Columns[2].Type)
	assert.Equal(t, fmt.Sprintf("/files/%d", created.ID), w.Header().Get("Location"))

	w = s.do(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/files/%d", created.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[map[string]any](t, w)
	assert.Equal(t, "sample.csv", got["name"])
	assert.Len(t, got["columns"], 3)

	col := got["columns"].([]any)[0].(map[string]any)
	assert.Equal(t, "a", col["col_name"])
	assert.Equal(t, "number", col["col_type"])
	assert.EqualValues(t, 0, col["col_index"])

	w = s.do(httptest.NewRequest(http.MethodGet, "/files", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"name":"sample.csv"}]`, created.ID), w.Body.String())
}

func TestUploadErrors(t *testing.T) {
	s := newServer(t, 0)

	w := s.do(uploadRequest(t, handle.FileField, "ok.csv", "x\n1\n"))
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name    string
		req     *http.Request
		status  int
		message string
	}{
		{
			name:    "invalid extension",
			req:     uploadRequest(t, handle.FileField, "report.txt", "x\n1\n"),
			status:  http.StatusBadRequest,
			message: "Invalid file type",
		},
		{
			name:    "duplicate",
			req:     uploadRequest(t, handle.FileField, "ok.csv", "y\n2\n"),
			status:  http.StatusBadRequest,
			message: "File already exists",
		},
		{
			name:    "missing field",
			req:     uploadRequest(t, "upload", "ok.csv", "y\n2\n"),
			status:  http.StatusBadRequest,
			message: "No file part in the request",
		},
		{
			name:    "not multipart",
			req:     httptest.NewRequest(http.MethodPost, "/files", bytes.NewBufferString("x")),
			status:  http.StatusBadRequest,
			message: "No file part in the request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.req)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			resp := decode[types.ErrorResponse](t, w)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestUploadInvalidExtensionData(t *testing.T) {
	s := newServer(t, 0)

	w := s.do(uploadRequest(t, handle.FileField, "report.txt", "x\n"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t,
		`{"message":"Invalid file type","data":{"filename":"report.txt","allowed_extensions":["csv"]}}`,
		w.Body.String())
}

func TestUploadTooLarge(t *testing.T) {
	s := newServer(t, 64)

	w := s.do(uploadRequest(t, handle.FileField, "big.csv", string(bytes.Repeat([]byte("a,b\n"), 100))))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())

	resp := decode[types.ErrorResponse](t, w)
	assert.Equal(t, "File too large", resp.Message)
}

func TestGetErrors(t *testing.T) {
	s := newServer(t, 0)

	for _, path := range []string{"/files/42", "/files/abc", "/files/0", "/files/-1"} {
		t.Run(path, func(t *testing.T) {
			w := s.do(httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusNotFound, w.Code)

			resp := decode[map[string]any](t, w)
			assert.Contains(t, resp["message"], "could not be found")
			assert.Contains(t, resp, "data")
			assert.Nil(t, resp["data"])
		})
	}
}

func TestListQuery(t *testing.T) {
	s := newServer(t, 0)

	w := s.do(httptest.NewRequest(http.MethodGet, "/files", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, name := range []string{"b.csv", "a.csv", "c.csv"} {
		require.Equal(t, http.StatusCreated, s.do(uploadRequest(t, handle.FileField, name, "x\n1\n")).Code)
	}

	w = s.do(httptest.NewRequest(http.MethodGet, "/files?page=1&per_page=2&sort_by=name", nil))
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[[]types.FileSummary](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "a.csv", list[0].Name)
	assert.Equal(t, "b.csv", list[1].Name)

	for _, q := range []string{"page=abc", "per_page=1000", "sort_by=size", "sort_order=up", "page=-1"} {
		t.Run(q, func(t *testing.T) {
			w := s.do(httptest.NewRequest(http.MethodGet, "/files?"+q, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestListDatabaseError(t *testing.T) {
	s := newServer(t, 0)
	require.NoError(t, s.db.Exec("DROP TABLE columns").Error)
	require.NoError(t, s.db.Exec("DROP TABLE files").Error)

	w := s.do(httptest.NewRequest(http.MethodGet, "/files", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decode[types.ErrorResponse](t, w)
	assert.Equal(t, "Error occurred while retrieving file list!", resp.Message)
	assert.Nil(t, resp.Data, "raw driver error hidden outside debug")
}

func TestHealth(t *testing.T) {
	s := newServer(t, 0)

	w := s.do(httptest.NewRequest(http.MethodGet, "/health/db", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"component":"db","status":"ok"}`, w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodGet, "/health/s3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"component":"s3","status":"disabled"}`, w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	report := decode[types.HealthReport](t, w)
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, configs.AppVersion, report.Version)
	assert.Len(t, report.Components, 4)

	require.NoError(t, s.db.Close())

	w = s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthWithoutManager(t *testing.T) {
	r := gin.New()
	r.GET("/health/db", handle.HealthDB)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/db", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}
