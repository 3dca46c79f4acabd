package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-scheduler/internal/audit"
	"github.com/BruksfildServices01/field-scheduler/internal/config"
	"github.com/BruksfildServices01/field-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/field-scheduler/internal/events"
	"github.com/BruksfildServices01/field-scheduler/internal/images"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
	"github.com/BruksfildServices01/field-scheduler/internal/routes"
)

// =============================================================================
// TEST SERVER
// =============================================================================

// 2025-03-12 is a Wednesday; dbtest fields are open Tue..Thu 16..20.
const (
	wednesday = "2025-03-12"
	friday    = "2025-03-14"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	engine *gin.Engine
	events *events.Recorder
	audit  *audit.Dispatcher
}

type serverOption func(*routes.Deps)

func withImages(store images.Store) serverOption {
	return func(d *routes.Deps) { d.Images = store }
}

func withAudit() serverOption {
	return func(d *routes.Deps) { d.Audit = audit.NewDispatcher(audit.New(d.DB)) }
}

func newServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := dbtest.Open(t)
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTTTL:        time.Hour,
		ImageMaxWidth: 64,
	}
	rec := &events.Recorder{}

	deps := routes.Deps{
		DB:          gdb,
		Config:      cfg,
		Events:      rec,
		EmailDomain: func(string) bool { return true },
	}
	for _, opt := range opts {
		opt(&deps)
	}
	if deps.Audit != nil {
		t.Cleanup(deps.Audit.Close)
	}

	r := gin.New()
	routes.RegisterRoutes(r, deps)

	return &testServer{
		t:      t,
		db:     gdb,
		cfg:    cfg,
		engine: r,
		events: rec,
		audit:  deps.Audit,
	}
}

func (s *testServer) token(u *models.User) string {
	s.t.Helper()
	tok, err := middleware.IssueToken(s.cfg, u, time.Now())
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req, token)
}

func (s *testServer) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Field   string         `json:"field"`
	Form    map[string]any `json:"form"`
}

type listBody[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}
