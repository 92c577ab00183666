package serverApp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	config "pos-terminal/configs"
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/middleware"
	"pos-terminal/internal/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	rds, err := redis.Setup(context.Background(), &redis.Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rds.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	payload := &config.SetupServerDto{
		Ctx:    &ctx,
		Cancel: cancel,
		Wg:     &sync.WaitGroup{},
		Env: &config.Config{
			AppEnv:          enum.DEVELOPMENT,
			Currency:        "inr",
			PaymentGateway:  enum.GATEWAY_BACKEND,
			HandoffMode:     enum.HANDOFF_DIRECT,
			ClearCartPolicy: enum.CLEAR_ON_PLACEMENT,
			CallTimeout:     time.Second,
			FlowTimeout:     2 * time.Second,
			GuardTTL:        3 * time.Second,
			SessionTTL:      time.Hour,
			CatalogCacheTTL: time.Minute,
			ReceiptQueue:    "pos.receipt.print",
		},
		Rds:     rds,
		Backend: backend.NewClient(&backend.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}),
	}

	e := gin.New()
	Setup(e, payload, nil)
	return e
}

func TestHealth(t *testing.T) {
	e := newTestEngine(t)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Service map[string]struct {
			Status string `json:"status"`
		} `json:"service"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Service["redis"].Status)
	assert.Equal(t, "unhealthy", body.Service["rabbitmq"].Status)
	assert.Equal(t, "disabled", body.Service["database"].Status)
}

func TestRoutes_RequireSession(t *testing.T) {
	e := newTestEngine(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodGet, "/api/v1/receipt"},
		{http.MethodGet, "/api/v1/items"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/dashboard"},
	} {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(route.method, route.path, nil)
			req.Header.Set(middleware.SessionHeader, "unknown")
			e.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRoutes_NoLedgerNoReconciliation(t *testing.T) {
	e := newTestEngine(t)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reconciliation/orphans", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotification_BackendGatewayUnsupported(t *testing.T) {
	e := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/notification", strings.NewReader(`{"order_id":"o-1"}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Payment notifications are not supported"}`, w.Body.String())
}
