package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/middleware"
	checkoutService "pos-terminal/internal/service/checkout"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceMock struct {
	sessionID string
	submit    *checkoutService.SubmitRequest
	outcome   *checkoutService.Outcome
	notify    *types.Response
}

func (m *serviceMock) Submit(sessionID string, req *checkoutService.SubmitRequest) *checkoutService.Outcome {
	m.sessionID, m.submit = sessionID, req
	return m.outcome
}

func (m *serviceMock) Verify(sessionID string, req *types.PaymentVerificationRequest) *types.Response {
	m.sessionID = sessionID
	return helper.ParseResponse(&types.Response{Code: http.StatusOK, Data: &types.Order{OrderID: req.OrderID}})
}

func (m *serviceMock) Notify(*checkoutService.Notification) *types.Response {
	return m.notify
}

type loaderMock struct{}

func (loaderMock) Load(id string) (*types.Session, error) {
	if id != "s-1" {
		return nil, middleware.ErrNoSession
	}
	return &types.Session{ID: "s-1", Auth: types.SessionAuth{Token: "t", Role: enum.ROLE_USER}}, nil
}

func newEngine(svc checkoutService.IService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(middleware.ResponseInit(true))
	api := e.Group("/api/v1")

	h := NewHandler(context.Background(), svc)
	h.NewWebhookRoutes(api)
	h.NewRoutes(api.Group("", middleware.SessionMiddleware(loaderMock{})))
	return e
}

func post(e *gin.Engine, path, sessionID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestSubmit_StatusFollowsOutcome(t *testing.T) {
	cases := map[checkoutService.Kind]int{
		checkoutService.FINALIZED:           http.StatusCreated,
		checkoutService.HANDED_OFF:          http.StatusAccepted,
		checkoutService.IN_PROGRESS:         http.StatusConflict,
		checkoutService.COMPENSATED:         http.StatusBadGateway,
		checkoutService.COMPENSATION_FAILED: http.StatusInternalServerError,
	}
	for kind, code := range cases {
		svc := &serviceMock{outcome: &checkoutService.Outcome{Kind: kind, Message: "m"}}

		w := post(newEngine(svc), "/api/v1/checkout", "s-1", `{"customerName":"Asha","phoneNumber":"999","paymentMethod":"cash"}`)

		assert.Equal(t, code, w.Code, kind)
		assert.Equal(t, "s-1", svc.sessionID)
		assert.Equal(t, "Asha", svc.submit.CustomerName)
	}
}

func TestSubmit_BodyCarriesOutcome(t *testing.T) {
	svc := &serviceMock{outcome: &checkoutService.Outcome{
		Kind:        checkoutService.HANDED_OFF,
		Message:     checkoutService.MsgHandedOff,
		States:      []checkoutService.State{checkoutService.STATE_CREATED, checkoutService.STATE_SESSION_PENDING, checkoutService.STATE_HANDED_OFF},
		RedirectURL: "https://pay.example/cs_1",
	}}

	w := post(newEngine(svc), "/api/v1/checkout", "s-1", `{"customerName":"Asha","phoneNumber":"999","paymentMethod":"upi"}`)

	require.Equal(t, http.StatusAccepted, w.Code)
	var body struct {
		Message string                  `json:"message"`
		Data    checkoutService.Outcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, checkoutService.MsgHandedOff, body.Message)
	assert.Equal(t, "https://pay.example/cs_1", body.Data.RedirectURL)
	assert.Len(t, body.Data.States, 3)
}

func TestSubmit_RequiresSession(t *testing.T) {
	svc := &serviceMock{}

	w := post(newEngine(svc), "/api/v1/checkout", "", `{}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, svc.submit)
}

func TestSubmit_BadBody(t *testing.T) {
	svc := &serviceMock{}

	w := post(newEngine(svc), "/api/v1/checkout", "s-1", `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.submit)
}

func TestVerify(t *testing.T) {
	w := post(newEngine(&serviceMock{}), "/api/v1/checkout/verify", "s-1", `{"orderId":"o-1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotification(t *testing.T) {
	svc := &serviceMock{notify: &types.Response{Code: http.StatusOK}}
	w := post(newEngine(svc), "/api/v1/payments/notification", "", `{"order_id":"o-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	svc.notify = &types.Response{Code: http.StatusForbidden, Message: "Invalid signature key"}
	w = post(newEngine(svc), "/api/v1/payments/notification", "", `{"order_id":"o-1"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = post(newEngine(svc), "/api/v1/payments/notification", "", `nope`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
