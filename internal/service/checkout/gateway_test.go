package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/backend/backendtest"
	"pos-terminal/internal/pkg/rabbitmq"

	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teaOrder() *types.Order {
	return &types.Order{
		OrderID:      "o-1",
		CustomerName: "Asha",
		PhoneNumber:  "999",
		Items:        []types.OrderItem{{ItemID: "i-1", Name: "Tea", Price: 20, Quantity: 2}},
		Subtotal:     40,
		Tax:          2,
		GrandTotal:   42,
	}
}

func TestUsableRedirect(t *testing.T) {
	cases := map[string]bool{
		"https://pay.example/cs_1": true,
		"http://localhost:8080/p":  true,
		"":                         false,
		"   ":                      false,
		"/relative/path":           false,
		"javascript:alert(1)":      false,
		"https://":                 false,
		"ftp://files.example/x":    false,
	}
	for raw, want := range cases {
		assert.Equal(t, want, usableRedirect(raw), raw)
	}
}

func TestBackendGateway_CreateSession(t *testing.T) {
	fake := &backendtest.Fake{}
	gw := NewBackendGateway(fake)

	ps, err := gw.CreateSession(context.Background(), "token", teaOrder(), "inr")
	require.NoError(t, err)
	assert.Equal(t, "cs_1", ps.ID)
	assert.Equal(t, "https://pay.example/cs_1", ps.RedirectURL)
	assert.Equal(t, enum.GATEWAY_BACKEND, ps.Gateway)

	require.Len(t, fake.SessionRequests, 1)
	assert.InDelta(t, 42, fake.SessionRequests[0].Amount, 1e-9)
	assert.Equal(t, "inr", fake.SessionRequests[0].Currency)
}

func TestBackendGateway_RejectsMissingRedirect(t *testing.T) {
	fake := &backendtest.Fake{SessionResponse: &backend.CheckoutSessionResponse{SessionID: "cs_2"}}

	_, err := NewBackendGateway(fake).CreateSession(context.Background(), "token", teaOrder(), "inr")

	assert.ErrorIs(t, err, ErrNoRedirect)
}

type fakeMidtrans struct {
	req    *snap.Request
	res    *snap.Response
	err    error
	status *coreapi.TransactionStatusResponse
}

func (m *fakeMidtrans) CreateTransaction(req *snap.Request) (*snap.Response, error) {
	m.req = req
	return m.res, m.err
}

func (m *fakeMidtrans) VerifySignature(_, _, _, signature string) bool {
	return signature == "good"
}

func (m *fakeMidtrans) TransactionStatus(string) (*coreapi.TransactionStatusResponse, error) {
	return m.status, m.err
}

func TestSnapRequest_TaxLineBalancesGross(t *testing.T) {
	order := teaOrder()
	order.Items = []types.OrderItem{
		{ItemID: "i-1", Name: "Tea", Price: 20, Quantity: 2},
		{ItemID: "i-3", Name: "Bun", Price: 12.5, Quantity: 1},
	}
	order.GrandTotal = 55.125

	req := snapRequest(order)

	assert.Equal(t, int64(55), req.TransactionDetails.GrossAmt)
	require.NotNil(t, req.Items)
	items := *req.Items
	require.Len(t, items, 3)
	var sum int64
	for _, it := range items {
		sum += it.Price * int64(it.Qty)
	}
	assert.Equal(t, req.TransactionDetails.GrossAmt, sum)
	assert.Equal(t, "tax", items[2].ID)
	assert.Equal(t, "Asha", req.CustomerDetail.FName)
}

func TestSnapRequest_FractionalPricesKeepTaxLinePositive(t *testing.T) {
	order := teaOrder()
	order.Items = []types.OrderItem{{ItemID: "i-9", Name: "Biscuit", Price: 1.5, Quantity: 100}}
	order.GrandTotal = 157.5

	req := snapRequest(order)

	assert.Equal(t, int64(158), req.TransactionDetails.GrossAmt)
	items := *req.Items
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Price)
	assert.Equal(t, "tax", items[1].ID)
	assert.Equal(t, int64(58), items[1].Price)
	for _, it := range items {
		assert.GreaterOrEqual(t, it.Price, int64(0), it.ID)
	}
}

func TestMidtransGateway_CreateSession(t *testing.T) {
	api := &fakeMidtrans{res: &snap.Response{Token: "snap-1", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-1"}}
	gw := &midtransGateway{api: api}

	ps, err := gw.CreateSession(context.Background(), "", teaOrder(), "idr")
	require.NoError(t, err)
	assert.Equal(t, "snap-1", ps.ID)
	assert.Equal(t, enum.GATEWAY_MIDTRANS, ps.Gateway)
	assert.Equal(t, "o-1", api.req.TransactionDetails.OrderID)

	api.res = &snap.Response{Token: "snap-2"}
	_, err = gw.CreateSession(context.Background(), "", teaOrder(), "idr")
	assert.ErrorIs(t, err, ErrNoRedirect)
}

func TestMidtransGateway_Verify(t *testing.T) {
	api := &fakeMidtrans{status: &coreapi.TransactionStatusResponse{TransactionStatus: "pending"}}
	gw := &midtransGateway{api: api}
	req := &types.PaymentVerificationRequest{OrderID: "o-1"}

	_, err := gw.Verify(context.Background(), "", req)
	assert.ErrorIs(t, err, ErrNotPaid)

	api.status = &coreapi.TransactionStatusResponse{TransactionStatus: "settlement", TransactionID: "tx-1"}
	order, err := gw.Verify(context.Background(), "", req)
	require.NoError(t, err)
	assert.Equal(t, "o-1", order.OrderID)
	assert.Equal(t, "tx-1", order.PaymentDetails.StripePaymentID)
}

func TestMidtransGateway_VerifyNotification(t *testing.T) {
	gw := &midtransGateway{api: &fakeMidtrans{}}

	assert.True(t, gw.VerifyNotification(&Notification{OrderID: "o-1", SignatureKey: "good"}))
	assert.False(t, gw.VerifyNotification(&Notification{OrderID: "o-1", SignatureKey: "bad"}))
	assert.False(t, gw.VerifyNotification(&Notification{OrderID: "o-1"}))
}

func TestTerminalOpener_PublishesToTerminal(t *testing.T) {
	pub := &fakePublisher{}
	opener := NewTerminalOpener(pub, "pos.checkout", time.Minute)
	session := &types.Session{ID: "s-1", TerminalID: "t-7"}
	ps := &PaymentSession{ID: "cs_1", RedirectURL: "https://pay.example/cs_1"}

	handoff, err := opener.Open(context.Background(), session, teaOrder(), ps, "inr")
	require.NoError(t, err)
	assert.Equal(t, enum.HANDOFF_TERMINAL, handoff.Mode)

	assert.Equal(t, "pos.checkout", pub.exchange)
	assert.Equal(t, "t-7", pub.key)
	require.NotNil(t, pub.msg)
	assert.Equal(t, handoffMessageType, pub.msg.Type)
	assert.Equal(t, time.Minute, pub.msg.Expiration)

	var body HandoffMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &body))
	assert.Equal(t, "o-1", body.OrderID)
	assert.Equal(t, "https://pay.example/cs_1", body.RedirectURL)
	assert.InDelta(t, 42, body.Amount, 1e-9)
}

func TestTerminalOpener_Blocked(t *testing.T) {
	ps := &PaymentSession{RedirectURL: "https://pay.example/cs_1"}
	session := &types.Session{ID: "s-1", TerminalID: "t-7"}

	for _, cause := range []error{rabbitmq.ErrUnroutable, rabbitmq.ErrNotConfirmed} {
		opener := NewTerminalOpener(&fakePublisher{err: cause}, "pos.checkout", time.Minute)
		_, err := opener.Open(context.Background(), session, teaOrder(), ps, "inr")
		assert.ErrorIs(t, err, ErrHandoffBlocked)
	}

	opener := NewTerminalOpener(&fakePublisher{}, "pos.checkout", time.Minute)
	_, err := opener.Open(context.Background(), &types.Session{ID: "s-1"}, teaOrder(), ps, "inr")
	assert.ErrorIs(t, err, ErrHandoffBlocked)

	opener = NewTerminalOpener(&fakePublisher{err: errors.New("channel closed")}, "pos.checkout", time.Minute)
	_, err = opener.Open(context.Background(), session, teaOrder(), ps, "inr")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrHandoffBlocked)
}

func TestDirectOpener(t *testing.T) {
	handoff, err := NewDirectOpener().Open(context.Background(), &types.Session{}, teaOrder(), &PaymentSession{RedirectURL: "https://pay.example/x"}, "inr")
	require.NoError(t, err)
	assert.Equal(t, enum.HANDOFF_DIRECT, handoff.Mode)
	assert.Equal(t, "https://pay.example/x", handoff.RedirectURL)
}
