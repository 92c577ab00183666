package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	midtransPkg "pos-terminal/internal/pkg/midtrans"
	"strings"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/samber/lo"
)

var (
	// ErrNoRedirect means the payment session came back without a usable
	// http(s) URL to send the customer to.
	ErrNoRedirect = errors.New("payment session has no usable redirect")
	// ErrNotPaid means verification found the payment incomplete.
	ErrNotPaid = errors.New("payment not completed")
)

type PaymentSession struct {
	ID          string
	RedirectURL string
	Gateway     enum.GatewayEnum
}

// PaymentGateway creates the external checkout for an electronic payment and
// later verifies it.
type PaymentGateway interface {
	Name() enum.GatewayEnum
	CreateSession(ctx context.Context, token string, order *types.Order, currency string) (*PaymentSession, error)
	Verify(ctx context.Context, token string, req *types.PaymentVerificationRequest) (*types.Order, error)
}

// NotificationVerifier is implemented by gateways that push payment
// notifications.
type NotificationVerifier interface {
	VerifyNotification(n *Notification) bool
}

// usableRedirect accepts only absolute http(s) URLs with a host.
func usableRedirect(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

/*----------- backend gateway -----------*/

type backendGateway struct {
	client backend.IClient
}

func NewBackendGateway(client backend.IClient) PaymentGateway {
	return &backendGateway{client: client}
}

func (g *backendGateway) Name() enum.GatewayEnum {
	return enum.GATEWAY_BACKEND
}

func (g *backendGateway) CreateSession(ctx context.Context, token string, order *types.Order, currency string) (*PaymentSession, error) {
	res, err := g.client.CreateCheckoutSession(ctx, token, &backend.CheckoutSessionRequest{
		Amount:   order.GrandTotal,
		Currency: currency,
	})
	if err != nil {
		return nil, err
	}
	if !usableRedirect(res.URL) {
		return nil, fmt.Errorf("%w: %q", ErrNoRedirect, res.URL)
	}
	return &PaymentSession{ID: res.SessionID, RedirectURL: res.URL, Gateway: enum.GATEWAY_BACKEND}, nil
}

func (g *backendGateway) Verify(ctx context.Context, token string, req *types.PaymentVerificationRequest) (*types.Order, error) {
	return g.client.VerifyPayment(ctx, token, req)
}

/*----------- midtrans gateway -----------*/

// midtransAPI is the subset of the midtrans client the gateway calls.
type midtransAPI interface {
	CreateTransaction(req *snap.Request) (*snap.Response, error)
	TransactionStatus(orderID string) (*coreapi.TransactionStatusResponse, error)
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}

type midtransGateway struct {
	api midtransAPI
}

func NewMidtransGateway(client *midtransPkg.MidtransClient) PaymentGateway {
	return &midtransGateway{api: client}
}

func (g *midtransGateway) Name() enum.GatewayEnum {
	return enum.GATEWAY_MIDTRANS
}

func (g *midtransGateway) CreateSession(ctx context.Context, _ string, order *types.Order, _ string) (*PaymentSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := g.api.CreateTransaction(snapRequest(order))
	if err != nil {
		return nil, fmt.Errorf("midtrans: %w", err)
	}
	if !usableRedirect(res.RedirectURL) {
		return nil, fmt.Errorf("%w: %q", ErrNoRedirect, res.RedirectURL)
	}
	return &PaymentSession{ID: res.Token, RedirectURL: res.RedirectURL, Gateway: enum.GATEWAY_MIDTRANS}, nil
}

// snapRequest converts an order to whole currency units. Midtrans rejects
// requests whose item total differs from the gross amount, so tax and
// rounding go in as their own line. Item prices are floored, which keeps
// that line non-negative: the floored sum never exceeds the rounded subtotal.
func snapRequest(order *types.Order) *snap.Request {
	gross := int64(math.Round(order.GrandTotal))

	items := lo.Map(order.Items, func(it types.OrderItem, _ int) midtrans.ItemDetails {
		return midtrans.ItemDetails{
			ID:    it.ItemID,
			Name:  it.Name,
			Price: int64(math.Floor(it.Price)),
			Qty:   int32(it.Quantity),
		}
	})
	sum := lo.SumBy(items, func(it midtrans.ItemDetails) int64 { return it.Price * int64(it.Qty) })
	if rest := gross - sum; rest > 0 {
		items = append(items, midtrans.ItemDetails{ID: "tax", Name: "Tax and rounding", Price: rest, Qty: 1})
	}

	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: order.CustomerName,
			Phone: order.PhoneNumber,
		},
		Items: &items,
	}
}

// VerifyNotification requires a valid signature_key.
func (g *midtransGateway) VerifyNotification(n *Notification) bool {
	return n.SignatureKey != "" && g.api.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey)
}

func (g *midtransGateway) Verify(ctx context.Context, _ string, req *types.PaymentVerificationRequest) (*types.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status, err := g.api.TransactionStatus(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("midtrans: %w", err)
	}
	if !midtransPkg.IsPaid(status.TransactionStatus, status.FraudStatus) {
		return nil, fmt.Errorf("%w: %s", ErrNotPaid, status.TransactionStatus)
	}

	return &types.Order{
		OrderID: req.OrderID,
		PaymentDetails: &types.PaymentDetails{
			StripePaymentID: status.TransactionID,
			Status:          status.TransactionStatus,
		},
	}, nil
}
