// Package backend is the HTTP client of the remote billing API that owns
// persistence, authentication and payment session creation.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	ProxyURL      string
	SkipTLSVerify bool
}

// APIError is returned when the backend answers with an unexpected status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *helper.HTTPClient
}

type IClient interface {
	Login(ctx context.Context, req *types.AuthRequest) (*types.AuthResponse, error)

	ListCategories(ctx context.Context, token string) ([]types.Category, error)
	AddCategory(ctx context.Context, token string, req *types.CategoryRequest, image *types.UploadFilesRes) (*types.Category, error)
	DeleteCategory(ctx context.Context, token, categoryID string) error

	ListItems(ctx context.Context, token string) ([]types.Item, error)
	AddItem(ctx context.Context, token string, req *types.ItemRequest, image *types.UploadFilesRes) (*types.Item, error)
	DeleteItem(ctx context.Context, token, itemID string) error

	ListUsers(ctx context.Context, token string) ([]types.User, error)
	CreateUser(ctx context.Context, token string, req *types.UserRequest) (*types.User, error)
	DeleteUser(ctx context.Context, token, userID string) error

	CreateOrder(ctx context.Context, token string, req *types.OrderRequest) (*types.Order, error)
	DeleteOrder(ctx context.Context, token, orderID string) error
	LatestOrders(ctx context.Context, token string) ([]types.Order, error)
	FilterOrders(ctx context.Context, token string, req *types.OrderFilterRequest) ([]types.Order, error)
	Dashboard(ctx context.Context, token string) (*types.DashboardSummary, error)

	CreateCheckoutSession(ctx context.Context, token string, req *CheckoutSessionRequest) (*CheckoutSessionResponse, error)
	VerifyPayment(ctx context.Context, token string, req *types.PaymentVerificationRequest) (*types.Order, error)
}

type CheckoutSessionRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: helper.NewHTTPClient(&helper.HTTPClientConfig{
			ProxyURL:       cfg.ProxyURL,
			SkipTLSVerify:  cfg.SkipTLSVerify,
			RequestTimeout: cfg.Timeout,
		}),
	}
}

func (c *Client) url(parts ...string) string {
	escaped := lo.Map(parts, func(p string, i int) string {
		if i == 0 {
			return p
		}
		return url.PathEscape(p)
	})
	return c.baseURL + strings.Join(escaped, "/")
}

func (c *Client) do(ctx context.Context, token string, payload *helper.HTTPRequestPayload, out any, expected ...int) error {
	resp, err := c.http.HTTPRequest(payload, &helper.HTTPRequestConfig{
		Ctx:         ctx,
		BearerToken: token,
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", payload.Method, payload.URL, err)
	}

	if !lo.Contains(expected, resp.StatusCode) {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}

	if out != nil {
		if err := resp.Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", payload.URL, err)
		}
	}
	return nil
}

func errorMessage(resp *helper.HTTPAPIResponse) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := resp.Decode(&body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "unexpected status"
}
