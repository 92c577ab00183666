// Package backendtest provides an in-memory billing backend for service tests.
package backendtest

import (
	"context"
	"fmt"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"sync"
)

// Fake implements backend.IClient. Zero value answers every call with
// empty success; set the Err fields or override funcs to script failures.
type Fake struct {
	mu    sync.Mutex
	Calls []string

	Auth       *types.AuthResponse
	LoginErr   error
	Categories []types.Category
	Items      []types.Item
	Users      []types.User
	Orders     []types.Order
	Summary    *types.DashboardSummary
	ListErr    error
	WriteErr   error

	// CreateOrderFn overrides the default which echoes the request with id "o-1".
	CreateOrderFn   func(req *types.OrderRequest) (*types.Order, error)
	CreatedOrders   []types.OrderRequest
	DeleteOrderErr  error
	DeletedOrders   []string
	SessionResponse *backend.CheckoutSessionResponse
	SessionErr      error
	SessionRequests []backend.CheckoutSessionRequest
	VerifyFn        func(req *types.PaymentVerificationRequest) (*types.Order, error)
}

var _ backend.IClient = (*Fake)(nil)

func (f *Fake) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

// CallCount returns how many times call was made.
func (f *Fake) CallCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *Fake) Login(_ context.Context, req *types.AuthRequest) (*types.AuthResponse, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.Auth != nil {
		return f.Auth, nil
	}
	return &types.AuthResponse{Email: req.Email, Token: "token", Role: "USER"}, nil
}

func (f *Fake) ListCategories(context.Context, string) ([]types.Category, error) {
	f.record("ListCategories")
	return f.Categories, f.ListErr
}

func (f *Fake) AddCategory(_ context.Context, _ string, req *types.CategoryRequest, _ *types.UploadFilesRes) (*types.Category, error) {
	f.record("AddCategory")
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	return &types.Category{CategoryID: "c-new", Name: req.Name}, nil
}

func (f *Fake) DeleteCategory(context.Context, string, string) error {
	f.record("DeleteCategory")
	return f.WriteErr
}

func (f *Fake) ListItems(context.Context, string) ([]types.Item, error) {
	f.record("ListItems")
	return f.Items, f.ListErr
}

func (f *Fake) AddItem(_ context.Context, _ string, req *types.ItemRequest, _ *types.UploadFilesRes) (*types.Item, error) {
	f.record("AddItem")
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	return &types.Item{ItemID: "i-new", Name: req.Name, Price: req.Price, CategoryID: req.CategoryID}, nil
}

func (f *Fake) DeleteItem(context.Context, string, string) error {
	f.record("DeleteItem")
	return f.WriteErr
}

func (f *Fake) ListUsers(context.Context, string) ([]types.User, error) {
	f.record("ListUsers")
	return f.Users, f.ListErr
}

func (f *Fake) CreateUser(_ context.Context, _ string, req *types.UserRequest) (*types.User, error) {
	f.record("CreateUser")
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	return &types.User{UserID: "u-new", Name: req.Name, Email: req.Email, Role: req.Role}, nil
}

func (f *Fake) DeleteUser(context.Context, string, string) error {
	f.record("DeleteUser")
	return f.WriteErr
}

func (f *Fake) CreateOrder(_ context.Context, _ string, req *types.OrderRequest) (*types.Order, error) {
	f.record("CreateOrder")
	f.mu.Lock()
	f.CreatedOrders = append(f.CreatedOrders, *req)
	f.mu.Unlock()

	if f.CreateOrderFn != nil {
		return f.CreateOrderFn(req)
	}
	return &types.Order{
		OrderID:       "o-1",
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		Items:         req.CartItems,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		GrandTotal:    req.GrandTotal,
		PaymentMethod: req.PaymentMethod,
	}, nil
}

func (f *Fake) DeleteOrder(_ context.Context, _ string, orderID string) error {
	f.record("DeleteOrder")
	f.mu.Lock()
	f.DeletedOrders = append(f.DeletedOrders, orderID)
	f.mu.Unlock()
	return f.DeleteOrderErr
}

func (f *Fake) LatestOrders(context.Context, string) ([]types.Order, error) {
	f.record("LatestOrders")
	return f.Orders, f.ListErr
}

func (f *Fake) FilterOrders(_ context.Context, _ string, req *types.OrderFilterRequest) ([]types.Order, error) {
	f.record("FilterOrders")
	out := []types.Order{}
	for _, o := range f.Orders {
		if o.GrandTotal == req.GrandTotal && o.PaymentMethod == req.PaymentMethod {
			out = append(out, o)
		}
	}
	return out, f.ListErr
}

func (f *Fake) Dashboard(context.Context, string) (*types.DashboardSummary, error) {
	f.record("Dashboard")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	if f.Summary == nil {
		return &types.DashboardSummary{}, nil
	}
	return f.Summary, nil
}

func (f *Fake) CreateCheckoutSession(_ context.Context, _ string, req *backend.CheckoutSessionRequest) (*backend.CheckoutSessionResponse, error) {
	f.record("CreateCheckoutSession")
	f.mu.Lock()
	f.SessionRequests = append(f.SessionRequests, *req)
	f.mu.Unlock()

	if f.SessionErr != nil {
		return nil, f.SessionErr
	}
	if f.SessionResponse != nil {
		return f.SessionResponse, nil
	}
	return &backend.CheckoutSessionResponse{SessionID: "cs_1", URL: "https://pay.example/cs_1"}, nil
}

func (f *Fake) VerifyPayment(_ context.Context, _ string, req *types.PaymentVerificationRequest) (*types.Order, error) {
	f.record("VerifyPayment")
	if f.VerifyFn != nil {
		return f.VerifyFn(req)
	}
	return &types.Order{
		OrderID:        req.OrderID,
		PaymentDetails: &types.PaymentDetails{Status: "paid", StripePaymentID: req.PaymentIntentID},
	}, nil
}

// Status builds an APIError the way the real client reports unexpected
// statuses.
func Status(code int) error {
	return &backend.APIError{StatusCode: code, Message: fmt.Sprintf("fake %s", http.StatusText(code))}
}
