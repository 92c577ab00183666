package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
)

func (c *Client) Login(ctx context.Context, req *types.AuthRequest) (*types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.do(ctx, "", &helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.url("/login"),
		Body:   req,
	}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/*----------- catalog -----------*/

func (c *Client) ListCategories(ctx context.Context, token string) ([]types.Category, error) {
	out := []types.Category{}
	err := c.do(ctx, token, &helper.HTTPRequestPayload{Method: helper.GET, URL: c.url("/categories")}, &out, http.StatusOK)
	return out, err
}

func (c *Client) AddCategory(ctx context.Context, token string, req *types.CategoryRequest, image *types.UploadFilesRes) (*types.Category, error) {
	parts, err := jsonWithImage("category", req, image)
	if err != nil {
		return nil, err
	}
	var out types.Category
	err = c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.url("/categories"),
		Parts:  parts,
	}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token, categoryID string) error {
	return c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.DELETE,
		URL:    c.url("/categories", categoryID),
	}, nil, http.StatusNoContent, http.StatusOK)
}

func (c *Client) ListItems(ctx context.Context, token string) ([]types.Item, error) {
	out := []types.Item{}
	err := c.do(ctx, token, &helper.HTTPRequestPayload{Method: helper.GET, URL: c.url("/items")}, &out, http.StatusOK)
	return out, err
}

func (c *Client) AddItem(ctx context.Context, token string, req *types.ItemRequest, image *types.UploadFilesRes) (*types.Item, error) {
	parts, err := jsonWithImage("item", req, image)
	if err != nil {
		return nil, err
	}
	var out types.Item
	err = c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.url("/items"),
		Parts:  parts,
	}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteItem(ctx context.Context, token, itemID string) error {
	return c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.DELETE,
		URL:    c.url("/items", itemID),
	}, nil, http.StatusNoContent, http.StatusOK)
}

// jsonWithImage builds the two-part body the backend expects for catalog
// writes: the entity as a JSON field plus the image file.
func jsonWithImage(field string, entity any, image *types.UploadFilesRes) ([]helper.MultipartPart, error) {
	b, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", field, err)
	}
	parts := []helper.MultipartPart{{FieldName: field, Data: b, ContentType: "application/json"}}
	if image != nil {
		parts = append(parts, helper.MultipartPart{
			FieldName:   "file",
			FileName:    image.FileName,
			ContentType: image.ContentType,
			Data:        image.FileBytes,
		})
	}
	return parts, nil
}

/*----------- users -----------*/

func (c *Client) ListUsers(ctx context.Context, token string) ([]types.User, error) {
	out := []types.User{}
	err := c.do(ctx, token, &helper.HTTPRequestPayload{Method: helper.GET, URL: c.url("/admin/users")}, &out, http.StatusOK)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, token string, req *types.UserRequest) (*types.User, error) {
	var out types.User
	err := c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.url("/admin/register"),
		Body:   req,
	}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	return c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.DELETE,
		URL:    c.url("/admin/users", userID),
	}, nil, http.StatusNoContent, http.StatusOK)
}

/*----------- orders -----------*/

// CreateOrder succeeds only on 201 Created.
func (c *Client) CreateOrder(ctx context.Context, token string, req *types.OrderRequest) (*types.Order, error) {
	var out types.Order
	err := c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.url("/orders"),
		Body:   req,
	}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	if out.OrderID == "" {
		return nil, fmt.Errorf("backend created an order without an id")
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, token, orderID string) error {
	return c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.DELETE,
		URL:    c.url("/orders", orderID),
	}, nil, http.StatusNoContent, http.StatusOK)
}

func (c *Client) LatestOrders(ctx context.Context, token string) ([]types.Order, error) {
	out := []types.Order{}
	err := c.do(ctx, token, &helper.HTTPRequestPayload{Method: helper.GET, URL: c.url("/orders/latest")}, &out, http.StatusOK)
	return out, err
}

// FilterOrders returns orders matching a grand total and payment method.
func (c *Client) FilterOrders(ctx context.Context, token string, req *types.OrderFilterRequest) ([]types.Order, error) {
	out := []types.Order{}
	err := c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.url("/orders/filtered-data"),
		Body:   req,
	}, &out, http.StatusOK)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context, token string) (*types.DashboardSummary, error) {
	var out types.DashboardSummary
	err := c.do(ctx, token, &helper.HTTPRequestPayload{Method: helper.GET, URL: c.url("/dashboard")}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/*----------- payments -----------*/

func (c *Client) CreateCheckoutSession(ctx context.Context, token string, req *CheckoutSessionRequest) (*CheckoutSessionResponse, error) {
	var out CheckoutSessionResponse
	err := c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.url("/payments/create-checkout-session"),
		Body:   req,
	}, &out, http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyPayment(ctx context.Context, token string, req *types.PaymentVerificationRequest) (*types.Order, error) {
	var out types.Order
	err := c.do(ctx, token, &helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.url("/payments/verify"),
		Body:   req,
	}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
