package types

import (
	"pos-terminal/internal/common/enum"
	"time"
)

type OrderItem struct {
	ItemID   string  `json:"itemId" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"min=1"`
}

// OrderRequest is the body of POST /orders on the billing backend.
type OrderRequest struct {
	CustomerName  string                 `json:"customerName" validate:"required"`
	PhoneNumber   string                 `json:"phoneNumber" validate:"required"`
	CartItems     []OrderItem            `json:"cartItems" validate:"required,min=1,dive"`
	Subtotal      float64                `json:"subtotal"`
	Tax           float64                `json:"tax"`
	GrandTotal    float64                `json:"grandTotal"`
	PaymentMethod enum.PaymentMethodEnum `json:"paymentMethod" validate:"required,enum"`
}

type PaymentDetails struct {
	StripeSessionID string `json:"stripeSessionId,omitempty"`
	StripePaymentID string `json:"stripePaymentId,omitempty"`
	Status          string `json:"status,omitempty"`
}

// Order is the backend's view of a created order.
type Order struct {
	OrderID        string                 `json:"orderId"`
	CustomerName   string                 `json:"customerName"`
	PhoneNumber    string                 `json:"phoneNumber"`
	Items          []OrderItem            `json:"items"`
	Subtotal       float64                `json:"subtotal"`
	Tax            float64                `json:"tax"`
	GrandTotal     float64                `json:"grandTotal"`
	PaymentMethod  enum.PaymentMethodEnum `json:"paymentMethod"`
	PaymentDetails *PaymentDetails        `json:"paymentDetails,omitempty"`
	CreatedAt      *time.Time             `json:"createdAt,omitempty"`
}

type PaymentVerificationRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	PaymentMethodID string `json:"paymentMethodId"`
	OrderID         string `json:"orderId" validate:"required"`
}

type OrderFilterRequest struct {
	GrandTotal    float64                `json:"grandTotal" validate:"gt=0"`
	PaymentMethod enum.PaymentMethodEnum `json:"paymentMethod" validate:"required,enum"`
}

type DashboardSummary struct {
	TodaySales      float64 `json:"todaySales"`
	TodayOrderCount int64   `json:"todayOrderCount"`
	RecentOrders    []Order `json:"recentOrders"`
}
