package types

import (
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/pkg/cart"
	"time"
)

// SessionAuth is the login state restored when a terminal reconnects.
type SessionAuth struct {
	Token     string        `json:"token" validate:"required"`
	Role      enum.RoleEnum `json:"role" validate:"required,enum"`
	Email     string        `json:"email" validate:"omitempty,email"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
}

func (a SessionAuth) IsLoggedIn() bool {
	return a.Token != "" && a.Role != ""
}

// Session is the per-terminal state every flow receives explicitly.
type Session struct {
	ID           string      `json:"id"`
	TerminalID   string      `json:"terminal_id"`
	Auth         SessionAuth `json:"auth"`
	Cart         *cart.Cart  `json:"cart"`
	LastOrder    *Order      `json:"last_order,omitempty"`
	PendingOrder *Order      `json:"pending_order,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// EnsureCart makes sure Cart is usable after decoding an old snapshot.
func (s *Session) EnsureCart() *cart.Cart {
	if s.Cart == nil {
		s.Cart = cart.New()
	}
	return s.Cart
}
