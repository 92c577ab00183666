package session

import (
	"context"
	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/cart"
	"pos-terminal/internal/repository"
	"pos-terminal/internal/service/catalog"
	"time"
)

type Service struct {
	ctx       context.Context
	rp        repository.IRepository
	backend   backend.IClient
	catalog   catalog.IService
	jwtSecret string
	ttl       time.Duration
	locks     *keyLock
}

type IService interface {
	Login(req *LoginRequest) *types.Response
	Restore(sessionID string) *types.Response
	Logout(sessionID string) *types.Response

	ViewCart(sessionID string) *types.Response
	AddToCart(sessionID string, req *AddToCartRequest) *types.Response
	RemoveFromCart(sessionID, itemID string) *types.Response
	SetQuantity(sessionID, itemID string, req *SetQuantityRequest) *types.Response
	ClearCart(sessionID string) *types.Response

	Load(sessionID string) (*types.Session, error)
	Mutate(sessionID string, fn func(s *types.Session) error) (*types.Session, error)
}

func NewService(ctx context.Context, rp repository.IRepository, backend backend.IClient, catalog catalog.IService, jwtSecret string, ttl time.Duration) IService {
	return &Service{
		ctx:       ctx,
		rp:        rp,
		backend:   backend,
		catalog:   catalog,
		jwtSecret: jwtSecret,
		ttl:       ttl,
		locks:     newKeyLock(),
	}
}

// Request/Response DTOs

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	TerminalID string `json:"terminalId" validate:"required"`
}

type AddToCartRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

type SessionView struct {
	SessionID  string                 `json:"sessionId"`
	TerminalID string                 `json:"terminalId"`
	Email      string                 `json:"email"`
	Role       enum.RoleEnum          `json:"role"`
	ExpiresAt  *time.Time             `json:"expiresAt,omitempty"`
	Cart       cart.View              `json:"cart"`
	LastOrder  *types.Order           `json:"lastOrder,omitempty"`
	Catalog    *types.CatalogSnapshot `json:"catalog,omitempty"`
}

func newSessionView(s *types.Session, snapshot *types.CatalogSnapshot) *SessionView {
	return &SessionView{
		SessionID:  s.ID,
		TerminalID: s.TerminalID,
		Email:      s.Auth.Email,
		Role:       s.Auth.Role,
		ExpiresAt:  s.Auth.ExpiresAt,
		Cart:       s.EnsureCart().View(),
		LastOrder:  s.LastOrder,
		Catalog:    snapshot,
	}
}
