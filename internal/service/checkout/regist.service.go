package checkout

import (
	"context"
	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/repository"
	"time"
)

// SessionStore is the part of the session service checkout relies on.
type SessionStore interface {
	Load(sessionID string) (*types.Session, error)
	Mutate(sessionID string, fn func(s *types.Session) error) (*types.Session, error)
}

type Config struct {
	Currency        string
	ClearCartPolicy enum.ClearCartPolicyEnum
	CallTimeout     time.Duration
	FlowTimeout     time.Duration
	GuardTTL        time.Duration
}

type Service struct {
	ctx      context.Context
	rp       repository.IRepository
	sessions SessionStore
	backend  backend.IClient
	gateway  PaymentGateway
	opener   Opener
	cfg      Config
}

type IService interface {
	Submit(sessionID string, req *SubmitRequest) *Outcome
	Verify(sessionID string, req *types.PaymentVerificationRequest) *types.Response
	Notify(n *Notification) *types.Response
}

func NewService(
	ctx context.Context,
	rp repository.IRepository,
	sessions SessionStore,
	backend backend.IClient,
	gateway PaymentGateway,
	opener Opener,
	cfg Config,
) IService {
	// the compensating delete may run a full call past the flow deadline
	if floor := cfg.FlowTimeout + cfg.CallTimeout; cfg.GuardTTL < floor {
		cfg.GuardTTL = floor
	}
	if cfg.ClearCartPolicy == "" {
		cfg.ClearCartPolicy = enum.CLEAR_ON_PLACEMENT
	}
	return &Service{
		ctx:      ctx,
		rp:       rp,
		sessions: sessions,
		backend:  backend,
		gateway:  gateway,
		opener:   opener,
		cfg:      cfg,
	}
}

// Request/Response DTOs

type SubmitRequest struct {
	CustomerName  string `json:"customerName" validate:"notblank"`
	PhoneNumber   string `json:"phoneNumber" validate:"notblank,phone"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// HandoffMessage is published to a terminal so its checkout display opens
// the payment page.
type HandoffMessage struct {
	OrderID     string  `json:"orderId"`
	SessionID   string  `json:"sessionId"`
	RedirectURL string  `json:"redirectUrl"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// Notification is the payment status push sent by the gateway.
type Notification struct {
	OrderID           string `json:"order_id" validate:"required"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
}
