package checkout

import (
	"context"
	"errors"
	"fmt"
	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/rabbitmq"
	"time"
)

// ErrHandoffBlocked means the checkout display could not be opened.
var ErrHandoffBlocked = errors.New("checkout display blocked")

const handoffMessageType = "checkout.open"

type Handoff struct {
	Mode        enum.HandoffModeEnum
	RedirectURL string
}

// Opener hands a payment page to wherever the customer completes payment.
type Opener interface {
	Open(ctx context.Context, session *types.Session, order *types.Order, ps *PaymentSession, currency string) (*Handoff, error)
}

// Publisher is the subset of rabbitmq.Publisher the terminal opener needs.
type Publisher interface {
	PublishMandatory(ctx context.Context, exchange, routingKey string, msg *rabbitmq.Message) error
}

/*----------- terminal opener -----------*/

type terminalOpener struct {
	publisher Publisher
	exchange  string
	ttl       time.Duration
}

// NewTerminalOpener publishes the payment page to the terminal's checkout
// display, routed by terminal id. A display that is not listening makes the
// message unroutable, which is reported as ErrHandoffBlocked.
func NewTerminalOpener(publisher Publisher, exchange string, ttl time.Duration) Opener {
	return &terminalOpener{publisher: publisher, exchange: exchange, ttl: ttl}
}

func (o *terminalOpener) Open(ctx context.Context, session *types.Session, order *types.Order, ps *PaymentSession, currency string) (*Handoff, error) {
	if session.TerminalID == "" {
		return nil, fmt.Errorf("%w: session has no terminal", ErrHandoffBlocked)
	}

	msg, err := rabbitmq.NewMessage(handoffMessageType, &HandoffMessage{
		OrderID:     order.OrderID,
		SessionID:   session.ID,
		RedirectURL: ps.RedirectURL,
		Amount:      order.GrandTotal,
		Currency:    currency,
	}, nil)
	if err != nil {
		return nil, err
	}
	msg.Expiration = o.ttl

	err = o.publisher.PublishMandatory(ctx, o.exchange, session.TerminalID, msg)
	if errors.Is(err, rabbitmq.ErrUnroutable) || errors.Is(err, rabbitmq.ErrNotConfirmed) {
		return nil, fmt.Errorf("%w: %v", ErrHandoffBlocked, err)
	}
	if err != nil {
		return nil, err
	}

	return &Handoff{Mode: enum.HANDOFF_TERMINAL, RedirectURL: ps.RedirectURL}, nil
}

/*----------- direct opener -----------*/

type directOpener struct{}

// NewDirectOpener returns the payment page to the caller, which opens it
// itself.
func NewDirectOpener() Opener {
	return directOpener{}
}

func (directOpener) Open(_ context.Context, _ *types.Session, _ *types.Order, ps *PaymentSession, _ string) (*Handoff, error) {
	return &Handoff{Mode: enum.HANDOFF_DIRECT, RedirectURL: ps.RedirectURL}, nil
}
