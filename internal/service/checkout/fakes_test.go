package checkout

import (
	"context"
	"sync"
	"time"

	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/common/models"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/rabbitmq"
	ledgerRepo "pos-terminal/internal/repository/ledger"
)

type fakeLedger struct {
	mu       sync.Mutex
	handoffs []models.PaymentHandoff
	orphans  []models.OrphanedOrder
	paid     []string
}

var _ ledgerRepo.IRepository = (*fakeLedger)(nil)

func (l *fakeLedger) CreateHandoff(_ context.Context, h *models.PaymentHandoff) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handoffs = append(l.handoffs, *h)
	return nil
}

func (l *fakeLedger) FindHandoffByOrderID(_ context.Context, orderID string) (*models.PaymentHandoff, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, h := range l.handoffs {
		if h.OrderID == orderID {
			return &h, nil
		}
	}
	return nil, ledgerRepo.ErrNotFound
}

func (l *fakeLedger) MarkHandoffPaid(_ context.Context, orderID string, _ time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paid = append(l.paid, orderID)
	for i := range l.handoffs {
		if l.handoffs[i].OrderID == orderID {
			l.handoffs[i].Status = models.HandoffStatusPaid
		}
	}
	return nil
}

func (l *fakeLedger) RecordOrphan(_ context.Context, o *models.OrphanedOrder) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orphans = append(l.orphans, *o)
	return nil
}

func (l *fakeLedger) ListOrphans(context.Context, bool) ([]models.OrphanedOrder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.OrphanedOrder{}, l.orphans...), nil
}

func (l *fakeLedger) FindOrphan(context.Context, string) (*models.OrphanedOrder, error) {
	return nil, ledgerRepo.ErrNotFound
}

func (l *fakeLedger) ResolveOrphan(context.Context, string, time.Time) error { return nil }

func (l *fakeLedger) RecordOrphanAttempt(context.Context, string, string) error { return nil }

// fakeGateway returns session unless err is set. wait, when non-nil, is
// received from before answering, or the context ends first.
type fakeGateway struct {
	mu      sync.Mutex
	calls   int
	session *PaymentSession
	err     error
	wait    chan struct{}
	verify  func(req *types.PaymentVerificationRequest) (*types.Order, error)
}

func (g *fakeGateway) Name() enum.GatewayEnum { return enum.GATEWAY_BACKEND }

func (g *fakeGateway) CreateSession(ctx context.Context, _ string, _ *types.Order, _ string) (*PaymentSession, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	if g.wait != nil {
		select {
		case <-g.wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if g.err != nil {
		return nil, g.err
	}
	if g.session != nil {
		return g.session, nil
	}
	return &PaymentSession{ID: "cs_1", RedirectURL: "https://pay.example/cs_1", Gateway: enum.GATEWAY_BACKEND}, nil
}

func (g *fakeGateway) Verify(_ context.Context, _ string, req *types.PaymentVerificationRequest) (*types.Order, error) {
	if g.verify != nil {
		return g.verify(req)
	}
	return &types.Order{OrderID: req.OrderID, PaymentDetails: &types.PaymentDetails{Status: "paid"}}, nil
}

func (g *fakeGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type fakeOpener struct {
	mu      sync.Mutex
	opened  []string
	err     error
	started chan struct{}
	release chan struct{}
}

func (o *fakeOpener) Open(_ context.Context, _ *types.Session, order *types.Order, ps *PaymentSession, _ string) (*Handoff, error) {
	if o.started != nil {
		o.started <- struct{}{}
	}
	if o.release != nil {
		<-o.release
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return nil, o.err
	}
	o.opened = append(o.opened, order.OrderID)
	return &Handoff{Mode: enum.HANDOFF_TERMINAL, RedirectURL: ps.RedirectURL}, nil
}

func (o *fakeOpener) Opened() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.opened)
}

type fakePublisher struct {
	exchange, key string
	msg           *rabbitmq.Message
	err           error
}

func (p *fakePublisher) PublishMandatory(_ context.Context, exchange, key string, msg *rabbitmq.Message) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return p.err
}

// signedGateway accepts notifications whose signature equals signature.
type signedGateway struct {
	*fakeGateway
	signature string
}

func (g *signedGateway) VerifyNotification(n *Notification) bool {
	return n.SignatureKey == g.signature
}
