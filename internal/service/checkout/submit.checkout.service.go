package checkout

import (
	"context"
	"errors"
	"fmt"
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/common/models"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/cart"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/logger"
	"pos-terminal/internal/pkg/validation"
	sessionRepo "pos-terminal/internal/repository/session"

	"github.com/samber/lo"
)

// attempt tracks one submission: the session it belongs to, the created
// order and the lifecycle states it went through.
type attempt struct {
	sessionID string
	order     *types.Order
	states    []State
}

func (a *attempt) advance(next State) {
	if n := len(a.states); n > 0 && !a.states[n-1].CanTransitionTo(next) {
		logger.Error.Printf("checkout %s: illegal transition %s -> %s", a.sessionID, a.states[n-1], next)
	}
	a.states = append(a.states, next)
	if a.order != nil {
		logger.Info.Printf("checkout %s order %s: %s", a.sessionID, a.order.OrderID, next)
	}
}

func (a *attempt) outcome(kind Kind, message string, err error) *Outcome {
	return &Outcome{
		Kind:    kind,
		Message: message,
		States:  a.states,
		Order:   a.order,
		Err:     err,
	}
}

// Submit places the session's cart as an order and drives its payment.
// Only one submission per session runs at a time; a concurrent one gets
// IN_PROGRESS without touching the backend.
func (s *Service) Submit(sessionID string, req *SubmitRequest) *Outcome {
	a := &attempt{sessionID: sessionID}

	if err := validation.Validate(req); err != nil {
		return a.outcome(VALIDATION_ERROR, err.Error(), err)
	}
	method := enum.ParsePaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		err := fmt.Errorf("unsupported payment method %q", req.PaymentMethod)
		return a.outcome(VALIDATION_ERROR, "Validation failed: paymentMethod must be one of CASH, UPI", err)
	}

	token, err := s.rp.Session.AcquireGuard(sessionID, s.cfg.GuardTTL)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrGuardHeld) {
			return a.outcome(IN_PROGRESS, MsgInProgress, err)
		}
		return a.outcome(REMOTE_FAILURE, MsgGeneric, err)
	}
	defer func() {
		if err := s.rp.Session.ReleaseGuard(sessionID, token); err != nil {
			logger.Error.Printf("checkout %s: %v", sessionID, err)
		}
	}()

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.FlowTimeout)
	defer cancel()

	session, err := s.sessions.Load(sessionID)
	if err != nil {
		return a.outcome(REMOTE_FAILURE, MsgGeneric, err)
	}
	if session.EnsureCart().IsEmpty() {
		return a.outcome(VALIDATION_ERROR, MsgEmptyCart, nil)
	}

	order, err := s.placeOrder(ctx, session, req, method)
	if err != nil {
		logger.Error.Printf("checkout %s: create order: %v", sessionID, err)
		return a.outcome(REMOTE_FAILURE, MsgGeneric, err)
	}
	a.order = order
	a.advance(STATE_CREATED)

	if s.cfg.ClearCartPolicy == enum.CLEAR_ON_PLACEMENT {
		s.updateSession(sessionID, func(session *types.Session) {
			session.EnsureCart().Clear()
		})
	}

	if !method.IsElectronic() {
		return s.finalizeCash(a)
	}
	return s.handOff(ctx, a, session)
}

// placeOrder builds the order from the live cart and creates it. Totals are
// recomputed here; nothing cached on the session is trusted.
func (s *Service) placeOrder(ctx context.Context, session *types.Session, req *SubmitRequest, method enum.PaymentMethodEnum) (*types.Order, error) {
	lines := session.Cart.Lines()
	totals := cart.ComputeTotals(session.Cart.Subtotal())

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	return s.backend.CreateOrder(callCtx, session.Auth.Token, &types.OrderRequest{
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		CartItems: lo.Map(lines, func(l cart.Line, _ int) types.OrderItem {
			return types.OrderItem{ItemID: l.ItemID, Name: l.Name, Price: l.Price, Quantity: l.Quantity}
		}),
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		GrandTotal:    totals.GrandTotal,
		PaymentMethod: method,
	})
}

func (s *Service) finalizeCash(a *attempt) *Outcome {
	a.advance(STATE_FINALIZED)

	s.updateSession(a.sessionID, func(session *types.Session) {
		session.LastOrder = a.order
		if s.cfg.ClearCartPolicy == enum.CLEAR_ON_CONFIRMATION {
			session.EnsureCart().Clear()
		}
	})

	return a.outcome(FINALIZED, MsgCashReceived, nil)
}

func (s *Service) handOff(ctx context.Context, a *attempt, session *types.Session) *Outcome {
	a.advance(STATE_SESSION_PENDING)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	ps, err := s.gateway.CreateSession(callCtx, session.Auth.Token, a.order, s.cfg.Currency)
	cancel()
	if err != nil {
		return s.compensate(a, MsgGeneric, err)
	}

	callCtx, cancel = context.WithTimeout(ctx, s.cfg.CallTimeout)
	handoff, err := s.opener.Open(callCtx, session, a.order, ps, s.cfg.Currency)
	cancel()
	if err != nil {
		if errors.Is(err, ErrHandoffBlocked) {
			return s.compensate(a, MsgHandoffBlocked, err)
		}
		return s.compensate(a, MsgGeneric, err)
	}

	a.advance(STATE_HANDED_OFF)
	s.recordHandoff(session, a.order, ps)
	s.updateSession(a.sessionID, func(session *types.Session) {
		session.PendingOrder = a.order
	})

	out := a.outcome(HANDED_OFF, MsgHandedOff, nil)
	out.Handoff = handoff.Mode
	out.RedirectURL = handoff.RedirectURL
	return out
}

// compensate deletes the order created earlier in this attempt. The delete
// runs on its own deadline so an expired flow still gets to roll back.
// A failed delete leaves the order in the orphan ledger.
func (s *Service) compensate(a *attempt, message string, cause error) *Outcome {
	a.advance(STATE_COMPENSATING_DELETE)
	logger.Warning.Printf("checkout %s: compensating order %s: %v", a.sessionID, a.order.OrderID, cause)

	session, loadErr := s.sessions.Load(a.sessionID)
	token := ""
	if loadErr == nil {
		token = session.Auth.Token
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), s.cfg.CallTimeout)
	defer cancel()

	if err := s.backend.DeleteOrder(ctx, token, a.order.OrderID); err != nil {
		logger.Error.Printf("checkout %s: compensating delete of %s failed: %v", a.sessionID, a.order.OrderID, err)
		s.recordOrphan(ctx, a, cause, err)
		return a.outcome(COMPENSATION_FAILED, MsgGeneric, errors.Join(cause, err))
	}

	return a.outcome(COMPENSATED, message, cause)
}

func (s *Service) recordOrphan(ctx context.Context, a *attempt, cause, deleteErr error) {
	if s.rp.Ledger == nil {
		return
	}
	err := s.rp.Ledger.RecordOrphan(ctx, &models.OrphanedOrder{
		OrderID:       a.order.OrderID,
		SessionID:     a.sessionID,
		PaymentMethod: a.order.PaymentMethod.ToString(),
		GrandTotal:    a.order.GrandTotal,
		Reason:        cause.Error(),
		Error:         deleteErr.Error(),
		Attempts:      1,
	})
	if err != nil {
		logger.Error.Printf("checkout %s: failed to record orphaned order %s: %v", a.sessionID, a.order.OrderID, err)
	}
}

func (s *Service) recordHandoff(session *types.Session, order *types.Order, ps *PaymentSession) {
	if s.rp.Ledger == nil {
		return
	}

	items, err := helper.JSONToByte(order.Items)
	if err != nil {
		items = nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), s.cfg.CallTimeout)
	defer cancel()

	err = s.rp.Ledger.CreateHandoff(ctx, &models.PaymentHandoff{
		OrderID:          order.OrderID,
		SessionID:        session.ID,
		TerminalID:       session.TerminalID,
		Gateway:          string(ps.Gateway),
		GatewaySessionID: ps.ID,
		RedirectURL:      ps.RedirectURL,
		Amount:           order.GrandTotal,
		Currency:         s.cfg.Currency,
		Items:            models.JSONB(items),
		Status:           models.HandoffStatusPending,
	})
	if err != nil {
		logger.Error.Printf("checkout %s: failed to record handoff of %s: %v", session.ID, order.OrderID, err)
	}
}

// updateSession applies a post-placement change. The order already exists,
// so a failure here is logged and does not change the outcome.
func (s *Service) updateSession(sessionID string, fn func(session *types.Session)) {
	_, err := s.sessions.Mutate(sessionID, func(session *types.Session) error {
		fn(session)
		return nil
	})
	if err != nil {
		logger.Error.Printf("checkout %s: failed to update session: %v", sessionID, err)
	}
}
