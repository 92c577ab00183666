package checkout

import (
	"context"
	"errors"
	"net/http"
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/common/models"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/logger"
	"pos-terminal/internal/pkg/validation"
	ledgerRepo "pos-terminal/internal/repository/ledger"
)

// Verify confirms a handed-off payment with the gateway. On success the
// order becomes the session's receipt and, under the confirmation policy,
// the cart is cleared.
func (s *Service) Verify(sessionID string, req *types.PaymentVerificationRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: err.Error(), Error: err})
	}

	session, err := s.sessions.Load(sessionID)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "session not found", Error: err})
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.CallTimeout)
	defer cancel()

	if !s.ownsOrder(ctx, session, req.OrderID) {
		return helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "Order not found for this session"})
	}

	verified, err := s.gateway.Verify(ctx, session.Auth.Token, req)
	if err != nil {
		if errors.Is(err, ErrNotPaid) {
			return helper.ParseResponse(&types.Response{Code: http.StatusConflict, Message: "Payment not completed yet", Error: err})
		}
		return backend.ErrorResponse(err, "Payment verification failed")
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Payment verified successfully!",
		Data:    s.confirm(ctx, sessionID, verified),
	})
}

// ownsOrder reports whether orderID was handed off by this session: it is
// the pending order, the receipt already shown, or a ledger handoff
// recorded for the session.
func (s *Service) ownsOrder(ctx context.Context, session *types.Session, orderID string) bool {
	if session.PendingOrder != nil && session.PendingOrder.OrderID == orderID {
		return true
	}
	if session.LastOrder != nil && session.LastOrder.OrderID == orderID {
		return true
	}
	if s.rp.Ledger == nil {
		return false
	}
	handoff, err := s.rp.Ledger.FindHandoffByOrderID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, ledgerRepo.ErrNotFound) {
			logger.Error.Printf("checkout %s: failed to look up handoff %s: %v", session.ID, orderID, err)
		}
		return false
	}
	return handoff.SessionID == session.ID
}

// Notify handles a payment notification pushed by the gateway. The
// notification only triggers a status check; its own fields are not trusted
// beyond the signature.
func (s *Service) Notify(n *Notification) *types.Response {
	if err := validation.Validate(n); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "Invalid notification payload: missing order_id", Error: err})
	}

	verifier, ok := s.gateway.(NotificationVerifier)
	if !ok {
		return helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "Payment notifications are not supported"})
	}
	if !verifier.VerifyNotification(n) {
		logger.Error.Printf("Invalid signature key for order %s", n.OrderID)
		return helper.ParseResponse(&types.Response{Code: http.StatusForbidden, Message: "Invalid signature key"})
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.CallTimeout)
	defer cancel()

	verified, err := s.gateway.Verify(ctx, "", &types.PaymentVerificationRequest{OrderID: n.OrderID})
	if errors.Is(err, ErrNotPaid) {
		logger.Info.Printf("notification for order %s: %v", n.OrderID, err)
		return helper.ParseResponse(&types.Response{Code: http.StatusOK, Message: "ok"})
	}
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to verify notification", Error: err})
	}

	if s.rp.Ledger == nil {
		logger.Warning.Printf("notification for order %s: no ledger to find its session", n.OrderID)
		return helper.ParseResponse(&types.Response{Code: http.StatusOK, Message: "ok"})
	}
	handoff, err := s.rp.Ledger.FindHandoffByOrderID(ctx, n.OrderID)
	if errors.Is(err, ledgerRepo.ErrNotFound) {
		logger.Warning.Printf("notification for unknown order %s", n.OrderID)
		return helper.ParseResponse(&types.Response{Code: http.StatusOK, Message: "ok"})
	}
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to verify notification", Error: err})
	}

	if handoff.Status != models.HandoffStatusPaid {
		s.confirm(ctx, handoff.SessionID, verified)
	}
	logger.Info.Printf("Callback processed for order %s", n.OrderID)

	return helper.ParseResponse(&types.Response{Code: http.StatusOK, Message: "ok"})
}

// confirm records a verified payment: the ledger entry is marked paid and
// the order becomes the session's receipt.
func (s *Service) confirm(ctx context.Context, sessionID string, verified *types.Order) *types.Order {
	if s.rp.Ledger != nil {
		err := s.rp.Ledger.MarkHandoffPaid(ctx, verified.OrderID, helper.TimeRightNow())
		if err != nil && !errors.Is(err, ledgerRepo.ErrNotFound) {
			logger.Error.Printf("checkout %s: failed to mark %s paid: %v", sessionID, verified.OrderID, err)
		}
	}

	order := verified
	s.updateSession(sessionID, func(session *types.Session) {
		order = mergeVerified(session.PendingOrder, verified)
		session.LastOrder = order
		if session.PendingOrder != nil && session.PendingOrder.OrderID == order.OrderID {
			session.PendingOrder = nil
		}
		if s.cfg.ClearCartPolicy == enum.CLEAR_ON_CONFIRMATION {
			session.EnsureCart().Clear()
		}
	})
	logger.Info.Printf("checkout %s order %s: payment verified", sessionID, order.OrderID)

	return order
}

// mergeVerified fills what the gateway left out from the order the session
// handed off.
func mergeVerified(pending, verified *types.Order) *types.Order {
	if pending == nil || pending.OrderID != verified.OrderID {
		return verified
	}

	merged := *pending
	if verified.PaymentDetails != nil {
		merged.PaymentDetails = verified.PaymentDetails
	}
	if len(verified.Items) > 0 {
		merged.Items = verified.Items
	}
	if verified.CreatedAt != nil {
		merged.CreatedAt = verified.CreatedAt
	}
	return &merged
}
