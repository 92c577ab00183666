package receipt

import (
	"errors"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/logger"
	"pos-terminal/internal/pkg/rabbitmq"
)

const printMessageType = "receipt.print"

var errNoReceipt = errors.New("no finalized order on this session")

// Show renders the session's last finalized order.
func (s *Service) Show(sessionID string) *types.Response {
	session, err := s.sessions.Load(sessionID)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "session not found", Error: err})
	}
	if session.LastOrder == nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "No receipt to show", Error: errNoReceipt})
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: s.formatter.Render(session.LastOrder),
	})
}

// Close takes the receipt off the display. Closing twice is fine.
func (s *Service) Close(sessionID string) *types.Response {
	_, err := s.sessions.Mutate(sessionID, func(session *types.Session) error {
		session.LastOrder = nil
		return nil
	})
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "session not found", Error: err})
	}
	return helper.ParseResponse(&types.Response{Code: http.StatusNoContent})
}

// Print queues the receipt for the terminal's printer.
func (s *Service) Print(sessionID string) *types.Response {
	session, err := s.sessions.Load(sessionID)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "session not found", Error: err})
	}
	if session.LastOrder == nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "No receipt to print", Error: errNoReceipt})
	}

	receipt := s.formatter.Render(session.LastOrder)
	msg, err := rabbitmq.NewMessage(printMessageType, &PrintJob{
		SessionID:  session.ID,
		TerminalID: session.TerminalID,
		OrderID:    receipt.OrderID,
		Text:       receipt.Text,
	}, nil)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to print receipt", Error: err})
	}

	if err := s.publisher.Publish(s.ctx, "", s.queue, msg); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusServiceUnavailable, Message: "Printer queue unavailable", Error: err})
	}
	logger.Info.Printf("receipt %s queued for terminal %s", receipt.OrderID, session.TerminalID)

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusAccepted,
		Message: "Receipt sent to printer",
		Data:    receipt,
	})
}
