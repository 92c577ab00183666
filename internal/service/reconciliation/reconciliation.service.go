package reconciliation

import (
	"context"
	"errors"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/logger"
	ledgerRepo "pos-terminal/internal/repository/ledger"
)

func (s *Service) ListOrphans(query *OrphanQuery) *types.Response {
	ctx, cancel := context.WithTimeout(s.ctx, s.callTimeout)
	defer cancel()

	orphans, err := s.rp.Ledger.ListOrphans(ctx, query != nil && query.IncludeResolved)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to load orphaned orders", Error: err})
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: orphans,
	})
}

// RetryDelete deletes an orphaned order on the backend again. An order the
// backend no longer has counts as deleted.
func (s *Service) RetryDelete(token, orphanID string) *types.Response {
	ctx, cancel := context.WithTimeout(s.ctx, s.callTimeout)
	defer cancel()

	orphan, err := s.rp.Ledger.FindOrphan(ctx, orphanID)
	if errors.Is(err, ledgerRepo.ErrNotFound) {
		return helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "Orphaned order not found", Error: err})
	}
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to load orphaned order", Error: err})
	}
	if orphan.Resolved {
		return helper.ParseResponse(&types.Response{Code: http.StatusOK, Message: "Order already deleted", Data: orphan})
	}

	err = s.backend.DeleteOrder(ctx, token, orphan.OrderID)
	if err != nil && backend.StatusOf(err) != http.StatusNotFound {
		if recErr := s.rp.Ledger.RecordOrphanAttempt(ctx, orphan.ID, err.Error()); recErr != nil {
			logger.Error.Printf("reconciliation %s: failed to record attempt: %v", orphan.ID, recErr)
		}
		return backend.ErrorResponse(err, "Failed to delete order")
	}

	if err := s.rp.Ledger.ResolveOrphan(ctx, orphan.ID, helper.TimeRightNow()); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Order deleted but not marked resolved", Error: err})
	}
	logger.Info.Printf("reconciliation: orphaned order %s deleted", orphan.OrderID)

	return helper.ParseResponse(&types.Response{Code: http.StatusOK, Message: "Order deleted successfully!"})
}
