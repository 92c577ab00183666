package order

import (
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/validation"
)

func (s *Service) Latest(token string) *types.Response {
	orders, err := s.backend.LatestOrders(s.ctx, token)
	if err != nil {
		return backend.ErrorResponse(err, "Failed to load orders")
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: orders,
	})
}

func (s *Service) Filter(token string, req *types.OrderFilterRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: err.Error(), Error: err})
	}

	orders, err := s.backend.FilterOrders(s.ctx, token, req)
	if err != nil {
		return backend.ErrorResponse(err, "Failed to load orders")
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: orders,
	})
}

// Dashboard relays the backend's summary of today. RecentOrders is never null.
func (s *Service) Dashboard(token string) *types.Response {
	summary, err := s.backend.Dashboard(s.ctx, token)
	if err != nil {
		return backend.ErrorResponse(err, "Failed to load dashboard")
	}
	if summary.RecentOrders == nil {
		summary.RecentOrders = []types.Order{}
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: summary,
	})
}
