package user

import (
	"net/http"
	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/validation"
	"strings"
)

func (s *Service) List(token string) *types.Response {
	users, err := s.backend.ListUsers(s.ctx, token)
	if err != nil {
		return backend.ErrorResponse(err, "Failed to load users")
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: users,
	})
}

// Create registers a user. Role defaults to USER.
func (s *Service) Create(token string, req *types.UserRequest) *types.Response {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if req.Role == "" {
		req.Role = enum.ROLE_USER.ToString()
	}

	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: err.Error(), Error: err})
	}

	user, err := s.backend.CreateUser(s.ctx, token, req)
	if err != nil {
		return backend.ErrorResponse(err, "Failed to create user")
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "User created successfully!",
		Data:    user,
	})
}

func (s *Service) Delete(token, userID string) *types.Response {
	if helper.IsBlank(userID) {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "user id is required"})
	}

	if err := s.backend.DeleteUser(s.ctx, token, userID); err != nil {
		return backend.ErrorResponse(err, "Failed to delete user")
	}

	return helper.ParseResponse(&types.Response{Code: http.StatusNoContent})
}
