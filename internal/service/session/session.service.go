package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/jwt"
	"pos-terminal/internal/pkg/logger"
	"pos-terminal/internal/pkg/middleware"
	"pos-terminal/internal/pkg/validation"
	sessionRepo "pos-terminal/internal/repository/session"
	"strings"
	"time"

	"github.com/google/uuid"
)

const warmTimeout = 10 * time.Second

func (s *Service) Login(req *LoginRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: err.Error(), Error: err})
	}

	res, err := s.backend.Login(s.ctx, &types.AuthRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		switch backend.StatusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return helper.ParseResponse(&types.Response{
				Code:    http.StatusUnauthorized,
				Message: "Invalid email or password",
				Error:   err,
			})
		}
		return backend.ErrorResponse(err, "Login failed")
	}

	auth, err := s.authFrom(res, req.Email)
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, jwt.ErrTokenExpired) {
			code = http.StatusUnauthorized
		}
		return helper.ParseResponse(&types.Response{Code: code, Message: "Login failed", Error: err})
	}

	now := helper.TimeRightNow()
	session := &types.Session{
		ID:         uuid.NewString(),
		TerminalID: req.TerminalID,
		Auth:       *auth,
		CreatedAt:  now,
	}
	session.EnsureCart()

	if err := s.rp.Session.Save(session, s.ttl); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to start session",
			Error:   err,
		})
	}
	logger.Info.Printf("session %s opened for %s on terminal %s", session.ID, auth.Email, session.TerminalID)

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Login successful",
		Data:    newSessionView(session, s.warm(session)),
	})
}

// authFrom turns the backend's login answer into the stored auth state.
func (s *Service) authFrom(res *types.AuthResponse, email string) (*types.SessionAuth, error) {
	if res.Token == "" {
		return nil, fmt.Errorf("backend returned no token")
	}

	role := enum.RoleEnum(strings.ToUpper(strings.TrimSpace(res.Role)))
	if !role.IsValid() {
		return nil, fmt.Errorf("backend returned unknown role %q", res.Role)
	}

	auth := &types.SessionAuth{Token: res.Token, Role: role, Email: res.Email}
	if auth.Email == "" {
		auth.Email = email
	}

	claims, err := jwt.Inspect(res.Token, s.jwtSecret)
	switch {
	case err == nil:
		auth.ExpiresAt = claims.ExpiresAt
	case errors.Is(err, jwt.ErrTokenExpired) || s.jwtSecret != "":
		return nil, err
	default:
		logger.Debug.Printf("backend token is not a readable JWT: %v", err)
	}
	return auth, nil
}

func (s *Service) warm(session *types.Session) *types.CatalogSnapshot {
	if !session.Auth.IsLoggedIn() {
		return nil
	}

	ctx, cancel := context.WithTimeout(s.ctx, warmTimeout)
	defer cancel()

	snapshot, err := s.catalog.Warm(ctx, session.Auth.Token)
	if err != nil {
		logger.Warning.Printf("session %s: %v", session.ID, err)
		return nil
	}
	return snapshot
}

func (s *Service) Restore(sessionID string) *types.Response {
	session, err := s.Load(sessionID)
	if err != nil {
		return s.loadError(err)
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: newSessionView(session, s.warm(session)),
	})
}

func (s *Service) Logout(sessionID string) *types.Response {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.rp.Session.Delete(sessionID); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to end session",
			Error:   err,
		})
	}
	logger.Info.Printf("session %s closed", sessionID)

	return helper.ParseResponse(&types.Response{Code: http.StatusNoContent})
}

// Load returns the stored session. An expired backend token leaves the
// session logged out.
func (s *Service) Load(sessionID string) (*types.Session, error) {
	session, err := s.rp.Session.Get(sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %s", middleware.ErrNoSession, sessionID)
		}
		return nil, err
	}

	if exp := session.Auth.ExpiresAt; exp != nil && exp.Before(helper.TimeRightNow()) {
		session.Auth = types.SessionAuth{}
	}
	return session, nil
}

// Mutate applies fn to the current session and saves it. Calls for the same
// session id are serialized. Nothing is saved when fn fails.
func (s *Service) Mutate(sessionID string, fn func(session *types.Session) error) (*types.Session, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.Load(sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	if err := s.rp.Session.Save(session, s.ttl); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) loadError(err error) *types.Response {
	if errors.Is(err, middleware.ErrNoSession) {
		return helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "session not found", Error: err})
	}
	return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to load session", Error: err})
}
