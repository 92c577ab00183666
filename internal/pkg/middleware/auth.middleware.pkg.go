package middleware

import (
	"errors"
	"net/http"
	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

const (
	SessionHeader = "X-Session-ID"
	SessionKey    = "session"
)

// ErrNoSession is returned by a SessionLoader for unknown or expired ids.
var ErrNoSession = errors.New("session not found")

type SessionLoader interface {
	Load(sessionID string) (*types.Session, error)
}

// SessionMiddleware resolves the X-Session-ID header into the terminal session.
func SessionMiddleware(loader SessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		send := c.MustGet("send").(func(r *types.Response))

		id := c.GetHeader(SessionHeader)
		if id == "" {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "session not found"}))
			return
		}

		session, err := loader.Load(id)
		if err != nil {
			if errors.Is(err, ErrNoSession) {
				send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "session not found", Error: err}))
				return
			}
			send(helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "failed to load session", Error: err}))
			return
		}

		if !session.Auth.IsLoggedIn() {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "login required"}))
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...enum.RoleEnum) gin.HandlerFunc {
	return func(c *gin.Context) {
		send := c.MustGet("send").(func(r *types.Response))

		session, ok := GetSession(c)
		if !ok || !lo.Contains(roles, session.Auth.Role) {
			send(helper.ParseResponse(&types.Response{Code: http.StatusForbidden, Message: "access denied"}))
			return
		}
		c.Next()
	}
}

func GetSession(c *gin.Context) (*types.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*types.Session)
	return session, ok
}
