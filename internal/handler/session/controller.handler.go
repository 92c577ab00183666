package session

import (
	"context"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/middleware"
	sessionService "pos-terminal/internal/service/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx            context.Context
	sessionService sessionService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, sessionService sessionService.IService) IHandler {
	return &Handler{
		ctx:            ctx,
		sessionService: sessionService,
	}
}

// Login godoc
// @Summary      Log a terminal in
// @Description  Relays the credentials to the billing backend, stores the token and role on a new terminal session and warms the catalog
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        request  body      sessionService.LoginRequest  true  "Credentials and terminal id"
// @Success      200      {object}  types.ResponseAPI{data=sessionService.SessionView}
// @Failure      400      {object}  types.ResponseAPI
// @Failure      401      {object}  types.ResponseAPI
// @Failure      502      {object}  types.ResponseAPI
// @Router       /v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req sessionService.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.sessionService.Login(&req))
}

// Restore godoc
// @Summary      Restore a terminal session
// @Description  Returns the stored session with its cart and catalog; 401 when the session is missing or logged out
// @Tags         Session
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  types.ResponseAPI{data=sessionService.SessionView}
// @Failure      401           {object}  types.ResponseAPI
// @Router       /v1/session [get]
func (h *Handler) Restore(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.sessionService.Restore(c.GetHeader(middleware.SessionHeader)))
}

// Logout godoc
// @Summary      Log a terminal out
// @Tags         Session
// @Param        X-Session-ID  header  string  true  "Session id"
// @Success      204
// @Router       /v1/session [delete]
func (h *Handler) Logout(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	sessionID := c.GetHeader(middleware.SessionHeader)
	if sessionID == "" {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: middleware.SessionHeader + " is required",
		}))
		return
	}

	send(h.sessionService.Logout(sessionID))
}
