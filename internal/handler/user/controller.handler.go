package user

import (
	"context"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/middleware"
	userService "pos-terminal/internal/service/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx         context.Context
	userService userService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, userService userService.IService) IHandler {
	return &Handler{
		ctx:         ctx,
		userService: userService,
	}
}

// List godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  types.ResponseAPI{data=[]types.User}
// @Failure      403           {object}  types.ResponseAPI
// @Router       /v1/users [get]
func (h *Handler) List(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)
	send(h.userService.List(session.Auth.Token))
}

// Create godoc
// @Summary      Register a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string             true  "Session id"
// @Param        request       body      types.UserRequest  true  "New user"
// @Success      201           {object}  types.ResponseAPI{data=types.User}
// @Failure      400           {object}  types.ResponseAPI
// @Failure      403           {object}  types.ResponseAPI
// @Router       /v1/users [post]
func (h *Handler) Create(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req types.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	session, _ := middleware.GetSession(c)
	send(h.userService.Create(session.Auth.Token, &req))
}

// Delete godoc
// @Summary      Delete a user
// @Tags         Users
// @Param        X-Session-ID  header  string  true  "Session id"
// @Param        user_id       path    string  true  "User ID"
// @Success      204
// @Failure      403  {object}  types.ResponseAPI
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/users/{user_id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)
	send(h.userService.Delete(session.Auth.Token, c.Param("user_id")))
}
