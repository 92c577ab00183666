package order

import (
	"context"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/middleware"
	orderService "pos-terminal/internal/service/order"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx          context.Context
	orderService orderService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, orderService orderService.IService) IHandler {
	return &Handler{
		ctx:          ctx,
		orderService: orderService,
	}
}

// Latest godoc
// @Summary      Latest orders
// @Tags         Orders
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  types.ResponseAPI{data=[]types.Order}
// @Router       /v1/orders/latest [get]
func (h *Handler) Latest(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)
	send(h.orderService.Latest(session.Auth.Token))
}

// Filter godoc
// @Summary      Find orders by grand total and payment method
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string                    true  "Session id"
// @Param        request       body      types.OrderFilterRequest  true  "Filter"
// @Success      200           {object}  types.ResponseAPI{data=[]types.Order}
// @Failure      400           {object}  types.ResponseAPI
// @Router       /v1/orders/filter [post]
func (h *Handler) Filter(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req types.OrderFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	session, _ := middleware.GetSession(c)
	send(h.orderService.Filter(session.Auth.Token, &req))
}

// Dashboard godoc
// @Summary      Today's sales summary
// @Tags         Orders
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  types.ResponseAPI{data=types.DashboardSummary}
// @Router       /v1/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)
	send(h.orderService.Dashboard(session.Auth.Token))
}
