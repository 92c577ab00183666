package cart

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

func sessionID(c *gin.Context) string {
	session, _ := middleware.GetSession(c)
	return session.ID
}

// View godoc
// @Summary      Show the cart
// @Description  Lines with live subtotal, 5% tax and grand total
// @Tags         Cart
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  types.ResponseAPI{data=cart.View}
// @Router       /v1/cart [get]
func (h *Handler) View(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.sessionService.ViewCart(sessionID(c)))
}

// Add godoc
// @Summary      Add an item to the cart
// @Description  An item whose name is already in the cart increases that line's quantity
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string                            true  "Session id"
// @Param        request       body      sessionService.AddToCartRequest  true  "Catalog item"
// @Success      200           {object}  types.ResponseAPI{data=cart.View}
// @Failure      404           {object}  types.ResponseAPI
// @Router       /v1/cart/items [post]
func (h *Handler) Add(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req sessionService.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.sessionService.AddToCart(sessionID(c), &req))
}

// SetQuantity godoc
// @Summary      Change a cart line's quantity
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string                              true  "Session id"
// @Param        item_id       path      string                              true  "Item ID"
// @Param        request       body      sessionService.SetQuantityRequest  true  "Quantity, at least 1"
// @Success      200           {object}  types.ResponseAPI{data=cart.View}
// @Failure      400           {object}  types.ResponseAPI
// @Router       /v1/cart/items/{item_id} [put]
func (h *Handler) SetQuantity(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req sessionService.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.sessionService.SetQuantity(sessionID(c), c.Param("item_id"), &req))
}

// Remove godoc
// @Summary      Remove a cart line
// @Tags         Cart
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Param        item_id       path      string  true  "Item ID"
// @Success      200           {object}  types.ResponseAPI{data=cart.View}
// @Router       /v1/cart/items/{item_id} [delete]
func (h *Handler) Remove(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.sessionService.RemoveFromCart(sessionID(c), c.Param("item_id")))
}

// Clear godoc
// @Summary      Empty the cart
// @Tags         Cart
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  types.ResponseAPI{data=cart.View}
// @Router       /v1/cart [delete]
func (h *Handler) Clear(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.sessionService.ClearCart(sessionID(c)))
}
