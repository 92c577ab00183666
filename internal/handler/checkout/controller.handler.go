package checkout

import (
	"context"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/middleware"
	checkoutService "pos-terminal/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx             context.Context
	checkoutService checkoutService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
	NewWebhookRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, checkoutService checkoutService.IService) IHandler {
	return &Handler{
		ctx:             ctx,
		checkoutService: checkoutService,
	}
}

// Submit godoc
// @Summary      Place the cart as an order and take payment
// @Description  Cash orders are finalized immediately (201). Electronic orders get a payment session that is handed to the checkout display (202); if that fails the order is deleted again (502). A second submission while one is running gets 409.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string                          true  "Session id"
// @Param        request       body      checkoutService.SubmitRequest  true  "Customer details and payment method"
// @Success      201           {object}  types.ResponseAPI{data=checkoutService.Outcome}
// @Success      202           {object}  types.ResponseAPI{data=checkoutService.Outcome}
// @Failure      400           {object}  types.ResponseAPI
// @Failure      409           {object}  types.ResponseAPI
// @Failure      500           {object}  types.ResponseAPI
// @Failure      502           {object}  types.ResponseAPI
// @Router       /v1/checkout [post]
func (h *Handler) Submit(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	session, _ := middleware.GetSession(c)
	send(h.checkoutService.Submit(session.ID, &req).Response())
}

// Verify godoc
// @Summary      Verify a handed-off payment
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string                            true  "Session id"
// @Param        request       body      types.PaymentVerificationRequest  true  "Order and gateway ids"
// @Success      200           {object}  types.ResponseAPI{data=types.Order}
// @Failure      400           {object}  types.ResponseAPI
// @Failure      409           {object}  types.ResponseAPI
// @Failure      502           {object}  types.ResponseAPI
// @Router       /v1/checkout/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req types.PaymentVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	session, _ := middleware.GetSession(c)
	send(h.checkoutService.Verify(session.ID, &req))
}

// Notification godoc
// @Summary      Payment gateway notification webhook
// @Description  Receives the gateway's HTTP notification when a transaction status changes. Register this URL as the Payment Notification URL in the Midtrans dashboard.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        request  body      checkoutService.Notification  true  "Notification payload"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /v1/payments/notification [post]
func (h *Handler) Notification(c *gin.Context) {
	var req checkoutService.Notification
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}

	result := h.checkoutService.Notify(&req)
	if result.Code != http.StatusOK {
		c.JSON(result.Code, gin.H{"status": "error", "message": result.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
