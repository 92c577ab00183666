package receipt

import (
	"context"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/middleware"
	receiptService "pos-terminal/internal/service/receipt"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx            context.Context
	receiptService receiptService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, receiptService receiptService.IService) IHandler {
	return &Handler{
		ctx:            ctx,
		receiptService: receiptService,
	}
}

// Show godoc
// @Summary      Show the last receipt
// @Tags         Receipt
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  types.ResponseAPI{data=receiptService.Receipt}
// @Failure      404           {object}  types.ResponseAPI
// @Router       /v1/receipt [get]
func (h *Handler) Show(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)
	send(h.receiptService.Show(session.ID))
}

// Close godoc
// @Summary      Close the receipt display
// @Tags         Receipt
// @Param        X-Session-ID  header  string  true  "Session id"
// @Success      204
// @Router       /v1/receipt [delete]
func (h *Handler) Close(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)
	send(h.receiptService.Close(session.ID))
}

// Print godoc
// @Summary      Print the last receipt
// @Description  Queues the receipt for the terminal's printer
// @Tags         Receipt
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      202           {object}  types.ResponseAPI{data=receiptService.Receipt}
// @Failure      404           {object}  types.ResponseAPI
// @Failure      503           {object}  types.ResponseAPI
// @Router       /v1/receipt/print [post]
func (h *Handler) Print(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)
	send(h.receiptService.Print(session.ID))
}
