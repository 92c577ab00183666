package reconciliation

import (
	"context"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/middleware"
	reconciliationService "pos-terminal/internal/service/reconciliation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx                   context.Context
	reconciliationService reconciliationService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, reconciliationService reconciliationService.IService) IHandler {
	return &Handler{
		ctx:                   ctx,
		reconciliationService: reconciliationService,
	}
}

// ListOrphans godoc
// @Summary      List orphaned orders
// @Description  Orders whose compensating delete failed after a payment handoff error
// @Tags         Reconciliation
// @Produce      json
// @Param        X-Session-ID     header    string  true   "Session id"
// @Param        includeResolved  query     bool    false  "Include resolved orphans"
// @Success      200              {object}  types.ResponseAPI{data=[]models.OrphanedOrder}
// @Failure      403              {object}  types.ResponseAPI
// @Router       /v1/reconciliation/orphans [get]
func (h *Handler) ListOrphans(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var query reconciliationService.OrphanQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid query",
			Error:   err,
		}))
		return
	}

	send(h.reconciliationService.ListOrphans(&query))
}

// RetryDelete godoc
// @Summary      Retry deleting an orphaned order
// @Tags         Reconciliation
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Param        orphan_id     path      string  true  "Orphan record ID"
// @Success      200           {object}  types.ResponseAPI
// @Failure      403           {object}  types.ResponseAPI
// @Failure      404           {object}  types.ResponseAPI
// @Failure      502           {object}  types.ResponseAPI
// @Router       /v1/reconciliation/orphans/{orphan_id}/retry [post]
func (h *Handler) RetryDelete(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)
	send(h.reconciliationService.RetryDelete(session.Auth.Token, c.Param("orphan_id")))
}
