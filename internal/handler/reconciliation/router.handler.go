package reconciliation

import (
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	orphans := e.Group("/reconciliation/orphans", middleware.RequireRole(enum.ROLE_ADMIN))

	orphans.GET("", h.ListOrphans)
	orphans.POST("/:orphan_id/retry", h.RetryDelete)
}
