package checkout

import (
	"github.com/gin-gonic/gin"
)

// NewRoutes expects e to run behind the session middleware.
func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	checkout := e.Group("/checkout")

	checkout.POST("", h.Submit)
	checkout.POST("/verify", h.Verify)
}

func (h *Handler) NewWebhookRoutes(e *gin.RouterGroup) {
	e.POST("/payments/notification", h.Notification)
}
