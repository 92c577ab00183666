package cart

import (
	"github.com/gin-gonic/gin"
)

// NewRoutes expects e to run behind the session middleware.
func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	cart := e.Group("/cart")

	cart.GET("", h.View)
	cart.DELETE("", h.Clear)
	cart.POST("/items", h.Add)
	cart.PUT("/items/:item_id", h.SetQuantity)
	cart.DELETE("/items/:item_id", h.Remove)
}
