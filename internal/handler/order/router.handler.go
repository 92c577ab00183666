package order

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	orders := e.Group("/orders")
	orders.GET("/latest", h.Latest)
	orders.POST("/filter", h.Filter)

	e.GET("/dashboard", h.Dashboard)
}
