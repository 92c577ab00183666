package receipt

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	receipt := e.Group("/receipt")

	receipt.GET("", h.Show)
	receipt.DELETE("", h.Close)
	receipt.POST("/print", h.Print)
}
