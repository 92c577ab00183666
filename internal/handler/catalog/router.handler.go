package catalog

import (
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// NewRoutes expects e to run behind the session middleware. Writes are
// admin only.
func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	e.GET("/categories", h.Categories)
	e.GET("/items", h.Items)

	admin := e.Group("", middleware.RequireRole(enum.ROLE_ADMIN))
	admin.POST("/categories", h.AddCategory)
	admin.DELETE("/categories/:category_id", h.DeleteCategory)
	admin.POST("/items", h.AddItem)
	admin.DELETE("/items/:item_id", h.DeleteItem)
}
