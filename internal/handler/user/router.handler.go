package user

import (
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	users := e.Group("/users", middleware.RequireRole(enum.ROLE_ADMIN))

	users.GET("", h.List)
	users.POST("", h.Create)
	users.DELETE("/:user_id", h.Delete)
}
