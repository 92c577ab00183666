package session

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	e.POST("/auth/login", h.Login)

	session := e.Group("/session")
	session.GET("", h.Restore)
	session.DELETE("", h.Logout)
}
