package middleware

import (
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestInit tags every request with an id and logs its latency.
func RequestInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()
		logger.Debug.Printf("request %s %s %s -> %d in %s", id, c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// ResponseInit installs the "send" function handlers use to write a
// *types.Response. Server error details are hidden when hideErrors is set.
func ResponseInit(hideErrors bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("send", func(r *types.Response) {
			if r == nil {
				r = helper.ParseResponse(&types.Response{Code: http.StatusNoContent})
			}
			if r.Code == http.StatusNoContent {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.AbortWithStatusJSON(r.Code, helper.ToResponseAPI(r, hideErrors))
		})
		c.Next()
	}
}

func CorsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+SessionHeader+", "+RequestIDHeader)
		c.Header("Access-Control-Expose-Headers", RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
