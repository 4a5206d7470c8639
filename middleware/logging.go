package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/utils"
)

// RequestLogger logs one line per request, with the caller masked.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.LogAPIRequest(c.Request.Method, c.FullPath(), GetUserID(c), c.Writer.Status(), time.Since(start).String())
	}
}
