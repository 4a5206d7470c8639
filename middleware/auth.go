package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/utils"
)

const (
	userIDKey  = "user_id"
	loginIDKey = "login_id"
)

// TokenParser validates access tokens.
type TokenParser interface {
	ParseToken(token string) (*utils.Claims, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// AuthMiddleware requires a valid bearer token. Browsers cannot set headers
// on websocket upgrades, so a "token" query parameter is accepted there too.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" && c.IsWebsocket() {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(loginIDKey, claims.LoginID)
		c.Next()
	}
}

// GuestOnly sends already signed-in callers away from login and signup.
func GuestOnly(parser TokenParser, redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if _, err := parser.ParseToken(token); err == nil {
				c.Redirect(http.StatusSeeOther, redirectTo)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func GetLoginID(c *gin.Context) string {
	return c.GetString(loginIDKey)
}
