package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/auth"
	logger "github.com/AryanVohra-Kiwi/library-management-system/loggers"
)

// RequirePermission consults the authorization gate for one action. It runs
// after AuthenticateMiddleware, which puts the principal in the context.
func RequirePermission(gate auth.Gate, action auth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := PrincipalFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		allowed, err := gate.Authorize(c.Request.Context(), principal, action)
		if err != nil {
			logger.Logger.Error("authorization check failed: ", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
