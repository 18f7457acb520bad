// file: middleware/admin_required.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderlust/logger"
)

// AdminRequired rejects callers without the admin role. It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		logger.Debug.Printf("AdminRequired Middleware - user=%s role=%s", id.Username, id.Role)

		if !ok || !id.IsAdmin() {
			logger.Warn.Printf("AdminRequired Middleware - blocked %q from %s", id.Username, c.Request.URL.Path)
			if isAPIRequest(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}
