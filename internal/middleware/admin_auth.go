package middleware

import (
	"net/http"

	"blkout_community_go/internal/model"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware gates moderation routes on the ADMIN role. It must run
// after AuthMiddleware, which injects the moderator.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		moderatorVal, exists := c.Get("moderator")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Moderator not found in context",
			})
			return
		}
		moderator, ok := moderatorVal.(*model.Moderator)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "Failed to get moderator profile",
			})
			return
		}
		if moderator.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "Forbidden: Only admin can access this resource",
			})
			return
		}
		c.Next()
	}
}
