package middleware

import (
	"errors"
	"net/http"
	"strings"

	"blkout_community_go/internal/service"
	"blkout_community_go/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware protects moderator routes.
// Flow:
//  1. extract the Bearer token from the Authorization header
//  2. verify signature and expiry; only access tokens are accepted
//  3. reject tokens revoked by logout (Redis blacklist)
//  4. load the moderator, confirming the account still exists
//  5. inject claims and moderator into the gin context for the handlers
func AuthMiddleware(jwtManager *token.JWTManager, authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtManager == nil || authService == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "Internal server error",
			})
			return
		}

		tokenString, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Invalid authorization header",
			})
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil || claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Invalid or expired access token",
			})
			return
		}
		if claims.TokenType != token.TokenTypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Invalid token type",
			})
			return
		}

		blacklisted, err := authService.IsTokenBlacklisted(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "Internal server error",
			})
			return
		}
		if blacklisted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Invalid or expired access token",
			})
			return
		}

		moderator, err := authService.GetProfile(claims.Username)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrModeratorNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code":    http.StatusUnauthorized,
					"message": "Moderator not found",
				})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    http.StatusInternalServerError,
					"message": "Internal server error",
				})
			}
			return
		}

		c.Set("claims", claims)
		c.Set("moderator", moderator)
		c.Next()
	}
}

// extractBearerToken parses "Authorization: Bearer <token>", case-insensitive
// on the scheme.
func extractBearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	if parts[1] == "" {
		return "", errors.New("empty token")
	}
	return parts[1], nil
}
