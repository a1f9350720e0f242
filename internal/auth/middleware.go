package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"coldreach/internal/config"
)

// AuthMiddleware validates the Bearer token on every request. When a
// Redis client is supplied, tokens must also have a live session so
// revocation takes effect before expiry; a nil client runs stateless.
func AuthMiddleware(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Missing or invalid Authorization header"}})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := ParseJWT(cfg.Server.JWTSecret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid or expired token"}})
			return
		}
		if rdb != nil {
			sessionToken, err := GetSession(rdb, claims.ID)
			if err != nil || sessionToken != tokenStr {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Session expired or invalid"}})
				return
			}
			// Refresh expiry on use
			_ = SetSession(rdb, claims.ID, tokenStr, TokenTTL)
		}

		c.Set("jti", claims.ID)
		c.Next()
	}
}
