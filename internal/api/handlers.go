package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"coldreach/internal/auth"
	"coldreach/internal/config"
)

// GET /health
func HealthHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"status": "ok",
			"providers": gin.H{
				"openai":    os.Getenv("OPENAI_API_KEY") != "",
				"anthropic": os.Getenv("ANTHROPIC_API_KEY") != "",
			},
		}
		if rdb != nil {
			if count, err := auth.ActiveSessionCount(rdb); err == nil {
				resp["active_sessions"] = count
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GET /config
func ConfigHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host": cfg.Server.Host,
				"port": cfg.Server.Port,
			},
			"llm": gin.H{
				"provider":        cfg.LLM.Provider,
				"openai_model":    cfg.LLM.OpenAIModel,
				"anthropic_model": cfg.LLM.AnthropicModel,
			},
			"research": gin.H{
				"timeout_seconds": cfg.Research.TimeoutSeconds,
				"cache_ttl_hours": cfg.Research.CacheTTLHours,
			},
		})
	}
}

type TokenRequest struct {
	APIKey string `json:"api_key"`
}
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// POST /v1/auth/token exchanges the shared API key for a bearer token.
func TokenHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Server.APIKeyHash == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "API access is not configured"}})
			return
		}
		var req TokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if err := auth.CheckAPIKey(cfg.Server.APIKeyHash, req.APIKey); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid API key"}})
			return
		}
		jti := uuid.New().String()
		token, err := auth.GenerateJWT(cfg.Server.JWTSecret, jti, auth.TokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to generate token"}})
			return
		}
		if rdb != nil {
			_ = auth.SetSession(rdb, jti, token, auth.TokenTTL)
		}
		c.JSON(http.StatusOK, TokenResponse{
			Token:     token,
			ExpiresIn: int(auth.TokenTTL.Seconds()),
		})
	}
}

func LogoutHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		jti, exists := c.Get("jti")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		if rdb != nil {
			_ = auth.DeleteSession(rdb, jti.(string))
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
