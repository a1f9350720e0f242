package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"coldreach/internal/auth"
	"coldreach/internal/config"
)

func SetupRouter(cfg *config.Config, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	r.GET("/health", HealthHandler(cfg, rdb))
	r.GET("/config", ConfigHandler(cfg))

	v1 := r.Group("/v1")
	{
		// Auth
		v1.POST("/auth/token", TokenHandler(cfg, rdb))
		v1.POST("/auth/logout", auth.AuthMiddleware(cfg, rdb), LogoutHandler(rdb))

		// Prospect research
		v1.POST("/research", auth.AuthMiddleware(cfg, rdb), ResearchHandler(cfg, rdb))

		// Email generation
		v1.POST("/generate", auth.AuthMiddleware(cfg, rdb), GenerateHandler(cfg, rdb))

		// Generation history
		v1.GET("/generations", auth.AuthMiddleware(cfg, rdb), ListGenerationsHandler())
		v1.GET("/generations/:id", auth.AuthMiddleware(cfg, rdb), GetGenerationHandler())

		// --- Streaming WebSocket endpoint ---
		v1.GET("/ws/generate", WSGenerateHandler(cfg, rdb))
	}
	return r
}
