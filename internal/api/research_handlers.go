package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"coldreach/internal/config"
	"coldreach/internal/research"
)

type ResearchRequest struct {
	URL string `json:"url"`
}

// POST /v1/research runs a research pass on its own, without generating
// anything. Useful for previewing what the model will be told.
func ResearchHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	researcher := research.NewResearcher(cfg, research.NewCache(rdb))
	return func(c *gin.Context) {
		var req ResearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if req.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "url is required"}})
			return
		}

		res, err := ResearchProspect(c.Request.Context(), researcher, req.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
