package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coldreach/internal/db"
	"coldreach/internal/history"
)

// GET /v1/generations?limit=20
func ListGenerationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if db.DB == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "history is not configured"}})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		recs, err := history.NewStore(db.DB).Recent(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to list generations"}})
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}

// GET /v1/generations/:id
func GetGenerationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if db.DB == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "history is not configured"}})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid id"}})
			return
		}
		rec, err := history.NewStore(db.DB).Get(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Generation not found"}})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}
