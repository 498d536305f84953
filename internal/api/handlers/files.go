package handlers

import (
	"net/http"
	"strconv"

	"github.com/asset-hive/asset-service/internal/models"
	"github.com/asset-hive/asset-service/internal/services"
	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	if m := services.GetMinioService(); m != nil {
		if err := m.CheckConnection(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "storage unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListFiles returns the most recent uploads for the asset list.
func ListFiles(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 50
	}
	// Cap limit to avoid abuse
	if limit > 500 {
		limit = 500
	}

	files, err := services.GetRecentUploads(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}
	if files == nil {
		files = []models.UploadRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func GetStats(c *gin.Context) {
	stats, err := services.GetUploadStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_uploads": stats.TotalUploads,
		"latest_upload": stats.LatestUpload,
	})
}
