package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/asset-hive/asset-service/internal/models"
	"github.com/asset-hive/asset-service/internal/services"
	"github.com/gin-gonic/gin"
)

// SearchFiles matches a case-insensitive substring against filenames. A
// blank query is not an error; it returns an empty list.
func SearchFiles(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"files": []models.UploadRecord{}})
		return
	}

	files, err := services.SearchUploadsByFilename(query)
	if err != nil {
		log.Printf("Search error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	if files == nil {
		files = []models.UploadRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}
