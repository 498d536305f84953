package handlers

import (
	"log"
	"net/http"

	"github.com/asset-hive/asset-service/internal/services"
	"github.com/gin-gonic/gin"
)

type UpdateTagsRequest struct {
	BlobKey string `json:"blob_key"`
	Tags    string `json:"tags"`
}

// UpdateTags overwrites the tags column of the row matching blob_key. A key
// with no matching row is still a success: the update affects zero rows,
// which fits the fire-and-refresh client. Concurrent updates race with
// last-write-wins.
func UpdateTags(c *gin.Context) {
	var req UpdateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.BlobKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "blob_key is required"})
		return
	}

	affected, err := services.UpdateUploadTags(req.BlobKey, req.Tags)
	if err != nil {
		log.Printf("Error updating tags for %s: %v", req.BlobKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tags"})
		return
	}

	tagsEvent := map[string]interface{}{
		"action":        "tags_updated",
		"blob_key":      req.BlobKey,
		"tags":          req.Tags,
		"rows_affected": affected,
	}
	if err := services.PublishEvent("assets.tags_updated", tagsEvent); err != nil {
		log.Printf("warning: failed to publish assets.tags_updated event: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
