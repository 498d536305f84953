package handlers

import (
	"log"
	"net/http"

	"github.com/asset-hive/asset-service/internal/models"
	"github.com/asset-hive/asset-service/internal/services"
	"github.com/gin-gonic/gin"
)

type indexAsset struct {
	models.UploadRecord
	TagList []string
}

// Index renders the asset list with the upload form and the search box.
// The upload query param carries the post-redirect success/error marker.
func Index(c *gin.Context) {
	records, err := services.GetRecentUploads(50)
	if err != nil {
		log.Printf("Error loading index: %v", err)
		records = nil
	}

	assets := make([]indexAsset, 0, len(records))
	for _, rec := range records {
		assets = append(assets, indexAsset{
			UploadRecord: rec,
			TagList:      models.ParseTags(rec.Tags),
		})
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Assets":       assets,
		"UploadStatus": c.Query("upload"),
	})
}
