package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/asset-hive/asset-service/internal/services"
	"github.com/gin-gonic/gin"
)

// The three retrieval routes share one algorithm and differ only in which
// extensions they accept and how the browser is told to present the bytes.
// Ineligible extensions 404 like missing keys so the image route leaks
// nothing about non-image files.

func Download(c *gin.Context) {
	serveBlob(c, anyFile, "attachment")
}

func ViewFile(c *gin.Context) {
	serveBlob(c, services.IsViewableFile, "inline")
}

func GetImage(c *gin.Context) {
	serveBlob(c, services.IsImageFile, "inline")
}

func anyFile(string) bool { return true }

func serveBlob(c *gin.Context, eligible func(filename string) bool, disposition string) {
	blobKey := c.Param("blob_key")
	if blobKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	// Get file metadata
	rec, exists := services.GetUploadByKey(blobKey)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if !eligible(rec.Filename) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	blobs := services.GetBlobStore()
	if blobs == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage service not available"})
		return
	}

	stream, size, err := blobs.Get(c.Request.Context(), blobKey)
	if err != nil {
		// Row exists but the blob is gone: an accepted inconsistency,
		// served as the same 404.
		if errors.Is(err, services.ErrBlobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		log.Printf("Error fetching blob %s: %v", blobKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file from storage"})
		return
	}
	defer stream.Close()

	contentType := services.ContentTypeForFilename(rec.Filename)
	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf(`%s; filename="%s"`, disposition, rec.Filename),
	}

	c.DataFromReader(http.StatusOK, size, contentType, stream, extraHeaders)
}
