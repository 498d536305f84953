package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/asset-hive/asset-service/internal/models"
	"github.com/asset-hive/asset-service/internal/services"
	"github.com/gin-gonic/gin"
)

// UploadFile accepts a multipart form with a required "file" part and an
// optional "tags" text field, writes the bytes to the blob store under a
// fresh key, inserts the metadata row, and redirects the browser with a
// success or error marker. The original filename never becomes a storage
// key.
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		uploadRedirect(c, "error")
		return
	}

	tags := strings.TrimSpace(c.PostForm("tags"))

	blobs := services.GetBlobStore()
	if blobs == nil {
		log.Println("Upload failed: blob store not available")
		uploadRedirect(c, "error")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Upload failed: cannot open multipart file: %v", err)
		uploadRedirect(c, "error")
		return
	}
	defer file.Close()

	blobKey := models.NewBlobKey()
	contentType := services.ContentTypeForFilename(fileHeader.Filename)

	if err := blobs.Put(c.Request.Context(), blobKey, file, fileHeader.Size, contentType); err != nil {
		log.Printf("Upload failed: blob write for key %s: %v", blobKey, err)
		uploadRedirect(c, "error")
		return
	}

	rec := models.UploadRecord{
		Filename:   fileHeader.Filename,
		BlobKey:    blobKey,
		UploadedAt: time.Now(),
		Tags:       tags,
	}

	if err := services.SaveUploadRecord(rec); err != nil {
		// cleanup object if metadata save fails
		if delErr := blobs.Remove(c.Request.Context(), blobKey); delErr != nil {
			log.Printf("warning: failed to cleanup object after metadata save failure: %v", delErr)
		}
		uploadRedirect(c, "error")
		return
	}

	uploadEvent := map[string]interface{}{
		"action":      "uploaded",
		"blob_key":    blobKey,
		"filename":    rec.Filename,
		"size":        fileHeader.Size,
		"uploaded_at": rec.UploadedAt.UTC().Format(time.RFC3339),
	}
	if err := services.PublishEvent("assets.uploaded", uploadEvent); err != nil {
		log.Printf("warning: failed to publish assets.uploaded event: %v", err)
	}

	uploadRedirect(c, "success")
}

func uploadRedirect(c *gin.Context, status string) {
	c.Redirect(http.StatusSeeOther, "/?upload="+status)
}
