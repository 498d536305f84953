package util

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/asset-hive/asset-service/internal/services"
	clamd "github.com/dutchcoders/go-clamd"
)

// ScanUploadedBlob runs a ClamAV scan over a freshly uploaded object.
// Infected objects are deleted from the blob store; the verdict lands in
// the record's free-text metadata column either way. Failures only log —
// scanning never surfaces into the upload response.
func ScanUploadedBlob(blobKey, clamAvURL string) {
	blobs := services.GetBlobStore()
	if blobs == nil {
		log.Println("Scan skipped: blob store not available")
		return
	}

	stream, _, err := blobs.Get(context.Background(), blobKey)
	if err != nil {
		log.Println("Failed to fetch blob for scanning:", err)
		return
	}
	defer stream.Close()

	// ClamAV scans a local path, so spool the object to a temp file first.
	tempPath := fmt.Sprintf("%s/%s", os.TempDir(), blobKey)
	tempFile, err := os.Create(tempPath)
	if err != nil {
		log.Println("Failed to create temp file for scanning:", err)
		return
	}
	defer os.Remove(tempPath)

	if _, err := io.Copy(tempFile, stream); err != nil {
		tempFile.Close()
		log.Println("Failed to spool blob for scanning:", err)
		return
	}
	tempFile.Close()

	// Connect to ClamAV
	c := clamd.NewClamd(clamAvURL)
	response, err := c.ScanFile(tempPath)
	if err != nil {
		log.Println("Scan failed:", err)
		return
	}

	status := "clean"
	for res := range response {
		if res.Status == clamd.RES_FOUND {
			log.Printf("Virus detected in %s: %s", blobKey, res.Description)
			status = "infected"

			// delete infected blob
			if err := blobs.Remove(context.Background(), blobKey); err != nil {
				log.Println("Failed to delete infected blob:", err)
				return
			}
		}
	}

	verdict := fmt.Sprintf("scan=%s; scanned_at=%s", status, time.Now().UTC().Format(time.RFC3339))
	if err := services.UpdateUploadMetadata(blobKey, verdict); err != nil {
		log.Println("Failed to record scan verdict:", err)
	} else {
		log.Printf("Scan finished for %s: %s", blobKey, status)
	}
}
