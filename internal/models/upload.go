package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadRecord is one metadata row per stored asset. The blob_key is the
// only handle into the object store; the original filename is kept for
// display and content-type inference and never used as a storage key.
type UploadRecord struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	BlobKey    string    `json:"blob_key"`
	UploadedAt time.Time `json:"uploaded_at"`
	Metadata   string    `json:"metadata"`
	Tags       string    `json:"tags"`
}

// UploadStats summarizes the uploads table for the index page.
type UploadStats struct {
	TotalUploads int64     `json:"total_uploads"`
	LatestUpload time.Time `json:"latest_upload"`
}

var blobKeyPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// NewBlobKey generates a fresh storage key in the canonical UUIDv4 text
// layout.
func NewBlobKey() string {
	return uuid.New().String()
}

// ValidBlobKey reports whether key has the hyphenated hex shape produced by
// NewBlobKey, including the fixed version and variant nibbles.
func ValidBlobKey(key string) bool {
	return blobKeyPattern.MatchString(key)
}

// ParseTags turns the flat comma-separated tags column into its canonical
// in-memory form: split on comma, trim, drop empty tokens. Duplicates are
// kept as stored.
func ParseTags(tags string) []string {
	parts := strings.Split(tags, ",")
	parsed := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			parsed = append(parsed, t)
		}
	}
	return parsed
}

// FormatTags is the display-time inverse of ParseTags.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
