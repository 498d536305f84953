package services

import (
	"errors"

	"github.com/asset-hive/asset-service/internal/models"
)

// MetadataStore defines the contract for the uploads metadata backend.
type MetadataStore interface {
	SaveUploadRecord(rec models.UploadRecord) error
	GetUploadByKey(blobKey string) (models.UploadRecord, bool)
	SearchUploadsByFilename(query string, limit int) ([]models.UploadRecord, error)
	UpdateUploadTags(blobKey, tags string) (int64, error)
	UpdateUploadMetadata(blobKey, metadata string) error
	GetRecentUploads(limit int) ([]models.UploadRecord, error)
	GetUploadStats() (models.UploadStats, error)
}

// Search results are capped regardless of how many rows match.
const maxSearchResults = 100

var metadataStore MetadataStore

var errMetadataNotInitialized = errors.New("metadata store not initialized")

// SetMetadataStore swaps the active metadata backend (tests use a fake).
func SetMetadataStore(s MetadataStore) {
	metadataStore = s
}

func GetMetadataStore() MetadataStore {
	return metadataStore
}

func SaveUploadRecord(rec models.UploadRecord) error {
	if metadataStore == nil {
		return errMetadataNotInitialized
	}
	return metadataStore.SaveUploadRecord(rec)
}

func GetUploadByKey(blobKey string) (models.UploadRecord, bool) {
	if metadataStore == nil {
		return models.UploadRecord{}, false
	}
	return metadataStore.GetUploadByKey(blobKey)
}

func SearchUploadsByFilename(query string) ([]models.UploadRecord, error) {
	if metadataStore == nil {
		return nil, errMetadataNotInitialized
	}
	return metadataStore.SearchUploadsByFilename(query, maxSearchResults)
}

func UpdateUploadTags(blobKey, tags string) (int64, error) {
	if metadataStore == nil {
		return 0, errMetadataNotInitialized
	}
	return metadataStore.UpdateUploadTags(blobKey, tags)
}

func UpdateUploadMetadata(blobKey, metadata string) error {
	if metadataStore == nil {
		return errMetadataNotInitialized
	}
	return metadataStore.UpdateUploadMetadata(blobKey, metadata)
}

func GetRecentUploads(limit int) ([]models.UploadRecord, error) {
	if metadataStore == nil {
		return nil, errMetadataNotInitialized
	}
	return metadataStore.GetRecentUploads(limit)
}

func GetUploadStats() (models.UploadStats, error) {
	if metadataStore == nil {
		return models.UploadStats{}, errMetadataNotInitialized
	}
	return metadataStore.GetUploadStats()
}
