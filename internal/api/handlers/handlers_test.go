package handlers

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/asset-hive/asset-service/internal/models"
	"github.com/asset-hive/asset-service/internal/services"
	"github.com/gin-gonic/gin"
)

// fakeMetadataStore is an in-memory MetadataStore for handler tests.
type fakeMetadataStore struct {
	mu      sync.Mutex
	records map[string]models.UploadRecord
	nextID  int64

	saveErr   error
	searchErr error
	updateErr error
	recentErr error

	lastSearchLimit int
}

func newFakeMetadataStore() *fakeMetadataStore {
	return &fakeMetadataStore{records: make(map[string]models.UploadRecord)}
}

func (f *fakeMetadataStore) SaveUploadRecord(rec models.UploadRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.nextID++
	rec.ID = f.nextID
	f.records[rec.BlobKey] = rec
	return nil
}

func (f *fakeMetadataStore) GetUploadByKey(blobKey string) (models.UploadRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[blobKey]
	return rec, ok
}

func (f *fakeMetadataStore) SearchUploadsByFilename(query string, limit int) ([]models.UploadRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSearchLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var matches []models.UploadRecord
	for _, rec := range f.records {
		if strings.Contains(strings.ToLower(rec.Filename), strings.ToLower(query)) {
			matches = append(matches, rec)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (f *fakeMetadataStore) UpdateUploadTags(blobKey, tags string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	rec, ok := f.records[blobKey]
	if !ok {
		return 0, nil
	}
	rec.Tags = tags
	f.records[blobKey] = rec
	return 1, nil
}

func (f *fakeMetadataStore) UpdateUploadMetadata(blobKey, metadata string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[blobKey]
	if ok {
		rec.Metadata = metadata
		f.records[blobKey] = rec
	}
	return nil
}

func (f *fakeMetadataStore) GetRecentUploads(limit int) ([]models.UploadRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	var all []models.UploadRecord
	for _, rec := range f.records {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeMetadataStore) GetUploadStats() (models.UploadStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.UploadStats{TotalUploads: int64(len(f.records))}, nil
}

func (f *fakeMetadataStore) seed(rec models.UploadRecord) models.UploadRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rec.ID = f.nextID
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now()
	}
	f.records[rec.BlobKey] = rec
	return rec
}

// fakeBlobStore is an in-memory BlobStore for handler tests.
type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	putErr error
	getErr error

	removed []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) Get(_ context.Context, key string) (io.ReadCloser, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, 0, f.getErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, 0, services.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (f *fakeBlobStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.removed = append(f.removed, key)
	return nil
}

func setupStores(t *testing.T) (*fakeMetadataStore, *fakeBlobStore) {
	t.Helper()
	ms := newFakeMetadataStore()
	bs := newFakeBlobStore()
	services.SetMetadataStore(ms)
	services.SetBlobStore(bs)
	t.Cleanup(func() {
		services.SetMetadataStore(nil)
		services.SetBlobStore(nil)
	})
	return ms, bs
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/u/:blob_key", ViewFile)
	r.GET("/api/files", ListFiles)
	r.GET("/api/search", SearchFiles)
	r.GET("/api/download/:blob_key", Download)
	r.GET("/api/upload/:blob_key", GetImage)
	r.POST("/api/upload", UploadFile)
	r.POST("/api/update-tags", UpdateTags)
	return r
}
