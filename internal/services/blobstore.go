package services

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned by Get when no object exists under the key.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is the object-store capability used by the handlers: put, get,
// remove. No listing happens in the request path; Remove exists only for
// the compensating delete on upload failure and the infected-file path.
type BlobStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Remove(ctx context.Context, key string) error
}

var blobStore BlobStore

// SetBlobStore swaps the active blob backend (tests use a fake).
func SetBlobStore(s BlobStore) {
	blobStore = s
}

func GetBlobStore() BlobStore {
	return blobStore
}
