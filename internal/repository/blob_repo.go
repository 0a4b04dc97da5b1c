// internal/repository/blob_repo.go
package repository

import "context"

// BlobRepository is the key-value storage substrate. Each key holds one
// opaque value that is replaced wholesale on every write.
type BlobRepository interface {
	// GetBlob returns the value stored under key. ok is false when the key is absent.
	GetBlob(ctx context.Context, key string) (value []byte, ok bool, err error)
	// PutBlob overwrites the value stored under key.
	PutBlob(ctx context.Context, key string, value []byte) error
}
