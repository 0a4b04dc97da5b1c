// internal/repository/memory/blob_memory.go
package memory

import (
	"context"
	"sync"

	"parentpoints/internal/repository"
)

// BlobRepository keeps blobs in process memory. Nothing survives a restart.
type BlobRepository struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobRepository creates an empty in-memory BlobRepository.
func NewBlobRepository() *BlobRepository {
	return &BlobRepository{blobs: make(map[string][]byte)}
}

var _ repository.BlobRepository = (*BlobRepository)(nil)

func (r *BlobRepository) GetBlob(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (r *BlobRepository) PutBlob(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[key] = append([]byte(nil), value...)
	return nil
}
