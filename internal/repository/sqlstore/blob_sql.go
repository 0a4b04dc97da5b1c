// internal/repository/sqlstore/blob_sql.go
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parentpoints/internal/repository"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// BlobRepository implements repository.BlobRepository on a kv_store table.
// Queries are written with '?' and rebound, so the same code serves
// PostgreSQL and SQLite.
type BlobRepository struct {
	q   repository.DBExecutor
	now func() time.Time
}

// NewBlobRepository creates a BlobRepository over q (usually *sqlx.DB).
func NewBlobRepository(q repository.DBExecutor) *BlobRepository {
	return &BlobRepository{q: q, now: time.Now}
}

var _ repository.BlobRepository = (*BlobRepository)(nil)

// EnsureSchema creates the kv_store table if it does not exist.
func (r *BlobRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

// GetBlob retrieves the value stored under key.
func (r *BlobRepository) GetBlob(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	query := r.q.Rebind(`SELECT value FROM kv_store WHERE key = ?`)
	err := r.q.GetContext(ctx, &value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get blob %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// PutBlob upserts the value stored under key.
func (r *BlobRepository) PutBlob(ctx context.Context, key string, value []byte) error {
	query := r.q.Rebind(`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	result, err := r.q.ExecContext(ctx, query, key, string(value), r.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to put blob %q: %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after putting blob %q: %w", key, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when putting blob %q", key)
	}
	return nil
}
