package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBlobRepository()

	_, ok, err := repo.GetBlob(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`[1]`)
	require.NoError(t, repo.PutBlob(ctx, "k", value))
	value[0] = 'x' // caller's buffer must not alias the stored copy

	got, ok, err := repo.GetBlob(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1]`, string(got))
}

func TestBlobRepositoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewBlobRepository()

	assert.ErrorIs(t, repo.PutBlob(ctx, "k", nil), context.Canceled)
	_, _, err := repo.GetBlob(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
