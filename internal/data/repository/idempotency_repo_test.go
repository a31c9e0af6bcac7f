package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStoreAndGet(t *testing.T) {
	repo := NewIdempotencyRepository()

	_, ok := repo.Get("k1")
	assert.False(t, ok)

	repo.Store("k1", "result-1", time.Now().Add(time.Hour))
	result, ok := repo.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "result-1", result)
}

func TestIdempotencyExpiredEntryEvictedOnGet(t *testing.T) {
	repo := NewIdempotencyRepository()

	repo.Store("k1", "stale", time.Now().Add(-time.Minute))
	_, ok := repo.Get("k1")
	assert.False(t, ok)

	// Already evicted, so the sweep has nothing left to do.
	assert.Equal(t, 0, repo.RemoveExpired())
}

func TestIdempotencyRemoveExpired(t *testing.T) {
	repo := NewIdempotencyRepository()

	repo.Store("fresh", "a", time.Now().Add(time.Hour))
	repo.Store("stale1", "b", time.Now().Add(-time.Minute))
	repo.Store("stale2", "c", time.Now().Add(-time.Hour))

	assert.Equal(t, 2, repo.RemoveExpired())

	_, ok := repo.Get("fresh")
	assert.True(t, ok)
}

func TestIdempotencyStoreOverwrites(t *testing.T) {
	repo := NewIdempotencyRepository()

	repo.Store("k1", "first", time.Now().Add(time.Hour))
	repo.Store("k1", "second", time.Now().Add(time.Hour))

	result, ok := repo.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "second", result)
}
