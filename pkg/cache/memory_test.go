package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	err := store.Set(ctx, "k", map[string]string{"hello": "world"}, time.Minute)
	assert.NoError(t, err)

	var got map[string]string
	err = store.Get(ctx, "k", &got)
	assert.NoError(t, err)
	assert.Equal(t, "world", got["hello"])
}

func TestMemoryStore_MissOnAbsentKey(t *testing.T) {
	store := NewMemoryStore(10)

	var got string
	err := store.Get(context.Background(), "nope", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	err := store.Set(ctx, "k", "v", 100*time.Millisecond)
	assert.NoError(t, err)

	var got string
	err = store.Get(ctx, "k", &got)
	assert.NoError(t, err)
	assert.Equal(t, "v", got)

	// 150ms later the entry has expired; the read misses and removes it
	current = current.Add(150 * time.Millisecond)
	err = store.Get(ctx, "k", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_FIFOEviction(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		assert.NoError(t, store.Set(ctx, fmt.Sprintf("k%d", i), i, time.Minute))
	}
	assert.Equal(t, 3, store.Len())

	// Inserting a 4th entry evicts the oldest-inserted one
	assert.NoError(t, store.Set(ctx, "k4", 4, time.Minute))
	assert.Equal(t, 3, store.Len())

	var got int
	assert.ErrorIs(t, store.Get(ctx, "k1", &got), ErrCacheMiss)
	assert.NoError(t, store.Get(ctx, "k2", &got))
	assert.NoError(t, store.Get(ctx, "k4", &got))
}

func TestMemoryStore_OverwriteDoesNotEvict(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "a", 1, time.Minute))
	assert.NoError(t, store.Set(ctx, "b", 2, time.Minute))
	// Overwriting an existing key must not push the map past capacity
	assert.NoError(t, store.Set(ctx, "a", 3, time.Minute))
	assert.Equal(t, 2, store.Len())

	var got int
	assert.NoError(t, store.Get(ctx, "a", &got))
	assert.Equal(t, 3, got)
	assert.NoError(t, store.Get(ctx, "b", &got))
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "a", 1, time.Minute))
	assert.NoError(t, store.Delete(ctx, "a", "missing"))

	var got int
	assert.ErrorIs(t, store.Get(ctx, "a", &got), ErrCacheMiss)
}

func TestMemoryStore_EvictionSkipsStaleOrderSlots(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "a", 1, time.Minute))
	assert.NoError(t, store.Delete(ctx, "a"))
	assert.NoError(t, store.Set(ctx, "b", 2, time.Minute))
	assert.NoError(t, store.Set(ctx, "c", 3, time.Minute))
	// "a" occupies a stale order slot; the next eviction must drop "b"
	assert.NoError(t, store.Set(ctx, "d", 4, time.Minute))

	var got int
	assert.ErrorIs(t, store.Get(ctx, "b", &got), ErrCacheMiss)
	assert.NoError(t, store.Get(ctx, "c", &got))
	assert.NoError(t, store.Get(ctx, "d", &got))
}
