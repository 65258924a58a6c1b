package flcache_test

import (
	"testing"

	"github.com/AdguardTeam/FilteringLog/internal/flcache"
	"github.com/stretchr/testify/assert"
)

func TestLRU(t *testing.T) {
	cache := flcache.NewLRU[string, int](&flcache.LRUConfig{
		Size: 10,
	})

	cache.Set("key", 1)

	assert.Equal(t, 1, cache.Len())

	v, ok := cache.Get("key")
	assert.Equal(t, 1, v)
	assert.True(t, ok)

	v, ok = cache.Get("non_existing_key")
	assert.Equal(t, 0, v)
	assert.False(t, ok)

	cache.Clear()

	assert.Equal(t, 0, cache.Len())
}

func TestLRU_eviction(t *testing.T) {
	const size = 10

	cache := flcache.NewLRU[int, int](&flcache.LRUConfig{
		Size: size,
	})

	for i := range size + 1 {
		cache.Set(i, i)
	}

	assert.Equal(t, size, cache.Len())

	_, ok := cache.Get(0)
	assert.False(t, ok)
}
