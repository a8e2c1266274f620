package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burningsea/craftcalc/internal/application/crafting/services"
)

func TestResolutionCache_PutAndGet(t *testing.T) {
	resolver := newResolver(plankCatalog(t))
	tree, err := resolver.Resolve(context.Background(), "Plank", 2)
	require.NoError(t, err)

	cache := services.NewResolutionCache(time.Minute)
	cache.Put("v1", "Plank", 2, tree)

	cached, hit := cache.Get("v1", "Plank", 2)
	require.True(t, hit)
	assert.Same(t, tree, cached)
	assert.Equal(t, 1, cache.Len())
}

func TestResolutionCache_KeyedByVersionRootAndMultiplier(t *testing.T) {
	resolver := newResolver(plankCatalog(t))
	tree, err := resolver.Resolve(context.Background(), "Plank", 2)
	require.NoError(t, err)

	cache := services.NewResolutionCache(time.Minute)
	cache.Put("v1", "Plank", 2, tree)

	_, hit := cache.Get("v2", "Plank", 2)
	assert.False(t, hit, "a reloaded catalog must not serve stale trees")

	_, hit = cache.Get("v1", "Plank", 3)
	assert.False(t, hit, "a different multiplier is a different tree")

	_, hit = cache.Get("v1", "Log", 2)
	assert.False(t, hit)
}

func TestResolutionCache_Flush(t *testing.T) {
	resolver := newResolver(plankCatalog(t))
	tree, err := resolver.Resolve(context.Background(), "Plank", 1)
	require.NoError(t, err)

	cache := services.NewResolutionCache(time.Minute)
	cache.Put("v1", "Plank", 1, tree)
	cache.Flush()

	_, hit := cache.Get("v1", "Plank", 1)
	assert.False(t, hit)
	assert.Zero(t, cache.Len())
}
