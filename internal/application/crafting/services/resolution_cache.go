package services

import (
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// ResolutionCache memoizes resolved trees across calls. It is caller-owned
// state, keyed by catalog version + root + multiplier, so a reloaded catalog
// (new version) never serves stale trees. The resolver itself stays pure and
// never sees the cache.
type ResolutionCache struct {
	cache *gocache.Cache
}

// DefaultResolutionTTL is how long a cached tree stays valid. Trees are
// deterministic for a fixed catalog version, so the TTL only bounds memory.
const DefaultResolutionTTL = 5 * time.Minute

// NewResolutionCache creates a cache with the given entry TTL; ttl <= 0 uses
// DefaultResolutionTTL.
func NewResolutionCache(ttl time.Duration) *ResolutionCache {
	if ttl <= 0 {
		ttl = DefaultResolutionTTL
	}
	return &ResolutionCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached tree for the key triple, if present.
func (c *ResolutionCache) Get(version, rootID string, multiplier int) (*crafting.DependencyNode, bool) {
	v, ok := c.cache.Get(cacheKey(version, rootID, multiplier))
	if !ok {
		return nil, false
	}
	return v.(*crafting.DependencyNode), true
}

// Put stores a resolved tree under the key triple.
func (c *ResolutionCache) Put(version, rootID string, multiplier int, tree *crafting.DependencyNode) {
	c.cache.Set(cacheKey(version, rootID, multiplier), tree, gocache.DefaultExpiration)
}

// Flush drops every cached tree.
func (c *ResolutionCache) Flush() {
	c.cache.Flush()
}

// Len returns the number of live cache entries.
func (c *ResolutionCache) Len() int {
	return c.cache.ItemCount()
}

func cacheKey(version, rootID string, multiplier int) string {
	return fmt.Sprintf("%s|%s|%s", version, rootID, strconv.Itoa(multiplier))
}
