package classify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/scsmith60/recipeclip"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL bounds how stale the discovered-site set may get before a
// lookup triggers a refresh from the store.
const DefaultCacheTTL = 5 * time.Minute

// SiteCache is a TTL-cached view of the discovered-site set. It tolerates
// concurrent readers; refreshes are deduplicated so a burst of lookups after
// expiry hits the store once. Staleness is tolerable: the cache is an
// optimization, not a correctness boundary.
type SiteCache struct {
	store recipeclip.SiteStore
	ttl   time.Duration
	group singleflight.Group

	mu        sync.RWMutex
	hosts     map[string]struct{}
	refreshed time.Time
}

// CacheOption configures a SiteCache.
type CacheOption func(*SiteCache)

// WithTTL overrides the refresh interval. Defaults to DefaultCacheTTL.
func WithTTL(d time.Duration) CacheOption {
	return func(c *SiteCache) {
		c.ttl = d
	}
}

// NewSiteCache creates a cache over the given store.
func NewSiteCache(store recipeclip.SiteStore, opts ...CacheOption) *SiteCache {
	c := &SiteCache{
		store: store,
		ttl:   DefaultCacheTTL,
		hosts: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Contains reports whether host matches a discovered site exactly or by
// substring. A failed refresh leaves the previous set in place.
func (c *SiteCache) Contains(host string) bool {
	c.refreshIfStale()

	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.hosts[host]; ok {
		return true
	}
	for h := range c.hosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// Add inserts a host immediately, ahead of the next refresh. Used after a
// successful discovery so the same process sees the new site at once.
func (c *SiteCache) Add(host string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hosts[host] = struct{}{}
}

// Invalidate forces the next lookup to refresh from the store.
func (c *SiteCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshed = time.Time{}
}

func (c *SiteCache) refreshIfStale() {
	if c.store == nil {
		return
	}
	c.mu.RLock()
	fresh := time.Since(c.refreshed) < c.ttl
	c.mu.RUnlock()
	if fresh {
		return
	}

	// singleflight collapses concurrent refreshes into one store read.
	c.group.Do("refresh", func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sites, err := c.store.DiscoveredSites(ctx)
		if err != nil {
			return nil, err
		}
		hosts := make(map[string]struct{}, len(sites))
		for _, s := range sites {
			hosts[strings.ToLower(s.Hostname)] = struct{}{}
		}

		c.mu.Lock()
		c.hosts = hosts
		c.refreshed = time.Now()
		c.mu.Unlock()
		return nil, nil
	})
}
