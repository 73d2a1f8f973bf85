package store

import (
	"sync"
	"time"

	"github.com/nimbusview/weather-backend/internal/weather"
)

// SnapshotCache holds the most recent successfully normalized snapshot.
// It is a single slot: a new Put replaces the previous entry atomically,
// and readers always observe either the previous or the new complete
// entry, never a partially built one. There is no persistence across
// restarts.
type SnapshotCache struct {
	mu    sync.RWMutex
	entry *weather.CacheEntry

	now func() time.Time // swapped out in tests
}

func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{now: time.Now}
}

// Put stores a snapshot and stamps it with the current time. The snapshot
// must be fully constructed before Put is called.
func (c *SnapshotCache) Put(snapshot *weather.WeatherSnapshot) {
	entry := &weather.CacheEntry{Snapshot: snapshot, FetchedAt: c.now()}

	c.mu.Lock()
	c.entry = entry
	c.mu.Unlock()
}

// Get returns the cached entry, if any.
func (c *SnapshotCache) Get() (weather.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil {
		return weather.CacheEntry{}, false
	}
	return *c.entry, true
}

// IsFresh reports whether the cached entry is younger than maxAge. An
// empty cache is never fresh.
func (c *SnapshotCache) IsFresh(maxAge time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil {
		return false
	}
	return c.now().Sub(c.entry.FetchedAt) < maxAge
}
