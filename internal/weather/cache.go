package weather

import "time"

// DefaultMaxAge is the freshness threshold below which a cached snapshot
// is served without a network call.
const DefaultMaxAge = 20 * time.Minute

// CacheEntry pairs a normalized snapshot with its local fetch time.
type CacheEntry struct {
	Snapshot  *WeatherSnapshot
	FetchedAt time.Time
}

// Cache is the single-slot snapshot cache contract the orchestrator
// depends on. Implementations must replace the slot atomically so readers
// never observe a partially built entry.
type Cache interface {
	Put(snapshot *WeatherSnapshot)
	Get() (CacheEntry, bool)
	IsFresh(maxAge time.Duration) bool
}
