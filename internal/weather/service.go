package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// DefaultFetchTimeout bounds one upstream round trip.
const DefaultFetchTimeout = 10 * time.Second

// ErrNoData is the only error the orchestrator surfaces to its consumer.
// It means the upstream fetch failed and no cached snapshot of any age
// exists to fall back to.
var ErrNoData = errors.New("no weather data available: check connectivity or credentials")

// FetchStatus tags how a returned snapshot was obtained.
type FetchStatus string

const (
	// StatusFresh means the cached snapshot was young enough to serve
	// without a network call.
	StatusFresh FetchStatus = "fresh"
	// StatusRefreshed means a new snapshot was fetched and cached.
	StatusRefreshed FetchStatus = "refreshed"
	// StatusStale means the fetch failed and a cached snapshot past its
	// freshness threshold was served instead. Stale data is a successful
	// result, not an error; Reason carries the cause for the consumer.
	StatusStale FetchStatus = "stale"
)

// FetchResult is a complete snapshot plus how it was obtained. The
// consumer decides how to surface staleness.
type FetchResult struct {
	Snapshot *WeatherSnapshot
	Status   FetchStatus
	Reason   string // populated for StatusStale
}

// Stale reports whether the snapshot came from an expired cache entry.
func (r FetchResult) Stale() bool {
	return r.Status == StatusStale
}

// Service orchestrates fetching, normalization, and the single-slot
// cache. All provider-level failures are absorbed here: callers see a
// valid snapshot or ErrNoData, nothing else. Nothing is retried; the next
// caller-initiated fetch is the retry mechanism.
type Service struct {
	provider     Provider
	normalizer   *Normalizer
	cache        Cache
	maxAge       time.Duration
	fetchTimeout time.Duration
}

// NewService creates a Service. Zero maxAge and fetchTimeout fall back to
// DefaultMaxAge and DefaultFetchTimeout.
func NewService(provider Provider, normalizer *Normalizer, cache Cache, maxAge, fetchTimeout time.Duration) *Service {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Service{
		provider:     provider,
		normalizer:   normalizer,
		cache:        cache,
		maxAge:       maxAge,
		fetchTimeout: fetchTimeout,
	}
}

// FetchSnapshot returns the canonical snapshot for the given coordinates.
//
// Decision tree, in order:
//  1. fresh cache entry: return it without any network call
//  2. fetch with a bounded timeout, normalize, cache, return
//  3. on any failure: serve the cached entry of any age as stale, or fail
//     with ErrNoData when the cache is empty
//
// Failed fetches never clear the cache. Overlapping calls may each hit
// the network; last writer wins the cache slot, which is safe because
// every cached snapshot is structurally complete.
func (s *Service) FetchSnapshot(ctx context.Context, lat, lon float64) (FetchResult, error) {
	if s.cache.IsFresh(s.maxAge) {
		if entry, ok := s.cache.Get(); ok {
			return FetchResult{Snapshot: entry.Snapshot, Status: StatusFresh}, nil
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	snapshot, err := s.refresh(fetchCtx, lat, lon)
	if err == nil {
		return FetchResult{Snapshot: snapshot, Status: StatusRefreshed}, nil
	}

	log.Printf("weather: fetch from %s failed for %.4f,%.4f: %v", s.provider.Name(), lat, lon, err)

	if entry, ok := s.cache.Get(); ok {
		return FetchResult{
			Snapshot: entry.Snapshot,
			Status:   StatusStale,
			Reason:   err.Error(),
		}, nil
	}
	return FetchResult{}, fmt.Errorf("%w (%v)", ErrNoData, err)
}

// refresh performs one network round trip and caches the result. A
// normalization failure is treated exactly like a network failure by the
// caller.
func (s *Service) refresh(ctx context.Context, lat, lon float64) (*WeatherSnapshot, error) {
	raw, err := s.provider.FetchForecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}

	s.cache.Put(snapshot)
	return snapshot, nil
}
