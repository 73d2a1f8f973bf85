package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nimbusview/weather-backend/internal/store"
	"github.com/nimbusview/weather-backend/internal/weather"
)

// stubProvider returns a canned payload or error and counts calls.
type stubProvider struct {
	calls int
	raw   *weather.RawForecast
	err   error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) FetchForecast(_ context.Context, _, _ float64) (*weather.RawForecast, error) {
	s.calls++
	return s.raw, s.err
}

// minimalForecast is the smallest payload the normalizer accepts.
func minimalForecast() *weather.RawForecast {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := &weather.RawForecast{
		Location: &weather.RawLocation{
			Name: "Testville", Country: "Testland", TzID: "UTC",
			Lat: 48.14, Lon: 11.58,
		},
		Current: &weather.RawCurrent{
			LastUpdatedEpoch: base.Add(12 * time.Hour).Unix(),
			TempC:            20,
			Condition:        weather.RawCondition{Text: "Clear"},
		},
	}
	raw.Forecast.ForecastDay = []weather.RawForecastDay{{
		Date:      "2024-06-01",
		DateEpoch: base.Unix(),
		Astro:     weather.RawAstro{Sunrise: "06:00 AM", Sunset: "07:00 PM"},
	}}
	return raw
}

func newService(p weather.Provider, maxAge time.Duration) (*weather.Service, *store.SnapshotCache) {
	cache := store.NewSnapshotCache()
	svc := weather.NewService(p, weather.NewNormalizer(weather.DefaultNormalizerOptions()), cache, maxAge, time.Second)
	return svc, cache
}

// TestFetchSnapshotRefreshes verifies a cold fetch hits the provider,
// caches the result, and tags it refreshed.
func TestFetchSnapshotRefreshes(t *testing.T) {
	provider := &stubProvider{raw: minimalForecast()}
	svc, cache := newService(provider, time.Minute)

	result, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != weather.StatusRefreshed {
		t.Errorf("status = %q, want %q", result.Status, weather.StatusRefreshed)
	}
	if result.Snapshot == nil || result.Snapshot.Location.City != "Testville" {
		t.Errorf("unexpected snapshot: %+v", result.Snapshot)
	}
	if _, ok := cache.Get(); !ok {
		t.Error("successful fetch did not populate the cache")
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}

// TestFetchSnapshotServesFreshCache verifies a fresh cache entry is
// served without any network call.
func TestFetchSnapshotServesFreshCache(t *testing.T) {
	provider := &stubProvider{raw: minimalForecast()}
	svc, _ := newService(provider, time.Minute)

	if _, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}

	result, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != weather.StatusFresh {
		t.Errorf("status = %q, want %q", result.Status, weather.StatusFresh)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1 (fresh cache must skip the network)", provider.calls)
	}
}

// TestFetchSnapshotFallsBackToStaleCache verifies the availability-over-
// freshness tradeoff: a failing provider with any cached entry yields the
// stale snapshot and a reason, never an error.
func TestFetchSnapshotFallsBackToStaleCache(t *testing.T) {
	provider := &stubProvider{raw: minimalForecast()}
	// A nanosecond max age makes every cached entry immediately stale.
	svc, _ := newService(provider, time.Nanosecond)

	if _, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}

	provider.raw = nil
	provider.err = errors.New("connection refused")

	result, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58)
	if err != nil {
		t.Fatalf("stale fallback must not error, got: %v", err)
	}
	if result.Status != weather.StatusStale || !result.Stale() {
		t.Errorf("status = %q, want %q", result.Status, weather.StatusStale)
	}
	if result.Reason == "" {
		t.Error("stale result carries no reason")
	}
	if result.Snapshot == nil {
		t.Fatal("stale result carries no snapshot")
	}
}

// TestFetchSnapshotColdStartFailure verifies the only propagating error:
// no network data and no cache.
func TestFetchSnapshotColdStartFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	svc, _ := newService(provider, time.Minute)

	_, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58)
	if err == nil {
		t.Fatal("expected error on cold start with failing provider")
	}
	if !errors.Is(err, weather.ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}

// TestFetchSnapshotNormalizationFailure verifies a malformed payload is
// treated exactly like a network failure.
func TestFetchSnapshotNormalizationFailure(t *testing.T) {
	provider := &stubProvider{raw: minimalForecast()}
	svc, _ := newService(provider, time.Nanosecond)

	if _, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}

	broken := minimalForecast()
	broken.Current = nil
	provider.raw = broken

	result, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58)
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if result.Status != weather.StatusStale {
		t.Errorf("status = %q, want %q", result.Status, weather.StatusStale)
	}

	// Cold start with only a malformed payload propagates ErrNoData.
	svcCold, _ := newService(&stubProvider{raw: broken}, time.Minute)
	if _, err := svcCold.FetchSnapshot(context.Background(), 48.14, 11.58); !errors.Is(err, weather.ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}

// TestFetchSnapshotFailureKeepsCache verifies failed fetches never clear
// the slot.
func TestFetchSnapshotFailureKeepsCache(t *testing.T) {
	provider := &stubProvider{raw: minimalForecast()}
	svc, cache := newService(provider, time.Nanosecond)

	if _, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}
	provider.err = errors.New("timeout")
	provider.raw = nil

	for i := 0; i < 3; i++ {
		if _, err := svc.FetchSnapshot(context.Background(), 48.14, 11.58); err != nil {
			t.Fatalf("fetch %d errored despite cached entry: %v", i, err)
		}
	}
	if _, ok := cache.Get(); !ok {
		t.Fatal("failed fetches cleared the cache")
	}
}
