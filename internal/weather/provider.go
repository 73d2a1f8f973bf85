package weather

import "context"

// Provider abstracts the upstream forecast source (WeatherAPI.com in
// production, a synthetic generator in demo mode). It returns the raw
// payload untouched; normalization is the service's job.
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lon float64) (*RawForecast, error)
}
