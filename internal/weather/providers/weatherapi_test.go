package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const forecastFixture = `{
	"location": {
		"name": "Munich", "country": "Germany", "tz_id": "Europe/Berlin",
		"lat": 48.14, "lon": 11.58, "localtime_epoch": 1717243200
	},
	"current": {
		"last_updated_epoch": 1717243200, "temp_c": 21.5, "feelslike_c": 23.0,
		"precip_mm": 0.2, "wind_kph": 14.0, "wind_degree": 250, "gust_kph": 19.4,
		"humidity": 70, "pressure_mb": 1011, "dewpoint_c": 15.2, "uv": 4,
		"condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/64x64/day/116.png", "code": 1003},
		"air_quality": {"us-epa-index": 2}
	},
	"forecast": {"forecastday": [{
		"date": "2024-06-01", "date_epoch": 1717200000,
		"day": {
			"maxtemp_c": 24.0, "mintemp_c": 15.0, "totalprecip_mm": 3.5,
			"maxwind_kph": 20.0, "avghumidity": 60, "uv": 5,
			"condition": {"text": "Patchy rain possible"}
		},
		"astro": {"sunrise": "05:16 AM", "sunset": "09:09 PM", "moon_phase": "Waning Crescent"},
		"hour": [{
			"time_epoch": 1717200000, "temp_c": 16.0, "precip_mm": 0.0,
			"wind_kph": 8.0, "wind_degree": 240, "gust_kph": 11.0, "humidity": 75,
			"pressure_mb": 1012, "dewpoint_c": 13.0, "chance_of_rain": 20, "uv": 1,
			"condition": {"text": "Clear"}
		}]
	}]},
	"alerts": {"alert": [{"event": "Wind Advisory", "desc": "Gusts up to 70 km/h expected."}]}
}`

// TestWeatherAPIFetchForecast verifies request shape and raw payload
// decoding against a recorded forecast.json response.
func TestWeatherAPIFetchForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "test-key" {
			t.Errorf("key = %q, want %q", q.Get("key"), "test-key")
		}
		if q.Get("days") != "7" || q.Get("aqi") != "yes" || q.Get("alerts") != "yes" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastFixture))
	}))
	defer server.Close()

	p := NewWeatherAPIProvider(server.Client(), "test-key")
	p.baseURL = server.URL

	raw, err := p.FetchForecast(context.Background(), 48.14, 11.58)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw.Location == nil || raw.Location.Name != "Munich" {
		t.Fatalf("location = %+v", raw.Location)
	}
	if raw.Current == nil || raw.Current.TempC != 21.5 {
		t.Fatalf("current = %+v", raw.Current)
	}
	if raw.Current.AirQuality == nil || raw.Current.AirQuality.USEPAIndex != 2 {
		t.Errorf("air quality = %+v", raw.Current.AirQuality)
	}
	if len(raw.Forecast.ForecastDay) != 1 {
		t.Fatalf("forecastday has %d entries, want 1", len(raw.Forecast.ForecastDay))
	}

	day := raw.Forecast.ForecastDay[0]
	if day.Astro.Sunrise != "05:16 AM" || day.Astro.MoonPhase != "Waning Crescent" {
		t.Errorf("astro = %+v", day.Astro)
	}
	if len(day.Hour) != 1 || day.Hour[0].ChanceOfRain != 20 {
		t.Errorf("hour = %+v", day.Hour)
	}
	if len(raw.Alerts.Alert) != 1 || raw.Alerts.Alert[0].Event != "Wind Advisory" {
		t.Errorf("alerts = %+v", raw.Alerts.Alert)
	}
}

// TestWeatherAPIMissingKey verifies the provider refuses to call out
// without a credential.
func TestWeatherAPIMissingKey(t *testing.T) {
	p := NewWeatherAPIProvider(http.DefaultClient, "")
	if _, err := p.FetchForecast(context.Background(), 48.14, 11.58); err == nil {
		t.Fatal("expected error with empty api key")
	}
}

// TestWeatherAPIServerError verifies upstream 5xx responses surface as
// errors rather than empty payloads.
func TestWeatherAPIServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewWeatherAPIProvider(server.Client(), "test-key")
	p.baseURL = server.URL

	if _, err := p.FetchForecast(context.Background(), 48.14, 11.58); err == nil {
		t.Fatal("expected error on 502 response")
	}
}
