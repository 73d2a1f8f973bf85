package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/nimbusview/weather-backend/internal/weather"
	"github.com/wneessen/go-moonphase"
)

// SimulatedProvider generates a complete WeatherAPI-shaped forecast
// payload without any network access. It backs demo mode (no credentials
// configured) and flows through the exact same normalization path as live
// data, astro strings included.
type SimulatedProvider struct {
	name string
	now  func() time.Time
}

func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{
		name: "simulated",
		now:  time.Now,
	}
}

func (p *SimulatedProvider) Name() string {
	return p.name
}

// dayConditions cycles provider-style description texts across the
// simulated week so the outlook covers a spread of canonical conditions.
var dayConditions = []string{
	"Clear",
	"Partly cloudy",
	"Patchy rain possible",
	"Overcast",
	"Thundery outbreaks possible",
	"Mist",
	"Moderate snow",
}

func (p *SimulatedProvider) FetchForecast(_ context.Context, lat, lon float64) (*weather.RawForecast, error) {
	now := p.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	payload := &weather.RawForecast{
		Location: &weather.RawLocation{
			Name:           "Demo City",
			Country:        "Demoland",
			TzID:           "UTC",
			Lat:            lat,
			Lon:            lon,
			LocaltimeEpoch: now.Unix(),
		},
		Current: &weather.RawCurrent{
			LastUpdatedEpoch: now.Unix(),
			TempC:            22,
			FeelslikeC:       24,
			PrecipMM:         1.5,
			WindKph:          15,
			WindDegree:       320,
			GustKph:          20,
			Humidity:         65,
			PressureMb:       1012,
			DewpointC:        16,
			UV:               5,
			Condition:        weather.RawCondition{Text: "Clear"},
			AirQuality:       &weather.RawAirQuality{USEPAIndex: 2},
		},
	}

	for i := 0; i < 7; i++ {
		date := dayStart.AddDate(0, 0, i)
		rise, set := sunrise.SunriseSunset(lat, lon, date.Year(), date.Month(), date.Day())

		// The payload claims UTC, so astro clock strings are only usable
		// when the event falls on the same UTC date; otherwise they stay
		// empty and the normalizer computes the times itself.
		var riseStr, setStr string
		if rise.UTC().Format("2006-01-02") == date.Format("2006-01-02") {
			riseStr = rise.UTC().Format("03:04 PM")
		}
		if set.UTC().Format("2006-01-02") == date.Format("2006-01-02") {
			setStr = set.UTC().Format("03:04 PM")
		}

		day := weather.RawForecastDay{
			Date:      date.Format("2006-01-02"),
			DateEpoch: date.Unix(),
			Day: weather.RawDay{
				MaxtempC:      25 - float64(i),
				MintempC:      18 - float64(i),
				TotalPrecipMM: float64(i) * 0.8,
				MaxwindKph:    18 + float64(i)*2,
				AvgHumidity:   60 + float64(i),
				UV:            5,
				Condition:     weather.RawCondition{Text: dayConditions[i%len(dayConditions)]},
			},
			Astro: weather.RawAstro{
				Sunrise:   riseStr,
				Sunset:    setStr,
				MoonPhase: moonphase.New(date).PhaseName(),
			},
		}

		for h := 0; h < 24; h++ {
			text := "Clear"
			var precip, chance float64
			if h > 12 {
				text = "Light rain"
				precip = 0.4
				chance = 55
			}
			day.Hour = append(day.Hour, weather.RawHour{
				TimeEpoch:    date.Add(time.Duration(h) * time.Hour).Unix(),
				TempC:        22 - float64(h)*0.5,
				PrecipMM:     precip,
				WindKph:      12 + float64(h%5),
				WindDegree:   320,
				GustKph:      16 + float64(h%5),
				Humidity:     55 + float64(h%20),
				PressureMb:   1010 + float64(h%5),
				DewpointC:    14,
				ChanceOfRain: chance,
				UV:           float64(6 - abs(h-12)/2),
				Condition:    weather.RawCondition{Text: text},
			})
		}

		payload.Forecast.ForecastDay = append(payload.Forecast.ForecastDay, day)
	}

	payload.Alerts.Alert = []weather.RawAlert{
		{
			Event: "Thunderstorm Warning",
			Desc:  fmt.Sprintf("Simulated severe weather drill for %s.", dayStart.Format("Jan 2")),
		},
	}

	return payload, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
