package weather

import (
	"fmt"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/wneessen/go-moonphase"
)

const (
	hoursPerDay     = 24
	daysPerForecast = 7

	// dailyGustFactor estimates a day's maximum gust from its maximum
	// sustained wind; WeatherAPI's day block carries no gust field.
	dailyGustFactor = 1.2

	// defaultPollen is served verbatim; the upstream provider has no
	// pollen data in the forecast endpoint.
	defaultPollen = "Moderate"
)

// NormalizationError reports a raw payload that is missing a required
// block or is structurally malformed. The orchestrator treats it exactly
// like a network failure.
type NormalizationError struct {
	Field string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization failed: missing or malformed %q", e.Field)
}

// NormalizerOptions tune the documented provider-gap fallbacks. These are
// placeholder heuristics, not domain-accurate derivations.
type NormalizerOptions struct {
	// DailyPressureHpa is used when a forecast day carries no pressure.
	DailyPressureHpa float64
	// HumidityMinOffset synthesizes a day's minimum humidity as
	// avgHumidity - offset when the provider only supplies an average.
	HumidityMinOffset float64
}

// DefaultNormalizerOptions returns the fallback values the upstream
// contract has been observed to need.
func DefaultNormalizerOptions() NormalizerOptions {
	return NormalizerOptions{
		DailyPressureHpa:  1013,
		HumidityMinOffset: 5,
	}
}

// Normalizer converts raw WeatherAPI forecast payloads into canonical
// WeatherSnapshots. It is stateless and safe for concurrent use.
//
// Units pass through unchanged: the upstream contract is fixed to metric
// (°C, km/h, mm, hPa). Integrating a non-metric provider requires adding
// conversion here.
type Normalizer struct {
	opts NormalizerOptions
}

func NewNormalizer(opts NormalizerOptions) *Normalizer {
	return &Normalizer{opts: opts}
}

// Normalize builds a WeatherSnapshot from a raw forecast payload. It fails
// with a NormalizationError when the location block, the current-conditions
// block, or every forecast day is absent; anything else is defaulted.
func (n *Normalizer) Normalize(raw *RawForecast) (*WeatherSnapshot, error) {
	if raw == nil || raw.Location == nil {
		return nil, &NormalizationError{Field: "location"}
	}
	if raw.Current == nil {
		return nil, &NormalizationError{Field: "current"}
	}
	days := raw.Forecast.ForecastDay
	if len(days) == 0 {
		return nil, &NormalizationError{Field: "forecast.forecastday"}
	}
	if len(days) > daysPerForecast {
		days = days[:daysPerForecast]
	}

	tz, err := time.LoadLocation(raw.Location.TzID)
	if err != nil {
		tz = time.UTC
	}

	loc := Location{
		City:     raw.Location.Name,
		Country:  raw.Location.Country,
		Timezone: raw.Location.TzID,
		Lat:      raw.Location.Lat,
		Lon:      raw.Location.Lon,
	}

	// Day-0 astro window applies to current conditions and every hourly
	// point; each daily entry uses its own day's window.
	day0Sunrise, day0Sunset := n.astroTimes(days[0], tz, loc)

	snapshot := &WeatherSnapshot{
		Location:    loc,
		Current:     n.normalizeCurrent(raw.Current, day0Sunrise, day0Sunset),
		Hourly:      n.normalizeHourly(days[0], day0Sunrise, day0Sunset),
		Daily:       n.normalizeDaily(days, tz, loc),
		Alerts:      normalizeAlerts(raw.Alerts.Alert),
		Pollen:      defaultPollen,
		LastUpdated: raw.Current.LastUpdatedEpoch,
	}
	return snapshot, nil
}

func (n *Normalizer) normalizeCurrent(cur *RawCurrent, sunrise, sunset int64) CurrentConditions {
	aqi := 0
	if cur.AirQuality != nil {
		aqi = cur.AirQuality.USEPAIndex
	}
	return CurrentConditions{
		Timestamp: cur.LastUpdatedEpoch,
		Temp:      cur.TempC,
		FeelsLike: cur.FeelslikeC,
		PrecipMM:  cur.PrecipMM,
		WindSpeed: cur.WindKph,
		WindDeg:   cur.WindDegree,
		WindGust:  cur.GustKph,
		Sunrise:   sunrise,
		Sunset:    sunset,
		Humidity:  cur.Humidity,
		Pressure:  cur.PressureMb,
		DewPoint:  cur.DewpointC,
		AQI:       aqi,
		UVIndex:   cur.UV,
		Weather:   deriveCondition(cur.Condition.Text, cur.LastUpdatedEpoch, sunrise, sunset),
	}
}

func (n *Normalizer) normalizeHourly(day0 RawForecastDay, sunrise, sunset int64) []HourlyPoint {
	hours := day0.Hour
	if len(hours) > hoursPerDay {
		hours = hours[:hoursPerDay]
	}

	points := make([]HourlyPoint, 0, len(hours))
	for _, h := range hours {
		points = append(points, HourlyPoint{
			Timestamp: h.TimeEpoch,
			Temp:      h.TempC,
			PrecipMM:  h.PrecipMM,
			WindSpeed: h.WindKph,
			WindDeg:   h.WindDegree,
			WindGust:  h.GustKph,
			Humidity:  h.Humidity,
			Pressure:  h.PressureMb,
			DewPoint:  h.DewpointC,
			Pop:       h.ChanceOfRain / 100,
			UVIndex:   h.UV,
			Weather:   deriveCondition(h.Condition.Text, h.TimeEpoch, sunrise, sunset),
		})
	}
	return points
}

func (n *Normalizer) normalizeDaily(days []RawForecastDay, tz *time.Location, loc Location) []DailyPoint {
	points := make([]DailyPoint, 0, len(days))
	for _, d := range days {
		sr, ss := n.astroTimes(d, tz, loc)

		pressure := d.Day.PressureMb
		if pressure == 0 {
			pressure = n.opts.DailyPressureHpa
		}

		// Daily icons are evaluated at local noon so a multi-day outlook
		// shows day variants; date_epoch itself is midnight and would
		// always land outside the daylight window.
		noon := localNoon(d, tz)

		points = append(points, DailyPoint{
			Timestamp:    d.DateEpoch,
			Temp:         TempRange{Min: d.Day.MintempC, Max: d.Day.MaxtempC},
			PrecipMM:     d.Day.TotalPrecipMM,
			WindSpeedMax: d.Day.MaxwindKph,
			WindGustMax:  d.Day.MaxwindKph * dailyGustFactor,
			Sunrise:      sr,
			Sunset:       ss,
			HumidityMin:  d.Day.AvgHumidity - n.opts.HumidityMinOffset,
			HumidityMax:  d.Day.AvgHumidity,
			Pressure:     pressure,
			MoonPhase:    moonPhaseLabel(d),
			Summary:      d.Day.Condition.Text,
			UVIndex:      d.Day.UV,
			Weather:      deriveCondition(d.Day.Condition.Text, noon, sr, ss),
		})
	}
	return points
}

// astroTimes converts a day's astro block into epoch-second sunrise and
// sunset. The provider sends local clock strings ("06:45 AM"); when one
// cannot be parsed the times are computed astronomically from the
// coordinates instead of failing the whole normalization.
func (n *Normalizer) astroTimes(d RawForecastDay, tz *time.Location, loc Location) (int64, int64) {
	date, err := time.ParseInLocation("2006-01-02", d.Date, tz)
	if err != nil {
		date = time.Unix(d.DateEpoch, 0).In(tz)
	}

	sr, srOK := parseAstroClock(d.Astro.Sunrise, date, tz)
	ss, ssOK := parseAstroClock(d.Astro.Sunset, date, tz)
	if srOK && ssOK {
		return sr, ss
	}

	rise, set := sunrise.SunriseSunset(loc.Lat, loc.Lon, date.Year(), date.Month(), date.Day())
	if !srOK {
		sr = rise.Unix()
	}
	if !ssOK {
		ss = set.Unix()
	}
	return sr, ss
}

// parseAstroClock parses a provider clock string on the given date in the
// location's timezone and returns epoch seconds UTC.
func parseAstroClock(clock string, date time.Time, tz *time.Location) (int64, bool) {
	clock = strings.TrimSpace(clock)
	for _, layout := range []string{"03:04 PM", "15:04"} {
		t, err := time.ParseInLocation(layout, clock, tz)
		if err != nil {
			continue
		}
		combined := time.Date(date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0, tz)
		return combined.Unix(), true
	}
	return 0, false
}

func localNoon(d RawForecastDay, tz *time.Location) int64 {
	date, err := time.ParseInLocation("2006-01-02", d.Date, tz)
	if err != nil {
		date = time.Unix(d.DateEpoch, 0).In(tz)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, tz).Unix()
}

func moonPhaseLabel(d RawForecastDay) string {
	if d.Astro.MoonPhase != "" {
		return d.Astro.MoonPhase
	}
	m := moonphase.New(time.Unix(d.DateEpoch, 0).UTC())
	return m.PhaseName()
}

// deriveCondition builds the ConditionInfo for one data point. The
// canonical condition is always classified from the full description;
// Main is display-only and never feeds back into classification.
func deriveCondition(description string, ts, sunrise, sunset int64) ConditionInfo {
	cond := Classify(description)
	return ConditionInfo{
		Main:        firstToken(description),
		Description: description,
		Icon:        ResolveIcon(cond, ts, sunrise, sunset),
		Condition:   cond,
	}
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func normalizeAlerts(raw []RawAlert) []Alert {
	alerts := make([]Alert, 0, len(raw))
	for _, a := range raw {
		alerts = append(alerts, Alert{Title: a.Event, Description: a.Desc})
	}
	return alerts
}
