package weather

// Condition represents a normalized high-level weather condition.
// It is the only weather descriptor other components may branch on;
// Main/Description in ConditionInfo are display-only.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionCloudy       Condition = "cloudy"
	ConditionRainy        Condition = "rainy"
	ConditionSnowy        Condition = "snowy"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionFoggy        Condition = "foggy"
	ConditionPartlyCloudy Condition = "partly-cloudy"
)

// IconID identifies a canonical weather icon (OpenWeatherMap-style codes,
// e.g. "01d", "10n"). Always derived from (Condition, daylight), never
// copied from a provider payload.
type IconID string

// Location describes the place a snapshot was normalized for.
type Location struct {
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"` // IANA identifier, e.g. "Europe/Berlin"
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// ConditionInfo bundles the derived condition fields for one data point.
type ConditionInfo struct {
	Main        string    `json:"main"`        // first token of Description, display-only
	Description string    `json:"description"` // provider free text, display-only
	Icon        IconID    `json:"icon"`
	Condition   Condition `json:"condition"`
}

// CurrentConditions is a single point-in-time reading.
// All timestamps are epoch seconds UTC.
type CurrentConditions struct {
	Timestamp int64         `json:"dt"`
	Temp      float64       `json:"temp"`
	FeelsLike float64       `json:"feels_like"`
	PrecipMM  float64       `json:"precip"`
	WindSpeed float64       `json:"wind_speed"` // km/h
	WindDeg   float64       `json:"wind_deg"`
	WindGust  float64       `json:"wind_gust"`
	Sunrise   int64         `json:"sunrise"`
	Sunset    int64         `json:"sunset"`
	Humidity  float64       `json:"humidity"`
	Pressure  float64       `json:"pressure"` // hPa
	DewPoint  float64       `json:"dew_point"`
	AQI       int           `json:"aqi"` // US EPA index, 0 when unavailable
	UVIndex   float64       `json:"uv_index"`
	Weather   ConditionInfo `json:"weather"`
}

// HourlyPoint is one hour of forecast data.
type HourlyPoint struct {
	Timestamp int64         `json:"dt"`
	Temp      float64       `json:"temp"`
	PrecipMM  float64       `json:"precip"`
	WindSpeed float64       `json:"wind_speed"`
	WindDeg   float64       `json:"wind_deg"`
	WindGust  float64       `json:"wind_gust"`
	Humidity  float64       `json:"humidity"`
	Pressure  float64       `json:"pressure"`
	DewPoint  float64       `json:"dew_point"`
	Pop       float64       `json:"pop"` // probability of precipitation, 0..1
	UVIndex   float64       `json:"uv_index"`
	Weather   ConditionInfo `json:"weather"`
}

// TempRange holds a day's minimum and maximum temperature.
type TempRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DailyPoint is one day of forecast data.
type DailyPoint struct {
	Timestamp    int64         `json:"dt"`
	Temp         TempRange     `json:"temp"`
	PrecipMM     float64       `json:"precip"`
	WindSpeedMax float64       `json:"wind_speed_max"`
	WindGustMax  float64       `json:"wind_gust_max"`
	Sunrise      int64         `json:"sunrise"`
	Sunset       int64         `json:"sunset"`
	HumidityMin  float64       `json:"humidity_min"`
	HumidityMax  float64       `json:"humidity_max"`
	Pressure     float64       `json:"pressure"`
	MoonPhase    string        `json:"moon_phase"`
	Summary      string        `json:"summary"`
	UVIndex      float64       `json:"uv_index"`
	Weather      ConditionInfo `json:"weather"`
}

// Alert is a provider-issued weather warning.
type Alert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WeatherSnapshot is the canonical, normalized result of one successful
// provider fetch. It is immutable once built; a new fetch produces a new
// snapshot rather than mutating an existing one.
type WeatherSnapshot struct {
	Location Location          `json:"location"`
	Current  CurrentConditions `json:"current"`
	Hourly   []HourlyPoint     `json:"hourly"` // 24 entries, day 0
	Daily    []DailyPoint      `json:"daily"`  // 7 entries
	Alerts   []Alert           `json:"alerts"`
	Pollen   string            `json:"pollen"` // coarse category, e.g. "Moderate"
	// LastUpdated is the provider's own freshness timestamp (epoch seconds),
	// not the local fetch time.
	LastUpdated int64 `json:"last_updated"`
}
