package weather

// Raw WeatherAPI.com forecast.json payload, decoded only as far as the
// normalizer needs. Condition icons and codes are deliberately not decoded;
// canonical icons are always re-derived from the description text.

// RawForecast is the top-level forecast.json response.
type RawForecast struct {
	Location *RawLocation `json:"location"`
	Current  *RawCurrent  `json:"current"`
	Forecast struct {
		ForecastDay []RawForecastDay `json:"forecastday"`
	} `json:"forecast"`
	Alerts struct {
		Alert []RawAlert `json:"alert"`
	} `json:"alerts"`
}

type RawLocation struct {
	Name           string  `json:"name"`
	Country        string  `json:"country"`
	TzID           string  `json:"tz_id"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
}

type RawCondition struct {
	Text string `json:"text"`
}

type RawAirQuality struct {
	USEPAIndex int `json:"us-epa-index"`
}

type RawCurrent struct {
	LastUpdatedEpoch int64          `json:"last_updated_epoch"`
	TempC            float64        `json:"temp_c"`
	FeelslikeC       float64        `json:"feelslike_c"`
	PrecipMM         float64        `json:"precip_mm"`
	WindKph          float64        `json:"wind_kph"`
	WindDegree       float64        `json:"wind_degree"`
	GustKph          float64        `json:"gust_kph"`
	Humidity         float64        `json:"humidity"`
	PressureMb       float64        `json:"pressure_mb"`
	DewpointC        float64        `json:"dewpoint_c"`
	UV               float64        `json:"uv"`
	Condition        RawCondition   `json:"condition"`
	AirQuality       *RawAirQuality `json:"air_quality"`
}

type RawForecastDay struct {
	Date      string    `json:"date"` // "2006-01-02" in the location's timezone
	DateEpoch int64     `json:"date_epoch"`
	Day       RawDay    `json:"day"`
	Astro     RawAstro  `json:"astro"`
	Hour      []RawHour `json:"hour"`
}

type RawDay struct {
	MaxtempC      float64      `json:"maxtemp_c"`
	MintempC      float64      `json:"mintemp_c"`
	TotalPrecipMM float64      `json:"totalprecip_mm"`
	MaxwindKph    float64      `json:"maxwind_kph"`
	AvgHumidity   float64      `json:"avghumidity"`
	PressureMb    float64      `json:"pressure_mb"` // rarely present; 0 means absent
	UV            float64      `json:"uv"`
	Condition     RawCondition `json:"condition"`
}

type RawAstro struct {
	// Sunrise and Sunset are local clock strings, e.g. "06:45 AM".
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	MoonPhase string `json:"moon_phase"`
}

type RawHour struct {
	TimeEpoch    int64        `json:"time_epoch"`
	TempC        float64      `json:"temp_c"`
	PrecipMM     float64      `json:"precip_mm"`
	WindKph      float64      `json:"wind_kph"`
	WindDegree   float64      `json:"wind_degree"`
	GustKph      float64      `json:"gust_kph"`
	Humidity     float64      `json:"humidity"`
	PressureMb   float64      `json:"pressure_mb"`
	DewpointC    float64      `json:"dewpoint_c"`
	ChanceOfRain float64      `json:"chance_of_rain"` // percent
	UV           float64      `json:"uv"`
	Condition    RawCondition `json:"condition"`
}

type RawAlert struct {
	Event string `json:"event"`
	Desc  string `json:"desc"`
}
