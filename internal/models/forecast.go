package models

import "time"

// ForecastModel identifies the numerical weather model a payload was
// produced by. BestMatch lets the provider pick per region.
type ForecastModel string

const (
	ModelBestMatch ForecastModel = "best_match"
	ModelECMWF     ForecastModel = "ecmwf_ifs025"
	ModelGFS       ForecastModel = "gfs_global"
	ModelICON      ForecastModel = "icon_global"
)

// KnownModels lists every model the compare endpoint fans out to.
var KnownModels = []ForecastModel{ModelBestMatch, ModelECMWF, ModelGFS, ModelICON}

// Valid reports whether m names a model we can request upstream.
func (m ForecastModel) Valid() bool {
	for _, known := range KnownModels {
		if m == known {
			return true
		}
	}
	return false
}

// HourlyRecord is one normalized slot of the hourly series. Fields that the
// provider omitted for this slot are zero; absence is data, not an error.
type HourlyRecord struct {
	Timestamp                time.Time `json:"timestamp"`
	Temperature              float64   `json:"temperature"`
	WeatherCode              int       `json:"weather_code"`
	PrecipitationProbability float64   `json:"precipitation_probability"`
	PrecipitationAmount      float64   `json:"precipitation_amount"`
	RainAmount               float64   `json:"rain_amount"`
	ShowerAmount             float64   `json:"shower_amount"`
	SnowAmount               float64   `json:"snow_amount"`
}

// CurrentSnapshot is the current-conditions block of a forecast payload.
type CurrentSnapshot struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	WeatherCode int     `json:"weather_code"`
}

// ForecastPayload bundles one provider response: the current snapshot plus
// the ordered hourly series, tagged with the model that produced it.
// Built fresh per request and never mutated afterwards.
type ForecastPayload struct {
	Model   ForecastModel   `json:"model"`
	Current CurrentSnapshot `json:"current"`
	Hourly  []HourlyRecord  `json:"hourly"`
}
