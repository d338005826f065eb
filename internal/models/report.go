package models

// PrecipitationType classifies an upcoming precipitation event.
type PrecipitationType string

const (
	PrecipRain         PrecipitationType = "Rain"
	PrecipSnow         PrecipitationType = "Snow"
	PrecipFreezingRain PrecipitationType = "Freezing Rain"
	PrecipThunderstorm PrecipitationType = "Thunderstorm"
	PrecipShowers      PrecipitationType = "Showers"
)

// PresentationHint is the icon/color pairing the UI uses for an alert
// banner. Computed alongside the type tag; the core itself never styles.
type PresentationHint struct {
	Emoji      string `json:"emoji"`
	ColorStart string `json:"color_start"`
	ColorEnd   string `json:"color_end"`
}

// PrecipitationAlert describes the earliest qualifying precipitation slot
// within the near-term window. A nil alert means nothing is coming.
type PrecipitationAlert struct {
	MinutesUntil int               `json:"minutes_until"`
	Probability  float64           `json:"probability"`
	Amount       float64           `json:"amount"`
	Type         PrecipitationType `json:"type"`
	Hint         PresentationHint  `json:"hint"`
}

// HourlyDisplay is one card of the hourly strip: pre-formatted label,
// display-rounded temperature, resolved icon, precipitation probability.
type HourlyDisplay struct {
	TimeLabel   string  `json:"time_label"`
	Temperature string  `json:"temperature"`
	Icon        string  `json:"icon"`
	PrecipProb  float64 `json:"precipitation_probability"`
}

// CurrentDisplay is the rendered current-conditions block.
type CurrentDisplay struct {
	Temperature string `json:"temperature"`
	Conditions  string `json:"conditions"`
	Icon        string `json:"icon"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
}

// WeatherReport is the full per-model render handed to the presentation
// layer: current block, optional alert, and the hourly strip.
type WeatherReport struct {
	Model    ForecastModel       `json:"model"`
	Location Location            `json:"location"`
	Current  CurrentDisplay      `json:"current"`
	Alert    *PrecipitationAlert `json:"alert,omitempty"`
	Hourly   []HourlyDisplay     `json:"hourly"`
	Units    UnitPreference      `json:"units"`
}
