// Package forecast is the interpretation core: pure, total functions over a
// normalized forecast payload. No I/O, no ambient state; callers feed it
// already-parsed records and unit preferences.
package forecast

// Condition is the resolved form of a WMO weather code.
type Condition struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

const (
	// UnknownLabel is returned for any code outside the known set. Unknown
	// codes must never abort the pipeline.
	UnknownLabel = "Unknown"

	// DefaultIcon pairs with UnknownLabel and with known labels that have no
	// dedicated icon.
	DefaultIcon = "🌤️"
)

// WMO weather interpretation codes as used by Open-Meteo.
var codeLabels = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

var labelIcons = map[string]string{
	"Clear sky":                     "☀️",
	"Mainly clear":                  "🌤️",
	"Partly cloudy":                 "⛅",
	"Overcast":                      "☁️",
	"Foggy":                         "🌫️",
	"Depositing rime fog":           "🌫️",
	"Light drizzle":                 "🌦️",
	"Moderate drizzle":              "🌧️",
	"Dense drizzle":                 "🌧️",
	"Slight rain":                   "🌧️",
	"Moderate rain":                 "🌧️",
	"Heavy rain":                    "⛈️",
	"Slight snow":                   "🌨️",
	"Moderate snow":                 "❄️",
	"Heavy snow":                    "❄️",
	"Snow grains":                   "❄️",
	"Slight rain showers":           "🌦️",
	"Moderate rain showers":         "🌧️",
	"Violent rain showers":          "⛈️",
	"Slight snow showers":           "🌨️",
	"Heavy snow showers":            "❄️",
	"Thunderstorm":                  "⛈️",
	"Thunderstorm with slight hail": "⛈️",
	"Thunderstorm with heavy hail":  "⛈️",
}

// Resolve maps a weather code to its condition label and icon. Total over
// all integers: anything outside the known enumeration resolves to the
// Unknown sentinel with the default icon.
func Resolve(code int) Condition {
	label, ok := codeLabels[code]
	if !ok {
		return Condition{Label: UnknownLabel, Icon: DefaultIcon}
	}
	icon, ok := labelIcons[label]
	if !ok {
		icon = DefaultIcon
	}
	return Condition{Label: label, Icon: icon}
}
