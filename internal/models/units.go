package models

// TemperatureUnit and WindUnit are the session-scoped display preferences.
// The provider always delivers fahrenheit/mph; conversion happens at render
// time from these flags.
type (
	TemperatureUnit string
	WindUnit        string
)

const (
	UnitFahrenheit TemperatureUnit = "F"
	UnitCelsius    TemperatureUnit = "C"

	UnitMph WindUnit = "mph"
	UnitKmh WindUnit = "kmh"
)

// UnitPreference is passed explicitly into rendering; nothing in the
// interpretation core reads ambient state.
type UnitPreference struct {
	Temperature TemperatureUnit `json:"temperature"`
	Wind        WindUnit        `json:"wind"`
}

// DefaultUnits mirrors the provider's native units.
func DefaultUnits() UnitPreference {
	return UnitPreference{Temperature: UnitFahrenheit, Wind: UnitMph}
}

// Normalize maps unrecognized values back to the defaults so a stale or
// hand-edited preference can never break rendering.
func (p UnitPreference) Normalize() UnitPreference {
	if p.Temperature != UnitCelsius {
		p.Temperature = UnitFahrenheit
	}
	if p.Wind != UnitKmh {
		p.Wind = UnitMph
	}
	return p
}
