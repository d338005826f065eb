package models

// Location is one resolved place, either from geocoding search or from the
// IP lookup. Display strings may be empty; coordinates are always set.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
}
