package forecast

const mphToKmh = 1.60934

// ToCelsius converts a fahrenheit temperature. Full precision is kept;
// display rounding belongs to the render layer.
func ToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - 32) * 5 / 9
}

// ToKmh converts a wind speed from miles per hour to kilometers per hour.
func ToKmh(mph float64) float64 {
	return mph * mphToKmh
}
