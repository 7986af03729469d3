package weather

import "time"

// Coordinate bounds for a valid geographic position.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Report is the normalized current-conditions record returned to the browser
// regardless of which provider produced the underlying data.
type Report struct {
	Temperature float64         // Temperature in degrees Celsius
	Humidity    float64         // Humidity percentage
	WindSpeed   float64         // WindSpeed in m/s
	Condition   string          // Condition code (e.g. "cloudy", "sunny", "rain")
	Forecast    []ForecastEntry // Forecast holds upcoming condition entries
}

// ForecastEntry is a single forecast point.
type ForecastEntry struct {
	Timestamp   time.Time
	Temperature float64
	Condition   string
}

// InRange reports whether a coordinate pair is within valid geographic bounds.
func InRange(lat, lon float64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude &&
		lon >= MinLongitude && lon <= MaxLongitude
}
