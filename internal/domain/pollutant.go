package domain

import "strings"

// Pollutant identifies one air-pollution component reported by the provider.
type Pollutant string

const (
	PM25 Pollutant = "pm2_5"
	PM10 Pollutant = "pm10"
	CO   Pollutant = "co"
	O3   Pollutant = "o3"
	NO2  Pollutant = "no2"
	SO2  Pollutant = "so2"
)

// NumPollutants is the number of tracked components and the column count of every row.
const NumPollutants = 6

// Unit is the concentration unit for every tracked component.
const Unit = "µg/m3"

// Pollutants lists the tracked components in column order.
var Pollutants = [NumPollutants]Pollutant{PM25, PM10, CO, O3, NO2, SO2}

// Label returns the display label, e.g. "PM2_5".
func (p Pollutant) Label() string {
	return strings.ToUpper(string(p))
}

// Index returns the column of p, or -1 if p is not tracked.
func (p Pollutant) Index() int {
	for i, q := range Pollutants {
		if q == p {
			return i
		}
	}
	return -1
}

// Readings holds one concentration per pollutant, in Pollutants order.
type Readings [NumPollutants]float64

// Get returns the concentration for p, or 0 if p is not tracked.
func (r Readings) Get(p Pollutant) float64 {
	i := p.Index()
	if i < 0 {
		return 0
	}
	return r[i]
}

// Map returns the readings keyed by pollutant identifier.
func (r Readings) Map() map[string]float64 {
	m := make(map[string]float64, NumPollutants)
	for i, p := range Pollutants {
		m[string(p)] = r[i]
	}
	return m
}
