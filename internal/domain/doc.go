// Package domain models current air-pollution readings for a set of named
// locations, the table they are collected into, and the per-pollutant
// statistics derived from that table.
//
// # Data Source
//
// Readings come from the OpenWeatherMap Air Pollution API
// (https://openweathermap.org/api/air-pollution). One request per coordinate
// returns a "list" of samples; the first entry's "components" object holds the
// concentrations used here.
//
// # Pollutants
//
// Six components are tracked, in this fixed column order:
//
//	pm2_5  fine particulate matter (< 2.5 µm)
//	pm10   coarse particulate matter (< 10 µm)
//	co     carbon monoxide
//	o3     ozone
//	no2    nitrogen dioxide
//	so2    sulphur dioxide
//
// All concentrations are reported by the provider in µg/m3. The provider also
// returns no and nh3, which are ignored.
//
// # Failed Fetches
//
// A location whose fetch failed still occupies a row so the table keeps its
// locations × pollutants shape. The row holds zeros and is marked Failed.
// Whether such rows feed into the mean and standard deviation is decided by a
// [FailurePolicy]: [ExcludeFailed] drops them, [ZeroFill] averages the zeros
// in as if they were real readings.
package domain
