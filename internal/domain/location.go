package domain

// Location is a named point of interest. Its identity is its position in the registry.
type Location struct {
	Name string  `json:"name" yaml:"name" validate:"required"`
	Lat  float64 `json:"lat" yaml:"lat" validate:"latitude"`
	Lon  float64 `json:"lon" yaml:"lon" validate:"longitude"`
}

// defaultLocations are the capitals of fifteen Iranian provinces.
var defaultLocations = []Location{
	{Name: "Tehran", Lat: 35.6892, Lon: 51.3890},
	{Name: "Isfahan", Lat: 32.6539, Lon: 51.6660},
	{Name: "Mashhad", Lat: 36.2970, Lon: 59.6060},
	{Name: "Shiraz", Lat: 29.5918, Lon: 52.5837},
	{Name: "Tabriz", Lat: 38.0667, Lon: 46.2993},
	{Name: "Rasht", Lat: 37.2808, Lon: 49.5831},
	{Name: "Ahvaz", Lat: 31.3183, Lon: 48.6692},
	{Name: "Kermanshah", Lat: 34.3142, Lon: 47.0650},
	{Name: "Kerman", Lat: 30.2839, Lon: 57.0834},
	{Name: "Yazd", Lat: 31.8974, Lon: 54.3678},
	{Name: "Qom", Lat: 34.6401, Lon: 50.8764},
	{Name: "Zahedan", Lat: 29.4978, Lon: 60.8629},
	{Name: "Sanandaj", Lat: 35.3091, Lon: 47.0029},
	{Name: "Bandar Abbas", Lat: 27.1832, Lon: 56.2666},
	{Name: "Zanjan", Lat: 36.6736, Lon: 48.4787},
}

// DefaultLocations returns a copy of the built-in registry.
func DefaultLocations() []Location {
	out := make([]Location, len(defaultLocations))
	copy(out, defaultLocations)
	return out
}
