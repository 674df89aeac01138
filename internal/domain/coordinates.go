package domain

import "math"

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether both components are finite and within range.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Less defines a total order over coordinates, used to canonicalize
// unordered location pairs in distance caches.
func (c Coordinates) Less(other Coordinates) bool {
	if c.Lat != other.Lat {
		return c.Lat < other.Lat
	}
	return c.Lon < other.Lon
}
