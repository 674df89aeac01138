package distance

import (
	"context"
	"math"

	"supply-route-service/internal/domain"
	"supply-route-service/internal/ports"
)

const (
	earthRadiusMeters = 6371000.0
	// defaultRoadFactor inflates great-circle distance to approximate
	// road distance.
	defaultRoadFactor = 1.3
	// defaultSpeedKmph is the assumed average travel speed used to
	// estimate duration when no routing service is reachable.
	defaultSpeedKmph = 50.0
)

// HaversineProvider estimates travel distance and duration from
// coordinates alone: great-circle distance scaled by a road factor, with
// duration derived from a fixed assumed speed.
//
// It is a pure function of its inputs and never fails, which makes it
// the last line of defense behind the remote provider.
type HaversineProvider struct {
	roadFactor float64
	speedKmph  float64
}

func NewHaversineProvider() *HaversineProvider {
	return &HaversineProvider{roadFactor: defaultRoadFactor, speedKmph: defaultSpeedKmph}
}

// NewHaversineProviderWith overrides the road factor and assumed speed.
// Non-positive values fall back to the defaults.
func NewHaversineProviderWith(roadFactor, speedKmph float64) *HaversineProvider {
	p := NewHaversineProvider()
	if roadFactor > 0 {
		p.roadFactor = roadFactor
	}
	if speedKmph > 0 {
		p.speedKmph = speedKmph
	}
	return p
}

func (p *HaversineProvider) GetDistance(_ context.Context, from, to domain.Coordinates) (ports.DistanceResult, error) {
	return p.Estimate(from, to), nil
}

// Estimate computes the approximation without the error-returning
// interface shape, for callers that rely on it being infallible.
func (p *HaversineProvider) Estimate(from, to domain.Coordinates) ports.DistanceResult {
	meters := haversineMeters(from, to) * p.roadFactor
	seconds := meters / (p.speedKmph * 1000 / 3600)

	return ports.DistanceResult{
		DistanceMeters:  int(math.Round(meters)),
		DurationSeconds: int(math.Round(seconds)),
	}
}

func haversineMeters(from, to domain.Coordinates) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLon := (to.Lon - from.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
