package distance

import (
	"context"
	"fmt"

	"supply-route-service/internal/domain"
	"supply-route-service/internal/ports"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

type mockKey struct {
	from, to domain.Coordinates
}

// MockDistanceProvider serves fixed results for known ordered pairs and
// fails for everything else. Useful for deterministic solver tests.
type MockDistanceProvider struct {
	m map[mockKey]ports.DistanceResult
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[mockKey]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[mockKey{from: p.From, to: p.To}] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, from, to domain.Coordinates) (ports.DistanceResult, error) {
	r, ok := p.m[mockKey{from: from, to: to}]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair (%f,%f) -> (%f,%f)", from.Lat, from.Lon, to.Lat, to.Lon)
	}

	return r, nil
}

// UnavailableProvider always fails with ErrProviderUnavailable.
// It exercises the fallback path in tests.
type UnavailableProvider struct{}

func (UnavailableProvider) GetDistance(ctx context.Context, from, to domain.Coordinates) (ports.DistanceResult, error) {
	return ports.DistanceResult{}, ports.ErrProviderUnavailable
}
