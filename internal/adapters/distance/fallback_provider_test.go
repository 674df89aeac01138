package distance

import (
	"context"
	"testing"

	"supply-route-service/internal/domain"
	"supply-route-service/internal/ports"
)

// countingProvider wraps a fixed result and records how many lookups
// reached it.
type countingProvider struct {
	result ports.DistanceResult
	calls  int
}

func (p *countingProvider) GetDistance(ctx context.Context, from, to domain.Coordinates) (ports.DistanceResult, error) {
	p.calls++
	return p.result, nil
}

func TestFallbackProviderUsesRemote(t *testing.T) {
	remote := &countingProvider{result: ports.DistanceResult{DistanceMeters: 4200, DurationSeconds: 360}}
	f := NewFallbackProvider(remote, nil, nil, nil)

	a := domain.Coordinates{Lat: 10, Lon: 20}
	b := domain.Coordinates{Lat: 11, Lon: 21}

	r, err := f.GetDistance(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DistanceMeters != 4200 || r.DurationSeconds != 360 {
		t.Fatalf("unexpected result: %+v", r)
	}
	if remote.calls != 1 {
		t.Fatalf("remote calls = %d, want 1", remote.calls)
	}
}

func TestFallbackProviderSolveCacheIsUnordered(t *testing.T) {
	remote := &countingProvider{result: ports.DistanceResult{DistanceMeters: 1000, DurationSeconds: 60}}
	f := NewFallbackProvider(remote, nil, nil, nil)

	a := domain.Coordinates{Lat: 10, Lon: 20}
	b := domain.Coordinates{Lat: 11, Lon: 21}

	if _, err := f.GetDistance(context.Background(), a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// reverse direction must hit the solve-scoped cache
	if _, err := f.GetDistance(context.Background(), b, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.GetDistance(context.Background(), a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if remote.calls != 1 {
		t.Fatalf("remote calls = %d, want 1", remote.calls)
	}
}

func TestFallbackProviderAbsorbsRemoteFailure(t *testing.T) {
	f := NewFallbackProvider(UnavailableProvider{}, nil, nil, nil)

	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 1}

	r, err := f.GetDistance(context.Background(), a, b)
	if err != nil {
		t.Fatalf("expected fallback to absorb the failure, got %v", err)
	}

	want := NewHaversineProvider().Estimate(a, b)
	if r != want {
		t.Fatalf("result = %+v, want great-circle estimate %+v", r, want)
	}
}

func TestFallbackProviderOffline(t *testing.T) {
	f := NewFallbackProvider(nil, nil, nil, nil)

	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 1, Lon: 0}

	r, err := f.GetDistance(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := NewHaversineProvider().Estimate(a, b)
	if r != want {
		t.Fatalf("result = %+v, want %+v", r, want)
	}
}

func TestFallbackProviderSamePoint(t *testing.T) {
	remote := &countingProvider{result: ports.DistanceResult{DistanceMeters: 999, DurationSeconds: 99}}
	f := NewFallbackProvider(remote, nil, nil, nil)

	a := domain.Coordinates{Lat: 5, Lon: 5}

	r, err := f.GetDistance(context.Background(), a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DistanceMeters != 0 || r.DurationSeconds != 0 {
		t.Fatalf("expected zero result, got %+v", r)
	}
	if remote.calls != 0 {
		t.Fatalf("remote calls = %d, want 0", remote.calls)
	}
}

func TestFallbackProviderPrefetch(t *testing.T) {
	remote := &countingProvider{result: ports.DistanceResult{DistanceMeters: 500, DurationSeconds: 30}}
	f := NewFallbackProvider(remote, nil, nil, nil)

	origin := domain.Coordinates{Lat: 0, Lon: 0}
	dests := []domain.Coordinates{
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: 2},
		origin, // skipped
	}

	f.Prefetch(context.Background(), origin, dests)

	if remote.calls != 2 {
		t.Fatalf("remote calls after prefetch = %d, want 2", remote.calls)
	}

	// warmed pairs resolve without touching the remote again
	if _, err := f.GetDistance(context.Background(), origin, dests[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.GetDistance(context.Background(), dests[1], origin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remote.calls != 2 {
		t.Fatalf("remote calls after lookups = %d, want 2", remote.calls)
	}
}
