package ports

import (
	"context"
	"errors"

	"supply-route-service/internal/domain"
)

// ErrProviderUnavailable indicates the remote routing service could not
// be reached or returned an unusable response. Callers recover by
// falling back to the local great-circle approximation.
var ErrProviderUnavailable = errors.New("distance provider unavailable")

// Travel distance and duration between two geographic points.
// Values are non-negative. Real-world results may be asymmetric; callers
// must not assume distance(a, b) equals distance(b, a).
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving travel distance and duration between points.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two points.
	GetDistance(ctx context.Context, from, to domain.Coordinates) (DistanceResult, error)
}
