package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"supply-route-service/internal/domain"
	"supply-route-service/internal/platform/obs"
	"supply-route-service/internal/ports"
)

type tableResponse struct {
	Code      string       `json:"code"`
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// GetDistances retrieves distance and duration from one origin to many
// destinations in a single call to the OSRM table endpoint.
func (o *OSRMDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []ports.DistanceResult, err error) {
	defer obs.Time(ctx, o.logger, "osrm.GetDistances")(&err)

	if !origin.Valid() {
		return nil, errors.New("get OSRM distances: origin coordinates out of range")
	}
	if len(destinations) == 0 {
		return []ports.DistanceResult{}, nil
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("get OSRM distances: rate limit wait: %w", err)
	}

	coords := make([]string, 0, 1+len(destinations))
	coords = append(coords, fmt.Sprintf("%f,%f", origin.Lon, origin.Lat))
	for _, d := range destinations {
		if !d.Valid() {
			return nil, errors.New("get OSRM distances: destination coordinates out of range")
		}
		coords = append(coords, fmt.Sprintf("%f,%f", d.Lon, d.Lat))
	}

	endpoint := fmt.Sprintf(
		"%s/table/v1/%s/%s?sources=0&annotations=distance,duration",
		o.baseURL, o.profile, strings.Join(coords, ";"),
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("table request failed: %w: %w", ports.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	var tr tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode table response: %w: %w", ports.ErrProviderUnavailable, err)
	}

	if tr.Code != "Ok" {
		return nil, fmt.Errorf("%w: table response code %q", ports.ErrProviderUnavailable, tr.Code)
	}

	if len(tr.Distances) != 1 || len(tr.Durations) != 1 {
		return nil, fmt.Errorf(
			"%w: expected 1 source row; got distances=%d durations=%d",
			ports.ErrProviderUnavailable, len(tr.Distances), len(tr.Durations),
		)
	}

	rowDistances := tr.Distances[0]
	rowDurations := tr.Durations[0]

	// The table response includes the origin itself at index 0.
	if len(rowDistances) != len(destinations)+1 || len(rowDurations) != len(destinations)+1 {
		return nil, fmt.Errorf(
			"%w: row lengths do not match destinations: distances=%d durations=%d destinations=%d",
			ports.ErrProviderUnavailable, len(rowDistances), len(rowDurations), len(destinations),
		)
	}

	out := make([]ports.DistanceResult, 0, len(destinations))
	for i := range destinations {
		metersPtr := rowDistances[i+1]
		secondsPtr := rowDurations[i+1]

		if metersPtr == nil || secondsPtr == nil {
			return nil, fmt.Errorf("%w: table returned no metrics for destination %d", ports.ErrProviderUnavailable, i)
		}

		out = append(out, ports.DistanceResult{
			DistanceMeters:  int(math.Round(*metersPtr)),
			DurationSeconds: int(math.Round(*secondsPtr)),
		})
	}

	return out, nil
}
