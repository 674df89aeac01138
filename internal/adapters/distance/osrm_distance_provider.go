package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"supply-route-service/internal/domain"
	"supply-route-service/internal/platform/obs"
	"supply-route-service/internal/ports"
)

// OSRMDistanceProvider implements DistanceProvider against an OSRM
// routing server.
//
// It coordinates:
//   - Client-side rate limiting (public OSRM instances throttle hard)
//   - External API calls with retry/backoff
//   - Mapping unreachable or unusable responses to ErrProviderUnavailable
//
// The provider is safe for concurrent use. It performs no caching and no
// local fallback; wrap it in a FallbackProvider for those concerns.
type OSRMDistanceProvider struct {
	session *http.Client
	baseURL string
	profile string
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewOSRMDistanceProvider(baseURL string, timeout time.Duration, requestsPerSecond float64, logger *zap.Logger) (*OSRMDistanceProvider, error) {
	if baseURL == "" {
		return nil, errors.New("OSRM base URL is empty")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OSRMDistanceProvider{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		profile: "driving",
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger,
	}, nil
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		DistanceMeters  float64 `json:"distance"`
		DurationSeconds float64 `json:"duration"`
	} `json:"routes"`
}

// GetDistance fetches a single route leg from the OSRM route endpoint.
func (o *OSRMDistanceProvider) GetDistance(ctx context.Context, from, to domain.Coordinates) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, o.logger, "osrm.GetDistance")(&err)

	if !from.Valid() || !to.Valid() {
		return ports.DistanceResult{}, errors.New("get OSRM distance: coordinates out of range")
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get OSRM distance: rate limit wait: %w", err)
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f?overview=false",
		o.baseURL, o.profile, from.Lon, from.Lat, to.Lon, to.Lat,
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("route request failed: %w: %w", ports.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	var rr routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return ports.DistanceResult{}, fmt.Errorf("decode route response: %w: %w", ports.ErrProviderUnavailable, err)
	}

	if rr.Code != "Ok" || len(rr.Routes) == 0 {
		return ports.DistanceResult{}, fmt.Errorf("%w: route response code %q", ports.ErrProviderUnavailable, rr.Code)
	}

	// OSRM returns float metrics; round to nearest integer for domain consistency.
	return ports.DistanceResult{
		DistanceMeters:  int(math.Round(rr.Routes[0].DistanceMeters)),
		DurationSeconds: int(math.Round(rr.Routes[0].DurationSeconds)),
	}, nil
}
