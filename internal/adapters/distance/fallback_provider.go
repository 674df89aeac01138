package distance

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"supply-route-service/internal/adapters/cache"
	"supply-route-service/internal/domain"
	"supply-route-service/internal/metrics"
	"supply-route-service/internal/ports"
)

type pairKey struct {
	a, b domain.Coordinates
}

// newPairKey canonicalizes an unordered location pair.
func newPairKey(from, to domain.Coordinates) pairKey {
	if to.Less(from) {
		return pairKey{a: to, b: from}
	}
	return pairKey{a: from, b: to}
}

// FallbackProvider coordinates the remote routing provider, the
// persistent distance cache, and the pure great-circle approximation.
//
// Lookup order: solve-scoped cache, persistent cache, remote provider,
// local approximation. Because the local approximation never fails,
// GetDistance always returns a usable result with a nil error.
//
// The solve-scoped cache is keyed by unordered location pair and must be
// discarded with the provider after the solve; create one FallbackProvider
// per solve. It is safe for concurrent use so distance lookups can be
// prefetched in parallel.
type FallbackProvider struct {
	remote     ports.DistanceProvider // may be nil (offline mode)
	persistent *cache.SQLDistanceCache
	local      *HaversineProvider
	logger     *zap.Logger

	mu    sync.Mutex
	solve map[pairKey]ports.DistanceResult
}

func NewFallbackProvider(
	remote ports.DistanceProvider,
	persistent *cache.SQLDistanceCache,
	local *HaversineProvider,
	logger *zap.Logger,
) *FallbackProvider {
	if local == nil {
		local = NewHaversineProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackProvider{
		remote:     remote,
		persistent: persistent,
		local:      local,
		logger:     logger,
		solve:      make(map[pairKey]ports.DistanceResult),
	}
}

// GetDistance never returns a non-nil error: a remote failure is
// absorbed by the great-circle approximation.
func (f *FallbackProvider) GetDistance(ctx context.Context, from, to domain.Coordinates) (ports.DistanceResult, error) {
	if from == to {
		return ports.DistanceResult{}, nil
	}

	key := newPairKey(from, to)

	f.mu.Lock()
	if r, ok := f.solve[key]; ok {
		f.mu.Unlock()
		return r, nil
	}
	f.mu.Unlock()

	r := f.lookup(ctx, from, to)

	f.mu.Lock()
	f.solve[key] = r
	f.mu.Unlock()

	return r, nil
}

func (f *FallbackProvider) lookup(ctx context.Context, from, to domain.Coordinates) ports.DistanceResult {
	if f.persistent != nil {
		r, ok, err := f.persistent.Get(ctx, from, to)
		if err != nil {
			f.logger.Warn("distance cache read failed", zap.Error(err))
		} else if ok {
			return r
		}
	}

	if f.remote != nil {
		r, err := f.remote.GetDistance(ctx, from, to)
		if err == nil {
			f.store(ctx, from, to, r)
			return r
		}
		metrics.ProviderFallbacks.Inc()
		f.logger.Debug("remote distance lookup failed, using great-circle fallback",
			zap.Float64("from_lat", from.Lat), zap.Float64("from_lon", from.Lon),
			zap.Float64("to_lat", to.Lat), zap.Float64("to_lon", to.Lon),
			zap.Error(err),
		)
	}

	// Approximations stay out of the persistent cache so a later solve
	// with a reachable provider gets real road distances.
	return f.local.Estimate(from, to)
}

func (f *FallbackProvider) store(ctx context.Context, from, to domain.Coordinates, r ports.DistanceResult) {
	if f.persistent == nil {
		return
	}
	if err := f.persistent.Put(ctx, from, to, r); err != nil {
		f.logger.Warn("distance cache write failed", zap.Error(err))
	}
}

// Prefetch warms the solve-scoped cache from one origin to many
// destinations, using the remote provider's batched table lookup when it
// supports one. Failures are absorbed: any pair not resolved remotely is
// resolved by GetDistance on demand.
func (f *FallbackProvider) Prefetch(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) {
	misses := make([]domain.Coordinates, 0, len(destinations))

	f.mu.Lock()
	for _, d := range destinations {
		if d == origin {
			continue
		}
		if _, ok := f.solve[newPairKey(origin, d)]; !ok {
			misses = append(misses, d)
		}
	}
	f.mu.Unlock()

	if len(misses) == 0 {
		return
	}

	if mp, ok := f.remote.(ports.DistanceMatrixProvider); ok {
		results, err := mp.GetDistances(ctx, origin, misses)
		if err == nil && len(results) == len(misses) {
			f.mu.Lock()
			for i, d := range misses {
				f.solve[newPairKey(origin, d)] = results[i]
			}
			f.mu.Unlock()
			for i, d := range misses {
				f.store(ctx, origin, d, results[i])
			}
			return
		}
		if err != nil {
			metrics.ProviderFallbacks.Inc()
			f.logger.Debug("batched distance prefetch failed", zap.Error(err))
		}
	}

	for _, d := range misses {
		// GetDistance caches internally and cannot fail.
		_, _ = f.GetDistance(ctx, origin, d)
	}
}
