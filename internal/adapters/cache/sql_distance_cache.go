package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"supply-route-service/internal/domain"
	"supply-route-service/internal/platform/obs"
	"supply-route-service/internal/ports"
)

// SQLDistanceCache is a Postgres-backed cache of travel results keyed by
// unordered coordinate pair. It persists across solves so repeated
// scenarios against the same geography avoid remote routing calls.
type SQLDistanceCache struct {
	DB     *sql.DB
	Logger *zap.Logger
}

func NewSQLDistanceCache(db *sql.DB, logger *zap.Logger) *SQLDistanceCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLDistanceCache{DB: db, Logger: logger}
}

// canonical orders a pair of coordinates so that (a, b) and (b, a) share
// one cache row.
func canonical(a, b domain.Coordinates) (domain.Coordinates, domain.Coordinates) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}

// Get fetches the cached result for a pair of locations. The second
// return value reports whether the pair was present.
func (s *SQLDistanceCache) Get(
	ctx context.Context,
	from, to domain.Coordinates,
) (_ ports.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, s.Logger, "distance.cache.Get")(&err)

	if s.DB == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: db is nil")
	}

	a, b := canonical(from, to)

	q := `
	SELECT distance_meters, duration_seconds
	FROM distance_cache
	WHERE a_lat = $1 AND a_lon = $2 AND b_lat = $3 AND b_lon = $4;
	`

	var meters, seconds int
	row := s.DB.QueryRowContext(ctx, q, a.Lat, a.Lon, b.Lat, b.Lon)
	if err := row.Scan(&meters, &seconds); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.DistanceResult{}, false, nil
		}
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: scan row: %w", err)
	}

	return ports.DistanceResult{DistanceMeters: meters, DurationSeconds: seconds}, true, nil
}

// Put stores a result for a pair of locations, replacing any prior entry.
func (s *SQLDistanceCache) Put(
	ctx context.Context,
	from, to domain.Coordinates,
	result ports.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	a, b := canonical(from, to)

	q := `
	INSERT INTO distance_cache (a_lat, a_lon, b_lat, b_lon, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (a_lat, a_lon, b_lat, b_lon) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q, a.Lat, a.Lon, b.Lat, b.Lon, result.DistanceMeters, result.DurationSeconds); err != nil {
		return fmt.Errorf("insert distance cache: %w", err)
	}

	return nil
}
