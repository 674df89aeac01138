package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSupplyQuery := `
	CREATE TABLE IF NOT EXISTS supply_location (
		id SMALLINT PRIMARY KEY CHECK (id = 1),
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id TEXT PRIMARY KEY,
		capacity DOUBLE PRECISION NOT NULL,
		depart_at TIMESTAMPTZ NOT NULL,
		position INTEGER NOT NULL
	);
	`

	createDemandsQuery := `
	CREATE TABLE IF NOT EXISTS demands (
		demand_id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		window_start TIMESTAMPTZ,
		window_end TIMESTAMPTZ,
		position INTEGER NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		a_lat DOUBLE PRECISION NOT NULL,
		a_lon DOUBLE PRECISION NOT NULL,
		b_lat DOUBLE PRECISION NOT NULL,
		b_lon DOUBLE PRECISION NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		PRIMARY KEY (a_lat, a_lon, b_lat, b_lon)
	);
	`

	createSolvesQuery := `
	CREATE TABLE IF NOT EXISTS solves (
		solve_id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		report JSONB NOT NULL
	);
	`

	statements := []string{
		createSupplyQuery,
		createVehiclesQuery,
		createDemandsQuery,
		createDistanceCacheQuery,
		createSolvesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
