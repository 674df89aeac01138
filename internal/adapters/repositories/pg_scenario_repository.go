package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"supply-route-service/internal/domain"
)

// Postgres-backed implementation of the ScenarioRepository port.
type PgScenarioRepository struct{ DB *sql.DB }

func NewPgScenarioRepository(db *sql.DB) *PgScenarioRepository {
	return &PgScenarioRepository{DB: db}
}

// Return the stored supply location.
func (s *PgScenarioRepository) GetSupplyLocation(ctx context.Context) (domain.Coordinates, error) {
	if s.DB == nil {
		return domain.Coordinates{}, errors.New("scenario repository: DB is nil")
	}

	query := `SELECT lat, lon FROM supply_location WHERE id = 1;`

	var c domain.Coordinates
	if err := s.DB.QueryRowContext(ctx, query).Scan(&c.Lat, &c.Lon); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Coordinates{}, errors.New("get supply location: no supply location seeded")
		}
		return domain.Coordinates{}, fmt.Errorf("get supply location: %w", err)
	}

	return c, nil
}

// Return all vehicles in seed order.
func (s *PgScenarioRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	if s.DB == nil {
		return nil, errors.New("scenario repository: DB is nil")
	}

	query := `
	SELECT vehicle_id, capacity, depart_at
	FROM vehicles
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 16)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.VehicleID, &v.Capacity, &v.DepartAt); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

// Return all demands in seed order.
func (s *PgScenarioRepository) ListDemands(ctx context.Context) ([]domain.Demand, error) {
	if s.DB == nil {
		return nil, errors.New("scenario repository: DB is nil")
	}

	query := `
	SELECT demand_id, lat, lon, quantity, window_start, window_end
	FROM demands
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list demands: query demands table: %w", err)
	}
	defer rows.Close()

	demands := make([]domain.Demand, 0, 64)
	for rows.Next() {
		var d domain.Demand
		var start, end sql.NullTime
		if err := rows.Scan(&d.DemandID, &d.Location.Lat, &d.Location.Lon, &d.Quantity, &start, &end); err != nil {
			return nil, fmt.Errorf("list demands: scan row: %w", err)
		}
		if start.Valid {
			d.Window.Start = start.Time
		}
		if end.Valid {
			d.Window.End = end.Time
		}
		demands = append(demands, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list demands: row iteration: %w", err)
	}

	return demands, nil
}

// SeedScenario replaces the stored scenario with the given one.
// Positions record input order so a solve against the repository sees
// the same vehicle and demand ordering as a solve against the file.
func SeedScenario(db *sql.DB, supply domain.Coordinates, vehicles []domain.Vehicle, demands []domain.Demand) error {
	if db == nil {
		return errors.New("seed scenario: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed scenario: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM vehicles;`); err != nil {
		return fmt.Errorf("seed scenario: clear vehicles: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM demands;`); err != nil {
		return fmt.Errorf("seed scenario: clear demands: %w", err)
	}

	supplyQuery := `
	INSERT INTO supply_location (id, lat, lon)
	VALUES (1, $1, $2)
	ON CONFLICT (id) DO UPDATE SET lat = EXCLUDED.lat, lon = EXCLUDED.lon;
	`
	if _, err := tx.Exec(supplyQuery, supply.Lat, supply.Lon); err != nil {
		return fmt.Errorf("seed scenario: upsert supply location: %w", err)
	}

	vehicleStmt, err := tx.Prepare(`
	INSERT INTO vehicles (vehicle_id, capacity, depart_at, position)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("seed scenario: prepare vehicle insert: %w", err)
	}
	defer vehicleStmt.Close()

	for i, v := range vehicles {
		if _, err := vehicleStmt.Exec(v.VehicleID, v.Capacity, v.DepartAt, i); err != nil {
			return fmt.Errorf("seed scenario: insert vehicle %q: %w", v.VehicleID, err)
		}
	}

	demandStmt, err := tx.Prepare(`
	INSERT INTO demands (demand_id, lat, lon, quantity, window_start, window_end, position)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return fmt.Errorf("seed scenario: prepare demand insert: %w", err)
	}
	defer demandStmt.Close()

	for i, d := range demands {
		var start, end sql.NullTime
		if !d.Window.IsZero() {
			start = sql.NullTime{Time: d.Window.Start, Valid: true}
			end = sql.NullTime{Time: d.Window.End, Valid: true}
		}
		if _, err := demandStmt.Exec(d.DemandID, d.Location.Lat, d.Location.Lon, d.Quantity, start, end, i); err != nil {
			return fmt.Errorf("seed scenario: insert demand %q: %w", d.DemandID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed scenario: commit tx: %w", err)
	}

	return nil
}
