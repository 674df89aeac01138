package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PgSolveStore archives completed solve reports as JSONB rows keyed by
// solve ID. Reports are write-once: a solve is never updated after it
// completes.
type PgSolveStore struct{ DB *sql.DB }

func NewPgSolveStore(db *sql.DB) *PgSolveStore {
	return &PgSolveStore{DB: db}
}

// SaveReport persists a completed solve report.
func (s *PgSolveStore) SaveReport(ctx context.Context, solveID string, report any) error {
	if s.DB == nil {
		return errors.New("solve store: DB is nil")
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("save report: marshal report: %w", err)
	}

	query := `
	INSERT INTO solves (solve_id, report)
	VALUES ($1, $2);
	`
	if _, err := s.DB.ExecContext(ctx, query, solveID, payload); err != nil {
		return fmt.Errorf("save report: insert solve %q: %w", solveID, err)
	}

	return nil
}
