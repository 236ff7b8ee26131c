// internal/repositories/mysql/targets_repo.go
// Repo for the single row of per-metric goals.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"maint-kpi/internal/pipeline"
)

type TargetsRepo struct{ DB *sql.DB }

const targetsSchema = `
CREATE TABLE IF NOT EXISTS metric_targets (
	id TINYINT PRIMARY KEY,
	mttr DOUBLE NOT NULL DEFAULT 0,
	mtbf DOUBLE NOT NULL DEFAULT 0,
	availability DOUBLE NOT NULL DEFAULT 95
)`

func (r *TargetsRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, targetsSchema); err != nil {
		return fmt.Errorf("ensure metric_targets: %w", err)
	}
	return nil
}

// Load returns the stored targets; found is false when none were ever saved.
func (r *TargetsRepo) Load(ctx context.Context) (pipeline.Targets, bool, error) {
	var t pipeline.Targets
	err := r.DB.QueryRowContext(ctx,
		`SELECT mttr, mtbf, availability FROM metric_targets WHERE id = 1`).
		Scan(&t.MTTR, &t.MTBF, &t.Availability)
	if errors.Is(err, sql.ErrNoRows) {
		return pipeline.Targets{}, false, nil
	}
	if err != nil {
		return pipeline.Targets{}, false, fmt.Errorf("query metric_targets: %w", err)
	}
	return t, true, nil
}

func (r *TargetsRepo) Save(ctx context.Context, t pipeline.Targets) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO metric_targets (id, mttr, mtbf, availability) VALUES (1, ?, ?, ?)
		ON DUPLICATE KEY UPDATE mttr = VALUES(mttr), mtbf = VALUES(mtbf), availability = VALUES(availability)`,
		t.MTTR, t.MTBF, t.Availability)
	if err != nil {
		return fmt.Errorf("save metric_targets: %w", err)
	}
	return nil
}
