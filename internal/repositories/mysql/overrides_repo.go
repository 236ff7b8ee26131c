// internal/repositories/mysql/overrides_repo.go
// Repo for manual override values, keyed by series name.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"maint-kpi/internal/pipeline"
)

type OverridesRepo struct{ DB *sql.DB }

const overridesSchema = `
CREATE TABLE IF NOT EXISTS series_overrides (
	series_key VARCHAR(64) PRIMARY KEY,
	payload JSON NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

func (r *OverridesRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, overridesSchema); err != nil {
		return fmt.Errorf("ensure series_overrides: %w", err)
	}
	return nil
}

// Set upserts one series override. Last write wins; there is no transactional
// merge of concurrent edits.
func (r *OverridesRepo) Set(ctx context.Context, key string, value json.RawMessage) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO series_overrides (series_key, payload) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload)`,
		key, []byte(value))
	if err != nil {
		return fmt.Errorf("set override %s: %w", key, err)
	}
	return nil
}

func (r *OverridesRepo) Clear(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM series_overrides WHERE series_key = ?`, key); err != nil {
		return fmt.Errorf("clear override %s: %w", key, err)
	}
	return nil
}

func (r *OverridesRepo) LoadAll(ctx context.Context) (pipeline.OverrideSet, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT series_key, payload FROM series_overrides`)
	if err != nil {
		return nil, fmt.Errorf("query series_overrides: %w", err)
	}
	defer rows.Close()

	out := make(pipeline.OverrideSet)
	for rows.Next() {
		var key string
		var payload []byte
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("scan series_override: %w", err)
		}
		out[key] = json.RawMessage(payload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}
