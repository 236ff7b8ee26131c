// internal/repositories/mysql/records_repo.go
// Repo for the raw work-order snapshot.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"maint-kpi/internal/pipeline"
)

type RecordsRepo struct{ DB *sql.DB }

const recordsSchema = `
CREATE TABLE IF NOT EXISTS work_order_records (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	date_raw VARCHAR(64) NOT NULL DEFAULT '',
	equipment_id VARCHAR(128) NOT NULL DEFAULT '',
	equipment_name VARCHAR(255) NOT NULL DEFAULT '',
	maintenance_type VARCHAR(32) NOT NULL DEFAULT '',
	criticality VARCHAR(64) NOT NULL DEFAULT '',
	analyst VARCHAR(255) NOT NULL DEFAULT '',
	state VARCHAR(64) NOT NULL DEFAULT '',
	material_cost VARCHAR(64) NOT NULL DEFAULT '',
	labor_cost VARCHAR(64) NOT NULL DEFAULT ''
)`

func (r *RecordsRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, recordsSchema); err != nil {
		return fmt.Errorf("ensure work_order_records: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole snapshot in one transaction. Raw field values
// are stored verbatim: normalization happens in the pipeline on every pass,
// so a re-ingest reproduces exactly what the source supplied.
func (r *RecordsRepo) ReplaceAll(ctx context.Context, records []pipeline.RawRecord) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace records: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_order_records`); err != nil {
		return fmt.Errorf("clear work_order_records: %w", err)
	}

	const cols = 9
	const chunk = 200
	for start := 0; start < len(records); start += chunk {
		end := start + chunk
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		var sb strings.Builder
		sb.WriteString(`INSERT INTO work_order_records
			(date_raw, equipment_id, equipment_name, maintenance_type, criticality, analyst, state, material_cost, labor_cost)
			VALUES `)
		args := make([]any, 0, len(batch)*cols)
		for i, rec := range batch {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("(" + placeholders(cols) + ")")
			args = append(args,
				rec.Date, rec.EquipmentID, rec.EquipmentName, rec.MaintenanceType,
				rec.Criticality, rec.Analyst, rec.State, rec.MaterialCost, rec.LaborCost)
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("insert work_order_records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace records: %w", err)
	}
	return nil
}

// LoadAll returns the snapshot in insertion order. The pipeline's stable tie
// breaks depend on that order being reproducible.
func (r *RecordsRepo) LoadAll(ctx context.Context) ([]pipeline.RawRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT date_raw, equipment_id, equipment_name, maintenance_type, criticality, analyst, state, material_cost, labor_cost
		FROM work_order_records
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query work_order_records: %w", err)
	}
	defer rows.Close()

	var out []pipeline.RawRecord
	for rows.Next() {
		var rec pipeline.RawRecord
		if err := rows.Scan(
			&rec.Date,
			&rec.EquipmentID,
			&rec.EquipmentName,
			&rec.MaintenanceType,
			&rec.Criticality,
			&rec.Analyst,
			&rec.State,
			&rec.MaterialCost,
			&rec.LaborCost,
		); err != nil {
			return nil, fmt.Errorf("scan work_order_record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}
