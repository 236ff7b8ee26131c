// internal/repositories/mysql/store.go
// The MySQL-backed snapshot store: records + overrides + targets.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"maint-kpi/internal/pipeline"
)

// Store bundles the three repos behind the SnapshotStore contract the
// service layer consumes.
type Store struct {
	Records   *RecordsRepo
	Overrides *OverridesRepo
	Targets   *TargetsRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		Records:   &RecordsRepo{DB: db},
		Overrides: &OverridesRepo{DB: db},
		Targets:   &TargetsRepo{DB: db},
	}
}

// EnsureSchema creates all tables. Called once at startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.Records.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := s.Overrides.EnsureSchema(ctx); err != nil {
		return err
	}
	return s.Targets.EnsureSchema(ctx)
}

func (s *Store) LoadRecords(ctx context.Context) ([]pipeline.RawRecord, error) {
	return s.Records.LoadAll(ctx)
}

func (s *Store) ReplaceRecords(ctx context.Context, records []pipeline.RawRecord) error {
	return s.Records.ReplaceAll(ctx, records)
}

func (s *Store) LoadOverrides(ctx context.Context) (pipeline.OverrideSet, error) {
	return s.Overrides.LoadAll(ctx)
}

func (s *Store) SetOverride(ctx context.Context, key string, value json.RawMessage) error {
	return s.Overrides.Set(ctx, key, value)
}

func (s *Store) ClearOverride(ctx context.Context, key string) error {
	return s.Overrides.Clear(ctx, key)
}

func (s *Store) LoadTargets(ctx context.Context) (pipeline.Targets, bool, error) {
	return s.Targets.Load(ctx)
}

func (s *Store) SaveTargets(ctx context.Context, t pipeline.Targets) error {
	return s.Targets.Save(ctx, t)
}

func (s *Store) Name() string { return "mysql" }
