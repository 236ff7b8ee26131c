// internal/repositories/localstore/store.go
// JSON-file snapshot store. Serves as the fallback when MySQL is not
// reachable and as the whole store in single-node setups.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"maint-kpi/internal/pipeline"
)

type snapshotFile struct {
	Records   []pipeline.RawRecord `json:"records"`
	Overrides pipeline.OverrideSet `json:"overrides,omitempty"`
	Targets   *pipeline.Targets    `json:"targets,omitempty"`
}

// Store reads and writes one JSON file guarded by a mutex. Writes go through
// a temp file + rename so a crash never leaves a half-written snapshot.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Name() string { return "local" }

func (s *Store) load() (snapshotFile, error) {
	var snap snapshotFile
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return snap, nil // empty store, not an error
	}
	if err != nil {
		return snap, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return snapshotFile{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return snap, nil
}

func (s *Store) save(snap snapshotFile) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (s *Store) LoadRecords(ctx context.Context) ([]pipeline.RawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

func (s *Store) ReplaceRecords(ctx context.Context, records []pipeline.RawRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load()
	if err != nil {
		return err
	}
	snap.Records = records
	return s.save(snap)
}

func (s *Store) LoadOverrides(ctx context.Context) (pipeline.OverrideSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	if snap.Overrides == nil {
		return pipeline.OverrideSet{}, nil
	}
	return snap.Overrides, nil
}

func (s *Store) SetOverride(ctx context.Context, key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load()
	if err != nil {
		return err
	}
	if snap.Overrides == nil {
		snap.Overrides = pipeline.OverrideSet{}
	}
	snap.Overrides[key] = value
	return s.save(snap)
}

func (s *Store) ClearOverride(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load()
	if err != nil {
		return err
	}
	delete(snap.Overrides, key)
	return s.save(snap)
}

func (s *Store) LoadTargets(ctx context.Context) (pipeline.Targets, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load()
	if err != nil {
		return pipeline.Targets{}, false, err
	}
	if snap.Targets == nil {
		return pipeline.Targets{}, false, nil
	}
	return *snap.Targets, true, nil
}

func (s *Store) SaveTargets(ctx context.Context, t pipeline.Targets) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load()
	if err != nil {
		return err
	}
	snap.Targets = &t
	return s.save(snap)
}
