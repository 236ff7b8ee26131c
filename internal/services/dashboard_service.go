// internal/services/dashboard_service.go
package services

import (
	"context"
	"encoding/json"
	"log"

	"maint-kpi/internal/pipeline"
	"maint-kpi/internal/util"
)

// SnapshotStore is the persistence boundary for raw records, series
// overrides and metric targets. Both the MySQL store and the local
// JSON-file store implement it.
type SnapshotStore interface {
	LoadRecords(ctx context.Context) ([]pipeline.RawRecord, error)
	ReplaceRecords(ctx context.Context, records []pipeline.RawRecord) error

	LoadOverrides(ctx context.Context) (pipeline.OverrideSet, error)
	SetOverride(ctx context.Context, key string, value json.RawMessage) error
	ClearOverride(ctx context.Context, key string) error

	LoadTargets(ctx context.Context) (pipeline.Targets, bool, error)
	SaveTargets(ctx context.Context, t pipeline.Targets) error

	Name() string
}

// DashboardService composes the derivation pipeline with the snapshot
// store boundary. When the primary store fails, reads fall back to the
// secondary store and writes fall through to it so the caller can
// report a degraded result instead of an outage.
type DashboardService struct {
	Primary  SnapshotStore
	Fallback SnapshotStore
	Clock    util.Clock
}

func NewDashboardService(primary, fallback SnapshotStore, clock util.Clock) *DashboardService {
	if clock == nil {
		clock = util.RealClock{}
	}
	return &DashboardService{Primary: primary, Fallback: fallback, Clock: clock}
}

type snapshotData struct {
	Records   []pipeline.RawRecord
	Overrides pipeline.OverrideSet
	Targets   pipeline.Targets
	HasTarget bool
	Store     string
	Degraded  bool
}

// loadSnapshot pulls records, overrides and targets from the active
// store. The three reads run concurrently since they hit independent
// tables/sections.
func (s *DashboardService) loadSnapshot(ctx context.Context) (snapshotData, error) {
	store := s.Primary
	degraded := false

	records, err := store.LoadRecords(ctx)
	if err != nil {
		if s.Fallback == nil {
			return snapshotData{}, util.StoreUnavailable("snapshot store unreachable: " + err.Error())
		}
		log.Printf("[WARN] %s store read failed, falling back to %s: %v", store.Name(), s.Fallback.Name(), err)
		store = s.Fallback
		degraded = true
		records, err = store.LoadRecords(ctx)
		if err != nil {
			return snapshotData{}, util.StoreUnavailable("fallback store unreachable: " + err.Error())
		}
	}

	type overrideRes struct {
		ov  pipeline.OverrideSet
		err error
	}
	type targetRes struct {
		t     pipeline.Targets
		found bool
		err   error
	}

	ovCh := make(chan overrideRes, 1)
	tgCh := make(chan targetRes, 1)

	go func() {
		ov, err := store.LoadOverrides(ctx)
		ovCh <- overrideRes{ov, err}
	}()
	go func() {
		t, found, err := store.LoadTargets(ctx)
		tgCh <- targetRes{t, found, err}
	}()

	ovr := <-ovCh
	tgr := <-tgCh

	overrides := ovr.ov
	if ovr.err != nil {
		// Overrides are an overlay; losing them degrades the view
		// but must not take the dashboard down.
		log.Printf("[WARN] override load failed on %s store, serving computed values: %v", store.Name(), ovr.err)
		overrides = pipeline.OverrideSet{}
	}

	targets := pipeline.DefaultTargets()
	hasTarget := false
	if tgr.err != nil {
		log.Printf("[WARN] target load failed on %s store, using defaults: %v", store.Name(), tgr.err)
	} else if tgr.found {
		targets = tgr.t
		hasTarget = true
	}

	return snapshotData{
		Records:   records,
		Overrides: overrides,
		Targets:   targets,
		HasTarget: hasTarget,
		Store:     store.Name(),
		Degraded:  degraded,
	}, nil
}

// DashboardView is the service-level dashboard payload: the derived
// result plus provenance about which store served it.
type DashboardView struct {
	pipeline.DashboardResult
	Source   string `json:"source"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Dashboard loads the current snapshot, applies the optional
// year/month filter and returns the fully derived dashboard.
func (s *DashboardService) Dashboard(ctx context.Context, filter pipeline.Filter) (DashboardView, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return DashboardView{}, err
	}

	result := pipeline.ComputeDashboard(snap.Records, snap.Overrides, filter, s.Clock.Now())
	if snap.HasTarget {
		result.Targets = snap.Targets
	}

	return DashboardView{
		DashboardResult: result,
		Source:          snap.Store,
		Degraded:        snap.Degraded,
	}, nil
}

// writeThrough runs the mutation against the primary store and falls
// back to the secondary on failure. The degraded flag tells the caller
// the write only landed on the fallback.
func (s *DashboardService) writeThrough(op string, primary, fallback func(SnapshotStore) error) (bool, error) {
	if err := primary(s.Primary); err != nil {
		if s.Fallback == nil {
			return false, util.StoreUnavailable(op + " failed: " + err.Error())
		}
		log.Printf("[WARN] %s failed on %s store, writing to %s: %v", op, s.Primary.Name(), s.Fallback.Name(), err)
		if ferr := fallback(s.Fallback); ferr != nil {
			return false, util.StoreUnavailable(op + " failed on both stores: " + ferr.Error())
		}
		return true, nil
	}
	return false, nil
}

// SetOverride validates and persists a whole-series override.
func (s *DashboardService) SetOverride(ctx context.Context, key string, value json.RawMessage) (bool, error) {
	if err := pipeline.ValidateOverride(key, value); err != nil {
		return false, util.BadInput(err.Error())
	}
	write := func(st SnapshotStore) error { return st.SetOverride(ctx, key, value) }
	return s.writeThrough("override write", write, write)
}

// ClearOverride removes a series override so the computed value shows
// again.
func (s *DashboardService) ClearOverride(ctx context.Context, key string) (bool, error) {
	if !pipeline.KnownSeries[key] {
		return false, util.BadInput("unknown series key: " + key)
	}
	write := func(st SnapshotStore) error { return st.ClearOverride(ctx, key) }
	return s.writeThrough("override clear", write, write)
}

// ReplaceRecords swaps the full record set. Overrides survive the swap
// on purpose: they are pinned values, not derived ones.
func (s *DashboardService) ReplaceRecords(ctx context.Context, records []pipeline.RawRecord) (bool, error) {
	write := func(st SnapshotStore) error { return st.ReplaceRecords(ctx, records) }
	return s.writeThrough("record replace", write, write)
}

// SaveTargets persists the metric targets shown next to each KPI.
func (s *DashboardService) SaveTargets(ctx context.Context, t pipeline.Targets) (bool, error) {
	write := func(st SnapshotStore) error { return st.SaveTargets(ctx, t) }
	return s.writeThrough("target save", write, write)
}

// SyncToFallback copies the primary snapshot into the fallback store so
// the fallback stays warm. Used by the background worker.
func (s *DashboardService) SyncToFallback(ctx context.Context) error {
	if s.Fallback == nil {
		return nil
	}

	records, err := s.Primary.LoadRecords(ctx)
	if err != nil {
		return util.StoreUnavailable("sync read failed: " + err.Error())
	}
	if err := s.Fallback.ReplaceRecords(ctx, records); err != nil {
		return util.Internal("sync record write failed: " + err.Error())
	}

	overrides, err := s.Primary.LoadOverrides(ctx)
	if err != nil {
		return util.StoreUnavailable("sync override read failed: " + err.Error())
	}
	for key, value := range overrides {
		if err := s.Fallback.SetOverride(ctx, key, value); err != nil {
			return util.Internal("sync override write failed: " + err.Error())
		}
	}

	targets, found, err := s.Primary.LoadTargets(ctx)
	if err != nil {
		return util.StoreUnavailable("sync target read failed: " + err.Error())
	}
	if found {
		if err := s.Fallback.SaveTargets(ctx, targets); err != nil {
			return util.Internal("sync target write failed: " + err.Error())
		}
	}
	return nil
}
