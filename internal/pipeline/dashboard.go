// internal/pipeline/dashboard.go
// The single pipeline entry point consumed by the presentation boundary.
package pipeline

import "time"

// Filter restricts a computation pass to a year and/or month. Zero values
// mean "no constraint". The filter is applied to the raw record set before
// every stage so all derived metrics stay internally consistent.
type Filter struct {
	Year  int        `json:"year,omitempty"`
	Month time.Month `json:"month,omitempty"`
}

// IsZero reports whether the filter constrains anything.
func (f Filter) IsZero() bool { return f.Year == 0 && f.Month == 0 }

// Matches reports whether a record passes the filter. A constrained filter
// requires a parseable date; with no constraint every record qualifies.
func (f Filter) Matches(rec RawRecord) bool {
	if f.IsZero() {
		return true
	}
	date, ok := ParseDate(rec.Date)
	if !ok {
		return false
	}
	if f.Year != 0 && date.Year() != f.Year {
		return false
	}
	if f.Month != 0 && date.Month() != f.Month {
		return false
	}
	return true
}

// Apply returns the records passing the filter, in original order.
func (f Filter) Apply(records []RawRecord) []RawRecord {
	if f.IsZero() {
		return records
	}
	out := make([]RawRecord, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Targets are the per-metric goals the presentation draws as target lines.
// They live beside the override set and are pure user data.
type Targets struct {
	MTTR         float64 `json:"mttr"`
	MTBF         float64 `json:"mtbf"`
	Availability float64 `json:"availability"`
}

// DefaultTargets are the goals shown before any were saved.
func DefaultTargets() Targets {
	return Targets{Availability: 95}
}

// DashboardResult is the read-only snapshot handed to presentation. It is a
// value: recomputed wholesale per pass, safe to render unmodified.
type DashboardResult struct {
	KPIs        KPISnapshot        `json:"kpis"`
	Monthly     MonthlyBuckets     `json:"monthly"`
	MTTR        []float64          `json:"mttr"`
	MTBF        []float64          `json:"mtbf"`
	Breakdowns  Breakdowns         `json:"breakdowns"`
	RiskRanking []EquipmentProfile `json:"risk_ranking"`
	Targets     Targets            `json:"targets"`
}

// ComputeDashboard is the pure pipeline: (records, overrides, filter, now)
// -> result snapshot. It owns no state, never fails, and may be invoked
// repeatedly and concurrently. now anchors the overdue-preventive KPI.
func ComputeDashboard(records []RawRecord, overrides OverrideSet, filter Filter, now time.Time) DashboardResult {
	filtered := filter.Apply(records)

	kpis, monthly, breakdowns := Aggregate(filtered, now)
	mttr, mtbf := Estimate(filtered)

	res := DashboardResult{
		KPIs:        kpis,
		Monthly:     monthly,
		MTTR:        mttr,
		MTBF:        mtbf,
		Breakdowns:  breakdowns,
		RiskRanking: Rank(filtered),
		Targets:     DefaultTargets(),
	}
	return Merge(res, overrides)
}
