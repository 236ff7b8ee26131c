// internal/pipeline/override.go
// Manual override set and its merge onto computed results.
package pipeline

import (
	"encoding/json"
	"fmt"
)

// Series keys an override may target. An override always replaces the whole
// series, never single elements.
const (
	SeriesMonthlyCosts       = "monthly_costs"
	SeriesMonthlyCorrectives = "monthly_correctives"
	SeriesMonthlyStatus      = "monthly_status"
	SeriesMTTR               = "mttr"
	SeriesMTBF               = "mtbf"
	SeriesCategory           = "category"
	SeriesCriticality        = "criticality"
	SeriesAnalyst            = "analyst"
	SeriesTopEquipment       = "top_equipment"
)

// KnownSeries is the closed set of overridable series names.
var KnownSeries = map[string]bool{
	SeriesMonthlyCosts:       true,
	SeriesMonthlyCorrectives: true,
	SeriesMonthlyStatus:      true,
	SeriesMTTR:               true,
	SeriesMTBF:               true,
	SeriesCategory:           true,
	SeriesCriticality:        true,
	SeriesAnalyst:            true,
	SeriesTopEquipment:       true,
}

// OverrideSet holds manually entered replacement values, keyed by series
// name. It is pure override data: written only through explicit edits,
// persisted independently of the raw records, never recomputed.
type OverrideSet map[string]json.RawMessage

// ValidateOverride checks that key names a known series and that value
// decodes into that series' shape. Called at the edit boundary so bad
// payloads are rejected before they reach the store.
func ValidateOverride(key string, value json.RawMessage) error {
	if !KnownSeries[key] {
		return fmt.Errorf("unknown series %q", key)
	}

	switch key {
	case SeriesMonthlyCosts:
		var v []float64
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("series %s: %w", key, err)
		}
		if len(v) != MonthlySlots {
			return fmt.Errorf("series %s: want %d values, got %d", key, MonthlySlots, len(v))
		}
	case SeriesMonthlyCorrectives:
		var v []int
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("series %s: %w", key, err)
		}
		if len(v) != MonthlySlots {
			return fmt.Errorf("series %s: want %d values, got %d", key, MonthlySlots, len(v))
		}
	case SeriesMonthlyStatus:
		var v map[Status][]int
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("series %s: %w", key, err)
		}
		for st, series := range v {
			if len(series) != MonthlySlots {
				return fmt.Errorf("series %s[%s]: want %d values, got %d", key, st, MonthlySlots, len(series))
			}
		}
	case SeriesMTTR:
		var v []float64
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("series %s: %w", key, err)
		}
		if len(v) != MTTRQuarters {
			return fmt.Errorf("series %s: want %d values, got %d", key, MTTRQuarters, len(v))
		}
	case SeriesMTBF:
		var v []float64
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("series %s: %w", key, err)
		}
		if len(v) != MonthlySlots {
			return fmt.Errorf("series %s: want %d values, got %d", key, MonthlySlots, len(v))
		}
	case SeriesCategory:
		var v map[Category]int
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("series %s: %w", key, err)
		}
	case SeriesCriticality, SeriesAnalyst:
		var v map[string]int
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("series %s: %w", key, err)
		}
	case SeriesTopEquipment:
		var v []EquipmentCount
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("series %s: %w", key, err)
		}
	}
	return nil
}

// Merge applies the override set on top of a computed result. An override
// that is present fully replaces its series; one that fails to decode is
// skipped (degrade-and-continue, the computed series survives). The merge is
// idempotent and leaves res untouched.
func Merge(res DashboardResult, ov OverrideSet) DashboardResult {
	if len(ov) == 0 {
		return res
	}

	// Each series decodes into a fresh value which then replaces the field
	// wholesale: decoding straight into an existing map would merge keys
	// instead of replacing the series.
	usable := func(key string) (json.RawMessage, bool) {
		raw, ok := ov[key]
		if !ok || ValidateOverride(key, raw) != nil {
			return nil, false
		}
		return raw, true
	}

	if raw, ok := usable(SeriesMonthlyCosts); ok {
		var v []float64
		_ = json.Unmarshal(raw, &v)
		res.Monthly.Costs = v
	}
	if raw, ok := usable(SeriesMonthlyCorrectives); ok {
		var v []int
		_ = json.Unmarshal(raw, &v)
		res.Monthly.Correctives = v
	}
	if raw, ok := usable(SeriesMonthlyStatus); ok {
		var v map[Status][]int
		_ = json.Unmarshal(raw, &v)
		res.Monthly.Status = v
	}
	if raw, ok := usable(SeriesMTTR); ok {
		var v []float64
		_ = json.Unmarshal(raw, &v)
		res.MTTR = v
	}
	if raw, ok := usable(SeriesMTBF); ok {
		var v []float64
		_ = json.Unmarshal(raw, &v)
		res.MTBF = v
	}
	if raw, ok := usable(SeriesCategory); ok {
		var v map[Category]int
		_ = json.Unmarshal(raw, &v)
		res.Breakdowns.Category = v
	}
	if raw, ok := usable(SeriesCriticality); ok {
		var v map[string]int
		_ = json.Unmarshal(raw, &v)
		res.Breakdowns.Criticality = v
	}
	if raw, ok := usable(SeriesAnalyst); ok {
		var v map[string]int
		_ = json.Unmarshal(raw, &v)
		res.Breakdowns.Analyst = v
	}
	if raw, ok := usable(SeriesTopEquipment); ok {
		var v []EquipmentCount
		_ = json.Unmarshal(raw, &v)
		res.Breakdowns.TopEquipment = v
	}
	return res
}
