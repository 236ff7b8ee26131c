package pipeline

import (
	"encoding/json"
	"reflect"
	"testing"
)

func computedResult(t *testing.T) DashboardResult {
	t.Helper()
	return ComputeDashboard(sampleRecords(), nil, Filter{}, testNow)
}

func TestMergeReplacesWholeSeries(t *testing.T) {
	res := computedResult(t)

	ov := OverrideSet{
		SeriesMTTR:     json.RawMessage(`[5.5, 4.0, 6.0]`),
		SeriesCategory: json.RawMessage(`{"Corrective": 99}`),
	}
	merged := Merge(res, ov)

	if !reflect.DeepEqual(merged.MTTR, []float64{5.5, 4.0, 6.0}) {
		t.Fatalf("MTTR override not applied: %v", merged.MTTR)
	}
	// whole-series replacement: computed categories not named in the
	// override must be gone, not merged in
	if len(merged.Breakdowns.Category) != 1 || merged.Breakdowns.Category[CategoryCorrective] != 99 {
		t.Fatalf("category override must replace the map wholesale: %v", merged.Breakdowns.Category)
	}
	// non-overridden series survive
	if !reflect.DeepEqual(merged.Monthly.Costs, res.Monthly.Costs) {
		t.Fatalf("costs changed without an override")
	}
}

func TestMergeIdempotent(t *testing.T) {
	res := computedResult(t)
	ov := OverrideSet{
		SeriesMonthlyCosts: json.RawMessage(`[1,2,3,4,5,6,7,8,9,10,11,12]`),
		SeriesAnalyst:      json.RawMessage(`{"Ana": 7}`),
	}

	once := Merge(res, ov)
	twice := Merge(once, ov)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeRemovalReverts(t *testing.T) {
	res := computedResult(t)
	ov := OverrideSet{SeriesMTBF: json.RawMessage(`[100,100,100,100,100,100,100,100,100,100,100,100]`)}

	merged := Merge(res, ov)
	if reflect.DeepEqual(merged.MTBF, res.MTBF) {
		t.Fatalf("fixture broken: override equals computed value")
	}

	reverted := Merge(res, OverrideSet{})
	if !reflect.DeepEqual(reverted.MTBF, res.MTBF) {
		t.Fatalf("clearing the override must revert to the computed series")
	}
}

func TestMergeDoesNotMutateComputed(t *testing.T) {
	res := computedResult(t)
	before := res.Breakdowns.Category[CategoryCorrective]

	_ = Merge(res, OverrideSet{SeriesCategory: json.RawMessage(`{"Preventive": 1}`)})

	if res.Breakdowns.Category[CategoryCorrective] != before {
		t.Fatalf("Merge mutated the computed result")
	}
}

func TestMergeSkipsBadPayloads(t *testing.T) {
	res := computedResult(t)
	ov := OverrideSet{
		SeriesMTTR:         json.RawMessage(`[1, 2]`),   // wrong length
		SeriesMonthlyCosts: json.RawMessage(`"broken"`), // wrong type
		"bogus_series":     json.RawMessage(`[1]`),      // unknown key
	}
	merged := Merge(res, ov)

	if !reflect.DeepEqual(merged, res) {
		t.Fatalf("invalid overrides must leave the computed result untouched")
	}
}

func TestValidateOverride(t *testing.T) {
	tests := []struct {
		key   string
		value string
		ok    bool
	}{
		{SeriesMTTR, `[4, 5, 6]`, true},
		{SeriesMTTR, `[4, 5]`, false},
		{SeriesMTBF, `[1,2,3,4,5,6,7,8,9,10,11,12]`, true},
		{SeriesMTBF, `[1]`, false},
		{SeriesMonthlyCorrectives, `[0,0,0,0,0,0,0,0,0,0,0,0]`, true},
		{SeriesMonthlyStatus, `{"Started": [1,0,0,0,0,0,0,0,0,0,0,0]}`, true},
		{SeriesMonthlyStatus, `{"Started": [1]}`, false},
		{SeriesTopEquipment, `[{"equipment": "Pump A", "orders": 3}]`, true},
		{SeriesCriticality, `{"Alta": 2}`, true},
		{"unknown", `[]`, false},
	}
	for _, tc := range tests {
		err := ValidateOverride(tc.key, json.RawMessage(tc.value))
		if tc.ok && err != nil {
			t.Errorf("ValidateOverride(%s, %s): unexpected error %v", tc.key, tc.value, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ValidateOverride(%s, %s): expected error", tc.key, tc.value)
		}
	}
}
