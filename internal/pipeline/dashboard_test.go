package pipeline

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestComputeDashboardEmptyInput(t *testing.T) {
	res := ComputeDashboard(nil, OverrideSet{}, Filter{}, testNow)

	if res.KPIs.TotalOrders != 0 || res.KPIs.TotalCost != 0 || res.KPIs.Equipment != 0 {
		t.Fatalf("empty input KPIs not zero: %+v", res.KPIs)
	}
	for i := 0; i < MonthlySlots; i++ {
		if res.Monthly.Costs[i] != 0 || res.Monthly.Correctives[i] != 0 {
			t.Fatalf("empty input buckets not zero")
		}
	}
	if len(res.MTTR) != MTTRQuarters || len(res.MTBF) != MonthlySlots {
		t.Fatalf("series shapes wrong on empty input")
	}
	if len(res.RiskRanking) != 0 {
		t.Fatalf("empty input risk ranking = %v", res.RiskRanking)
	}
}

func TestComputeDashboardCostProperty(t *testing.T) {
	res := ComputeDashboard(sampleRecords()[:4], nil, Filter{}, testNow)

	var sum float64
	for _, v := range res.Monthly.Costs {
		sum += v
	}
	if math.Abs(sum-res.KPIs.TotalCost) > 1e-9 {
		t.Fatalf("sum(monthly costs) %v != total cost %v", sum, res.KPIs.TotalCost)
	}
}

func TestComputeDashboardFilterBeforeAllStages(t *testing.T) {
	records := []RawRecord{
		{Date: "05/01/2024", EquipmentName: "Pump A", MaintenanceType: "7", MaterialCost: "100"},
		{Date: "05/01/2023", EquipmentName: "Old Rig", MaintenanceType: "7", MaterialCost: "900"},
	}
	res := ComputeDashboard(records, nil, Filter{Year: 2024}, testNow)

	if res.KPIs.TotalOrders != 1 {
		t.Fatalf("year filter must run before aggregation: %d orders", res.KPIs.TotalOrders)
	}
	if res.KPIs.TotalCost != 100 {
		t.Fatalf("filtered total cost = %v", res.KPIs.TotalCost)
	}
	if len(res.RiskRanking) != 1 || res.RiskRanking[0].Equipment != "Pump A" {
		t.Fatalf("year filter must feed the risk ranker too: %v", res.RiskRanking)
	}
	if res.MTBF[0] != 980 {
		t.Fatalf("Jan MTBF = %v, want 980 from exactly one filtered record", res.MTBF[0])
	}
}

func TestComputeDashboardMonthFilter(t *testing.T) {
	records := []RawRecord{
		{Date: "05/01/2024", MaintenanceType: "7", EquipmentName: "A"},
		{Date: "05/02/2024", MaintenanceType: "7", EquipmentName: "B"},
		{Date: "bad-date", MaintenanceType: "7", EquipmentName: "C"},
	}
	res := ComputeDashboard(records, nil, Filter{Year: 2024, Month: time.February}, testNow)

	if res.KPIs.TotalOrders != 1 || res.KPIs.Equipment != 1 {
		t.Fatalf("month filter kept %d orders", res.KPIs.TotalOrders)
	}
}

func TestComputeDashboardAppliesOverrides(t *testing.T) {
	ov := OverrideSet{SeriesMTTR: json.RawMessage(`[9, 9, 9]`)}
	res := ComputeDashboard(sampleRecords(), ov, Filter{}, testNow)

	if !reflect.DeepEqual(res.MTTR, []float64{9, 9, 9}) {
		t.Fatalf("override not applied through the entry point: %v", res.MTTR)
	}
}

func TestComputeDashboardDeterministic(t *testing.T) {
	a := ComputeDashboard(sampleRecords(), nil, Filter{}, testNow)
	b := ComputeDashboard(sampleRecords(), nil, Filter{}, testNow)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated passes over the same snapshot must agree")
	}
}
