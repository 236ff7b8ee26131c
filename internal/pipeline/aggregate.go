// internal/pipeline/aggregate.go
// Folds the record set into KPI totals, monthly buckets and breakdowns.
package pipeline

import (
	"sort"
	"time"
)

// MonthlySlots is the fixed length of every monthly series (Jan..Dec).
const MonthlySlots = 12

// DefaultTopEquipment is the breakdown slice size the dashboard consumes.
const DefaultTopEquipment = 5

// KPISnapshot is the point-in-time scalar summary. Recomputed wholesale on
// every pass, never patched in place.
type KPISnapshot struct {
	Correctives        int     `json:"correctives"`
	Preventives        int     `json:"preventives"`
	OverduePreventives int     `json:"overdue_preventives"`
	Predictives        int     `json:"predictives"`
	Improvements       int     `json:"improvements"`
	Equipment          int     `json:"equipment"`
	TotalOrders        int     `json:"total_orders"`
	TotalCost          float64 `json:"total_cost"`
	// Availability is a synthetic placeholder derived from the corrective
	// count, not a measured SLA figure.
	Availability float64 `json:"availability"`
}

// MonthlyBuckets carries the 12-slot series derived from records with a
// parseable date. Rows whose date does not parse contribute to none of them.
type MonthlyBuckets struct {
	Costs       []float64        `json:"costs"`
	Correctives []int            `json:"correctives"`
	Status      map[Status][]int `json:"status"`
}

// EquipmentCount is one entry of the top-equipment breakdown.
type EquipmentCount struct {
	Equipment string `json:"equipment"`
	Orders    int    `json:"orders"`
}

// Breakdowns are the simple tally dimensions.
type Breakdowns struct {
	Category     map[Category]int `json:"category"`
	Criticality  map[string]int   `json:"criticality"`
	Analyst      map[string]int   `json:"analyst"`
	TopEquipment []EquipmentCount `json:"top_equipment"`
}

// NewMonthlyBuckets returns zero-filled buckets for every status so empty
// input still renders as flat zero lines.
func NewMonthlyBuckets() MonthlyBuckets {
	status := make(map[Status][]int, len(AllStatuses))
	for _, s := range AllStatuses {
		status[s] = make([]int, MonthlySlots)
	}
	return MonthlyBuckets{
		Costs:       make([]float64, MonthlySlots),
		Correctives: make([]int, MonthlySlots),
		Status:      status,
	}
}

// Aggregate folds the record set into the KPI snapshot, the monthly buckets
// and the breakdown tallies. now anchors the overdue-preventive KPI; tests
// inject a fixed reference time. The pass never fails: a row whose fields do
// not parse degrades to zero cost / no time bucket instead of aborting.
func Aggregate(records []RawRecord, now time.Time) (KPISnapshot, MonthlyBuckets, Breakdowns) {
	kpis := KPISnapshot{TotalOrders: len(records)}
	monthly := NewMonthlyBuckets()
	breakdowns := Breakdowns{
		Category:    make(map[Category]int),
		Criticality: make(map[string]int),
		Analyst:     make(map[string]int),
	}

	equipment := make(map[string]int)  // equipment -> order count
	firstSeen := make(map[string]int)  // equipment -> first record index, for stable ties

	for i, rec := range records {
		cat := ClassifyRaw(rec.MaintenanceType)
		breakdowns.Category[cat]++

		switch cat {
		case CategoryCorrective:
			kpis.Correctives++
		case CategoryPreventive:
			kpis.Preventives++
		case CategoryPredictive:
			kpis.Predictives++
		case CategoryImprovement:
			kpis.Improvements++
		}

		kpis.TotalCost += rec.Cost()

		if crit := rec.Criticality; crit != "" {
			breakdowns.Criticality[crit]++
		}
		if rec.Analyst != "" {
			breakdowns.Analyst[rec.Analyst]++
		}
		if eq := rec.Equipment(); eq != "" {
			if _, ok := equipment[eq]; !ok {
				firstSeen[eq] = i
			}
			equipment[eq]++
		}

		date, ok := ParseDate(rec.Date)
		if !ok {
			continue // counted above, excluded from every time bucket
		}

		if cat == CategoryPreventive && date.Before(now) {
			kpis.OverduePreventives++
		}

		m := int(date.Month()) - 1
		monthly.Costs[m] += rec.Cost()
		if cat == CategoryCorrective {
			monthly.Correctives[m]++
		}
		monthly.Status[ParseStatus(rec.State)][m]++
	}

	kpis.Equipment = len(equipment)
	kpis.Availability = availability(kpis.Correctives)
	breakdowns.TopEquipment = topEquipment(equipment, firstSeen, DefaultTopEquipment)

	return kpis, monthly, breakdowns
}

// availability is the synthetic estimate clamp(95 - 0.5*correctives, 85, 99).
func availability(correctives int) float64 {
	v := 95 - 0.5*float64(correctives)
	if v < 85 {
		return 85
	}
	if v > 99 {
		return 99
	}
	return v
}

// topEquipment ranks equipment by order count, ties broken by original
// record order, and keeps the first limit entries.
func topEquipment(counts map[string]int, firstSeen map[string]int, limit int) []EquipmentCount {
	out := make([]EquipmentCount, 0, len(counts))
	for eq, n := range counts {
		out = append(out, EquipmentCount{Equipment: eq, Orders: n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return firstSeen[out[i].Equipment] < firstSeen[out[j].Equipment]
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
