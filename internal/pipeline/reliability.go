// internal/pipeline/reliability.go
// MTTR / MTBF estimates. Both are deterministic heuristics standing in for a
// measured reliability model; the contract is the formula, not physics.
package pipeline

// Quarters reported by the MTTR series.
const MTTRQuarters = 3

// Synthetic repair hours per category. Anything not listed takes the default.
const (
	repairHoursCorrective = 8
	repairHoursPreventive = 2
	repairHoursPredictive = 6
	repairHoursDefault    = 4
)

// MTBF placeholder parameters: more orders in a month means a lower value,
// floored at mtbfFloor.
const (
	mtbfBase     = 1000
	mtbfPerOrder = 20
	mtbfFloor    = 100
)

// repairHours is the fixed lookup feeding the MTTR estimate.
func repairHours(cat Category) float64 {
	switch cat {
	case CategoryCorrective:
		return repairHoursCorrective
	case CategoryPreventive:
		return repairHoursPreventive
	case CategoryPredictive:
		return repairHoursPredictive
	default:
		return repairHoursDefault
	}
}

// Estimate derives the MTTR and MTBF series from the record set. Only rows
// with a parseable date qualify. MTTR always has exactly MTTRQuarters values
// (empty quarters report the default, never a hole); MTBF always has
// MonthlySlots values, each at least mtbfFloor.
func Estimate(records []RawRecord) (mttr []float64, mtbf []float64) {
	var quarterSum [4]float64
	var quarterCount [4]int
	var monthOrders [MonthlySlots]int

	for _, rec := range records {
		date, ok := ParseDate(rec.Date)
		if !ok {
			continue
		}
		m := int(date.Month()) - 1
		monthOrders[m]++

		q := m / 3
		quarterSum[q] += repairHours(ClassifyRaw(rec.MaintenanceType))
		quarterCount[q]++
	}

	mttr = make([]float64, MTTRQuarters)
	for q := range mttr {
		if quarterCount[q] == 0 {
			mttr[q] = repairHoursDefault
			continue
		}
		mttr[q] = quarterSum[q] / float64(quarterCount[q])
	}

	mtbf = make([]float64, MonthlySlots)
	for m := range mtbf {
		v := float64(mtbfBase - mtbfPerOrder*monthOrders[m])
		if v < mtbfFloor {
			v = mtbfFloor
		}
		mtbf[m] = v
	}
	return mttr, mtbf
}
