// internal/pipeline/risk.go
// Per-equipment risk ranking from corrective ratio, cost and criticality.
package pipeline

import "sort"

// Risk score weights. They must sum to 1.0.
const (
	weightCorrectiveRatio = 0.5
	weightCost            = 0.3
	weightCriticality     = 0.2
)

// EquipmentProfile is the per-equipment rollup built fresh on every pass.
type EquipmentProfile struct {
	Equipment       string  `json:"equipment"`
	Orders          int     `json:"orders"`
	Correctives     int     `json:"correctives"`
	Preventives     int     `json:"preventives"`
	TotalCost       float64 `json:"total_cost"`
	AvgCriticality  float64 `json:"avg_criticality"`
	CorrectiveRatio float64 `json:"corrective_ratio"`
	CostNorm        float64 `json:"cost_norm"`
	CriticalityNorm float64 `json:"criticality_norm"`
	RiskScore       float64 `json:"risk_score"`
}

// Rank builds a risk profile for every equipment present in the record set
// and returns them sorted non-increasing by score, ties kept in first-seen
// order. Equipment with zero orders cannot appear (a profile only exists
// because at least one row named it). Top-N slicing is left to callers.
func Rank(records []RawRecord) []EquipmentProfile {
	byEq := make(map[string]*EquipmentProfile)
	critSum := make(map[string]float64)
	critCount := make(map[string]int)
	order := make([]string, 0)

	for _, rec := range records {
		eq := rec.Equipment()
		if eq == "" {
			continue
		}
		p, ok := byEq[eq]
		if !ok {
			p = &EquipmentProfile{Equipment: eq}
			byEq[eq] = p
			order = append(order, eq)
		}
		p.Orders++
		p.TotalCost += rec.Cost()

		switch ClassifyRaw(rec.MaintenanceType) {
		case CategoryCorrective:
			p.Correctives++
		case CategoryPreventive:
			p.Preventives++
		}

		if v, ok := ParseCriticality(rec.Criticality); ok {
			critSum[eq] += v
			critCount[eq]++
		}
	}

	var maxCost, maxCrit float64
	for _, eq := range order {
		p := byEq[eq]
		p.CorrectiveRatio = float64(p.Correctives) / float64(p.Orders) * 100
		if n := critCount[eq]; n > 0 {
			p.AvgCriticality = critSum[eq] / float64(n)
		}
		if p.TotalCost > maxCost {
			maxCost = p.TotalCost
		}
		if p.AvgCriticality > maxCrit {
			maxCrit = p.AvgCriticality
		}
	}

	out := make([]EquipmentProfile, 0, len(order))
	for _, eq := range order {
		p := byEq[eq]
		if maxCost > 0 {
			p.CostNorm = p.TotalCost / maxCost * 100
		}
		if maxCrit > 0 {
			p.CriticalityNorm = p.AvgCriticality / maxCrit * 100
		}
		p.RiskScore = weightCorrectiveRatio*p.CorrectiveRatio +
			weightCost*p.CostNorm +
			weightCriticality*p.CriticalityNorm
		out = append(out, *p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})
	return out
}
