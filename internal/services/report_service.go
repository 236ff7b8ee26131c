// internal/services/report_service.go
package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"maint-kpi/internal/pipeline"
)

// ReportService renders a dashboard result into export formats: a
// plain-text management report and tabular sheets for spreadsheet
// export.
type ReportService struct{}

func NewReportService() *ReportService { return &ReportService{} }

var monthLabels = [pipeline.MonthlySlots]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// BuildTextReport renders the snapshot as a plain-text report.
func (r *ReportService) BuildTextReport(view DashboardView, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "MAINTENANCE KPI REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Source: %s", view.Source)
	if view.Degraded {
		b.WriteString(" (degraded)")
	}
	b.WriteString("\n\n")

	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "  Total orders:        %d\n", view.KPIs.TotalOrders)
	fmt.Fprintf(&b, "  Correctives:         %d\n", view.KPIs.Correctives)
	fmt.Fprintf(&b, "  Preventives:         %d (%d overdue)\n", view.KPIs.Preventives, view.KPIs.OverduePreventives)
	fmt.Fprintf(&b, "  Predictives:         %d\n", view.KPIs.Predictives)
	fmt.Fprintf(&b, "  Improvements:        %d\n", view.KPIs.Improvements)
	fmt.Fprintf(&b, "  Equipment tracked:   %d\n", view.KPIs.Equipment)
	fmt.Fprintf(&b, "  Total cost:          %.2f\n", view.KPIs.TotalCost)
	fmt.Fprintf(&b, "  Availability:        %.1f%% (target %.1f%%)\n\n", view.KPIs.Availability, view.Targets.Availability)

	b.WriteString("MONTHLY COST\n")
	for i, label := range monthLabels {
		if i < len(view.Monthly.Costs) && view.Monthly.Costs[i] > 0 {
			fmt.Fprintf(&b, "  %s: %.2f\n", label, view.Monthly.Costs[i])
		}
	}
	b.WriteString("\n")

	b.WriteString("RELIABILITY\n")
	for i, v := range view.MTTR {
		fmt.Fprintf(&b, "  MTTR Q%d: %.1f h\n", i+1, v)
	}
	for i, v := range view.MTBF {
		if i < len(monthLabels) {
			fmt.Fprintf(&b, "  MTBF %s: %.0f h\n", monthLabels[i], v)
		}
	}
	b.WriteString("\n")

	if len(view.RiskRanking) > 0 {
		b.WriteString("TOP RISK EQUIPMENT\n")
		limit := 5
		if len(view.RiskRanking) < limit {
			limit = len(view.RiskRanking)
		}
		for _, p := range view.RiskRanking[:limit] {
			fmt.Fprintf(&b, "  %-20s score %.1f (%d orders, %d corrective)\n",
				p.Equipment, p.RiskScore, p.Orders, p.Correctives)
		}
	}

	return b.String()
}

// SummarySheet returns the KPI summary as label/value rows.
func (r *ReportService) SummarySheet(view DashboardView) [][]string {
	rows := [][]string{
		{"Metric", "Value"},
		{"Total orders", fmt.Sprintf("%d", view.KPIs.TotalOrders)},
		{"Correctives", fmt.Sprintf("%d", view.KPIs.Correctives)},
		{"Preventives", fmt.Sprintf("%d", view.KPIs.Preventives)},
		{"Overdue preventives", fmt.Sprintf("%d", view.KPIs.OverduePreventives)},
		{"Predictives", fmt.Sprintf("%d", view.KPIs.Predictives)},
		{"Improvements", fmt.Sprintf("%d", view.KPIs.Improvements)},
		{"Equipment", fmt.Sprintf("%d", view.KPIs.Equipment)},
		{"Total cost", fmt.Sprintf("%.2f", view.KPIs.TotalCost)},
		{"Availability %", fmt.Sprintf("%.1f", view.KPIs.Availability)},
	}
	return rows
}

// MonthlySheet returns one row per month with cost, corrective count
// and per-status counts.
func (r *ReportService) MonthlySheet(view DashboardView) [][]string {
	header := []string{"Month", "Cost", "Correctives"}
	statuses := make([]pipeline.Status, 0, len(view.Monthly.Status))
	for s := range view.Monthly.Status {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	for _, s := range statuses {
		header = append(header, string(s))
	}

	rows := [][]string{header}
	for i, label := range monthLabels {
		row := []string{label}
		if i < len(view.Monthly.Costs) {
			row = append(row, fmt.Sprintf("%.2f", view.Monthly.Costs[i]))
		} else {
			row = append(row, "0.00")
		}
		if i < len(view.Monthly.Correctives) {
			row = append(row, fmt.Sprintf("%d", view.Monthly.Correctives[i]))
		} else {
			row = append(row, "0")
		}
		for _, s := range statuses {
			series := view.Monthly.Status[s]
			if i < len(series) {
				row = append(row, fmt.Sprintf("%d", series[i]))
			} else {
				row = append(row, "0")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ReliabilitySheet returns the MTTR per quarter and MTBF per month.
func (r *ReportService) ReliabilitySheet(view DashboardView) [][]string {
	rows := [][]string{{"Period", "Metric", "Hours"}}
	for i, v := range view.MTTR {
		rows = append(rows, []string{fmt.Sprintf("Q%d", i+1), "MTTR", fmt.Sprintf("%.1f", v)})
	}
	for i, v := range view.MTBF {
		label := fmt.Sprintf("M%d", i+1)
		if i < len(monthLabels) {
			label = monthLabels[i]
		}
		rows = append(rows, []string{label, "MTBF", fmt.Sprintf("%.0f", v)})
	}
	return rows
}
