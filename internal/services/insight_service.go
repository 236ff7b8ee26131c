// internal/services/insight_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"maint-kpi/internal/llm"
	"maint-kpi/internal/util"
)

// InsightService answers free-form questions about the current
// dashboard. With an LLM client configured it sends the snapshot as
// grounding context; without one it falls back to a deterministic
// summary so the endpoint keeps working offline.
type InsightService struct {
	Client llm.Client
}

func NewInsightService(client llm.Client) *InsightService {
	return &InsightService{Client: client}
}

const insightSystemPrompt = `You are a maintenance analytics assistant.
Answer strictly from the KPI snapshot provided. Quote concrete numbers.
If the snapshot does not contain the answer, say so. Keep answers short.`

// InsightAnswer is the response payload of the insights endpoint.
type InsightAnswer struct {
	Answer string `json:"answer"`
	Model  string `json:"model"`
}

// Ask answers the question against the given snapshot.
func (s *InsightService) Ask(ctx context.Context, question string, view DashboardView) (InsightAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return InsightAnswer{}, util.BadInput("question is empty")
	}

	if s.Client == nil {
		return InsightAnswer{Answer: summarize(view), Model: "offline"}, nil
	}

	prompt := fmt.Sprintf("KPI snapshot:\n%s\n\nQuestion: %s", snapshotContext(view), question)
	answer, err := s.Client.Answer(ctx, insightSystemPrompt, prompt)
	if err != nil {
		log.Printf("[WARN] insight completion failed, serving offline summary: %v", err)
		return InsightAnswer{Answer: summarize(view), Model: "offline"}, nil
	}
	return InsightAnswer{Answer: answer, Model: s.Client.Model()}, nil
}

// snapshotContext flattens the view into a compact text block for the
// model prompt.
func snapshotContext(view DashboardView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "total_orders=%d correctives=%d preventives=%d overdue_preventives=%d\n",
		view.KPIs.TotalOrders, view.KPIs.Correctives, view.KPIs.Preventives, view.KPIs.OverduePreventives)
	fmt.Fprintf(&b, "predictives=%d improvements=%d equipment=%d\n",
		view.KPIs.Predictives, view.KPIs.Improvements, view.KPIs.Equipment)
	fmt.Fprintf(&b, "total_cost=%.2f availability=%.1f%% availability_target=%.1f%%\n",
		view.KPIs.TotalCost, view.KPIs.Availability, view.Targets.Availability)
	fmt.Fprintf(&b, "mttr_quarters=%v mtbf_months=%v\n", view.MTTR, view.MTBF)
	for i, p := range view.RiskRanking {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "risk[%d]=%s score=%.1f orders=%d correctives=%d\n",
			i+1, p.Equipment, p.RiskScore, p.Orders, p.Correctives)
	}
	return b.String()
}

// summarize produces the offline answer: the headline numbers plus the
// riskiest equipment.
func summarize(view DashboardView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Snapshot summary: %d work orders (%d corrective, %d preventive, %d overdue preventive) across %d equipment units. ",
		view.KPIs.TotalOrders, view.KPIs.Correctives, view.KPIs.Preventives, view.KPIs.OverduePreventives, view.KPIs.Equipment)
	fmt.Fprintf(&b, "Total cost %.2f, estimated availability %.1f%% against a %.1f%% target.",
		view.KPIs.TotalCost, view.KPIs.Availability, view.Targets.Availability)
	if len(view.RiskRanking) > 0 {
		top := view.RiskRanking[0]
		fmt.Fprintf(&b, " Highest-risk equipment: %s (score %.1f, %d of %d orders corrective).",
			top.Equipment, top.RiskScore, top.Correctives, top.Orders)
	}
	return b.String()
}
