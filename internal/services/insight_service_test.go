// internal/services/insight_service_test.go
package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"maint-kpi/internal/util"
)

type stubLLM struct {
	answer string
	err    error
	gotSys string
	gotMsg string
}

func (s *stubLLM) Answer(ctx context.Context, system, prompt string) (string, error) {
	s.gotSys = system
	s.gotMsg = prompt
	return s.answer, s.err
}

func (s *stubLLM) Model() string { return "stub-model" }

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc := NewInsightService(nil)

	_, err := svc.Ask(context.Background(), "   ", reportView(t))
	if !util.IsBadInput(err) {
		t.Fatalf("err = %v, want bad_input", err)
	}
}

func TestAskOfflineSummary(t *testing.T) {
	svc := NewInsightService(nil)

	ans, err := svc.Ask(context.Background(), "how are we doing?", reportView(t))
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Model != "offline" {
		t.Fatalf("model = %q, want offline", ans.Model)
	}
	if !strings.Contains(ans.Answer, "3 work orders") {
		t.Fatalf("summary missing order count: %s", ans.Answer)
	}
	if !strings.Contains(ans.Answer, "Highest-risk equipment: P-101") {
		t.Fatalf("summary missing risk leader: %s", ans.Answer)
	}
}

func TestAskUsesClientAndGroundsPrompt(t *testing.T) {
	stub := &stubLLM{answer: "Corrective load is concentrated on P-101."}
	svc := NewInsightService(stub)

	ans, err := svc.Ask(context.Background(), "which equipment is riskiest?", reportView(t))
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Model != "stub-model" {
		t.Fatalf("model = %q, want stub-model", ans.Model)
	}
	if ans.Answer != stub.answer {
		t.Fatalf("answer = %q", ans.Answer)
	}
	if !strings.Contains(stub.gotMsg, "total_orders=3") {
		t.Fatalf("prompt missing snapshot context: %s", stub.gotMsg)
	}
	if !strings.Contains(stub.gotMsg, "which equipment is riskiest?") {
		t.Fatalf("prompt missing question: %s", stub.gotMsg)
	}
}

func TestAskFallsBackWhenClientFails(t *testing.T) {
	stub := &stubLLM{err: errors.New("rate limited")}
	svc := NewInsightService(stub)

	ans, err := svc.Ask(context.Background(), "summary please", reportView(t))
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Model != "offline" {
		t.Fatalf("model = %q, want offline fallback", ans.Model)
	}
}
