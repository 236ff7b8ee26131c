// internal/handlers/http/deps.go
// Package-level handler dependencies, injected at startup.

package http

import (
	"encoding/json"
	"net/http"

	"maint-kpi/internal/services"
	"maint-kpi/internal/util"
)

var (
	dashboardSvc *services.DashboardService
	insightSvc   *services.InsightService
)

func SetDashboardService(s *services.DashboardService) { dashboardSvc = s }
func SetInsightService(s *services.InsightService)     { insightSvc = s }

// StoreStatus reports which dependencies are wired, for /debug/store.
func StoreStatus() map[string]any {
	status := map[string]any{
		"dashboard_service": dashboardSvc != nil,
		"insight_service":   insightSvc != nil,
	}
	if dashboardSvc != nil {
		status["primary_store"] = dashboardSvc.Primary.Name()
		if dashboardSvc.Fallback != nil {
			status["fallback_store"] = dashboardSvc.Fallback.Name()
		}
	}
	return status
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func errBadParam(name, value string) error {
	return util.BadInput("invalid " + name + ": " + value)
}

// writeError maps the application error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case util.IsBadInput(err):
		code = http.StatusBadRequest
	case util.IsStoreUnavailable(err):
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
