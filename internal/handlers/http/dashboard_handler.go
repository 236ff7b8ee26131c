// internal/handlers/http/dashboard_handler.go
// GET /api/dashboard with optional year/month filter.

package http

import (
	"net/http"
	"strconv"
	"time"

	"maint-kpi/internal/pipeline"
)

// parseFilter pulls the optional year/month query params. month accepts
// 1..12 only; both default to unconstrained.
func parseFilter(r *http.Request) (pipeline.Filter, error) {
	var f pipeline.Filter

	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 {
			return f, errBadParam("year", raw)
		}
		f.Year = year
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return f, errBadParam("month", raw)
		}
		f.Month = time.Month(month)
	}
	return f, nil
}

func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	if dashboardSvc == nil {
		http.Error(w, "dashboard service not configured", http.StatusServiceUnavailable)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := dashboardSvc.Dashboard(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
