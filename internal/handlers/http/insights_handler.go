// internal/handlers/http/insights_handler.go
// POST /api/insights answers a question about the current snapshot.

package http

import (
	"encoding/json"
	"net/http"

	"maint-kpi/internal/util"
)

type insightsReq struct {
	Question string `json:"question"`
}

func InsightsHandler(w http.ResponseWriter, r *http.Request) {
	if dashboardSvc == nil || insightSvc == nil {
		http.Error(w, "insights not configured", http.StatusServiceUnavailable)
		return
	}

	var in insightsReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, util.BadInput("decode question: "+err.Error()))
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

	answer, err := insightSvc.Ask(r.Context(), in.Question, view)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}
