// internal/handlers/http/targets_handler.go
// PUT /admin/targets

package http

import (
	"encoding/json"
	"net/http"

	"maint-kpi/internal/pipeline"
	"maint-kpi/internal/util"
)

type targetsResp struct {
	Targets  pipeline.Targets `json:"targets"`
	Degraded bool             `json:"degraded,omitempty"`
}

func SaveTargetsHandler(w http.ResponseWriter, r *http.Request) {
	if dashboardSvc == nil {
		http.Error(w, "dashboard service not configured", http.StatusServiceUnavailable)
		return
	}

	var in pipeline.Targets
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, util.BadInput("decode targets: "+err.Error()))
		return
	}
	if in.MTTR < 0 || in.MTBF < 0 || in.Availability < 0 || in.Availability > 100 {
		writeError(w, util.BadInput("targets out of range"))
		return
	}

	degraded, err := dashboardSvc.SaveTargets(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, targetsResp{Targets: in, Degraded: degraded})
}
