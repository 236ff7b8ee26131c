// internal/handlers/http/overrides_handler.go
// PUT/DELETE /admin/overrides/{series}

package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"maint-kpi/internal/util"
)

type overrideResp struct {
	Series   string `json:"series"`
	Degraded bool   `json:"degraded,omitempty"`
}

// SetOverrideHandler replaces a whole series with the JSON body.
func SetOverrideHandler(w http.ResponseWriter, r *http.Request) {
	if dashboardSvc == nil {
		http.Error(w, "dashboard service not configured", http.StatusServiceUnavailable)
		return
	}

	series := mux.Vars(r)["series"]

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || len(body) == 0 {
		writeError(w, util.BadInput("empty override payload"))
		return
	}

	degraded, err := dashboardSvc.SetOverride(r.Context(), series, json.RawMessage(body))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overrideResp{Series: series, Degraded: degraded})
}

// ClearOverrideHandler removes the override so the computed series
// shows again.
func ClearOverrideHandler(w http.ResponseWriter, r *http.Request) {
	if dashboardSvc == nil {
		http.Error(w, "dashboard service not configured", http.StatusServiceUnavailable)
		return
	}

	series := mux.Vars(r)["series"]

	degraded, err := dashboardSvc.ClearOverride(r.Context(), series)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overrideResp{Series: series, Degraded: degraded})
}
