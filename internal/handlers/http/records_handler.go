// internal/handlers/http/records_handler.go
// POST /admin/records replaces the full raw record set.

package http

import (
	"encoding/json"
	"net/http"

	"maint-kpi/internal/pipeline"
	"maint-kpi/internal/util"
)

type recordsReq struct {
	Records []pipeline.RawRecord `json:"records"`
}

type recordsResp struct {
	Count    int  `json:"count"`
	Degraded bool `json:"degraded,omitempty"`
}

func ReplaceRecordsHandler(w http.ResponseWriter, r *http.Request) {
	if dashboardSvc == nil {
		http.Error(w, "dashboard service not configured", http.StatusServiceUnavailable)
		return
	}

	var in recordsReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, util.BadInput("decode records: "+err.Error()))
		return
	}

	degraded, err := dashboardSvc.ReplaceRecords(r.Context(), in.Records)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordsResp{Count: len(in.Records), Degraded: degraded})
}
