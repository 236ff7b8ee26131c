// internal/server/router.go
// Export server: report and sheet endpoints on their own port.

package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"maint-kpi/internal/pipeline"
	"maint-kpi/internal/services"
	"maint-kpi/internal/util"
)

func NewRouter(dashboard *services.DashboardService, reports *services.ReportService, clock util.Clock) *chi.Mux {
	if clock == nil {
		clock = util.RealClock{}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	load := func(w http.ResponseWriter, r *http.Request) (services.DashboardView, bool) {
		view, err := dashboard.Dashboard(r.Context(), pipeline.Filter{})
		if err != nil {
			code := http.StatusInternalServerError
			if util.IsStoreUnavailable(err) {
				code = http.StatusServiceUnavailable
			}
			http.Error(w, err.Error(), code)
			return services.DashboardView{}, false
		}
		return view, true
	}

	r.Get("/export/report", func(w http.ResponseWriter, req *http.Request) {
		view, ok := load(w, req)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="maintenance-report.txt"`)
		w.Write([]byte(reports.BuildTextReport(view, clock.Now())))
	})

	r.Get("/export/summary", func(w http.ResponseWriter, req *http.Request) {
		view, ok := load(w, req)
		if !ok {
			return
		}
		writeRows(w, reports.SummarySheet(view))
	})

	r.Get("/export/monthly", func(w http.ResponseWriter, req *http.Request) {
		view, ok := load(w, req)
		if !ok {
			return
		}
		writeRows(w, reports.MonthlySheet(view))
	})

	r.Get("/export/reliability", func(w http.ResponseWriter, req *http.Request) {
		view, ok := load(w, req)
		if !ok {
			return
		}
		writeRows(w, reports.ReliabilitySheet(view))
	})

	return r
}

func writeRows(w http.ResponseWriter, rows [][]string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"rows": rows})
}
