// internal/app/routes.go
package app

import (
	"net/http"

	"github.com/gorilla/mux"

	hh "maint-kpi/internal/handlers/http"
	"maint-kpi/internal/middleware"
)

// RegisterRoutes adds every HTTP route to the main router. Handlers
// pull their services from the package-level injection points.
func RegisterRoutes(r *mux.Router) {
	// --- no prefix ---
	r.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/metrics", hh.MetricsHandler).Methods(http.MethodGet)
	r.HandleFunc("/login", hh.LoginHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/debug/store", hh.StoreStatusHandler).Methods(http.MethodGet)

	// --- /api prefix (dashboard frontend) ---
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", hh.DashboardHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/insights", hh.InsightsHandler).Methods(http.MethodPost, http.MethodOptions)

	// Preflight catch-all
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(hh.PreflightHandler)

	// Admin (JWT protected): record ingestion, overrides, targets
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminJWTAuth)
	admin.HandleFunc("/records", hh.ReplaceRecordsHandler).Methods(http.MethodPost)
	admin.HandleFunc("/overrides/{series}", hh.SetOverrideHandler).Methods(http.MethodPut)
	admin.HandleFunc("/overrides/{series}", hh.ClearOverrideHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/targets", hh.SaveTargetsHandler).Methods(http.MethodPut)
}
