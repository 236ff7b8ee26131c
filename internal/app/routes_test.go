// internal/app/routes_test.go
package app_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	apppkg "maint-kpi/internal/app"
	hh "maint-kpi/internal/handlers/http"
	"maint-kpi/internal/middleware"
	"maint-kpi/internal/repositories/localstore"
	"maint-kpi/internal/services"
	"maint-kpi/internal/util"
)

func testRouter(t *testing.T) *mux.Router {
	t.Helper()

	store := localstore.New(filepath.Join(t.TempDir(), "snapshot.json"))
	hh.SetDashboardService(services.NewDashboardService(store, nil, util.RealClock{}))
	hh.SetInsightService(services.NewInsightService(nil))

	r := mux.NewRouter()
	apppkg.RegisterRoutes(r)
	return r
}

// /admin/* must reject requests without credentials.
func TestAdminRoutesProtected(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "test-secret")
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/records", strings.NewReader(`{"records":[]}`))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Fatalf("expected non-200 for protected admin route, got 200")
	}
}

// Sanity check: public endpoints stay 200.
func TestPublicRoutesHealthy(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on /healthz, got %d", rec.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on /api/dashboard, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"kpis"`) {
		t.Fatalf("dashboard body missing kpis: %s", rec.Body.String())
	}
}

func TestDashboardRejectsBadMonth(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?month=13", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month=13, got %d", rec.Code)
	}
}

func TestAdminRoutesWithToken(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_USER", "admin")
	r := testRouter(t)

	token, _, err := middleware.GenerateAdminToken()
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/admin/targets", strings.NewReader(`{"mttr":4,"mtbf":900,"availability":96}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOverrideLifecycleOverHTTP(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_USER", "admin")
	r := testRouter(t)

	token, _, err := middleware.GenerateAdminToken()
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	put := httptest.NewRequest(http.MethodPut, "/admin/overrides/mttr", strings.NewReader(`[1.5, 2.5, 3.5]`))
	put.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, put)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT override: got %d: %s", rec.Code, rec.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, get)
	if !strings.Contains(rec.Body.String(), `"mttr":[1.5,2.5,3.5]`) {
		t.Fatalf("override not reflected: %s", rec.Body.String())
	}

	del := httptest.NewRequest(http.MethodDelete, "/admin/overrides/mttr", nil)
	del.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, del)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE override: got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOverrideRejectsUnknownSeries(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_USER", "admin")
	r := testRouter(t)

	token, _, err := middleware.GenerateAdminToken()
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	put := httptest.NewRequest(http.MethodPut, "/admin/overrides/bogus", strings.NewReader(`[1]`))
	put.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, put)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown series, got %d", rec.Code)
	}
}
