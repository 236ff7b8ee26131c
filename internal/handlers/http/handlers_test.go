// internal/handlers/http/handlers_test.go
package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"maint-kpi/internal/pipeline"
	"maint-kpi/internal/repositories/localstore"
	"maint-kpi/internal/services"
	"maint-kpi/internal/util"
)

func wireHandlers(t *testing.T) {
	t.Helper()

	store := localstore.New(filepath.Join(t.TempDir(), "snapshot.json"))
	err := store.ReplaceRecords(context.Background(), []pipeline.RawRecord{
		{Date: "05/01/2024", EquipmentID: "P-101", MaintenanceType: "7", State: "Iniciada", MaterialCost: "150,00"},
		{Date: "10/02/2024", EquipmentID: "C-202", MaintenanceType: "10", State: "Liberada", MaterialCost: "80,00"},
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	clock := util.FixedClock{T: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)}
	SetDashboardService(services.NewDashboardService(store, nil, clock))
	SetInsightService(services.NewInsightService(nil))
}

func TestDashboardHandlerOK(t *testing.T) {
	wireHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	DashboardHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"total_orders":2`) {
		t.Fatalf("body missing totals: %s", body)
	}
	if !strings.Contains(body, `"source":"local"`) {
		t.Fatalf("body missing source: %s", body)
	}
}

func TestDashboardHandlerFiltersByYear(t *testing.T) {
	wireHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?year=2023", nil)
	rec := httptest.NewRecorder()
	DashboardHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total_orders":0`) {
		t.Fatalf("2023 filter should match nothing: %s", rec.Body.String())
	}
}

func TestDashboardHandlerBadYear(t *testing.T) {
	wireHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?year=abc", nil)
	rec := httptest.NewRecorder()
	DashboardHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestInsightsHandlerOffline(t *testing.T) {
	wireHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/insights", strings.NewReader(`{"question":"how many orders?"}`))
	rec := httptest.NewRecorder()
	InsightsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"model":"offline"`) {
		t.Fatalf("expected offline answer: %s", rec.Body.String())
	}
}

func TestInsightsHandlerEmptyQuestion(t *testing.T) {
	wireHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/insights", strings.NewReader(`{"question":""}`))
	rec := httptest.NewRecorder()
	InsightsHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestSetOverrideHandlerUnknownSeries(t *testing.T) {
	wireHandlers(t)

	r := mux.NewRouter()
	r.HandleFunc("/admin/overrides/{series}", SetOverrideHandler).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/admin/overrides/bogus", strings.NewReader(`[1]`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestReplaceRecordsHandler(t *testing.T) {
	wireHandlers(t)

	body := `{"records":[{"date":"01/06/2024","equipment_id":"B-300","maintenance_type":"22"}]}`
	req := httptest.NewRequest(http.MethodPost, "/admin/records", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ReplaceRecordsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Fatalf("body = %s", rec.Body.String())
	}

	// The new snapshot replaces the old one wholesale.
	get := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec = httptest.NewRecorder()
	DashboardHandler(rec, get)
	if !strings.Contains(rec.Body.String(), `"total_orders":1`) {
		t.Fatalf("dashboard not refreshed: %s", rec.Body.String())
	}
}

func TestSaveTargetsHandlerValidation(t *testing.T) {
	wireHandlers(t)

	req := httptest.NewRequest(http.MethodPut, "/admin/targets", strings.NewReader(`{"availability":150}`))
	rec := httptest.NewRecorder()
	SaveTargetsHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestStoreStatusHandler(t *testing.T) {
	wireHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/debug/store", nil)
	rec := httptest.NewRecorder()
	StoreStatusHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"primary_store":"local"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
