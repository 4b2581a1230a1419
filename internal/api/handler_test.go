package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/analytics"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/errors"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type mockStore struct {
	dataset *models.Dataset
	err     error
}

func (m *mockStore) Dataset(ctx context.Context, path string) (*models.Dataset, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.dataset, nil
}

func testDataset() *models.Dataset {
	salary60 := 60.0
	salary90 := 90.0
	rating := 4.0
	return &models.Dataset{
		SourcePath: "jobs.csv",
		Postings: []models.JobPosting{
			{JobTitle: "Business Analyst", CompanyName: "A", Location: "NY", Industry: "Tech", AvgSalaryK: &salary60, Rating: &rating},
			{JobTitle: "Data Analyst", CompanyName: "B", Location: "NY", Industry: "Finance", AvgSalaryK: &salary90, EasyApply: true},
			{JobTitle: "Business Analyst", CompanyName: "A", Location: "LA", Industry: "Tech", Rating: &rating},
		},
	}
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func TestGetDashboard(t *testing.T) {
	handler := &Handler{store: &mockStore{dataset: testDataset()}, datasetPath: "jobs.csv", logger: zap.NewNop()}
	r := newTestRouter(handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var dash analytics.Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &dash); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if dash.Summary.TotalJobs != 3 {
		t.Errorf("total = %d, want 3", dash.Summary.TotalJobs)
	}
	if len(dash.JobsByLocation) != 2 {
		t.Errorf("locations = %v", dash.JobsByLocation)
	}
}

func TestGetDashboardFiltered(t *testing.T) {
	handler := &Handler{store: &mockStore{dataset: testDataset()}, datasetPath: "jobs.csv", logger: zap.NewNop()}
	r := newTestRouter(handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/dashboard?location=NY", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var dash analytics.Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &dash); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if dash.Summary.TotalJobs != 2 {
		t.Errorf("filtered total = %d, want 2", dash.Summary.TotalJobs)
	}
	if dash.EasyApply.True != 1 || dash.EasyApply.False != 1 {
		t.Errorf("easy apply = %+v", dash.EasyApply)
	}
}

func TestGetDashboardLoadFailure(t *testing.T) {
	handler := &Handler{
		store:       &mockStore{err: errors.DataLoad("dataset missing required column \"location\"", nil)},
		datasetPath: "jobs.csv",
		logger:      zap.NewNop(),
	}
	r := newTestRouter(handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503 for load failure, got %d", w.Code)
	}
}

func TestGetFacets(t *testing.T) {
	handler := &Handler{store: &mockStore{dataset: testDataset()}, datasetPath: "jobs.csv", logger: zap.NewNop()}
	r := newTestRouter(handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/facets", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var facets analytics.FacetOptions
	if err := json.Unmarshal(w.Body.Bytes(), &facets); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(facets.Locations) != 2 || facets.Locations[0] != "LA" {
		t.Errorf("locations = %v", facets.Locations)
	}
	if len(facets.Industries) != 2 {
		t.Errorf("industries = %v", facets.Industries)
	}
}
