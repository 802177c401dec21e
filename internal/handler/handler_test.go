package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"

	"route-spreadsheet-go/internal/geo"
	"route-spreadsheet-go/internal/repository"
	"route-spreadsheet-go/internal/route"
	"route-spreadsheet-go/internal/service"
	"route-spreadsheet-go/pkg/models"
)

type failingElevation struct{}

func (failingElevation) Augment(ctx context.Context, doc models.GeoJSON) (models.GeoJSON, error) {
	return nil, &models.NetworkError{Service: "высоты", Status: "503 Service Unavailable"}
}

type fixedClimate struct {
	observations []models.Observation
}

func (f fixedClimate) Augment(ctx context.Context, queries []models.Query) ([]models.Observation, error) {
	return f.observations, nil
}

type tableBody struct {
	RunID   string `json:"runId"`
	Name    string `json:"name"`
	Layout  string `json:"layout"`
	Columns []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"columns"`
	Rows     [][]any  `json:"rows"`
	Warnings []string `json:"warnings"`
}

func (b tableBody) keys() []string {
	out := make([]string, len(b.Columns))
	for i, c := range b.Columns {
		out[i] = c.Key
	}
	return out
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newRouter(climate fixedClimate, healthCheck func() error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := testLogger()

	spreadsheets := service.NewSpreadsheetService(failingElevation{}, route.NewParser(geo.NewCalculator()), nil, logger)
	climateService := service.NewClimateService(climate, nil, logger)

	router := gin.New()
	NewSpreadsheetHandler(spreadsheets, repository.NewMemoryRepository(), logger).RegisterRoutes(router)
	NewClimateHandler(climateService, logger).RegisterRoutes(router)
	NewHealthHandler(healthCheck, logger).RegisterRoutes(router)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

const segmentsBody = `{
  "name": "loop",
  "stripPrefix": true,
  "segments": [
    {"title": "2 - Ridge", "distance": 1609.344, "gain": null, "users": "hikers"},
    {"title": "1 - Trailhead", "distance": 1609.344, "gain": 100, "loss": 0}
  ]
}`

func TestCreateFromSegmentsSavesAndServesSpreadsheet(t *testing.T) {
	router := newRouter(fixedClimate{}, nil)

	rec := do(t, router, http.MethodPost, "/api/v1/spreadsheets", segmentsBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}
	created := decode[tableBody](t, rec)

	wantKeys := []string{"cumulativeDistance", "from", "to", "distance", "gain", "loss", "description", "users"}
	if diff := pretty.Diff(wantKeys, created.keys()); len(diff) > 0 {
		t.Errorf("columns mismatch: %v", diff)
	}
	if len(created.Rows) != 2 || created.Rows[0][1] != "Trailhead" || created.Rows[1][2] != "The End" {
		t.Errorf("unexpected rows: %v", created.Rows)
	}
	if created.Rows[1][4] != nil {
		t.Errorf("blank gain should be null, got %v", created.Rows[1][4])
	}

	rec = do(t, router, http.MethodGet, "/api/v1/spreadsheets/loop", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d, body %s", rec.Code, rec.Body.String())
	}
	stored := decode[tableBody](t, rec)
	if diff := pretty.Diff(created.keys(), stored.keys()); len(diff) > 0 {
		t.Errorf("stored columns mismatch: %v", diff)
	}
	if diff := pretty.Diff(created.Rows, stored.Rows); len(diff) > 0 {
		t.Errorf("stored rows mismatch: %v", diff)
	}

	rec = do(t, router, http.MethodGet, "/api/v1/spreadsheets?page=1&size=5", "")
	list := decode[ListSpreadsheetsResponse](t, rec)
	if list.Total != 1 || list.Spreadsheets[0].Name != "loop" || list.Spreadsheets[0].TotalRows != 2 {
		t.Errorf("unexpected list: %+v", list)
	}

	if rec = do(t, router, http.MethodDelete, "/api/v1/spreadsheets/loop", ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}
	if rec = do(t, router, http.MethodGet, "/api/v1/spreadsheets/loop", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCreateWithoutNameIsNotSaved(t *testing.T) {
	router := newRouter(fixedClimate{}, nil)

	rec := do(t, router, http.MethodPost, "/api/v1/spreadsheets", `{"segments":[{"title":"A","distance":100}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	list := decode[ListSpreadsheetsResponse](t, do(t, router, http.MethodGet, "/api/v1/spreadsheets", ""))
	if list.Total != 0 {
		t.Errorf("expected nothing saved, got %d", list.Total)
	}
}

func TestCreateFromGeoJSONReturnsWarnings(t *testing.T) {
	router := newRouter(fixedClimate{}, nil)
	body := `{"elevation": true, "geojson": {"type":"Feature","properties":{"title":"A"},"geometry":{"type":"LineString","coordinates":[[0,0],[0,0.01]]}}}`

	rec := do(t, router, http.MethodPost, "/api/v1/spreadsheets/geojson", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	got := decode[tableBody](t, rec)
	if len(got.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", got.Warnings)
	}
	if len(got.Rows) != 1 || got.Rows[0][1] != "A" {
		t.Errorf("unexpected rows: %v", got.Rows)
	}
}

func TestErrorStatuses(t *testing.T) {
	misaligned := fixedClimate{observations: []models.Observation{{}}}
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed body", http.MethodPost, "/api/v1/spreadsheets", `{"segments":`, http.StatusBadRequest},
		{"unknown layout", http.MethodPost, "/api/v1/spreadsheets", `{"layout":"grid","segments":[]}`, http.StatusBadRequest},
		{"negative distance", http.MethodPost, "/api/v1/spreadsheets", `{"segments":[{"title":"A","distance":-5}]}`, http.StatusBadRequest},
		{"missing geojson", http.MethodPost, "/api/v1/spreadsheets/geojson", `{}`, http.StatusBadRequest},
		{"null geojson", http.MethodPost, "/api/v1/spreadsheets/geojson", `{"geojson": null, "elevation": true}`, http.StatusBadRequest},
		{"unsupported geojson", http.MethodPost, "/api/v1/spreadsheets/geojson", `{"geojson":{"type":"Point","coordinates":[0,0]}}`, http.StatusUnprocessableEntity},
		{"bad latitude", http.MethodPost, "/api/v1/climate", `{"queries":[{"lat":95,"long":0,"date":"2020-01-01"}]}`, http.StatusBadRequest},
		{"misaligned climate", http.MethodPost, "/api/v1/climate", `{"queries":[{"lat":45,"long":-120,"date":"2020-01-01"},{"lat":46,"long":-120,"date":"2020-01-02"}]}`, http.StatusBadGateway},
		{"unknown spreadsheet", http.MethodDelete, "/api/v1/spreadsheets/missing", "", http.StatusNotFound},
	}

	router := newRouter(misaligned, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.status, rec.Body.String())
			}
			if body := decode[map[string]any](t, rec); body["error"] == nil {
				t.Errorf("expected error field, got %v", body)
			}
		})
	}
}

func TestClimate(t *testing.T) {
	router := newRouter(fixedClimate{observations: []models.Observation{{MaxTemp: models.Some(21.46)}}}, nil)

	rec := do(t, router, http.MethodPost, "/api/v1/climate", `{"queries":[{"lat":45,"long":-120,"date":"2020-07-01"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	got := decode[tableBody](t, rec)
	if len(got.Columns) != 10 || len(got.Rows) != 1 {
		t.Fatalf("unexpected table: %+v", got)
	}
	if got.Rows[0][0] != 45.0 || got.Rows[0][2] != "2020-07-01" {
		t.Errorf("unexpected query cells: %v", got.Rows[0])
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		check  func() error
		status int
	}{
		{"no database", nil, http.StatusOK},
		{"database up", func() error { return nil }, http.StatusOK},
		{"database down", func() error { return errors.New("connection refused") }, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(fixedClimate{}, tt.check), http.MethodGet, "/api/v1/health", "")
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{&models.ValidationError{Field: "layout"}, http.StatusBadRequest},
		{&models.ParseError{Service: "daymet", Err: errors.New("eof")}, http.StatusUnprocessableEntity},
		{&models.AlignmentError{Expected: 2, Got: 1}, http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", &models.NetworkError{Service: "высоты", Err: errors.New("timeout")}), http.StatusBadGateway},
		{fmt.Errorf("spreadsheet: %w", repository.ErrNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.status {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}
