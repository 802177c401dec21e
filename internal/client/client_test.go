package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"

	"route-spreadsheet-go/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// elevationClientFor направляет клиент на тестовый сервер
func elevationClientFor(t *testing.T, srv *httptest.Server) *ElevationClient {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatal(err)
	}
	return NewElevationClient(u.Hostname(), port, u.Scheme, testLogger())
}

func TestElevationClientDefaultsURL(t *testing.T) {
	c := NewElevationClient("elevation-service-hosted.now.sh", 443, "https", testLogger())
	if c.URL() != "https://elevation-service-hosted.now.sh:443/" {
		t.Errorf("unexpected url %s", c.URL())
	}
}

func TestElevationClientAugment(t *testing.T) {
	const input = `{"type":"LineString","coordinates":[[0,0],[0,1]]}`
	const enriched = `{"type":"LineString","coordinates":[[0,0,12],[0,1,40]]}`
	var requests int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.Method != http.MethodPost || r.URL.Path != "/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" || r.Header.Get("Content-Type") != "text/plain" {
			t.Errorf("unexpected headers %v", r.Header)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != input {
			t.Errorf("unexpected body %s", body)
		}
		fmt.Fprint(w, enriched)
	}))
	defer srv.Close()

	got, err := elevationClientFor(t, srv).Augment(context.Background(), models.GeoJSON(input))
	if err != nil {
		t.Fatalf("Augment: %v", err)
	}
	if string(got) != enriched {
		t.Errorf("unexpected document %s", got)
	}
	if requests != 1 {
		t.Errorf("expected exactly one request, got %d", requests)
	}
}

func TestElevationClientErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "busy", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := elevationClientFor(t, srv).Augment(context.Background(), models.GeoJSON(`{}`))
		var nerr *models.NetworkError
		if !errors.As(err, &nerr) {
			t.Fatalf("expected NetworkError, got %v", err)
		}
		if nerr.Status != "503 Service Unavailable" {
			t.Errorf("status = %q", nerr.Status)
		}
	})

	t.Run("status with truncated body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "100")
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, "short")
		}))
		defer srv.Close()

		_, err := elevationClientFor(t, srv).Augment(context.Background(), models.GeoJSON(`{}`))
		var nerr *models.NetworkError
		if !errors.As(err, &nerr) {
			t.Fatalf("expected NetworkError, got %v", err)
		}
		if nerr.Status != "502 Bad Gateway" {
			t.Errorf("status = %q, want 502 Bad Gateway", nerr.Status)
		}
	})

	t.Run("body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>not json</html>")
		}))
		defer srv.Close()

		_, err := elevationClientFor(t, srv).Augment(context.Background(), models.GeoJSON(`{}`))
		var perr *models.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected ParseError, got %v", err)
		}
	})

	t.Run("transport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		c := elevationClientFor(t, srv)
		srv.Close()

		_, err := c.Augment(context.Background(), models.GeoJSON(`{}`))
		var nerr *models.NetworkError
		if !errors.As(err, &nerr) || nerr.Status != "" {
			t.Fatalf("expected transport NetworkError, got %v", err)
		}
	})
}

func TestDaymetClientAugment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/single-pixel/api/data" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("start") != q.Get("end") || q.Get("format") != "json" {
			t.Errorf("unexpected query %v", q)
		}
		// температура зависит от широты, чтобы проверить порядок ответов
		lat, _ := strconv.ParseFloat(q.Get("lat"), 64)
		fmt.Fprintf(w, `{"data": {"year": [2019], "yday": [32], "tmax (deg c)": [%g], "prcp (mm/day)": [1.5], "swe (kg/m^2)": []}}`, lat)
	}))
	defer srv.Close()

	queries := []models.Query{
		{Lat: 10, Long: -100, Date: "2019-02-01"},
		{Lat: 20, Long: -100, Date: "2019-02-01"},
		{Lat: 30, Long: -100, Date: "2019-02-01"},
	}

	got, err := NewDaymetClient(srv.URL+"/", 2, testLogger()).Augment(context.Background(), queries)
	if err != nil {
		t.Fatalf("Augment: %v", err)
	}

	expect := []models.Observation{
		{MaxTemp: models.Some(10), Precipitation: models.Some(1.5)},
		{MaxTemp: models.Some(20), Precipitation: models.Some(1.5)},
		{MaxTemp: models.Some(30), Precipitation: models.Some(1.5)},
	}
	if diff := pretty.Diff(expect, got); len(diff) > 0 {
		t.Errorf("unexpected observations: %v", diff)
	}
}

func TestDaymetClientFailureAbortsBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "20.000000" {
			http.Error(w, "out of range", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"data": {"tmax (deg c)": [1]}}`)
	}))
	defer srv.Close()

	queries := []models.Query{
		{Lat: 10, Long: -100, Date: "2019-02-01"},
		{Lat: 20, Long: -100, Date: "2019-02-01"},
	}

	got, err := NewDaymetClient(srv.URL, 1, testLogger()).Augment(context.Background(), queries)
	var nerr *models.NetworkError
	if !errors.As(err, &nerr) || nerr.Status != "400 Bad Request" {
		t.Fatalf("expected NetworkError with status, got %v", err)
	}
	if got != nil {
		t.Errorf("no partial result expected, got %v", got)
	}
}

func TestDaymetClientParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"geometry": {}}`)
	}))
	defer srv.Close()

	_, err := NewDaymetClient(srv.URL, 1, testLogger()).Augment(context.Background(), []models.Query{{Lat: 1, Long: 1, Date: "2019-01-01"}})
	var perr *models.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
