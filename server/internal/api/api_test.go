package api_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RekaCodes/anscombes-quartet/server/internal/api"
	"github.com/RekaCodes/anscombes-quartet/server/internal/store"
)

const quartetCSV = `x123,y1,y2,y3,x4,y4
10.0,8.04,9.14,7.46,8.0,6.58
8.0,6.95,8.14,6.77,8.0,5.76
13.0,7.58,8.74,12.74,8.0,7.71
9.0,8.81,8.77,7.11,8.0,8.84
11.0,8.33,9.26,7.81,8.0,8.47
14.0,9.96,8.10,8.84,8.0,7.04
6.0,7.24,6.13,6.08,8.0,5.25
4.0,4.26,3.10,5.39,19.0,12.50
12.0,10.84,9.13,8.15,8.0,5.56
7.0,4.82,7.26,6.42,8.0,7.91
5.0,5.68,4.74,5.73,8.0,6.89
`

// --- test helpers -----------------------------------------------------------

// newStore returns a store backed by a temp file holding content;
// an empty content leaves the file absent.
func newStore(t *testing.T, content string) *store.Store {
	t.Helper()
	p := filepath.Join(t.TempDir(), "quartet.csv")
	if content != "" {
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write csv: %v", err)
		}
	}
	return store.New(p)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v (body: %s)", err, rr.Body.String())
	}
}

// --- /api/v1/health ---------------------------------------------------------

func TestHealth_OK(t *testing.T) {
	h := api.New(newStore(t, quartetCSV))
	rr := get(t, h, "/api/v1/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
	var resp api.HealthResponse
	decode(t, rr, &resp)
	if resp.Status != api.StatusOK {
		t.Errorf("status: got %q, want ok", resp.Status)
	}
	if resp.Version != 1 {
		t.Errorf("version: got %d, want 1", resp.Version)
	}
	if resp.Error != "" {
		t.Errorf("error: got %q, want empty", resp.Error)
	}
}

func TestHealth_MissingFile(t *testing.T) {
	h := api.New(newStore(t, ""))
	rr := get(t, h, "/api/v1/health")

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rr.Code)
	}
	var resp api.HealthResponse
	decode(t, rr, &resp)
	if resp.Status != api.StatusMissingData {
		t.Errorf("status: got %q, want missing_data", resp.Status)
	}
	if !strings.Contains(resp.Error, "not found") {
		t.Errorf("error: got %q, want mention of not found", resp.Error)
	}
}

func TestHealth_Malformed(t *testing.T) {
	h := api.New(newStore(t, "x123,y1\n1,2\n"))
	rr := get(t, h, "/api/v1/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rr.Code)
	}
	var resp api.HealthResponse
	decode(t, rr, &resp)
	if !strings.Contains(resp.Error, "malformed") {
		t.Errorf("error: got %q, want mention of malformed", resp.Error)
	}
}

// A NaN cell must surface as malformed data, never as a 200 with an empty body.
func TestNonFiniteCell_Reported(t *testing.T) {
	csv := strings.Replace(quartetCSV, "8.0,6.58\n", "8.0,NaN\n", 1)
	h := api.New(newStore(t, csv))

	for _, p := range []string{"/api/v1/health", "/api/v1/summary", "/api/v1/groups", "/api/v1/dataset"} {
		rr := get(t, h, p)
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status: got %d, want 503", p, rr.Code)
			continue
		}
		if !strings.Contains(rr.Body.String(), "malformed") {
			t.Errorf("%s body: got %q, want mention of malformed", p, rr.Body.String())
		}
	}
}

// --- /api/v1/dataset --------------------------------------------------------

func TestDataset(t *testing.T) {
	h := api.New(newStore(t, quartetCSV))
	rr := get(t, h, "/api/v1/dataset")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp api.DatasetResponse
	decode(t, rr, &resp)

	want := []string{"x123", "y1", "y2", "y3", "x4", "y4"}
	if strings.Join(resp.Columns, ",") != strings.Join(want, ",") {
		t.Errorf("columns: got %v, want %v", resp.Columns, want)
	}
	if len(resp.Rows) != 11 {
		t.Fatalf("rows: got %d, want 11", len(resp.Rows))
	}
	if resp.Rows[7][4] != 19 {
		t.Errorf("rows[7].x4: got %v, want 19", resp.Rows[7][4])
	}
}

func TestDataset_MissingFile(t *testing.T) {
	h := api.New(newStore(t, ""))
	rr := get(t, h, "/api/v1/dataset")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rr.Code)
	}
	var resp map[string]interface{}
	decode(t, rr, &resp)
	if resp["error"] == nil || resp["error"] == "" {
		t.Error("error: missing from body")
	}
}

// --- /api/v1/groups ---------------------------------------------------------

func TestListGroups(t *testing.T) {
	h := api.New(newStore(t, quartetCSV))
	rr := get(t, h, "/api/v1/groups")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp struct {
		Groups []struct {
			Name   string `json:"name"`
			Points []struct {
				X, Y float64
			} `json:"points"`
			Fit *struct {
				Slope     float64 `json:"slope"`
				Intercept float64 `json:"intercept"`
			} `json:"fit"`
		} `json:"groups"`
	}
	decode(t, rr, &resp)
	if len(resp.Groups) != 4 {
		t.Fatalf("groups: got %d, want 4", len(resp.Groups))
	}
	for i, name := range []string{"I", "II", "III", "IV"} {
		g := resp.Groups[i]
		if g.Name != name {
			t.Errorf("groups[%d].name: got %q, want %q", i, g.Name, name)
		}
		if len(g.Points) != 11 {
			t.Errorf("%s points: got %d, want 11", name, len(g.Points))
		}
		if g.Fit == nil || math.Abs(g.Fit.Slope-0.5) > 1e-3 {
			t.Errorf("%s fit: got %+v, want slope ≈0.5", name, g.Fit)
		}
	}
}

func TestGetGroup(t *testing.T) {
	h := api.New(newStore(t, quartetCSV))
	rr := get(t, h, "/api/v1/groups/iv")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp map[string]interface{}
	decode(t, rr, &resp)
	if resp["name"] != "IV" {
		t.Errorf("name: got %v, want IV", resp["name"])
	}
	x := resp["x"].(map[string]interface{})
	if x["max"].(float64) != 19 {
		t.Errorf("x.max: got %v, want 19", x["max"])
	}
}

func TestGetGroup_NotFound(t *testing.T) {
	h := api.New(newStore(t, quartetCSV))
	rr := get(t, h, "/api/v1/groups/V")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestGetGroup_TrailingSlashLists(t *testing.T) {
	h := api.New(newStore(t, quartetCSV))
	rr := get(t, h, "/api/v1/groups/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp api.GroupsResponse
	decode(t, rr, &resp)
	if len(resp.Groups) != 4 {
		t.Errorf("groups: got %d, want 4", len(resp.Groups))
	}
}

// --- /api/v1/summary --------------------------------------------------------

func TestSummary(t *testing.T) {
	h := api.New(newStore(t, quartetCSV))
	rr := get(t, h, "/api/v1/summary")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp api.SummaryResponse
	decode(t, rr, &resp)
	if !resp.Similar {
		t.Error("similar: got false, want true")
	}
	if len(resp.Groups) != 4 {
		t.Fatalf("groups: got %d, want 4", len(resp.Groups))
	}
	for _, g := range resp.Groups {
		if math.Abs(g.X.Mean-9) > 1e-9 || math.Abs(g.Y.Mean-7.5) > 5e-3 {
			t.Errorf("%s means: got %v/%v, want 9/7.5", g.Name, g.X.Mean, g.Y.Mean)
		}
		if g.Fit == nil || math.Abs(g.Fit.Intercept-3) > 5e-3 {
			t.Errorf("%s intercept: got %+v, want ≈3.00", g.Name, g.Fit)
		}
	}
	if resp.GeneratedAt == "" {
		t.Error("generated_at: missing")
	}
}

func TestSummary_MissingFile(t *testing.T) {
	h := api.New(newStore(t, ""))
	rr := get(t, h, "/api/v1/summary")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rr.Code)
	}
	var resp api.SummaryResponse
	decode(t, rr, &resp)
	if resp.Status != api.StatusMissingData || resp.Error == "" {
		t.Errorf("got status %q error %q, want missing_data with message", resp.Status, resp.Error)
	}
}

// --- method checks ----------------------------------------------------------

func TestMethodNotAllowed(t *testing.T) {
	h := api.New(newStore(t, quartetCSV))
	paths := []string{
		"/api/v1/health",
		"/api/v1/dataset",
		"/api/v1/groups",
		"/api/v1/groups/I",
		"/api/v1/summary",
	}
	for _, p := range paths {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, p, nil))
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s: got %d, want 405", p, rr.Code)
		}
	}
}
