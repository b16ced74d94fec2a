package api

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONResp_EncodeFailureIs500(t *testing.T) {
	rr := httptest.NewRecorder()
	jsonResp(rr, http.StatusOK, map[string]float64{"mean": math.NaN()})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
	if !strings.Contains(rr.Body.String(), `"error"`) {
		t.Errorf("body: got %q, want an error object", rr.Body.String())
	}
}

func TestJSONResp_OK(t *testing.T) {
	rr := httptest.NewRecorder()
	jsonResp(rr, http.StatusCreated, map[string]int{"n": 1})

	if rr.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"n":1}` {
		t.Errorf("body: got %q, want {\"n\":1}", got)
	}
}
