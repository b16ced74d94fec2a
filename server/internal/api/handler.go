package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/RekaCodes/anscombes-quartet/server/internal/analysis"
	"github.com/RekaCodes/anscombes-quartet/server/internal/dataset"
	"github.com/RekaCodes/anscombes-quartet/server/internal/store"
)

// Status values reported by health and summary payloads.
const (
	StatusOK          = "ok"
	StatusMissingData = "missing_data"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads the current snapshot from the store and returns JSON responses.
type Handler struct {
	store *store.Store
	mux   *http.ServeMux
}

// New creates a Handler wired to the given store and registers all routes.
func New(st *store.Store) http.Handler {
	h := &Handler{store: st, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/dataset", h.rawDataset)
	h.mux.HandleFunc("/api/v1/groups", h.listGroups)
	h.mux.HandleFunc("/api/v1/groups/", h.getGroup) // subtree, extracts {name}
	h.mux.HandleFunc("/api/v1/summary", h.summary)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health: 200 when data is loaded, 503 otherwise.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap := h.store.Current()
	resp := HealthResponse{
		Status:   StatusOK,
		Source:   snap.Path,
		Version:  snap.Version,
		LoadedAt: snap.LoadedAt.UTC().Format(time.RFC3339),
	}
	if !snap.OK() {
		resp.Status = StatusMissingData
		resp.Error = errString(snap)
		jsonResp(w, http.StatusServiceUnavailable, resp)
		return
	}
	jsonResp(w, http.StatusOK, resp)
}

// rawDataset returns GET /api/v1/dataset: the raw six-column table.
func (h *Handler) rawDataset(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loaded(w, r)
	if !ok {
		return
	}

	rows := make([][]float64, 0, snap.Dataset.Len())
	for _, row := range snap.Dataset.Rows {
		rows = append(rows, append([]float64(nil), row[:]...))
	}
	jsonResp(w, http.StatusOK, DatasetResponse{
		Source:  snap.Path,
		Version: snap.Version,
		Columns: append([]string(nil), dataset.Columns...),
		Rows:    rows,
	})
}

// listGroups returns GET /api/v1/groups: every group report with its points.
func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loaded(w, r)
	if !ok {
		return
	}
	jsonResp(w, http.StatusOK, GroupsResponse{
		Version: snap.Version,
		Groups:  snap.Report.Groups,
	})
}

// getGroup returns GET /api/v1/groups/{name}: one group report.
func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/groups/")
	if name == "" {
		h.listGroups(w, r)
		return
	}

	snap, ok := h.loaded(w, r)
	if !ok {
		return
	}
	g, found := snap.Report.Group(strings.ToUpper(name))
	if !found {
		jsonErr(w, http.StatusNotFound, "group not found")
		return
	}
	jsonResp(w, http.StatusOK, g)
}

// summary returns GET /api/v1/summary: describe tables, fits and the similar flag.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	resp := BuildSummary(h.store.Current())
	if resp.Status != StatusOK {
		jsonResp(w, http.StatusServiceUnavailable, resp)
		return
	}
	jsonResp(w, http.StatusOK, resp)
}

// --- helpers ----------------------------------------------------------------

// loaded enforces GET and returns the snapshot, writing a 405 or 503 and
// returning false when the request cannot be served.
func (h *Handler) loaded(w http.ResponseWriter, r *http.Request) (*store.Snapshot, bool) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}
	snap := h.store.Current()
	if !snap.OK() {
		jsonErr(w, http.StatusServiceUnavailable, errString(snap))
		return nil, false
	}
	return snap, true
}

// BuildSummary maps a snapshot to its summary payload. It is shared with the
// websocket hub so pushed events and GET /api/v1/summary have one schema.
func BuildSummary(snap *store.Snapshot) SummaryResponse {
	resp := SummaryResponse{
		Status:      StatusOK,
		Version:     snap.Version,
		LoadedAt:    snap.LoadedAt.UTC().Format(time.RFC3339),
		Groups:      []GroupSummary{},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if !snap.OK() {
		resp.Status = StatusMissingData
		resp.Error = errString(snap)
		return resp
	}

	for _, g := range snap.Report.Groups {
		resp.Groups = append(resp.Groups, GroupSummary{
			Name:      g.Name,
			X:         g.X,
			Y:         g.Y,
			VarianceX: g.VarianceX,
			VarianceY: g.VarianceY,
			Fit:       g.Fit,
			FitErr:    g.FitErr,
		})
	}
	resp.Similar = snap.Report.Similar(analysis.DefaultTolerance)
	return resp
}

func errString(snap *store.Snapshot) string {
	if snap.Err != nil {
		return snap.Err.Error()
	}
	return "dataset not loaded"
}

// jsonResp encodes v before writing the status line, so a value that cannot
// be encoded yields a 500 with an error body instead of an empty 200.
func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("api: encode response", "err", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to encode response"}` + "\n")) //nolint:errcheck
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
