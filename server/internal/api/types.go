package api

import (
	"github.com/RekaCodes/anscombes-quartet/server/internal/analysis"
	"github.com/RekaCodes/anscombes-quartet/server/internal/stats"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status   string `json:"status"` // "ok" | "missing_data"
	Source   string `json:"source"`
	Version  uint64 `json:"version"`
	LoadedAt string `json:"loaded_at"` // RFC3339
	Error    string `json:"error,omitempty"`
}

// DatasetResponse is the payload for GET /api/v1/dataset: the raw table.
type DatasetResponse struct {
	Source  string      `json:"source"`
	Version uint64      `json:"version"`
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// GroupsResponse is the payload for GET /api/v1/groups.
type GroupsResponse struct {
	Version uint64                 `json:"version"`
	Groups  []analysis.GroupReport `json:"groups"`
}

// GroupSummary is one group's describe tables and fit, without the raw points.
type GroupSummary struct {
	Name      string        `json:"name"`
	X         stats.Summary `json:"x"`
	Y         stats.Summary `json:"y"`
	VarianceX float64       `json:"variance_x"`
	VarianceY float64       `json:"variance_y"`
	Fit       *stats.Line   `json:"fit,omitempty"`
	FitErr    string        `json:"fit_error,omitempty"`
}

// SummaryResponse is the payload for GET /api/v1/summary and the data of
// every websocket "dataset" event.
type SummaryResponse struct {
	Status      string         `json:"status"`
	Version     uint64         `json:"version"`
	LoadedAt    string         `json:"loaded_at"` // RFC3339
	Similar     bool           `json:"similar"`
	Groups      []GroupSummary `json:"groups"`
	Error       string         `json:"error,omitempty"`
	GeneratedAt string         `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
