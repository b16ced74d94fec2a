package pages

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/RekaCodes/anscombes-quartet/server/internal/analysis"
	"github.com/RekaCodes/anscombes-quartet/server/internal/config"
	"github.com/RekaCodes/anscombes-quartet/server/internal/dataset"
	"github.com/RekaCodes/anscombes-quartet/server/internal/metrics"
	"github.com/RekaCodes/anscombes-quartet/server/internal/render"
	"github.com/RekaCodes/anscombes-quartet/server/internal/stats"
	"github.com/RekaCodes/anscombes-quartet/server/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names, used as template names and as the page label of
// quartet_page_renders_total.
const (
	PageIndex    = "index"
	PageNotebook = "notebook"
	PageBasic    = "basic"
	PageAdvanced = "advanced"
	pageError    = "error"
)

// NotebookHeight is the iframe height of the embedded notebook, in pixels.
const NotebookHeight = 3200

// Version is one entry of the sidebar version selector.
type Version struct {
	Label       string
	Path        string
	Description string
}

// Versions lists the selectable views in sidebar order.
var Versions = []Version{
	{"Notebook", "/notebook", "loads the original notebook export."},
	{"Basic Viz", "/basic", "plain tables and static scatter charts."},
	{"Advanced Viz", "/advanced", "styled tables, trend lines on a shared scale and live reload."},
}

var funcs = template.FuncMap{
	// raw formats a data cell the way it appears in the csv.
	"raw": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	// desc formats a describe() cell.
	"desc": func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) },
	"f2":   func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"f3":   func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) },
}

// Handler serves the HTML views and the chart images.
type Handler struct {
	store    *store.Store
	notebook string
	charts   config.ChartsConfig
	trend    drawing.Color
	metrics  *metrics.Metrics // may be nil
	tmpl     map[string]*template.Template
	mux      *http.ServeMux
}

// New creates a Handler reading data from st and the notebook export from
// notebookPath. m may be nil.
func New(st *store.Store, notebookPath string, charts config.ChartsConfig, m *metrics.Metrics) (*Handler, error) {
	h := &Handler{
		store:    st,
		notebook: notebookPath,
		charts:   charts,
		trend:    render.ParseColor(charts.TrendColor),
		metrics:  m,
		tmpl:     make(map[string]*template.Template),
		mux:      http.NewServeMux(),
	}
	for _, name := range []string{PageIndex, PageNotebook, PageBasic, PageAdvanced, pageError} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("pages: parse %s: %w", name, err)
		}
		h.tmpl[name] = t
	}

	h.mux.HandleFunc("/", h.index)
	h.mux.HandleFunc("/notebook", h.notebookPage)
	h.mux.HandleFunc("/notebook/raw", h.notebookRaw)
	h.mux.HandleFunc("/basic", h.basic)
	h.mux.HandleFunc("/advanced", h.advanced)
	h.mux.HandleFunc("/charts/", h.chart)
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mux.ServeHTTP(w, r)
}

// --- view model -------------------------------------------------------------

// pageData is the root value passed to every template.
type pageData struct {
	Page     string
	Versions []Version

	Source  string
	Version uint64
	Error   string

	Columns []string
	Rows    []dataset.Row
	Groups  []groupView
	Similar bool

	NotebookHeight int
	ChartWidth     int
	ChartHeight    int
}

// groupView is one group prepared for display.
type groupView struct {
	analysis.GroupReport
	Describe []describeRow
	ChartURL string
}

// describeRow is one line of a describe() table with both columns.
type describeRow struct {
	Label string
	X, Y  float64
}

func describeRows(x, y stats.Summary) []describeRow {
	xr, yr := x.Rows(), y.Rows()
	out := make([]describeRow, len(xr))
	for i := range xr {
		out[i] = describeRow{Label: xr[i].Label, X: xr[i].Value, Y: yr[i].Value}
	}
	return out
}

func (h *Handler) base(page string) pageData {
	return pageData{
		Page:           page,
		Versions:       Versions,
		NotebookHeight: NotebookHeight,
		ChartWidth:     h.charts.Width,
		ChartHeight:    h.charts.Height,
	}
}

// dataPage fills d from snap; chartQuery selects the chart variant.
func (h *Handler) dataPage(d *pageData, snap *store.Snapshot, ext, chartQuery string) {
	d.Source = snap.Path
	d.Version = snap.Version
	d.Columns = dataset.Columns
	d.Rows = snap.Dataset.Rows
	d.Similar = snap.Report.Similar(analysis.DefaultTolerance)
	for _, g := range snap.Report.Groups {
		u := "/charts/" + g.Name + "." + ext
		if chartQuery != "" {
			u += "?" + chartQuery
		}
		d.Groups = append(d.Groups, groupView{
			GroupReport: g,
			Describe:    describeRows(g.X, g.Y),
			ChartURL:    u,
		})
	}
}

// --- route handlers ---------------------------------------------------------

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.render(w, http.StatusOK, PageIndex, h.base(PageIndex))
}

func (h *Handler) notebookPage(w http.ResponseWriter, r *http.Request) {
	d := h.base(PageNotebook)
	d.Source = h.notebook
	if _, err := os.Stat(h.notebook); err != nil {
		d.Error = notebookErr(h.notebook, err)
		h.render(w, http.StatusNotFound, PageNotebook, d)
		return
	}
	h.render(w, http.StatusOK, PageNotebook, d)
}

func (h *Handler) notebookRaw(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.notebook)
	if err != nil {
		http.Error(w, notebookErr(h.notebook, err), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data) //nolint:errcheck
}

func (h *Handler) basic(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	if !snap.OK() {
		h.renderError(w, PageBasic, snap)
		return
	}
	d := h.base(PageBasic)
	h.dataPage(&d, snap, render.FormatPNG, "")
	h.render(w, http.StatusOK, PageBasic, d)
}

func (h *Handler) advanced(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	if !snap.OK() {
		h.renderError(w, PageAdvanced, snap)
		return
	}
	d := h.base(PageAdvanced)
	h.dataPage(&d, snap, render.FormatSVG, "trend=1&fixed=1")
	h.render(w, http.StatusOK, PageAdvanced, d)
}

// chart serves /charts/{name}.{png|svg}.
func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	file := path.Base(r.URL.Path)
	ext := path.Ext(file)
	name := strings.ToUpper(strings.TrimSuffix(file, ext))
	format := strings.TrimPrefix(ext, ".")
	if format != render.FormatPNG && format != render.FormatSVG {
		http.NotFound(w, r)
		return
	}

	snap := h.store.Current()
	if !snap.OK() {
		http.Error(w, errString(snap), http.StatusServiceUnavailable)
		return
	}
	g, ok := snap.Report.Group(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	opts := render.Options{
		Format:     format,
		Width:      h.charts.Width,
		Height:     h.charts.Height,
		Title:      "Dataset " + g.Name,
		Trend:      q.Get("trend") == "1",
		TrendColor: h.trend,
		Fixed:      q.Get("fixed") == "1",
	}

	var buf bytes.Buffer
	if err := render.Scatter(&buf, g, opts); err != nil {
		slog.Error("chart render failed", "group", g.Name, "format", format, "err", err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	if h.metrics != nil {
		h.metrics.ChartRenders.WithLabelValues(format).Inc()
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes()) //nolint:errcheck
}

// --- helpers ----------------------------------------------------------------

// render executes the named page into a buffer so a template failure can
// still produce a clean 500.
func (h *Handler) render(w http.ResponseWriter, code int, page string, d pageData) {
	var buf bytes.Buffer
	if err := h.tmpl[page].ExecuteTemplate(&buf, "layout", d); err != nil {
		slog.Error("page render failed", "page", page, "err", err)
		http.Error(w, "page render failed", http.StatusInternalServerError)
		return
	}
	if h.metrics != nil {
		h.metrics.PageRenders.WithLabelValues(page).Inc()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// renderError shows the data error panel in place of page.
func (h *Handler) renderError(w http.ResponseWriter, page string, snap *store.Snapshot) {
	d := h.base(page)
	d.Source = snap.Path
	d.Version = snap.Version
	d.Error = errString(snap)
	h.render(w, http.StatusServiceUnavailable, pageError, d)
}

func errString(snap *store.Snapshot) string {
	if snap.Err != nil {
		return snap.Err.Error()
	}
	return "dataset not loaded"
}

func notebookErr(p string, err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("notebook %q not found", p)
	}
	return fmt.Sprintf("notebook %q: %v", p, err)
}
