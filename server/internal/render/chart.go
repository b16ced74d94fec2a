// Package render draws the per-group scatter charts with go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/RekaCodes/anscombes-quartet/server/internal/analysis"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Fixed axis bounds used by the advanced view, so all four charts share a scale.
const (
	AxisMin = 0.0
	AxisMax = 20.0
)

// ErrFormat is returned for an output format other than png or svg.
var ErrFormat = errors.New("render: unsupported format")

var pointColor = drawing.ColorFromHex("4c72b0")

// Options controls one chart.
type Options struct {
	Format string
	Width  int
	Height int
	Title  string

	// Trend overlays the group's OLS line in TrendColor.
	Trend      bool
	TrendColor drawing.Color

	// Fixed pins both axes to [AxisMin, AxisMax].
	Fixed bool
}

// ParseColor accepts "red" or a hex triplet with or without a leading '#'.
func ParseColor(s string) drawing.Color {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "red":
		return drawing.ColorRed
	case "black":
		return drawing.ColorBlack
	case "blue":
		return drawing.ColorBlue
	case "green":
		return drawing.ColorGreen
	}
	return drawing.ColorFromHex(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Scatter writes a scatter chart of g to w.
func Scatter(w io.Writer, g analysis.GroupReport, opts Options) error {
	var provider chart.RendererProvider
	switch opts.Format {
	case FormatPNG, "":
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: %q", ErrFormat, opts.Format)
	}
	if len(g.Points) == 0 {
		return fmt.Errorf("render: group %s has no points", g.Name)
	}

	xs := make([]float64, len(g.Points))
	ys := make([]float64, len(g.Points))
	for i, p := range g.Points {
		xs[i], ys[i] = p.X, p.Y
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Dataset " + g.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(pointColor),
		},
	}

	if opts.Trend && g.Fit != nil {
		lo, hi := g.X.Min, g.X.Max
		col := opts.TrendColor
		if col.IsZero() {
			col = drawing.ColorRed
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "OLS",
			XValues: []float64{lo, hi},
			YValues: []float64{g.Fit.At(lo), g.Fit.At(hi)},
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
			},
		})
	}

	title := opts.Title
	if title == "" {
		title = "Dataset " + g.Name
	}

	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 12, Right: 12, Bottom: 12}},
		XAxis:      chart.XAxis{Name: "x"},
		YAxis:      chart.YAxis{Name: "y"},
		Series:     series,
	}
	if opts.Fixed {
		ch.XAxis.Range = &chart.ContinuousRange{Min: AxisMin, Max: AxisMax}
		ch.YAxis.Range = &chart.ContinuousRange{Min: AxisMin, Max: AxisMax}
	} else {
		// go-chart refuses an auto range of zero width.
		if r := flatRange(g.X.Min, g.X.Max); r != nil {
			ch.XAxis.Range = r
		}
		if r := flatRange(g.Y.Min, g.Y.Max); r != nil {
			ch.YAxis.Range = r
		}
	}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render: group %s: %w", g.Name, err)
	}
	return nil
}

// flatRange returns a range padded around v when lo == hi == v, else nil.
func flatRange(lo, hi float64) *chart.ContinuousRange {
	if lo != hi {
		return nil
	}
	pad := math.Abs(lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
