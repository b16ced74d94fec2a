// Package analysis combines the dataset and stats packages into the per-group
// report every view renders: summaries of x and y, their variances and the
// OLS trend line.
package analysis

import (
	"errors"
	"math"

	"github.com/RekaCodes/anscombes-quartet/server/internal/dataset"
	"github.com/RekaCodes/anscombes-quartet/server/internal/stats"
)

// DefaultTolerance is the agreement threshold used by Report.Similar when
// deciding that the four groups share their headline statistics.
const DefaultTolerance = 0.01

// GroupReport is the full analysis of one quartet group.
type GroupReport struct {
	Name      string          `json:"name"`
	Points    []dataset.Point `json:"points"`
	X         stats.Summary   `json:"x"`
	Y         stats.Summary   `json:"y"`
	VarianceX float64         `json:"variance_x"`
	VarianceY float64         `json:"variance_y"`

	// Fit is nil when the line could not be computed; FitErr then says why.
	Fit    *stats.Line `json:"fit,omitempty"`
	FitErr string      `json:"fit_error,omitempty"`
}

// Report holds the four group reports in order I..IV.
type Report struct {
	Groups []GroupReport `json:"groups"`
}

// Analyze computes a Report for ds. It fails only if ds has no groups;
// a group whose line cannot be fitted is reported with FitErr set.
func Analyze(ds *dataset.Dataset) (*Report, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.New("analysis: empty dataset")
	}

	groups := ds.Groups()
	rep := &Report{Groups: make([]GroupReport, 0, len(groups))}
	for _, g := range groups {
		rep.Groups = append(rep.Groups, analyzeGroup(g))
	}
	return rep, nil
}

func analyzeGroup(g dataset.Group) GroupReport {
	xs, ys := g.Xs(), g.Ys()
	xsum, ysum := stats.Describe(xs), stats.Describe(ys)

	gr := GroupReport{
		Name:      g.Name,
		Points:    g.Points,
		X:         xsum,
		Y:         ysum,
		VarianceX: xsum.Std * xsum.Std,
		VarianceY: ysum.Std * ysum.Std,
	}
	line, err := stats.Fit(xs, ys)
	if err != nil {
		gr.FitErr = err.Error()
		return gr
	}
	gr.Fit = &line
	return gr
}

// Group returns the report for the named group.
func (r *Report) Group(name string) (GroupReport, bool) {
	for _, g := range r.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupReport{}, false
}

// Similar reports whether mean(x), mean(y), var(x), slope and intercept agree
// across all groups to within tol. A group without a fit is never similar.
func (r *Report) Similar(tol float64) bool {
	if len(r.Groups) == 0 {
		return false
	}
	ref := r.Groups[0]
	if ref.Fit == nil {
		return false
	}
	for _, g := range r.Groups[1:] {
		if g.Fit == nil {
			return false
		}
		if !within(g.X.Mean, ref.X.Mean, tol) ||
			!within(g.Y.Mean, ref.Y.Mean, tol) ||
			!within(g.VarianceX, ref.VarianceX, tol) ||
			!within(g.Fit.Slope, ref.Fit.Slope, tol) ||
			!within(g.Fit.Intercept, ref.Fit.Intercept, tol) {
			return false
		}
	}
	return true
}

func within(a, b, tol float64) bool { return math.Abs(a-b) <= tol }
