package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is the describe() table for one column.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q25   float64 `json:"q25"`
	Q50   float64 `json:"q50"`
	Q75   float64 `json:"q75"`
	Max   float64 `json:"max"`
}

// SummaryRow is one labelled line of a Summary, in display order.
type SummaryRow struct {
	Label string
	Value float64
}

// Rows returns the summary as labelled rows: count, mean, std, min, 25%, 50%, 75%, max.
func (s Summary) Rows() []SummaryRow {
	return []SummaryRow{
		{"count", float64(s.Count)},
		{"mean", s.Mean},
		{"std", s.Std},
		{"min", s.Min},
		{"25%", s.Q25},
		{"50%", s.Q50},
		{"75%", s.Q75},
		{"max", s.Max},
	}
}

// Describe summarises values. An empty input yields a zero Summary;
// a single value yields a NaN standard deviation.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return Summary{
		Count: len(values),
		Mean:  stat.Mean(values, nil),
		Std:   stat.StdDev(values, nil),
		Min:   floats.Min(values),
		Q25:   Quantile(sorted, 0.25),
		Q50:   Quantile(sorted, 0.50),
		Q75:   Quantile(sorted, 0.75),
		Max:   floats.Max(values),
	}
}

// Quantile returns the p-quantile of sorted by linear interpolation between
// closest ranks (h = (n-1)p), the estimator numpy and pandas use by default.
// gonum's stat.LinInterp interpolates the empirical CDF instead and gives
// different quartiles on eleven points. sorted must be in ascending order.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return math.NaN()
	case n == 1 || p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
