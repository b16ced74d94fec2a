package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrZeroVariance is returned by Fit when every x value is identical.
	ErrZeroVariance = errors.New("stats: zero variance in x")

	// ErrLength is returned by Fit for mismatched or too-short inputs.
	ErrLength = errors.New("stats: invalid sample length")
)

// Line is an ordinary least squares fit y = Intercept + Slope*x.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R         float64 `json:"r"`
	RSquared  float64 `json:"r_squared"`
	N         int     `json:"n"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// String formats the line as an equation, e.g. "y = 3.00 + 0.500x".
func (l Line) String() string {
	return fmt.Sprintf("y = %.2f + %.3fx", l.Intercept, l.Slope)
}

// Fit computes the closed-form OLS line of ys on xs:
// slope = cov(x,y)/var(x), intercept = mean(y) - slope*mean(x).
func Fit(xs, ys []float64) (Line, error) {
	if len(xs) != len(ys) {
		return Line{}, fmt.Errorf("%w: %d x values, %d y values", ErrLength, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return Line{}, fmt.Errorf("%w: need at least 2 points, got %d", ErrLength, len(xs))
	}
	if stat.Variance(xs, nil) == 0 {
		return Line{}, ErrZeroVariance
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	est := make([]float64, len(xs))
	for i, x := range xs {
		est[i] = alpha + beta*x
	}

	l := Line{
		Slope:     beta,
		Intercept: alpha,
		N:         len(xs),
	}
	// r and R² are undefined for constant y; they stay zero.
	if stat.Variance(ys, nil) != 0 {
		l.R = stat.Correlation(xs, ys, nil)
		l.RSquared = stat.RSquaredFrom(est, ys, nil)
	}
	return l, nil
}
