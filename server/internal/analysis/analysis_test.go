package analysis

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/RekaCodes/anscombes-quartet/server/internal/dataset"
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

func quartet(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse(strings.NewReader(quartetCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return ds
}

func TestAnalyze_KnownQuartetValues(t *testing.T) {
	rep, err := Analyze(quartet(t))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(rep.Groups) != 4 {
		t.Fatalf("groups: got %d, want 4", len(rep.Groups))
	}
	for _, g := range rep.Groups {
		if math.Abs(g.X.Mean-9.0) > 1e-9 {
			t.Errorf("%s mean(x): got %v, want 9.0", g.Name, g.X.Mean)
		}
		if math.Abs(g.Y.Mean-7.5) > 5e-3 {
			t.Errorf("%s mean(y): got %v, want ≈7.50", g.Name, g.Y.Mean)
		}
		if math.Abs(g.VarianceX-11.0) > 1e-9 {
			t.Errorf("%s var(x): got %v, want 11.0", g.Name, g.VarianceX)
		}
		if math.Abs(g.VarianceY-4.125) > 5e-3 {
			t.Errorf("%s var(y): got %v, want ≈4.125", g.Name, g.VarianceY)
		}
		if g.Fit == nil {
			t.Fatalf("%s: no fit (%s)", g.Name, g.FitErr)
		}
		if math.Abs(g.Fit.Slope-0.5) > 1e-3 {
			t.Errorf("%s slope: got %v, want ≈0.500", g.Name, g.Fit.Slope)
		}
		if math.Abs(g.Fit.Intercept-3.0) > 5e-3 {
			t.Errorf("%s intercept: got %v, want ≈3.00", g.Name, g.Fit.Intercept)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	ds := quartet(t)
	a, err := Analyze(ds)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	b, err := Analyze(ds)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Analyze: two runs over the same dataset differ")
	}
}

func TestReport_Similar(t *testing.T) {
	rep, _ := Analyze(quartet(t))
	if !rep.Similar(DefaultTolerance) {
		t.Error("Similar(0.01): got false, want true for the quartet")
	}
	if rep.Similar(1e-6) {
		t.Error("Similar(1e-6): got true, want false (groups differ in the 4th decimal)")
	}
}

func TestReport_Group(t *testing.T) {
	rep, _ := Analyze(quartet(t))
	g, ok := rep.Group("IV")
	if !ok {
		t.Fatal("Group(IV): not found")
	}
	if g.X.Max != 19 {
		t.Errorf("IV max(x): got %v, want 19", g.X.Max)
	}
	if _, ok := rep.Group("nope"); ok {
		t.Error("Group(nope): expected not found")
	}
}

func TestAnalyze_ZeroVarianceGroup(t *testing.T) {
	in := "x123,y1,y2,y3,x4,y4\n1,1,1,1,5,1\n2,2,2,2,5,2\n3,3,3,3,5,3\n"
	ds, err := dataset.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rep, err := Analyze(ds)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	iv, _ := rep.Group("IV")
	if iv.Fit != nil {
		t.Errorf("IV fit: got %+v, want nil", iv.Fit)
	}
	if iv.FitErr == "" {
		t.Error("IV FitErr: empty, want zero-variance message")
	}
	if iv.X.Count != 3 {
		t.Errorf("IV x count: got %d, want 3", iv.X.Count)
	}
	if rep.Similar(DefaultTolerance) {
		t.Error("Similar: got true with an unfitted group")
	}
}

func TestAnalyze_Nil(t *testing.T) {
	if _, err := Analyze(nil); err == nil {
		t.Error("Analyze(nil): expected error")
	}
}
