// Command describe prints the quartet table, each group's describe() table
// and its least-squares fit to stdout.
//
//	describe -data data/Anscombe_quartet_data.csv
//
// It exits 1 if the file is missing or malformed.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/RekaCodes/anscombes-quartet/server/internal/analysis"
	"github.com/RekaCodes/anscombes-quartet/server/internal/config"
	"github.com/RekaCodes/anscombes-quartet/server/internal/dataset"
)

func main() {
	dataPath := flag.String("data", config.DefaultCSVPath, "path to the quartet csv")
	flag.Parse()

	if err := run(os.Stdout, *dataPath); err != nil {
		fmt.Fprintf(os.Stderr, "describe: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, path string) error {
	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}
	report, err := analysis.Analyze(ds)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Original data (%s)\n", path)
	raw := tablewriter.NewWriter(w)
	raw.SetHeader(dataset.Columns)
	for _, row := range ds.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		raw.Append(cells)
	}
	raw.Render()

	for _, g := range report.Groups {
		fmt.Fprintf(w, "\nDataset %s\n", g.Name)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"", "x", "y"})
		xr, yr := g.X.Rows(), g.Y.Rows()
		for i := range xr {
			table.Append([]string{xr[i].Label, fmt.Sprintf("%f", xr[i].Value), fmt.Sprintf("%f", yr[i].Value)})
		}
		table.Render()
		if g.Fit != nil {
			fmt.Fprintf(w, "fit: %s  r=%.3f  R²=%.3f\n", g.Fit, g.Fit.R, g.Fit.RSquared)
		} else {
			fmt.Fprintf(w, "fit: %s\n", g.FitErr)
		}
	}

	if report.Similar(analysis.DefaultTolerance) {
		fmt.Fprintln(w, "\nAll four groups share mean, variance and fit within tolerance.")
	}
	return nil
}
