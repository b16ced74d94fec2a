package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// minRows is the smallest table for which a sample variance exists.
const minRows = 2

var (
	// ErrNotFound is returned when the CSV file does not exist.
	ErrNotFound = errors.New("dataset: file not found")

	// ErrMalformed is returned when the file exists but cannot be decoded
	// into the six-column schema.
	ErrMalformed = errors.New("dataset: malformed file")
)

// Load opens path and decodes it with Parse.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
		}
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// Parse decodes a CSV stream with a header row naming the six schema columns.
// Header names are matched case-insensitively; extra columns are ignored.
func Parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row width is checked against the header below
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformed, err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		if len(rec) < len(header) {
			return nil, fmt.Errorf("%w: line %d: got %d fields, want %d",
				ErrMalformed, line, len(rec), len(header))
		}

		var row Row
		for i, col := range Columns {
			cell := strings.TrimSpace(rec[index[i]])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %q is not a number",
					ErrMalformed, line, col, cell)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: line %d column %s: %q is not a finite number",
					ErrMalformed, line, col, cell)
			}
			row[i] = v
		}
		ds.Rows = append(ds.Rows, row)
	}

	if len(ds.Rows) < minRows {
		return nil, fmt.Errorf("%w: %d data rows, need at least %d", ErrMalformed, len(ds.Rows), minRows)
	}
	return ds, nil
}

// columnIndex maps each schema column (in Columns order) to its position in header.
func columnIndex(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	index := make([]int, len(Columns))
	var missing []string
	for i, col := range Columns {
		p, ok := pos[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: header missing column(s) %s", ErrMalformed, strings.Join(missing, ", "))
	}
	return index, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
