package dataset

// Column names of the fixed CSV schema, in canonical order.
const (
	ColX123 = "x123"
	ColY1   = "y1"
	ColY2   = "y2"
	ColY3   = "y3"
	ColX4   = "x4"
	ColY4   = "y4"
)

// Columns is the canonical column order used for display and JSON output.
var Columns = []string{ColX123, ColY1, ColY2, ColY3, ColX4, ColY4}

// groupColumns maps each group name to its (x, y) column pair.
var groupColumns = []struct {
	name string
	x, y string
}{
	{"I", ColX123, ColY1},
	{"II", ColX123, ColY2},
	{"III", ColX123, ColY3},
	{"IV", ColX4, ColY4},
}

// GroupNames lists the four group names in display order.
var GroupNames = []string{"I", "II", "III", "IV"}

// Row is one line of the table, values in Columns order.
type Row [6]float64

// Get returns the value of the named column, and false for an unknown name.
func (r Row) Get(col string) (float64, bool) {
	for i, c := range Columns {
		if c == col {
			return r[i], true
		}
	}
	return 0, false
}

// Point is one (x,y) observation of a group.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Group is one of the four (x,y) sample sets.
type Group struct {
	Name   string  `json:"name"`
	XCol   string  `json:"x_column"`
	YCol   string  `json:"y_column"`
	Points []Point `json:"points"`
}

// Xs returns the x values of the group in row order.
func (g Group) Xs() []float64 {
	out := make([]float64, len(g.Points))
	for i, p := range g.Points {
		out[i] = p.X
	}
	return out
}

// Ys returns the y values of the group in row order.
func (g Group) Ys() []float64 {
	out := make([]float64, len(g.Points))
	for i, p := range g.Points {
		out[i] = p.Y
	}
	return out
}

// Dataset is the immutable table read from the CSV file.
// Callers must not modify Rows.
type Dataset struct {
	Source string
	Rows   []Row
}

// Len returns the number of data rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// Column returns a copy of the named column, and false for an unknown name.
func (d *Dataset) Column(col string) ([]float64, bool) {
	idx := -1
	for i, c := range Columns {
		if c == col {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r[idx]
	}
	return out, true
}

// Groups partitions the table into the four quartet groups, in order I..IV.
func (d *Dataset) Groups() []Group {
	groups := make([]Group, 0, len(groupColumns))
	for _, gc := range groupColumns {
		xs, _ := d.Column(gc.x)
		ys, _ := d.Column(gc.y)
		pts := make([]Point, len(xs))
		for i := range xs {
			pts[i] = Point{X: xs[i], Y: ys[i]}
		}
		groups = append(groups, Group{Name: gc.name, XCol: gc.x, YCol: gc.y, Points: pts})
	}
	return groups
}

// Group returns the named group (I, II, III or IV).
func (d *Dataset) Group(name string) (Group, bool) {
	for _, g := range d.Groups() {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}
