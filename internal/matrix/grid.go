package matrix

// Grid is the editable relationship state of one open project: a sparse
// boolean cell map per category over a fixed row and column domain, plus a
// dirty bit.
type Grid struct {
	labels Labels
	rows   map[string]bool
	cols   map[Category]map[string]bool
	cells  map[Category]map[string]map[string]bool
	dirty  bool
}

// NewGrid returns an all-false grid over the given labels.
func NewGrid(labels Labels) *Grid {
	g := &Grid{
		labels: labels,
		rows:   make(map[string]bool, len(labels.Rows)),
		cols:   make(map[Category]map[string]bool, len(Categories)),
		cells:  make(map[Category]map[string]map[string]bool, len(Categories)),
	}
	for _, r := range labels.Rows {
		g.rows[r.Key] = true
	}
	for _, c := range Categories {
		set := map[string]bool{}
		for _, col := range labels.Columns(c) {
			set[col.Key] = true
		}
		g.cols[c] = set
		g.cells[c] = map[string]map[string]bool{}
	}
	return g
}

// Labels returns the row and column sets the grid was built over.
func (g *Grid) Labels() Labels {
	return g.labels
}

// Has reports whether (row, c, col) lies inside the grid's domain.
func (g *Grid) Has(row string, c Category, col string) bool {
	return g.rows[row] && g.cols[c][col]
}

// Get returns the cell value. Unset cells and cells outside the domain read
// false.
func (g *Grid) Get(row string, c Category, col string) bool {
	return g.cells[c][row][col]
}

// Set stores a cell value and marks the grid dirty when the value changes.
// Writes outside the domain are ignored.
func (g *Grid) Set(row string, c Category, col string, value bool) {
	if !g.Has(row, c, col) {
		return
	}
	if g.Get(row, c, col) == value {
		return
	}
	g.put(row, c, col, value)
	g.dirty = true
}

// Toggle flips a cell and returns its new value.
func (g *Grid) Toggle(row string, c Category, col string) bool {
	next := !g.Get(row, c, col)
	g.Set(row, c, col, next)
	return g.Get(row, c, col)
}

// Dirty reports whether any cell changed since the grid was loaded.
func (g *Grid) Dirty() bool {
	return g.dirty
}

// Marked returns the keys of the true cells of one row, in column order.
func (g *Grid) Marked(row string, c Category) []string {
	out := []string{}
	for _, col := range g.labels.Columns(c) {
		if g.Get(row, c, col.Key) {
			out = append(out, col.Key)
		}
	}
	return out
}

// Count returns the number of true cells in one category.
func (g *Grid) Count(c Category) int {
	n := 0
	for _, row := range g.cells[c] {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// put writes without touching the dirty bit; used while seeding.
func (g *Grid) put(row string, c Category, col string, value bool) {
	if !g.Has(row, c, col) {
		return
	}
	byRow := g.cells[c][row]
	if byRow == nil {
		byRow = map[string]bool{}
		g.cells[c][row] = byRow
	}
	if value {
		byRow[col] = true
		return
	}
	delete(byRow, col)
}
