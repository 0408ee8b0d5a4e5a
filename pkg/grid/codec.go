package grid

// ToGrid partitions s.Data into rows of s.Width cells. A new row starts only
// once the current one is full, so the last row may be short and empty data
// yields a single empty row.
func ToGrid(s State) [][]Glyph {
	width := max(s.Width, 1)
	rows := [][]Glyph{make([]Glyph, 0, width)}
	for _, g := range s.Data {
		last := len(rows) - 1
		if len(rows[last]) >= width {
			rows = append(rows, make([]Glyph, 0, width))
			last++
		}
		rows[last] = append(rows[last], g)
	}
	return rows
}

// EmptyGrid allocates a grid of ShapeOf(s).Rows rows by s.Width columns with
// every cell Unset.
func EmptyGrid(s State) [][]Glyph {
	sh := ShapeOf(s)
	rows := make([][]Glyph, max(sh.Rows, 0))
	for r := range rows {
		rows[r] = make([]Glyph, max(s.Width, 0))
	}
	return rows
}

// Flatten reads g row-major and drops Unset cells.
func Flatten(g [][]Glyph) []Glyph {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	out := make([]Glyph, 0, n)
	for _, row := range g {
		for _, c := range row {
			if c.IsUnset() {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}
