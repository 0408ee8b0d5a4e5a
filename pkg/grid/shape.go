package grid

import "fmt"

// Shape is the derived size of a grid.
type Shape struct {
	Rows  int // Number of rows, the last possibly short
	Cells int // Total number of cells
}

// Valid reports whether the shape can hold at least one cell.
func (sh Shape) Valid() bool { return sh.Rows >= 1 && sh.Cells >= 1 }

// ShapeOf derives the row and cell counts of s from its width and sizing.
//
// Item-count grids with a width below one report zero rows rather than
// dividing by zero.
func ShapeOf(s State) Shape {
	switch s.Height.Mode {
	case RowCount:
		return Shape{Rows: s.Height.Value, Cells: s.Height.Value * s.Width}
	case ItemCount:
		if s.Width < 1 {
			return Shape{Rows: 0, Cells: s.Height.Value}
		}
		return Shape{Rows: ceilDiv(s.Height.Value, s.Width), Cells: s.Height.Value}
	default:
		panic(fmt.Sprintf("grid: unknown sizing mode %d", int(s.Height.Mode)))
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
