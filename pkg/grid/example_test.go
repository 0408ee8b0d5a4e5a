package grid_test

import (
	"fmt"

	"github.com/matzehuels/tilecard/pkg/grid"
)

func Example() {
	s := grid.New(3, grid.Rows(2), "2b1b", "1f7e8", "1f7e9")

	// Turn the middle cell of the first row green.
	s, _ = grid.ApplyCycle(s, 1)
	s, _ = grid.ApplyCycle(s, 1)

	text, _ := grid.ShareText("Demo", s)
	fmt.Println(text)
	// Output:
	// Demo
	// ⬛🟩⬛
	// ⬛⬛⬛
}

func ExampleApplyExpand() {
	s := grid.New(4, grid.Rows(4), "1f7e8", "1f7e9")

	s = grid.ApplyExpand(s, grid.AxisCount)
	fmt.Println(s.Height, len(s.Data), len(grid.ToGrid(s)))

	s.Modifiers.Press(grid.Shift)
	s = grid.ApplyExpand(s, grid.AxisHeight)
	fmt.Println(s.Height, len(s.Data))
	// Output:
	// 17 items 17 5
	// 4 rows 16
}

func ExampleGuard() {
	s := grid.New(5, grid.Rows(1), "2b1b")
	s.Modifiers.Press(grid.Shift)

	next := grid.Expand(s, grid.AxisHeight)
	fmt.Println("candidate:", next.Height)
	fmt.Println("guarded:", grid.Guard(s, next).Height)
	// Output:
	// candidate: 0 rows
	// guarded: 1 rows
}
