// Package grid implements the tile grid state model behind a share card and
// the transformation algebra that edits it.
//
// # Overview
//
// A share card is a caption followed by a rectangular block of colored-tile
// emoji, the kind daily puzzle games produce as a spoiler-free result. This
// package owns the part of that picture with real invariants: the shape of
// the grid, its contents, and the operations that change them.
//
// A [State] holds a column count, a [Sizing] that pins the height either by
// row count ([RowCount]) or by total cell count ([ItemCount]), an ordered
// alphabet of [Glyph] values that every cell cycles through, and the cells
// themselves as a flat row-major slice.
//
// # Dimension Model
//
// [ShapeOf] derives the row count and cell count from a state's width and
// sizing. Item-count grids ceiling-divide by the width, so their last row may
// be short.
//
// # Grid Codec
//
// [ToGrid] partitions the flat data into rows, [EmptyGrid] allocates a grid of
// [Unset] cells for a shape, and [Flatten] reads a grid back row-major while
// skipping unset cells. For data without unset cells the pair round-trips:
//
//	grid.Flatten(grid.ToGrid(s)) // equals s.Data
//
// # Transitions
//
// Every transition takes a State by value and returns a fresh one; the old
// and new Data and Alphabet slices never alias.
//
//   - [Cycle] advances one cell to the next alphabet entry, wrapping around.
//   - [Expand] grows a dimension by one, or shrinks it when [Shift] is held.
//   - [Guard] rejects a candidate whose width, sizing value, or alphabet size
//     dropped below one, keeping the previous state.
//
// [ApplyCycle] and [ApplyExpand] combine a transition with the guard and are
// what interactive callers use:
//
//	s = grid.ApplyExpand(s, grid.AxisWidth)
//
// Growing a row-count grid copies every existing cell to the same (row, col)
// and pads new cells with the first alphabet glyph; shrinking drops cells that
// fall outside the new shape. Item-count grids grow and shrink at the end of
// the flat list instead.
//
// # Share Text
//
// [ShareText] renders a caption and a state into the text blob that goes to
// the clipboard. Each glyph is a hexadecimal Unicode code point and is
// emitted as that character.
//
// # Concurrency
//
// States are values. The transition functions are pure and safe to call from
// any goroutine as long as callers do not mutate the slices of a State that
// another goroutine is reading. [Modifiers] is the one field meant to be
// updated in place, by the single goroutine that owns the state.
package grid
