package preset

import "github.com/matzehuels/tilecard/pkg/grid"

// Glyph alphabets of the built-in presets, in cycle order.
var (
	WordleAlphabet      = []grid.Glyph{"2b1b", "1f7e8", "1f7e9"}          // black, yellow, green square
	StrandsAlphabet     = []grid.Glyph{"1f535", "1f7e1", "1f4a1"}         // blue circle, yellow circle, light bulb
	ConnectionsAlphabet = []grid.Glyph{"1f7e8", "1f7e9", "1f7e6", "1f7ea"} // yellow, green, blue, purple square
)

// Wordle returns a 5x4 grid of black squares.
func Wordle() grid.State {
	return grid.New(5, grid.Rows(4), WordleAlphabet...)
}

// Strands returns a 4-wide grid of n blue circles.
func Strands(n int) grid.State {
	return grid.New(4, grid.Items(n), StrandsAlphabet...)
}

// Connections returns a 4x4 grid whose row k is filled with the k-th
// alphabet color.
func Connections() grid.State {
	s := grid.New(4, grid.Rows(4), ConnectionsAlphabet...)
	for i := range s.Data {
		s.Data[i] = s.Alphabet[i/s.Width]
	}
	return s
}

