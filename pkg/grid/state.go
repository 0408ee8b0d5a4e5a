package grid

import (
	"fmt"
	"slices"
	"strings"
)

// Glyph identifies a tile's symbol as a hexadecimal Unicode code point,
// for example "1f7e9" for a green square.
type Glyph string

// Unset is the placeholder for a cell without a glyph. It is never a valid
// alphabet entry.
const Unset Glyph = ""

// IsUnset reports whether g is the Unset placeholder.
func (g Glyph) IsUnset() bool { return g == Unset }

// Mode selects how a [Sizing] pins the grid's height.
type Mode int

const (
	// RowCount pins the number of rows; the grid has Value*Width cells.
	RowCount Mode = iota
	// ItemCount pins the number of cells; rows are ceil(Value/Width).
	ItemCount
)

// String returns "row" or "count", the names used in scripts and JSON.
func (m Mode) String() string {
	switch m {
	case RowCount:
		return "row"
	case ItemCount:
		return "count"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Sizing pins the height of a grid: a mode and its value.
type Sizing struct {
	Mode  Mode
	Value int
}

// Rows returns a RowCount sizing of n rows.
func Rows(n int) Sizing { return Sizing{Mode: RowCount, Value: n} }

// Items returns an ItemCount sizing of n cells.
func Items(n int) Sizing { return Sizing{Mode: ItemCount, Value: n} }

// String formats the sizing as "4 rows" or "17 items".
func (s Sizing) String() string {
	switch s.Mode {
	case RowCount:
		return fmt.Sprintf("%d rows", s.Value)
	case ItemCount:
		return fmt.Sprintf("%d items", s.Value)
	default:
		return fmt.Sprintf("%v(%d)", s.Mode, s.Value)
	}
}

// Modifier is a single held input key.
type Modifier uint8

// Shift reverses expand operations into contract operations.
const Shift Modifier = 1 << iota

// ParseModifier maps a key name to its Modifier. Only "shift" is known.
func ParseModifier(name string) (Modifier, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shift":
		return Shift, true
	default:
		return 0, false
	}
}

// String returns the key name of the modifier.
func (m Modifier) String() string {
	if m == Shift {
		return "shift"
	}
	return fmt.Sprintf("Modifier(%d)", uint8(m))
}

// Modifiers is the set of currently held modifier keys. It is transient
// input state, not part of the grid's shape.
type Modifiers uint8

// Has reports whether m is held.
func (ms Modifiers) Has(m Modifier) bool { return ms&Modifiers(m) != 0 }

// Press marks m as held.
func (ms *Modifiers) Press(m Modifier) { *ms |= Modifiers(m) }

// Release marks m as no longer held.
func (ms *Modifiers) Release(m Modifier) { *ms &^= Modifiers(m) }

// String lists the held modifiers, e.g. "shift", or "" when none are held.
func (ms Modifiers) String() string {
	if ms.Has(Shift) {
		return Shift.String()
	}
	return ""
}

// State is a grid of glyph cells. Data is row-major, one glyph per cell.
//
// The zero value is not usable; states come from a preset factory or from
// a transition on another state.
type State struct {
	Width     int       // Number of columns
	Height    Sizing    // Row count or cell count
	Alphabet  []Glyph   // Cycle order shared by every cell
	Data      []Glyph   // Cell glyphs, row-major
	Modifiers Modifiers // Held modifier keys
}

// New builds a state with every cell set to the first alphabet glyph.
// The cell count is derived from width and height.
func New(width int, height Sizing, alphabet ...Glyph) State {
	s := State{
		Width:    width,
		Height:   height,
		Alphabet: slices.Clone(alphabet),
	}
	if len(alphabet) == 0 {
		return s
	}
	cells := ShapeOf(s).Cells
	s.Data = make([]Glyph, max(cells, 0))
	for i := range s.Data {
		s.Data[i] = alphabet[0]
	}
	return s
}

// Clone returns a deep copy of s. The copy shares no slices with s.
func (s State) Clone() State {
	c := s
	c.Alphabet = slices.Clone(s.Alphabet)
	c.Data = slices.Clone(s.Data)
	return c
}

// Default returns the first alphabet glyph, used to pad new cells, or Unset
// when the alphabet is empty.
func (s State) Default() Glyph {
	if len(s.Alphabet) == 0 {
		return Unset
	}
	return s.Alphabet[0]
}

// IndexOf returns the position of g in the alphabet, or -1.
func (s State) IndexOf(g Glyph) int {
	return slices.Index(s.Alphabet, g)
}
