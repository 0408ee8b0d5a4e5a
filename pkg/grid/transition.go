package grid

import (
	"fmt"
	"strings"

	errs "github.com/matzehuels/tilecard/pkg/errors"
)

// Axis names the dimension an expand operation acts on.
type Axis int

const (
	AxisWidth  Axis = iota // Column count
	AxisHeight             // Row count; switches the grid to RowCount sizing
	AxisCount              // Cell count; switches the grid to ItemCount sizing
)

var axisNames = [...]string{
	AxisWidth:  "width",
	AxisHeight: "height",
	AxisCount:  "count",
}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis converts "width", "height" or "count" into an Axis.
func ParseAxis(s string) (Axis, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range axisNames {
		if n == name {
			return Axis(i), nil
		}
	}
	return 0, errs.New(errs.ErrCodeInvalidInput, "unknown axis %q", s)
}

// Cycle returns a copy of s with cell i advanced to the next alphabet glyph,
// wrapping from the last glyph back to the first. A glyph that is not in the
// alphabet advances to the first glyph.
//
// An index outside [0, len(s.Data)) is a caller bug and yields an
// INDEX_OUT_OF_RANGE error. s is never modified.
func Cycle(s State, i int) (State, error) {
	if i < 0 || i >= len(s.Data) {
		return s, errs.New(errs.ErrCodeIndexOutOfRange, "cell %d outside [0, %d)", i, len(s.Data))
	}
	if len(s.Alphabet) == 0 {
		return s, errs.New(errs.ErrCodeInvalidState, "cannot cycle cell %d: empty alphabet", i)
	}
	next := s.Clone()
	pos := s.IndexOf(s.Data[i])
	next.Data[i] = s.Alphabet[(pos+1)%len(s.Alphabet)]
	return next, nil
}

// Expand returns the candidate state after growing the given axis by one,
// or shrinking it by one while Shift is held. The candidate may be invalid;
// pass it through [Guard] or use [ApplyExpand].
func Expand(s State, axis Axis) State {
	delta := 1
	if s.Modifiers.Has(Shift) {
		delta = -1
	}

	next := s.Clone()
	sh := ShapeOf(s)
	switch axis {
	case AxisWidth:
		next.Width += delta
	case AxisHeight:
		next.Height = Rows(sh.Rows + delta)
	case AxisCount:
		next.Height = Items(sh.Cells + delta)
	default:
		panic(fmt.Sprintf("grid: unknown axis %d", int(axis)))
	}

	switch next.Height.Mode {
	case RowCount:
		next.Data = reshape(s, next)
	case ItemCount:
		// A width change re-flows the existing cells; only the count axis
		// adds or removes them.
		if axis == AxisCount {
			next.Data = resize(next.Data, next.Height.Value, next.Default())
		}
	default:
		panic(fmt.Sprintf("grid: unknown sizing mode %d", int(next.Height.Mode)))
	}
	return next
}

// reshape copies every cell of prev that still fits inside next's shape to
// the same (row, col) and fills the rest with the default glyph.
func reshape(prev, next State) []Glyph {
	if next.Width < 1 || !ShapeOf(next).Valid() {
		return next.Data
	}
	old := ToGrid(prev)
	dst := EmptyGrid(next)
	fill := next.Default()
	for r, row := range dst {
		for c := range row {
			if r < len(old) && c < len(old[r]) {
				row[c] = old[r][c]
			} else {
				row[c] = fill
			}
		}
	}
	return Flatten(dst)
}

// resize grows data to n cells by appending fill, or truncates it from the
// end.
func resize(data []Glyph, n int, fill Glyph) []Glyph {
	n = max(n, 0)
	if n <= len(data) {
		return data[:n]
	}
	for len(data) < n {
		data = append(data, fill)
	}
	return data
}

// Guard returns next unless it violates a minimum-size constraint (width,
// sizing value or alphabet size below one), in which case old is returned.
func Guard(old, next State) State {
	s, _ := Check(old, next)
	return s
}

// Check is Guard that also reports whether next was accepted.
func Check(old, next State) (State, bool) {
	if next.Width < 1 || next.Height.Value < 1 || len(next.Alphabet) < 1 {
		return old, false
	}
	return next, true
}

// ApplyExpand expands s along axis and guards the result.
func ApplyExpand(s State, axis Axis) State {
	next, _ := TryExpand(s, axis)
	return next
}

// TryExpand is ApplyExpand that also reports whether the candidate was kept.
func TryExpand(s State, axis Axis) (State, bool) {
	return Check(s, Expand(s, axis))
}

// ApplyCycle cycles cell i of s and guards the result.
func ApplyCycle(s State, i int) (State, error) {
	next, err := Cycle(s, i)
	if err != nil {
		return s, err
	}
	return Guard(s, next), nil
}

// Validate checks that s is internally consistent: a valid shape, a
// non-empty alphabet without Unset entries, exactly one cell per slot and
// every cell drawn from the alphabet.
func Validate(s State) error {
	if s.Width < 1 {
		return errs.New(errs.ErrCodeInvalidState, "width %d is below 1", s.Width)
	}
	if s.Height.Value < 1 {
		return errs.New(errs.ErrCodeInvalidState, "height %s is below 1", s.Height)
	}
	if len(s.Alphabet) == 0 {
		return errs.New(errs.ErrCodeInvalidState, "empty alphabet")
	}
	for i, g := range s.Alphabet {
		if g.IsUnset() {
			return errs.New(errs.ErrCodeInvalidState, "alphabet entry %d is unset", i)
		}
	}
	if want := ShapeOf(s).Cells; len(s.Data) != want {
		return errs.New(errs.ErrCodeInvalidState, "have %d cells, want %d for width %d and %s",
			len(s.Data), want, s.Width, s.Height)
	}
	for i, g := range s.Data {
		if s.IndexOf(g) < 0 {
			return errs.New(errs.ErrCodeInvalidState, "cell %d holds %q, not in alphabet", i, string(g))
		}
	}
	return nil
}
