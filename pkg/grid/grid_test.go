package grid

import (
	"slices"
	"testing"

	errs "github.com/matzehuels/tilecard/pkg/errors"
)

var (
	black  = Glyph("2b1b")
	yellow = Glyph("1f7e8")
	green  = Glyph("1f7e9")
	blue   = Glyph("1f7e6")
	purple = Glyph("1f7ea")
)

func wordleState() State {
	return New(5, Rows(4), black, yellow, green)
}

func connectionsState() State {
	s := New(4, Rows(4), yellow, green, blue, purple)
	for i := range s.Data {
		s.Data[i] = s.Alphabet[i/4]
	}
	return s
}

// numbered returns a RowCount state whose cells cycle through the alphabet
// so positions are distinguishable.
func numbered(width, rows int) State {
	s := New(width, Rows(rows), black, yellow, green)
	for i := range s.Data {
		s.Data[i] = s.Alphabet[i%len(s.Alphabet)]
	}
	return s
}

func withShift(s State) State {
	s.Modifiers.Press(Shift)
	return s
}

func TestShapeOf(t *testing.T) {
	tests := []struct {
		name  string
		width int
		h     Sizing
		want  Shape
	}{
		{"rows", 5, Rows(4), Shape{Rows: 4, Cells: 20}},
		{"items exact", 4, Items(16), Shape{Rows: 4, Cells: 16}},
		{"items short row", 4, Items(17), Shape{Rows: 5, Cells: 17}},
		{"items single", 4, Items(1), Shape{Rows: 1, Cells: 1}},
		{"items zero width", 0, Items(5), Shape{Rows: 0, Cells: 5}},
		{"rows zero", 5, Rows(0), Shape{Rows: 0, Cells: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShapeOf(State{Width: tt.width, Height: tt.h})
			if got != tt.want {
				t.Errorf("ShapeOf = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShapeOfUnknownModePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown mode")
		}
	}()
	ShapeOf(State{Width: 1, Height: Sizing{Mode: Mode(9), Value: 1}})
}

func TestToGrid(t *testing.T) {
	t.Run("full rows", func(t *testing.T) {
		g := ToGrid(wordleState())
		if len(g) != 4 {
			t.Fatalf("rows = %d, want 4", len(g))
		}
		for r, row := range g {
			if len(row) != 5 {
				t.Errorf("row %d has %d cells, want 5", r, len(row))
			}
		}
	})

	t.Run("short last row", func(t *testing.T) {
		s := New(4, Items(6), black, yellow)
		g := ToGrid(s)
		if len(g) != 2 || len(g[0]) != 4 || len(g[1]) != 2 {
			t.Errorf("got row lengths %v, want [4 2]", rowLens(g))
		}
	})

	t.Run("empty data", func(t *testing.T) {
		g := ToGrid(State{Width: 3, Height: Items(1)})
		if len(g) != 1 || len(g[0]) != 0 {
			t.Errorf("got %v, want one empty row", g)
		}
	})
}

func rowLens(g [][]Glyph) []int {
	out := make([]int, len(g))
	for i, row := range g {
		out[i] = len(row)
	}
	return out
}

func TestEmptyGrid(t *testing.T) {
	g := EmptyGrid(New(3, Items(7), black))
	if len(g) != 3 {
		t.Fatalf("rows = %d, want 3", len(g))
	}
	for _, row := range g {
		if len(row) != 3 {
			t.Fatalf("row width = %d, want 3", len(row))
		}
		for _, c := range row {
			if !c.IsUnset() {
				t.Fatalf("cell = %q, want unset", string(c))
			}
		}
	}
}

func TestFlattenSkipsUnset(t *testing.T) {
	g := [][]Glyph{{black, Unset, green}, {Unset, yellow}}
	got := Flatten(g)
	want := []Glyph{black, green, yellow}
	if !slices.Equal(got, want) {
		t.Errorf("Flatten = %v, want %v", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	states := []State{
		wordleState(),
		connectionsState(),
		numbered(3, 5),
		New(4, Items(17), blue, purple),
	}
	for _, s := range states {
		if got := Flatten(ToGrid(s)); !slices.Equal(got, s.Data) {
			t.Errorf("Flatten(ToGrid(%dx%s)) = %v, want %v", s.Width, s.Height, got, s.Data)
		}
	}
}

func TestCycle(t *testing.T) {
	s := connectionsState()
	for i := range s.Data {
		next, err := Cycle(s, i)
		if err != nil {
			t.Fatalf("Cycle(%d): %v", i, err)
		}
		want := s.Alphabet[(s.IndexOf(s.Data[i])+1)%len(s.Alphabet)]
		if next.Data[i] != want {
			t.Errorf("cell %d = %q, want %q", i, string(next.Data[i]), string(want))
		}
		for j := range s.Data {
			if j != i && next.Data[j] != s.Data[j] {
				t.Errorf("Cycle(%d) changed cell %d", i, j)
			}
		}
	}
}

func TestCycleClosure(t *testing.T) {
	s := wordleState()
	orig := s.Data[7]
	for range s.Alphabet {
		var err error
		s, err = Cycle(s, 7)
		if err != nil {
			t.Fatal(err)
		}
	}
	if s.Data[7] != orig {
		t.Errorf("after %d cycles cell = %q, want %q", len(s.Alphabet), string(s.Data[7]), string(orig))
	}
}

func TestCycleDoesNotMutate(t *testing.T) {
	s := wordleState()
	before := slices.Clone(s.Data)
	next, err := Cycle(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(s.Data, before) {
		t.Error("Cycle modified its input")
	}
	next.Data[1] = green
	if s.Data[1] == green {
		t.Error("Cycle result aliases input data")
	}
}

func TestCycleForeignGlyph(t *testing.T) {
	s := wordleState()
	s.Data[2] = purple
	next, err := Cycle(s, 2)
	if err != nil {
		t.Fatal(err)
	}
	if next.Data[2] != black {
		t.Errorf("foreign glyph cycled to %q, want first alphabet glyph", string(next.Data[2]))
	}
}

func TestCycleOutOfRange(t *testing.T) {
	s := wordleState()
	for _, i := range []int{-1, 20, 100} {
		_, err := ApplyCycle(s, i)
		if !errs.Is(err, errs.ErrCodeIndexOutOfRange) {
			t.Errorf("ApplyCycle(%d) error = %v, want INDEX_OUT_OF_RANGE", i, err)
		}
	}
}

func TestGuard(t *testing.T) {
	old := wordleState()
	tests := []struct {
		name   string
		mutate func(*State)
		keep   bool
	}{
		{"valid", func(s *State) { s.Width = 6 }, false},
		{"zero width", func(s *State) { s.Width = 0 }, true},
		{"zero rows", func(s *State) { s.Height = Rows(0) }, true},
		{"zero items", func(s *State) { s.Height = Items(0) }, true},
		{"empty alphabet", func(s *State) { s.Alphabet = nil }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := old.Clone()
			tt.mutate(&next)
			got := Guard(old, next)
			if tt.keep && got.Width != old.Width {
				t.Errorf("Guard accepted invalid candidate")
			}
			if !tt.keep && got.Width != next.Width {
				t.Errorf("Guard rejected valid candidate")
			}
		})
	}
}

func TestTryExpand(t *testing.T) {
	oneRow := wordleState()
	oneRow.Height = Rows(1)
	oneRow.Data = oneRow.Data[:5]

	tests := []struct {
		name     string
		s        State
		axis     Axis
		accepted bool
		width    int
		height   Sizing
	}{
		{"grow width", wordleState(), AxisWidth, true, 6, Rows(4)},
		{"grow count", connectionsState(), AxisCount, true, 4, Items(17)},
		{"shrink last row", withShift(oneRow), AxisHeight, false, 5, Rows(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TryExpand(tt.s, tt.axis)
			if ok != tt.accepted {
				t.Errorf("accepted = %v, want %v", ok, tt.accepted)
			}
			if got.Width != tt.width || got.Height != tt.height {
				t.Errorf("got %d wide, %v; want %d wide, %v", got.Width, got.Height, tt.width, tt.height)
			}
		})
	}
}

func TestCheckAcceptsUnchangedCandidate(t *testing.T) {
	s := wordleState()
	if _, ok := Check(s, s.Clone()); !ok {
		t.Error("Check rejected a valid candidate equal to the old state")
	}
}

func TestGuardIdempotent(t *testing.T) {
	s := connectionsState()
	got := Guard(s, s)
	if got.Width != s.Width || got.Height != s.Height || !slices.Equal(got.Data, s.Data) {
		t.Errorf("Guard(s, s) changed a valid state")
	}
}

func TestExpandWidthRowCount(t *testing.T) {
	s := numbered(5, 4)
	next := ApplyExpand(s, AxisWidth)
	if next.Width != 6 || next.Height != Rows(4) {
		t.Fatalf("got %dx%s, want 6x4 rows", next.Width, next.Height)
	}
	old, cur := ToGrid(s), ToGrid(next)
	for r := range old {
		for c := range old[r] {
			if cur[r][c] != old[r][c] {
				t.Errorf("cell (%d,%d) = %q, want %q", r, c, string(cur[r][c]), string(old[r][c]))
			}
		}
		if cur[r][5] != s.Default() {
			t.Errorf("new cell (%d,5) = %q, want default", r, string(cur[r][5]))
		}
	}
	if err := Validate(next); err != nil {
		t.Error(err)
	}
}

func TestExpandThenContractWidth(t *testing.T) {
	s := numbered(5, 4)
	grown := ApplyExpand(s, AxisWidth)
	back := ApplyExpand(withShift(grown), AxisWidth)
	if back.Width != s.Width || ShapeOf(back).Cells != ShapeOf(s).Cells {
		t.Fatalf("got %dx%s, want %dx%s", back.Width, back.Height, s.Width, s.Height)
	}
	if !slices.Equal(back.Data, s.Data) {
		t.Errorf("data = %v, want %v", back.Data, s.Data)
	}
}

func TestExpandHeight(t *testing.T) {
	s := numbered(5, 4)
	next := ApplyExpand(s, AxisHeight)
	if next.Height != Rows(5) || len(next.Data) != 25 {
		t.Fatalf("got %s with %d cells", next.Height, len(next.Data))
	}
	if !slices.Equal(next.Data[:20], s.Data) {
		t.Error("existing rows not preserved")
	}
	for _, g := range next.Data[20:] {
		if g != s.Default() {
			t.Errorf("new row holds %q", string(g))
		}
	}

	shrunk := ApplyExpand(withShift(s), AxisHeight)
	if shrunk.Height != Rows(3) || !slices.Equal(shrunk.Data, s.Data[:15]) {
		t.Errorf("contract height: got %s %v", shrunk.Height, shrunk.Data)
	}
}

func TestContractSingleRowRejected(t *testing.T) {
	s := withShift(New(5, Rows(1), black, green))
	next := ApplyExpand(s, AxisHeight)
	if next.Height != Rows(1) || len(next.Data) != 5 {
		t.Errorf("got %s with %d cells, want unchanged", next.Height, len(next.Data))
	}
}

func TestContractSingleColumnRejected(t *testing.T) {
	s := withShift(New(1, Rows(3), black))
	next := ApplyExpand(s, AxisWidth)
	if next.Width != 1 {
		t.Errorf("width = %d, want 1", next.Width)
	}
}

func TestExpandCountFromRows(t *testing.T) {
	s := connectionsState()
	next := ApplyExpand(s, AxisCount)
	if next.Height != Items(17) {
		t.Fatalf("height = %s, want 17 items", next.Height)
	}
	if len(next.Data) != 17 {
		t.Fatalf("len(data) = %d, want 17", len(next.Data))
	}
	if next.Data[16] != s.Alphabet[0] {
		t.Errorf("data[16] = %q, want first glyph", string(next.Data[16]))
	}
	if !slices.Equal(next.Data[:16], s.Data) {
		t.Error("existing cells changed")
	}
}

func TestContractCount(t *testing.T) {
	s := New(4, Items(5), blue, purple)
	s.Data[3] = purple
	next := ApplyExpand(withShift(s), AxisCount)
	if next.Height != Items(4) || !slices.Equal(next.Data, s.Data[:4]) {
		t.Errorf("got %s %v", next.Height, next.Data)
	}

	one := withShift(New(4, Items(1), blue))
	if got := ApplyExpand(one, AxisCount); got.Height != Items(1) || len(got.Data) != 1 {
		t.Errorf("contracting the last cell: got %s with %d cells", got.Height, len(got.Data))
	}
}

func TestExpandWidthItemCountKeepsCells(t *testing.T) {
	s := New(4, Items(7), blue, purple)
	s.Data[6] = purple
	next := ApplyExpand(s, AxisWidth)
	if next.Width != 5 || next.Height != Items(7) {
		t.Fatalf("got %dx%s", next.Width, next.Height)
	}
	if !slices.Equal(next.Data, s.Data) {
		t.Errorf("data = %v, want %v", next.Data, s.Data)
	}
	if got := len(ToGrid(next)); got != 2 {
		t.Errorf("rows = %d, want 2", got)
	}
	if err := Validate(next); err != nil {
		t.Error(err)
	}
}

func TestExpandHeightFromItems(t *testing.T) {
	s := New(4, Items(6), blue, purple)
	next := ApplyExpand(s, AxisHeight)
	if next.Height != Rows(3) || len(next.Data) != 12 {
		t.Fatalf("got %s with %d cells", next.Height, len(next.Data))
	}
	if err := Validate(next); err != nil {
		t.Error(err)
	}
}

func TestExpandDoesNotAlias(t *testing.T) {
	s := wordleState()
	next := ApplyExpand(s, AxisCount)
	next.Data[0] = green
	next.Alphabet[0] = purple
	if s.Data[0] != black || s.Alphabet[0] != black {
		t.Error("expanded state aliases its input")
	}
}

func TestTransitionsStayValid(t *testing.T) {
	axes := []Axis{AxisWidth, AxisHeight, AxisCount}
	s := connectionsState()
	for step := 0; step < 60; step++ {
		axis := axes[step%len(axes)]
		if step%4 == 3 {
			s.Modifiers.Press(Shift)
		} else {
			s.Modifiers.Release(Shift)
		}
		s = ApplyExpand(s, axis)
		if err := Validate(s); err != nil {
			t.Fatalf("step %d (%s): %v", step, axis, err)
		}
		var err error
		if s, err = ApplyCycle(s, step%len(s.Data)); err != nil {
			t.Fatalf("step %d cycle: %v", step, err)
		}
	}
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{AxisWidth, AxisHeight, AxisCount} {
		got, err := ParseAxis(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAxis(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAxis("depth"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("ParseAxis(depth) error = %v", err)
	}
}

func TestModifiers(t *testing.T) {
	var m Modifiers
	if m.Has(Shift) {
		t.Fatal("zero Modifiers holds shift")
	}
	mod, ok := ParseModifier("SHIFT")
	if !ok || mod != Shift {
		t.Fatalf("ParseModifier(SHIFT) = %v, %v", mod, ok)
	}
	m.Press(mod)
	if !m.Has(Shift) || m.String() != "shift" {
		t.Errorf("after press: %q", m.String())
	}
	m.Release(mod)
	if m.Has(Shift) || m.String() != "" {
		t.Errorf("after release: %q", m.String())
	}
	if _, ok := ParseModifier("ctrl"); ok {
		t.Error("ctrl should be unknown")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State)
		ok     bool
	}{
		{"preset", func(*State) {}, true},
		{"short data", func(s *State) { s.Data = s.Data[:3] }, false},
		{"foreign glyph", func(s *State) { s.Data[0] = blue }, false},
		{"unset alphabet entry", func(s *State) { s.Alphabet = append(s.Alphabet, Unset) }, false},
		{"zero width", func(s *State) { s.Width = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := wordleState()
			tt.mutate(&s)
			err := Validate(s)
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidState) {
				t.Errorf("error code = %s, want INVALID_STATE", errs.GetCode(err))
			}
		})
	}
}

func TestShareText(t *testing.T) {
	s := New(2, Rows(2), black, green)
	s.Data[1] = green
	got, err := ShareText("Wordle 1 ?/6\n", s)
	if err != nil {
		t.Fatal(err)
	}
	want := "Wordle 1 ?/6\n\n⬛🟩\n⬛⬛"
	if got != want {
		t.Errorf("ShareText = %q, want %q", got, want)
	}
}

func TestShareTextRejectsBadGlyph(t *testing.T) {
	for _, g := range []Glyph{Unset, "zz", "110000"} {
		s := New(1, Rows(1), black)
		s.Data[0] = g
		if _, err := ShareText("x", s); !errs.Is(err, errs.ErrCodeInvalidGlyph) {
			t.Errorf("glyph %q: error = %v, want INVALID_GLYPH", string(g), err)
		}
	}
}

func TestGlyphString(t *testing.T) {
	if got := green.String(); got != "🟩" {
		t.Errorf("String() = %q", got)
	}
	if got := Glyph("nope").String(); got != "nope" {
		t.Errorf("String() = %q, want raw value", got)
	}
}

