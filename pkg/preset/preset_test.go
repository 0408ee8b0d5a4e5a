package preset

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/grid"
	"github.com/matzehuels/tilecard/pkg/integrations"
	"github.com/matzehuels/tilecard/pkg/integrations/strands"
)

var fixedNow = time.Date(2025, 10, 18, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fakeProvider struct {
	puzzle *strands.Puzzle
	err    error
	dates  []string
}

func (f *fakeProvider) Puzzle(_ context.Context, date string) (*strands.Puzzle, error) {
	f.dates = append(f.dates, date)
	return f.puzzle, f.err
}

func TestFactories(t *testing.T) {
	tests := []struct {
		name  string
		state grid.State
		width int
		h     grid.Sizing
		cells int
	}{
		{"wordle", Wordle(), 5, grid.Rows(4), 20},
		{"strands", Strands(7), 4, grid.Items(7), 7},
		{"connections", Connections(), 4, grid.Rows(4), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.state
			if s.Width != tt.width || s.Height != tt.h || len(s.Data) != tt.cells {
				t.Errorf("got %dx%s with %d cells", s.Width, s.Height, len(s.Data))
			}
			if err := grid.Validate(s); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestWordleInitialData(t *testing.T) {
	s := Wordle()
	for i, g := range s.Data {
		if g != "2b1b" {
			t.Fatalf("cell %d = %q, want 2b1b", i, string(g))
		}
	}
}

func TestConnectionsRows(t *testing.T) {
	rows := grid.ToGrid(Connections())
	for k, row := range rows {
		for _, g := range row {
			if g != ConnectionsAlphabet[k] {
				t.Errorf("row %d holds %q, want %q", k, string(g), string(ConnectionsAlphabet[k]))
			}
		}
	}
}

func TestFactoriesDoNotShareAlphabet(t *testing.T) {
	s := Wordle()
	s.Alphabet[0] = "1f4a9"
	if WordleAlphabet[0] != "2b1b" {
		t.Error("state alphabet aliases the package alphabet")
	}
}

func TestDaysSince(t *testing.T) {
	epoch := WordleEpoch
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"epoch", epoch, 0},
		{"one second before", epoch.Add(-time.Second), -1},
		{"one day before", epoch.Add(-day), -1},
		{"just under a day", epoch.Add(day - time.Second), 0},
		{"one day", epoch.Add(day), 1},
		{"fixed", fixedNow, 1582},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSince(epoch, tt.now); got != tt.want {
				t.Errorf("DaysSince = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCaptions(t *testing.T) {
	en := message.NewPrinter(language.English)
	if got, want := WordleCaption(en, fixedNow), "Wordle 1,582 ?/6\n"; got != want {
		t.Errorf("WordleCaption = %q, want %q", got, want)
	}
	if got, want := ConnectionsCaption(en, fixedNow), "Connections\nPuzzle #860"; got != want {
		t.Errorf("ConnectionsCaption = %q, want %q", got, want)
	}
	de := message.NewPrinter(language.German)
	if got, want := WordleCaption(de, fixedNow), "Wordle 1.582 ?/6\n"; got != want {
		t.Errorf("German WordleCaption = %q, want %q", got, want)
	}
	pz := &strands.Puzzle{ID: 590, Clue: "Hidden gems"}
	if got, want := StrandsCaption(pz), "Strands #590\n“Hidden gems”"; got != want {
		t.Errorf("StrandsCaption = %q, want %q", got, want)
	}
}

func TestCatalogNames(t *testing.T) {
	c := NewCatalog(nil)
	want := []string{"wordle", "strands", "connections"}
	if got := c.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if _, ok := c.Lookup(" Wordle "); !ok {
		t.Error("Lookup should be case-insensitive")
	}
	if _, ok := c.Lookup("spelling-bee"); ok {
		t.Error("Lookup found an unknown preset")
	}
}

func TestCatalogLoad(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{puzzle: &strands.Puzzle{
		ID:   590,
		Clue: "Hidden gems",
		ThemeCoords: map[string][][]int{
			"RUBY": {{0, 0}}, "OPAL": {{1, 0}}, "PEARL": {{2, 0}},
			"JADE": {{3, 0}}, "ONYX": {{4, 0}}, "TOPAZ": {{5, 0}},
		},
	}}
	c := NewCatalog(provider, WithClock(fixedClock))

	card, err := c.Load(ctx, "wordle")
	if err != nil {
		t.Fatal(err)
	}
	if card.Caption != "Wordle 1,582 ?/6\n" || len(card.State.Data) != 20 {
		t.Errorf("wordle card = %q with %d cells", card.Caption, len(card.State.Data))
	}

	card, err = c.Load(ctx, "strands")
	if err != nil {
		t.Fatal(err)
	}
	if card.Caption != "Strands #590\n“Hidden gems”" {
		t.Errorf("strands caption = %q", card.Caption)
	}
	if card.State.Height != grid.Items(7) || len(card.State.Data) != 7 {
		t.Errorf("strands state = %s with %d cells", card.State.Height, len(card.State.Data))
	}
	if !slices.Equal(provider.dates, []string{"2025-10-18"}) {
		t.Errorf("provider asked for %v", provider.dates)
	}
}

func TestCatalogLoadUTCDate(t *testing.T) {
	provider := &fakeProvider{puzzle: &strands.Puzzle{ID: 1}}
	late := time.Date(2025, 10, 18, 22, 0, 0, 0, time.FixedZone("PDT", -7*3600))
	c := NewCatalog(provider, WithClock(func() time.Time { return late }))
	if _, err := c.Load(context.Background(), "strands"); err != nil {
		t.Fatal(err)
	}
	if provider.dates[0] != "2025-10-19" {
		t.Errorf("date key = %q, want UTC date 2025-10-19", provider.dates[0])
	}
}

func TestCatalogLoadErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		provider PuzzleProvider
		preset   string
		code     errs.Code
	}{
		{"unknown preset", nil, "spelling-bee", errs.ErrCodeInvalidPreset},
		{"no provider", nil, "strands", errs.ErrCodeUnsupported},
		{"not published", &fakeProvider{err: integrations.ErrNotFound}, "strands", errs.ErrCodeNotFound},
		{"offline", &fakeProvider{err: integrations.ErrNetwork}, "strands", errs.ErrCodeNetwork},
		{"deadline", &fakeProvider{err: context.DeadlineExceeded}, "strands", errs.ErrCodeTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(tt.provider, WithClock(fixedClock))
			_, err := c.Load(ctx, tt.preset)
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("error code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestProviderErrorKeepsCause(t *testing.T) {
	c := NewCatalog(&fakeProvider{err: integrations.ErrNetwork}, WithClock(fixedClock))
	_, err := c.Load(context.Background(), "strands")
	if !errors.Is(err, integrations.ErrNetwork) {
		t.Errorf("error %v does not wrap ErrNetwork", err)
	}
}

func TestLoadReturnsFreshState(t *testing.T) {
	c := NewCatalog(nil, WithClock(fixedClock))
	a, _ := c.Load(context.Background(), "connections")
	a.State.Data[0] = "2b1b"
	a.State.Modifiers.Press(grid.Shift)
	b, _ := c.Load(context.Background(), "connections")
	if b.State.Data[0] != "1f7e8" || b.State.Modifiers.Has(grid.Shift) {
		t.Error("second load observed mutations of the first")
	}
}
