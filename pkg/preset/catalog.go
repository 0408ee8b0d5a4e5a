package preset

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/grid"
	"github.com/matzehuels/tilecard/pkg/integrations"
	"github.com/matzehuels/tilecard/pkg/integrations/strands"
)

// Built-in preset names.
const (
	NameWordle      = "wordle"
	NameStrands     = "strands"
	NameConnections = "connections"
)

// Default is the preset loaded at startup when none is configured.
const Default = NameWordle

// Card is a loaded preset: the caption and the starting grid.
type Card struct {
	Caption string
	State   grid.State
}

// PuzzleProvider supplies the daily Strands descriptor for a UTC date key
// in strands.DateLayout.
type PuzzleProvider interface {
	Puzzle(ctx context.Context, date string) (*strands.Puzzle, error)
}

// Preset describes one catalog entry.
type Preset struct {
	Name        string
	Description string
	Remote      bool // Loading needs the puzzle provider

	load func(ctx context.Context, c *Catalog, now time.Time) (Card, error)
}

var builtins = []Preset{
	{
		Name:        NameWordle,
		Description: "5x4 squares, daily puzzle number",
		load: func(_ context.Context, c *Catalog, now time.Time) (Card, error) {
			return Card{Caption: WordleCaption(c.printer, now), State: Wordle()}, nil
		},
	},
	{
		Name:        NameStrands,
		Description: "one circle per word of today's puzzle, with its clue",
		Remote:      true,
		load:        loadStrands,
	},
	{
		Name:        NameConnections,
		Description: "4x4 squares, one color per group",
		load: func(_ context.Context, c *Catalog, now time.Time) (Card, error) {
			return Card{Caption: ConnectionsCaption(c.printer, now), State: Connections()}, nil
		},
	},
}

// Catalog resolves preset names to cards.
type Catalog struct {
	provider PuzzleProvider
	printer  *message.Printer
	now      func() time.Time
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock overrides the clock used for puzzle numbers and date keys.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocale sets the locale used to group digits in captions.
func WithLocale(tag language.Tag) Option {
	return func(c *Catalog) { c.printer = message.NewPrinter(tag) }
}

// NewCatalog creates a catalog of the built-in presets. provider may be nil,
// in which case the strands preset fails to load.
func NewCatalog(provider PuzzleProvider, opts ...Option) *Catalog {
	c := &Catalog{
		provider: provider,
		printer:  message.NewPrinter(language.English),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Names lists the preset names in display order.
func (c *Catalog) Names() []string {
	names := make([]string, len(builtins))
	for i, p := range builtins {
		names[i] = p.Name
	}
	return names
}

// Presets lists the catalog entries in display order.
func (c *Catalog) Presets() []Preset {
	return slices.Clone(builtins)
}

// Lookup finds a preset by case-insensitive name.
func (c *Catalog) Lookup(name string) (Preset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range builtins {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Load builds the named preset's card. Unknown names yield an
// INVALID_PRESET error; provider failures yield NOT_FOUND, TIMEOUT or
// NETWORK_ERROR.
func (c *Catalog) Load(ctx context.Context, name string) (Card, error) {
	p, ok := c.Lookup(name)
	if !ok {
		return Card{}, errs.New(errs.ErrCodeInvalidPreset, "unknown preset %q (have %s)",
			name, strings.Join(c.Names(), ", "))
	}
	return p.load(ctx, c, c.now())
}

func loadStrands(ctx context.Context, c *Catalog, now time.Time) (Card, error) {
	if c.provider == nil {
		return Card{}, errs.New(errs.ErrCodeUnsupported, "strands preset needs a puzzle provider")
	}
	date := now.UTC().Format(strands.DateLayout)
	pz, err := c.provider.Puzzle(ctx, date)
	if err != nil {
		return Card{}, providerError(err, date)
	}
	if pz == nil {
		return Card{}, errs.New(errs.ErrCodeInternal, "provider returned no puzzle for %s", date)
	}
	return Card{Caption: StrandsCaption(pz), State: Strands(pz.Words())}, nil
}

func providerError(err error, date string) error {
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return errs.Wrap(errs.ErrCodeNotFound, err, "no strands puzzle for %s", date)
	case errors.Is(err, context.DeadlineExceeded):
		return errs.Wrap(errs.ErrCodeTimeout, err, "fetching strands puzzle for %s", date)
	default:
		return errs.Wrap(errs.ErrCodeNetwork, err, "fetching strands puzzle for %s", date)
	}
}
