package strands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/tilecard/pkg/cache"
	"github.com/matzehuels/tilecard/pkg/integrations"
)

// DefaultBaseURL is where daily descriptors are published.
const DefaultBaseURL = "https://www.nytimes.com/games-assets/strands"

// DateLayout is the layout of date keys, e.g. "2024-03-04".
const DateLayout = "2006-01-02"

// Puzzle is the subset of the daily descriptor used by tilecard.
type Puzzle struct {
	ID          int                `json:"id"`
	Clue        string             `json:"clue"`
	ThemeCoords map[string][][]int `json:"themeCoords"` // Theme word -> board coordinates
	Spangram    string             `json:"spangram,omitempty"`
	PrintDate   string             `json:"printDate,omitempty"`
}

// Words returns the number of words in a full solve: every theme word plus
// the spangram.
func (p *Puzzle) Words() int {
	return len(p.ThemeCoords) + 1
}

// Client fetches daily descriptors with caching.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Strands client that caches descriptors in backend for
// cacheTTL. A nil backend disables caching.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "strands:", cacheTTL, nil),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL overrides the descriptor location, for mirrors and tests.
func (c *Client) WithBaseURL(u string) *Client {
	if u != "" {
		c.baseURL = strings.TrimRight(u, "/")
	}
	return c
}

// Puzzle returns the descriptor for date, formatted as DateLayout.
//
// Returns:
//   - [integrations.ErrNotFound] if no puzzle is published for date
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - Other errors for malformed dates or JSON decoding failures
func (c *Client) Puzzle(ctx context.Context, date string) (*Puzzle, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("strands: invalid date %q: %w", date, err)
	}

	var p Puzzle
	err := c.Cached(ctx, date, false, &p, func() error {
		return c.Get(ctx, c.url(date), &p)
	})
	if err != nil {
		return nil, fmt.Errorf("strands puzzle %s: %w", date, err)
	}
	return &p, nil
}

// Today returns the descriptor for now's UTC date.
func (c *Client) Today(ctx context.Context, now time.Time) (*Puzzle, error) {
	return c.Puzzle(ctx, now.UTC().Format(DateLayout))
}

func (c *Client) url(date string) string {
	return c.baseURL + "/" + date + ".json"
}
