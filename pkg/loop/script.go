package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/grid"
)

// ScriptSurface is a headless Surface that reads intents from text, one per
// line in the ParseIntent syntax. Blank lines and lines starting with # are
// skipped. A bare "copy" uses the caption most recently set by the loop.
// Render returns ErrClosed at end of input.
type ScriptSurface struct {
	sc      *bufio.Scanner
	line    int
	caption string
	last    grid.State
	errs    []error
}

// NewScriptSurface reads intents from r.
func NewScriptSurface(r io.Reader) *ScriptSurface {
	return &ScriptSurface{sc: bufio.NewScanner(r)}
}

// Render records s and returns the next scripted intent.
func (s *ScriptSurface) Render(ctx context.Context, state grid.State) (Intent, error) {
	s.last = state
	for {
		if err := ctx.Err(); err != nil {
			return Intent{}, err
		}
		if !s.sc.Scan() {
			if err := s.sc.Err(); err != nil {
				return Intent{}, fmt.Errorf("script line %d: %w", s.line+1, err)
			}
			return Intent{}, ErrClosed
		}
		s.line++
		raw := strings.TrimSpace(s.sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		if strings.EqualFold(raw, "copy") {
			return Copy(s.caption), nil
		}
		in, err := ParseIntent(raw)
		if err != nil {
			return Intent{}, errs.Wrap(errs.ErrCodeInvalidIntent, err, "script line %d", s.line)
		}
		return in, nil
	}
}

// SetCaption records the current caption.
func (s *ScriptSurface) SetCaption(caption string) { s.caption = caption }

// Report collects a non-fatal error.
func (s *ScriptSurface) Report(err error) { s.errs = append(s.errs, err) }

// Caption returns the most recently set caption.
func (s *ScriptSurface) Caption() string { return s.caption }

// Last returns the state passed to the most recent Render call.
func (s *ScriptSurface) Last() grid.State { return s.last }

// Errors returns the errors reported so far.
func (s *ScriptSurface) Errors() []error { return s.errs }

var (
	_ Surface  = (*ScriptSurface)(nil)
	_ Reporter = (*ScriptSurface)(nil)
)
