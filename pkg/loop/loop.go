// Package loop runs the interactive editing cycle: render the grid, wait for
// one intent, apply it, repeat.
//
// The loop owns the grid state. A [Surface] draws it and turns user input
// into an [Intent]; a [Clipboard] receives share cards; a [PresetLoader]
// supplies starting grids and captions. Exactly one intent is processed at
// a time and the loop starts no goroutines of its own.
//
// Shape changes that would empty the grid are dropped silently. A cycle
// request for a cell that does not exist is a surface bug and stops the
// loop. Clipboard and preset failures are reported to the surface, when it
// implements [Reporter], and editing continues.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/grid"
	"github.com/matzehuels/tilecard/pkg/observability"
	"github.com/matzehuels/tilecard/pkg/preset"
)

// ErrClosed is returned by a Surface when the user has left. Run treats it
// as a normal exit.
var ErrClosed = errors.New("surface closed")

// DefaultPlaceholder is shown as the caption while a preset loads.
const DefaultPlaceholder = "Loading..."

// Surface renders grid states and collects user intents.
type Surface interface {
	// Render shows s and blocks until the user produces one intent.
	Render(ctx context.Context, s grid.State) (Intent, error)

	// SetCaption replaces the caption text the user is editing.
	SetCaption(caption string)
}

// Reporter is implemented by surfaces that can show non-fatal errors.
type Reporter interface {
	Report(err error)
}

// Clipboard receives share card text.
type Clipboard interface {
	Write(ctx context.Context, text string) error
}

// PresetLoader resolves preset names to cards.
type PresetLoader interface {
	Load(ctx context.Context, name string) (preset.Card, error)
}

// Loop wires a surface, a clipboard and a preset source together.
type Loop struct {
	surface     Surface
	clipboard   Clipboard
	presets     PresetLoader
	logger      *log.Logger
	initial     string
	placeholder string
	id          uuid.UUID
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.logger = l
		}
	}
}

// WithInitialPreset sets the preset loaded by Run. The default is
// preset.Default.
func WithInitialPreset(name string) Option {
	return func(lp *Loop) {
		if name != "" {
			lp.initial = name
		}
	}
}

// WithPlaceholder sets the caption shown while a preset loads.
func WithPlaceholder(text string) Option {
	return func(lp *Loop) {
		if text != "" {
			lp.placeholder = text
		}
	}
}

// New creates a loop.
func New(surface Surface, clipboard Clipboard, presets PresetLoader, opts ...Option) *Loop {
	lp := &Loop{
		surface:     surface,
		clipboard:   clipboard,
		presets:     presets,
		logger:      log.Default(),
		initial:     preset.Default,
		placeholder: DefaultPlaceholder,
		id:          uuid.New(),
	}
	for _, opt := range opts {
		opt(lp)
	}
	lp.logger = lp.logger.With("run", lp.id.String()[:8])
	return lp
}

// ID identifies this run in logs.
func (lp *Loop) ID() uuid.UUID { return lp.id }

// Run loads the initial preset and then processes intents until the surface
// closes, ctx is canceled or a fatal error occurs. A closed surface returns
// nil; cancellation returns ctx.Err().
func (lp *Loop) Run(ctx context.Context) error {
	lp.surface.SetCaption(lp.placeholder)
	card, err := lp.load(ctx, lp.initial)
	if err != nil {
		return fmt.Errorf("load initial preset %q: %w", lp.initial, err)
	}
	lp.surface.SetCaption(card.Caption)
	state := card.State
	lp.logger.Info("editing", "preset", lp.initial, "width", state.Width, "height", state.Height)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		in, err := lp.surface.Render(ctx, state.Clone())
		switch {
		case errors.Is(err, ErrClosed):
			lp.logger.Debug("surface closed")
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("render: %w", err)
		}
		if state, err = lp.Step(ctx, state, in); err != nil {
			return err
		}
	}
}

// Step applies one intent to state and returns the resulting state. Only
// contract violations, such as cycling a cell that does not exist, are
// returned as errors; the returned state is then the input state.
func (lp *Loop) Step(ctx context.Context, state grid.State, in Intent) (grid.State, error) {
	hooks := observability.Loop()
	hooks.OnIntent(ctx, in.Kind.String())
	start := time.Now()

	switch in.Kind {
	case KindCycle:
		next, err := grid.ApplyCycle(state, in.Index)
		if err != nil {
			lp.logger.Error("cycle", "index", in.Index, "cells", len(state.Data), "err", err)
			return state, err
		}
		hooks.OnTransition(ctx, in.Kind.String(), true, time.Since(start))
		return next, nil

	case KindExpand:
		next, accepted := grid.TryExpand(state, in.Axis)
		if !accepted {
			lp.logger.Debug("expand rejected", "axis", in.Axis, "shift", state.Modifiers.Has(grid.Shift))
		}
		hooks.OnTransition(ctx, in.Kind.String(), accepted, time.Since(start))
		return next, nil

	case KindModifierPress, KindModifierRelease:
		mod, ok := grid.ParseModifier(in.Name)
		if !ok {
			lp.logger.Debug("ignoring modifier", "key", in.Name)
			return state, nil
		}
		if in.Kind == KindModifierPress {
			state.Modifiers.Press(mod)
		} else {
			state.Modifiers.Release(mod)
		}
		hooks.OnTransition(ctx, in.Kind.String(), true, time.Since(start))
		return state, nil

	case KindCopy:
		lp.copy(ctx, state, in.Text)
		return state, nil

	case KindSelectPreset:
		lp.surface.SetCaption(lp.placeholder)
		card, err := lp.load(ctx, in.Name)
		if err != nil {
			lp.logger.Warn("preset unavailable", "preset", in.Name, "err", err)
			lp.report(err)
			return state, nil
		}
		lp.surface.SetCaption(card.Caption)
		hooks.OnTransition(ctx, in.Kind.String(), true, time.Since(start))
		return card.State, nil

	default:
		return state, errs.New(errs.ErrCodeInvalidIntent, "unknown intent kind %d", int(in.Kind))
	}
}

func (lp *Loop) load(ctx context.Context, name string) (preset.Card, error) {
	start := time.Now()
	card, err := lp.presets.Load(ctx, name)
	observability.Loop().OnPresetLoad(ctx, name, time.Since(start), err)
	if err != nil {
		return preset.Card{}, err
	}
	lp.logger.Debug("preset loaded", "preset", name, "took", time.Since(start))
	return card, nil
}

func (lp *Loop) copy(ctx context.Context, state grid.State, caption string) {
	text, err := grid.ShareText(caption, state)
	if err != nil {
		lp.logger.Error("share text", "err", err)
		lp.report(err)
		return
	}
	if err := lp.clipboard.Write(ctx, text); err != nil {
		lp.logger.Warn("clipboard write failed", "err", err)
		lp.report(fmt.Errorf("copy: %w", err))
		return
	}
	lp.logger.Info("copied", "bytes", len(text), "rows", len(grid.ToGrid(state)))
}

func (lp *Loop) report(err error) {
	if r, ok := lp.surface.(Reporter); ok {
		r.Report(err)
	}
}
