// Package pkg provides the core libraries for tilecard share card editing.
//
// # Overview
//
// Daily puzzle games end with a share card: a caption followed by a block of
// colored-tile emoji. Tilecard lets you build such a card by hand. The pkg
// directory is organized into these areas:
//
//  1. [grid] - The tile grid model and its transformations
//  2. [preset] - Built-in starting cards (Wordle, Strands, Connections)
//  3. [loop] - The render, intent, apply cycle that drives an editor
//  4. [integrations] - Puzzle metadata clients ([integrations/strands])
//  5. [cache] - Key/value caching for provider responses
//  6. [clipboard] - Clipboard sinks (OSC 52, plain writers)
//
// # Architecture
//
// The data flow of one edit:
//
//	Surface (terminal editor, script, HTTP request)
//	         ↓ Intent
//	    [loop] package (owns the state, dispatches the intent)
//	         ↓
//	    [grid] package (cycle, expand, guard)
//	         ↓ State
//	    Surface renders; a copy intent goes to [clipboard]
//
// Presets feed the loop with a caption and a starting grid; the Strands preset
// asks [integrations/strands] for today's puzzle, cached through [cache].
//
// # Quick Start
//
// Run a scripted edit and print the card:
//
//	import (
//	    "github.com/matzehuels/tilecard/pkg/clipboard"
//	    "github.com/matzehuels/tilecard/pkg/loop"
//	    "github.com/matzehuels/tilecard/pkg/preset"
//	)
//
//	surface := loop.NewScriptSurface(strings.NewReader("cycle 0\ncopy\n"))
//	lp := loop.New(surface, clipboard.NewWriter(os.Stdout), preset.NewCatalog(nil),
//	    loop.WithInitialPreset("connections"))
//	if err := lp.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Or work on a grid directly:
//
//	s := preset.Wordle()
//	s, _ = grid.ApplyCycle(s, 0)
//	s = grid.ApplyExpand(s, grid.AxisWidth)
//	text, _ := grid.ShareText("Wordle 1,582 3/6\n", s)
//
// # Observability
//
// The [observability] package exposes hooks for loop transitions, cache
// hits and provider requests. The CLI routes them to its logger.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/tilecard/pkg/grid
// [preset]: https://pkg.go.dev/github.com/matzehuels/tilecard/pkg/preset
// [loop]: https://pkg.go.dev/github.com/matzehuels/tilecard/pkg/loop
// [integrations]: https://pkg.go.dev/github.com/matzehuels/tilecard/pkg/integrations
// [integrations/strands]: https://pkg.go.dev/github.com/matzehuels/tilecard/pkg/integrations/strands
// [cache]: https://pkg.go.dev/github.com/matzehuels/tilecard/pkg/cache
// [clipboard]: https://pkg.go.dev/github.com/matzehuels/tilecard/pkg/clipboard
// [observability]: https://pkg.go.dev/github.com/matzehuels/tilecard/pkg/observability
package pkg
