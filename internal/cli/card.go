package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilecard/pkg/clipboard"
	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/loop"
	"github.com/matzehuels/tilecard/pkg/preset"
)

// defaultScript copies the preset card unchanged.
const defaultScript = "copy\n"

// cardOptions holds the flags of the card command.
type cardOptions struct {
	script string
	out    string
}

// cardCommand creates the headless card runner.
func (c *CLI) cardCommand() *cobra.Command {
	var opts cardOptions

	cmd := &cobra.Command{
		Use:   "card [preset]",
		Short: "Run an intent script and print share cards",
		Long: `Load a preset, apply the intents of a script and write a share card for
every copy line. Without --script the preset card is printed as is.

Script lines, one per line; blank lines and lines starting with # are skipped:

  cycle <cell>             advance a tile to its next color
  expand width|height|count
  press shift | release shift
  preset <name>            switch to another preset
  copy [caption]           write the card, with the current or a new caption`,
		Example: `  tilecard card wordle
  printf 'cycle 0\ncycle 0\ncopy\n' | tilecard card connections --script -`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := c.Config.DefaultPreset
			if len(args) == 1 {
				name = args[0]
			}
			return c.runCard(cmd.Context(), name, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "intent script file, or - for stdin")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write cards to this file instead of stdout")

	return cmd
}

func (c *CLI) runCard(ctx context.Context, name string, opts cardOptions, stdin io.Reader, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	script, closeScript, err := openScript(opts.script, stdin)
	if err != nil {
		return err
	}
	defer closeScript()

	out := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	catalog, closeCache, err := c.newCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	surface := loop.NewScriptSurface(script)
	lp := loop.New(surface, clipboard.NewWriter(out), spinningLoader{catalog: catalog},
		loop.WithLogger(logger),
		loop.WithInitialPreset(name),
		loop.WithPlaceholder(c.Config.Placeholder),
	)
	if err := lp.Run(ctx); err != nil {
		return err
	}

	if failed := surface.Errors(); len(failed) > 0 {
		for _, err := range failed {
			printWarning("%s", errs.UserMessage(err))
		}
		return fmt.Errorf("%d script step(s) failed: %w", len(failed), errors.Join(failed...))
	}
	if opts.out != "" {
		printSuccess("Wrote card to %s", opts.out)
	}
	prog.done("Card ready")
	return nil
}

// openScript returns the intent source named by path: the default script
// for "", stdin for "-", a file otherwise.
func openScript(path string, stdin io.Reader) (io.Reader, func() error, error) {
	noop := func() error { return nil }
	switch path {
	case "":
		return strings.NewReader(defaultScript), noop, nil
	case "-":
		return stdin, noop, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	return f, f.Close, nil
}

// spinningLoader shows a spinner while a remote preset loads.
type spinningLoader struct {
	catalog *preset.Catalog
}

// Load implements loop.PresetLoader.
func (l spinningLoader) Load(ctx context.Context, name string) (preset.Card, error) {
	p, ok := l.catalog.Lookup(name)
	if !ok || !p.Remote {
		return l.catalog.Load(ctx, name)
	}
	s := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching today's %s puzzle...", p.Name))
	s.Start()
	defer s.Stop()
	return l.catalog.Load(ctx, name)
}
