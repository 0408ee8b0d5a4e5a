package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilecard/pkg/clipboard"
	"github.com/matzehuels/tilecard/pkg/loop"
	"github.com/matzehuels/tilecard/pkg/preset"
)

// editCommand creates the full-screen editor command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [preset]",
		Short: "Edit a share card in the terminal",
		Long: `Open the card editor. Move between tiles with the arrow keys, press space
to cycle a tile's color and w, r or n to grow the width, the row count or the
tile count. Press s to switch the same keys to shrinking. Press y to copy the
card to the system clipboard via OSC 52.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := c.Config.DefaultPreset
			if len(args) == 1 {
				name = args[0]
			}
			return c.runEditor(cmd.Context(), name)
		},
	}
}

// runEditor runs the loop against the bubbletea surface. The loop runs on
// its own goroutine and the program on this one; whichever ends first stops
// the other.
func (c *CLI) runEditor(ctx context.Context, name string) error {
	logger := c.Logger
	if path, err := c.Config.LogFile(c.getenv); err == nil {
		fl, closer, err := newFileLogger(path, c.Logger.GetLevel())
		if err != nil {
			c.Logger.Warn("logging to stderr", "file", path, "err", err)
		} else {
			defer closer.Close()
			logger = fl
			registerHooks(fl)
		}
	}

	catalog, closeCache, err := c.newCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	surface := newEditorSurface()
	model := newEditorModel(surface.intents, catalog.Names(), c.Config.Placeholder)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	surface.send = program.Send

	lp := loop.New(surface, clipboard.NewOSC52(os.Stderr), catalog,
		loop.WithLogger(logger),
		loop.WithInitialPreset(name),
		loop.WithPlaceholder(c.Config.Placeholder),
	)

	loopErr := make(chan error, 1)
	go func() {
		err := lp.Run(ctx)
		program.Quit()
		loopErr <- err
	}()

	_, runErr := program.Run()
	surface.close()
	if err := <-loopErr; err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("editor: %w", runErr)
	}
	return nil
}

// completePresets offers preset names for shell completion.
func completePresets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return preset.NewCatalog(nil).Names(), cobra.ShellCompDirectiveNoFileComp
}
