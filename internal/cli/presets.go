package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/grid"
	"github.com/matzehuels/tilecard/pkg/preset"
)

// presetRow is one line of the presets table.
type presetRow struct {
	preset preset.Preset
	card   preset.Card
	err    error
}

// presetsCommand creates the preset listing command.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List presets with today's captions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			catalog, closeCache, err := c.newCatalog(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			prog := newProgress(loggerFromContext(ctx))
			rows := loadPresets(ctx, spinningLoader{catalog: catalog}, catalog.Presets())
			prog.done(fmt.Sprintf("Loaded %d presets", len(rows)))

			renderPresets(cmd.OutOrStdout(), rows)
			printNextStep("Edit a card", appName+" edit <preset>")
			return nil
		},
	}
}

// loadPresets builds every preset's card. A failing preset keeps its error
// and does not stop the others.
func loadPresets(ctx context.Context, loader spinningLoader, presets []preset.Preset) []presetRow {
	rows := make([]presetRow, 0, len(presets))
	for _, p := range presets {
		card, err := loader.Load(ctx, p.Name)
		rows = append(rows, presetRow{preset: p, card: card, err: err})
	}
	return rows
}

func renderPresets(w io.Writer, rows []presetRow) {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		caption, size := "—", "—"
		if r.err != nil {
			caption = "unavailable: " + errs.UserMessage(r.err)
		} else {
			caption, size = oneLine(r.card.Caption), describeGrid(r.card.State)
		}
		data = append(data, []string{r.preset.Name, r.preset.Description, caption, size})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Description", "Caption", "Grid").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if rows[row].err != nil && col == 2 {
				return base.Foreground(colorRed)
			}
			switch col {
			case 0:
				return base.Foreground(colorCyan).Bold(true)
			case 1, 3:
				return base.Foreground(colorGray)
			}
			return base
		})

	fmt.Fprintln(w, t.Render())
}

// oneLine joins a multi-line caption with " / " for table display.
func oneLine(caption string) string {
	lines := strings.Split(strings.TrimRight(caption, "\n"), "\n")
	return strings.Join(lines, " / ")
}

func describeGrid(s grid.State) string {
	return fmt.Sprintf("%d wide, %v", s.Width, s.Height)
}
