package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/grid"
	"github.com/matzehuels/tilecard/pkg/loop"
)

// Editor styles
var (
	cellStyle         = lipgloss.NewStyle().Padding(0, 1)
	cellSelectedStyle = lipgloss.NewStyle().Padding(0, 1).Background(colorDim)
	captionBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	buttonStyle       = lipgloss.NewStyle().Foreground(colorWhite)
	buttonKeyStyle    = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	shiftOnStyle      = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

const captionMaxLength = 1024

// =============================================================================
// Messages
// =============================================================================

// stateMsg carries a render request from the loop.
type stateMsg struct{ state grid.State }

// captionMsg replaces the caption text.
type captionMsg string

// reportMsg carries a non-fatal loop error.
type reportMsg struct{ err error }

// =============================================================================
// editorSurface - loop.Surface backed by a bubbletea program
// =============================================================================

// editorSurface hands states to the editor model and waits for its intent.
// The model holds the sending end of a one-slot channel and only emits while
// a render request is pending.
type editorSurface struct {
	send    func(tea.Msg)
	intents chan loop.Intent
	done    chan struct{}
	once    sync.Once
}

func newEditorSurface() *editorSurface {
	return &editorSurface{
		send:    func(tea.Msg) {},
		intents: make(chan loop.Intent, 1),
		done:    make(chan struct{}),
	}
}

// Render implements loop.Surface.
func (s *editorSurface) Render(ctx context.Context, state grid.State) (loop.Intent, error) {
	s.send(stateMsg{state: state})
	select {
	case in := <-s.intents:
		return in, nil
	case <-s.done:
		return loop.Intent{}, loop.ErrClosed
	case <-ctx.Done():
		return loop.Intent{}, ctx.Err()
	}
}

// SetCaption implements loop.Surface.
func (s *editorSurface) SetCaption(caption string) { s.send(captionMsg(caption)) }

// Report implements loop.Reporter.
func (s *editorSurface) Report(err error) { s.send(reportMsg{err: err}) }

// close marks the editor as gone. Pending and future renders return
// loop.ErrClosed.
func (s *editorSurface) close() {
	s.once.Do(func() { close(s.done) })
}

// =============================================================================
// Key Bindings
// =============================================================================

type editorKeys struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Cycle   key.Binding
	Width   key.Binding
	Rows    key.Binding
	Count   key.Binding
	Shift   key.Binding
	Copy    key.Binding
	Caption key.Binding
	Done    key.Binding
	Preset  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newEditorKeys(presets int) editorKeys {
	digits := make([]string, 0, presets)
	for i := 1; i <= presets && i <= 9; i++ {
		digits = append(digits, fmt.Sprint(i))
	}
	presetHelp := "1"
	if len(digits) > 1 {
		presetHelp = "1-" + digits[len(digits)-1]
	}
	return editorKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Cycle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "cycle tile")),
		Width:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "width")),
		Rows:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rows")),
		Count:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "tile count")),
		Shift:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle shrink")),
		Copy:    key.NewBinding(key.WithKeys("y", "c"), key.WithHelp("y", "copy card")),
		Caption: key.NewBinding(key.WithKeys("tab", "e"), key.WithHelp("tab", "edit caption")),
		Done:    key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "done editing")),
		Preset:  key.NewBinding(key.WithKeys(digits...), key.WithHelp(presetHelp, "preset")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k editorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Cycle, k.Width, k.Rows, k.Count, k.Shift, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k editorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Cycle},
		{k.Width, k.Rows, k.Count, k.Shift},
		{k.Caption, k.Done, k.Copy, k.Preset},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// editorModel - the card editor
// =============================================================================

// editorModel renders the grid, the caption and the expand controls.
type editorModel struct {
	state       grid.State
	loaded      bool
	pending     bool // a render request is waiting for an intent
	loading     bool // the caption is the load placeholder
	cursor      int
	caption     textarea.Model
	spinner     spinner.Model
	help        help.Model
	keys        editorKeys
	presets     []string
	placeholder string
	status      string
	err         error
	intents     chan<- loop.Intent
}

func newEditorModel(intents chan<- loop.Intent, presets []string, placeholder string) editorModel {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = captionMaxLength
	ta.SetWidth(40)
	ta.SetHeight(3)
	ta.Blur()

	return editorModel{
		caption:     ta,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleIconSpinner)),
		help:        help.New(),
		keys:        newEditorKeys(len(presets)),
		presets:     presets,
		placeholder: placeholder,
		loading:     true,
		intents:     intents,
	}
}

func (m editorModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg.state
		m.loaded = true
		m.pending = true
		m.cursor = min(m.cursor, max(len(m.state.Data)-1, 0))
		return m, nil

	case captionMsg:
		m.caption.SetValue(string(msg))
		m.loading = string(msg) == m.placeholder
		if m.loading {
			m.status, m.err = "", nil
		}
		return m, nil

	case reportMsg:
		m.err = msg.err
		m.status = ""
		m.loading = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.caption.SetWidth(max(min(msg.Width-4, 60), 20))
		return m, nil

	case tea.KeyMsg:
		if m.caption.Focused() {
			return m.updateCaption(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m editorModel) updateCaption(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Done):
		m.caption.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.caption, cmd = m.caption.Update(msg)
	return m, cmd
}

func (m editorModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	width := max(m.state.Width, 1)
	cells := len(m.state.Data)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor-width >= 0 {
			m.cursor -= width
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+width < cells {
			m.cursor += width
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%width > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%width < width-1 && m.cursor+1 < cells {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Caption):
		return m, m.caption.Focus()
	case key.Matches(msg, m.keys.Cycle):
		if cells > 0 {
			m.emit(loop.CycleCell(m.cursor))
		}
	case key.Matches(msg, m.keys.Width):
		m.emit(loop.ExpandAxis(grid.AxisWidth))
	case key.Matches(msg, m.keys.Rows):
		m.emit(loop.ExpandAxis(grid.AxisHeight))
	case key.Matches(msg, m.keys.Count):
		m.emit(loop.ExpandAxis(grid.AxisCount))
	case key.Matches(msg, m.keys.Shift):
		if m.state.Modifiers.Has(grid.Shift) {
			m.emit(loop.Release(grid.Shift.String()))
		} else {
			m.emit(loop.Press(grid.Shift.String()))
		}
	case key.Matches(msg, m.keys.Copy):
		if m.emit(loop.Copy(m.caption.Value())) {
			m.status, m.err = "Copied to clipboard", nil
		}
	case key.Matches(msg, m.keys.Preset) && len(msg.Runes) == 1:
		if i := int(msg.Runes[0] - '1'); i >= 0 && i < len(m.presets) {
			m.emit(loop.SelectPreset(m.presets[i]))
		}
	}
	return m, nil
}

// emit hands in to the loop if a render request is pending. Input that
// arrives while the loop is busy is dropped.
func (m *editorModel) emit(in loop.Intent) bool {
	if !m.pending {
		return false
	}
	select {
	case m.intents <- in:
		m.pending = false
		if in.Kind != loop.KindCopy {
			m.status, m.err = "", nil
		}
		return true
	default:
		return false
	}
}

func (m editorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("tilecard"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " " + StyleDim.Render(m.placeholder))
		b.WriteString("\n")
	}
	b.WriteString(captionBoxStyle.Render(m.caption.View()))
	b.WriteString("\n\n")

	if m.loaded {
		b.WriteString(m.gridView())
		b.WriteString("\n\n")
		b.WriteString(m.controlsView())
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(StyleError.Render(iconError + " " + errs.UserMessage(m.err)))
	case m.status != "":
		b.WriteString(StyleSuccess.Render(iconSuccess + " " + m.status))
	}
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m editorModel) gridView() string {
	var b strings.Builder
	i := 0
	for r, row := range grid.ToGrid(m.state) {
		if r > 0 {
			b.WriteString("\n")
		}
		for _, g := range row {
			style := cellStyle
			if i == m.cursor {
				style = cellSelectedStyle
			}
			b.WriteString(style.Render(g.String()))
			i++
		}
	}
	return b.String()
}

// controlsView shows the expand buttons. Their signs follow the shift state.
func (m editorModel) controlsView() string {
	sign, step := "+", "+1"
	shift := StyleDim.Render("shift off")
	if m.state.Modifiers.Has(grid.Shift) {
		sign, step = "-", "-1"
		shift = shiftOnStyle.Render("shift on")
	}
	button := func(k, label string) string {
		return buttonKeyStyle.Render("["+k+"]") + " " + buttonStyle.Render(label)
	}
	sh := grid.ShapeOf(m.state)
	parts := []string{
		button("w", fmt.Sprintf("width %s", sign)),
		button("r", fmt.Sprintf("rows %s", sign)),
		button("n", fmt.Sprintf("tiles %s", step)),
		shift,
		StyleDim.Render(fmt.Sprintf("%d×%d · %v", m.state.Width, sh.Rows, m.state.Height)),
	}
	return strings.Join(parts, "   ")
}
