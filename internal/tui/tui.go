// Package tui provides the full-screen terminal interface for timelog.
// It runs the same session as the line-oriented front end: the report on
// top, the command line below it.
package tui

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/session"
	"github.com/xolan/timelog/internal/tui/ui"
)

// Lines used by everything but the report: padding, prompt line, input
// box, message and status bar.
const chromeHeight = 9

// Model is the root TUI model
type Model struct {
	services *service.Services
	session  *session.Session

	input    textinput.Model
	viewport viewport.Model
	ready    bool

	width    int
	height   int
	showHelp bool

	message string
	isError bool

	// history holds previous descriptions, oldest first. historyPos ==
	// len(history) means the user is editing draft.
	history    []string
	historyPos int
	draft      string

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	execProcess func(*exec.Cmd, tea.ExecCallback) tea.Cmd
}

// New creates a TUI model with a fresh session over services.
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)

	ti := textinput.New()
	ti.Prompt = cli.Prompt
	ti.Placeholder = "what did you just finish? (:h for help)"
	ti.ShowSuggestions = true
	ti.Focus()

	m := Model{
		services:      services,
		session:       services.NewSession(),
		input:         ti,
		themeProvider: themeProvider,
		styles:        themeProvider.Styles(),
		keys:          ui.DefaultKeyMap(),
		execProcess:   tea.ExecProcess,
	}
	m.loadHistory()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return ui.TickMsg(t)
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-12, 10)
		reportHeight := max(msg.Height-chromeHeight, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, reportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = reportHeight
		}
		m.refresh()
		return m, nil

	case ui.TickMsg:
		// The since-last line is computed in View; refreshing also rolls the
		// report over at midnight.
		m.refresh()
		return m, tick()

	case ui.EditorFinishedMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("editor exited with an error: %w", msg.Err))
		}
		if err := m.session.Reload(); err != nil {
			m.setError(err)
		}
		m.loadHistory()
		m.refresh()
		return m, nil

	case ui.ThemeSavedMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("failed to save theme %s: %w", msg.ThemeName, msg.Err))
		} else {
			m.setMessage("Theme: " + m.themeProvider.DisplayName())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Clear, m.keys.Submit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.historyPos = len(m.history)
		m.message = ""
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()

	case key.Matches(msg, m.keys.NextTheme):
		name := m.themeProvider.Next()
		m.styles = m.themeProvider.Styles()
		m.refresh()
		return m, m.saveTheme(name)

	case key.Matches(msg, m.keys.HistoryPrev):
		m.browseHistory(-1)
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		m.browseHistory(1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the command line to the session and applies the outcome.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.message = ""

	out := m.session.Handle(line)
	switch out.Action {
	case session.ActionQuit:
		return m, tea.Quit
	case session.ActionHelp:
		m.showHelp = true
	case session.ActionEdit:
		return m.startEdit()
	case session.ActionError:
		m.setError(out.Err)
	case session.ActionRedraw:
		if out.Added != nil {
			m.loadHistory()
		}
	}

	m.historyPos = len(m.history)
	m.refresh()
	return m, nil
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	c, err := cli.EditorCommand(m.services.Editor(), m.session.LogPath())
	if err != nil {
		m.setError(err)
		return m, nil
	}
	return m, m.execProcess(c, func(err error) tea.Msg {
		return ui.EditorFinishedMsg{Err: err}
	})
}

func (m Model) saveTheme(name string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeSavedMsg{ThemeName: name, Err: m.services.Config.SetTheme(name)}
	}
}

// loadHistory reloads previous descriptions for browsing and completion.
func (m *Model) loadHistory() {
	m.history = m.session.History()
	m.historyPos = len(m.history)
	m.draft = ""
	m.input.SetSuggestions(m.history)
}

// browseHistory moves through history by delta, keeping the line being
// typed as the newest item.
func (m *Model) browseHistory(delta int) {
	pos := m.historyPos + delta
	if pos < 0 || pos > len(m.history) {
		return
	}
	if m.historyPos == len(m.history) {
		m.draft = m.input.Value()
	}
	m.historyPos = pos
	if pos == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[pos])
	}
	m.input.CursorEnd()
}

func (m *Model) setError(err error) {
	m.message = "Error: " + err.Error()
	m.isError = true
}

func (m *Model) setMessage(s string) {
	m.message = s
	m.isError = false
}

// refresh re-renders the report into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderReport())
}

func (m Model) renderReport() string {
	state := m.session.State()
	result := m.session.Report()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(cli.RenderHeader(state.Mode, result.Window, m.session.Now())))
	b.WriteString("\n")

	for _, a := range result.Activities {
		line := cli.FormatActivity(a)
		duration, name, _ := strings.Cut(line, ": ")
		nameStyle := m.styles.ActivityName
		if a.Activity.Slack {
			nameStyle = m.styles.SlackName
		}
		b.WriteString(m.styles.ActivityTime.Render(duration+":") + " " + nameStyle.Render(name) + "\n")
	}

	b.WriteString(m.styles.Separator.Render(cli.Separator) + "\n")
	b.WriteString(m.renderTotal("Total work done:", result.Work) + "\n")
	b.WriteString(m.renderTotal("Total slacking:", result.Slack) + "\n")
	if state.Span > 1 && result.DaysWithEntries > 1 {
		b.WriteString(m.renderTotal("Average work per day:", result.AverageWorkPerDay()) + "\n")
	}

	if w := cli.RenderGapWarnings(result.Warnings); w != "" {
		b.WriteString("\n" + m.styles.Warning.Render(strings.TrimRight(w, "\n")) + "\n")
	}

	return b.String()
}

func (m Model) renderTotal(label string, d time.Duration) string {
	return m.styles.TotalLabel.Render(label) + " " + m.styles.TotalValue.Render(cli.FormatDuration(d))
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	since, ok := m.session.SinceLast()
	b.WriteString(m.styles.SinceLastLine.Render(cli.RenderPrompt(since, ok)))
	b.WriteString("\n")
	b.WriteString(m.styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n")

	if m.message != "" {
		if m.isError {
			b.WriteString(m.styles.Error.Render(m.message))
		} else {
			b.WriteString(m.styles.Success.Render(m.message))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string
	for _, binding := range m.keys.StatusBindings() {
		help := binding.Help()
		parts = append(parts, m.renderKeyHelp(help.Key, help.Desc))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - 4 - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("timelog"))
	help.WriteString("\n")
	help.WriteString(cli.HelpText(m.width-12, cli.TUIHistoryHint))
	help.WriteString("\n\n")
	for _, binding := range m.keys.StatusBindings() {
		h := binding.Help()
		help.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
	}
	help.WriteString("\n")
	help.WriteString(m.styles.StatusHelp.Render("Press esc to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
