package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains all key bindings for the TUI. Printable keys belong to the
// command line, so every binding here uses a control or navigation key.
type KeyMap struct {
	// Command line
	Submit      key.Binding
	Clear       key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	Complete    key.Binding

	// Report
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// Global
	Quit      key.Binding
	Help      key.Binding
	NextTheme key.Binding
	Edit      key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add entry / run command"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear input"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous activity"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next activity"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),

		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),

		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		NextTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "next theme"),
		),
		Edit: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "edit log"),
		),
	}
}

// StatusBindings returns the bindings listed in the status bar, in order.
func (k KeyMap) StatusBindings() []key.Binding {
	return []key.Binding{k.Submit, k.HistoryPrev, k.Complete, k.Edit, k.NextTheme, k.Help, k.Quit}
}
