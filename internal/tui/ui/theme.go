package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is used when the config names no theme or an unknown one.
const DefaultTheme = "dracula"

// ThemeProvider cycles through the bubbletint themes the TUI colors come
// from. Theme names are bubbletint IDs, which is what the config stores.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider starts at the named theme, or at DefaultTheme when the
// name is empty or unknown.
func NewThemeProvider(name string) *ThemeProvider {
	all := tint.DefaultTints()

	fallback := all[0]
	for _, t := range all {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}

	registry := tint.NewRegistry(fallback, all...)
	if name != "" {
		registry.SetTintID(name)
	}
	return &ThemeProvider{registry: registry}
}

// KnownTheme reports whether name is a theme the TUI can use.
func KnownTheme(name string) bool {
	for _, t := range tint.DefaultTints() {
		if t.ID() == name {
			return true
		}
	}
	return false
}

// Next moves to the following theme and returns its name.
func (tp *ThemeProvider) Next() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// Name returns the current theme as stored in the config.
func (tp *ThemeProvider) Name() string {
	return tp.registry.ID()
}

// DisplayName returns the human-readable name of the current theme.
func (tp *ThemeProvider) DisplayName() string {
	return tp.registry.DisplayName()
}

// Themes returns the names of all themes, sorted.
func (tp *ThemeProvider) Themes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles returns the TUI styles for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
