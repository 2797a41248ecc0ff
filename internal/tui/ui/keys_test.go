package ui

import (
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
	}{
		{"Submit", keys.Submit},
		{"Clear", keys.Clear},
		{"HistoryPrev", keys.HistoryPrev},
		{"HistoryNext", keys.HistoryNext},
		{"Complete", keys.Complete},
		{"ScrollUp", keys.ScrollUp},
		{"ScrollDown", keys.ScrollDown},
		{"Quit", keys.Quit},
		{"Help", keys.Help},
		{"NextTheme", keys.NextTheme},
		{"Edit", keys.Edit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.binding.Keys()) == 0 {
				t.Errorf("expected keys for binding %s", tt.name)
			}
			help := tt.binding.Help()
			if help.Key == "" {
				t.Errorf("expected help key for binding %s", tt.name)
			}
			if help.Desc == "" {
				t.Errorf("expected help description for binding %s", tt.name)
			}
		})
	}
}

func TestKeyBindingsMatch(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"Quit ctrl+c", keys.Quit, "ctrl+c"},
		{"Quit ctrl+d", keys.Quit, "ctrl+d"},
		{"Submit enter", keys.Submit, "enter"},
		{"Clear esc", keys.Clear, "esc"},
		{"HistoryPrev up", keys.HistoryPrev, "up"},
		{"HistoryNext down", keys.HistoryNext, "down"},
		{"Complete tab", keys.Complete, "tab"},
		{"Edit ctrl+e", keys.Edit, "ctrl+e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, k := range tt.binding.Keys() {
				if k == tt.key {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected binding %s to include key %s, got keys %v", tt.name, tt.key, tt.binding.Keys())
			}
		})
	}
}

// Any printable key must reach the command line.
func TestNoPrintableBindings(t *testing.T) {
	keys := DefaultKeyMap()

	for _, b := range keys.StatusBindings() {
		for _, k := range b.Keys() {
			if utf8.RuneCountInString(k) == 1 {
				t.Errorf("binding %q uses printable key %q", b.Help().Desc, k)
			}
		}
	}
}
