package ui

import "time"

// TickMsg is sent every minute so the time since the last entry stays current.
type TickMsg time.Time

// EditorFinishedMsg is sent when the external editor exits.
type EditorFinishedMsg struct {
	Err error
}

// ThemeSavedMsg is sent after the chosen theme was written to the config.
type ThemeSavedMsg struct {
	ThemeName string
	Err       error
}
