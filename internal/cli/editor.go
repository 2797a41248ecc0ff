package cli

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/xolan/timelog/internal/storage"
)

// EditorCommand backs up the log and returns the command that opens it in
// editor. The editor may carry arguments, e.g. "code -w". The caller wires
// up the terminal and runs it, then reloads the session.
func EditorCommand(editor, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor configured (set $EDITOR or 'editor' in the config file)")
	}

	if err := storage.CreateBackup(path); err != nil {
		return nil, fmt.Errorf("failed to back up %s: %w", path, err)
	}

	args := append(fields[1:len(fields):len(fields)], path)
	return exec.Command(fields[0], args...), nil
}
