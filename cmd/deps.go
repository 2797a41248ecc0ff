package cmd

import (
	"io"
	"os"
	"os/exec"

	"github.com/xolan/timelog/internal/repl"
	"github.com/xolan/timelog/internal/service"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)
	// Services loads the config and opens the log. logFile is the --file
	// flag, empty when unset.
	Services func(logFile string) (*service.Services, error)
	// LineInput returns the reader for the interactive session.
	LineInput func() (repl.LineInput, error)
	// RunEditor runs an editor command attached to the terminal.
	RunEditor func(cmd *exec.Cmd) error
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Stdin:     os.Stdin,
		Exit:      os.Exit,
		Services:  service.NewServices,
		LineInput: repl.NewLineInput,
		RunEditor: runAttached,
	}
}

func runAttached(c *exec.Cmd) error {
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
