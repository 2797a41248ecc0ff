// Package repl runs the interactive session on a plain terminal: it prints
// the report, reads a line, hands it to the session and carries out the
// requested effect.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/chzyer/readline"

	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/session"
)

// clearScreen is the terminal reset sequence.
const clearScreen = "\x1bc"

// Options configures a REPL.
type Options struct {
	// Editor is the command used for :e.
	Editor string
	// ClearScreen resets the terminal before every report.
	ClearScreen bool
	// Width is used to wrap the help text.
	Width int
	// RunEditor runs the editor command. Defaults to running it attached
	// to the process's terminal.
	RunEditor func(cmd *exec.Cmd) error
}

// REPL is the read-eval-print loop around a session.
type REPL struct {
	session *session.Session
	input   LineInput
	out     io.Writer
	errOut  io.Writer
	opts    Options
}

// New creates a REPL reading from input and writing to out and errOut.
func New(s *session.Session, input LineInput, out, errOut io.Writer, opts Options) *REPL {
	if opts.RunEditor == nil {
		opts.RunEditor = runAttached
	}
	return &REPL{
		session: s,
		input:   input,
		out:     out,
		errOut:  errOut,
		opts:    opts,
	}
}

func runAttached(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Run loops until :q or end of input. ^C clears the current line. Only a
// failure to read input ends the loop with an error.
func (r *REPL) Run() error {
	show := true
	for !r.session.Closed() {
		if show {
			r.show()
		}
		show = true

		since, ok := r.session.SinceLast()
		fmt.Fprintf(r.out, "\n%s\n", cli.RenderPrompt(since, ok))

		line, err := r.input.ReadLine(cli.Prompt)
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			line = ""
		case errors.Is(err, io.EOF):
			line = ":q"
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		out := r.session.Handle(line)
		switch out.Action {
		case session.ActionHelp:
			fmt.Fprintln(r.out, cli.HelpText(r.opts.Width, cli.ReadlineHistoryHint))
			show = false
		case session.ActionEdit:
			r.edit()
		case session.ActionError:
			fmt.Fprintf(r.errOut, "Error: %v\n", out.Err)
			show = false
		}
	}
	return nil
}

func (r *REPL) show() {
	if r.opts.ClearScreen {
		fmt.Fprint(r.out, clearScreen)
	}

	state := r.session.State()
	result := r.session.Report()
	fmt.Fprintln(r.out, cli.RenderHeader(state.Mode, result.Window, r.session.Now()))
	fmt.Fprint(r.out, cli.RenderReport(result, state.Span > 1))
	if w := cli.RenderGapWarnings(result.Warnings); w != "" {
		fmt.Fprint(r.errOut, w)
	}

	r.input.SetHistory(r.session.History())
}

func (r *REPL) edit() {
	path := r.session.LogPath()
	cmd, err := cli.EditorCommand(r.opts.Editor, path)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}

	if err := r.opts.RunEditor(cmd); err != nil {
		fmt.Fprintf(r.errOut, "Error: Failed to run %s on %s\n", r.opts.Editor, path)
		fmt.Fprintf(r.errOut, "Details: %v\n", err)
	}

	if err := r.session.Reload(); err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
	}
}
