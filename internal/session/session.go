// Package session implements the interactive state machine behind the
// prompt: it holds the report mode and window, turns input lines into
// commands and appends new entries. It performs no terminal I/O; effects
// such as redrawing or launching an editor are returned to the caller.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/timelog/internal/clock"
	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/stats"
	"github.com/xolan/timelog/internal/timeutil"
)

var (
	// ErrClosed is returned for any input received after :q.
	ErrClosed = errors.New("session is closed")
	// ErrUnknownCommand is returned for ':'-prefixed input that is not a command.
	ErrUnknownCommand = errors.New("unknown command")
)

// Log is the entry store the session reads and appends to.
type Log interface {
	Entries() []entry.Entry
	Append(e entry.Entry) error
	Reload() error
	Path() string
}

// Mode is the kind of reporting window.
type Mode int

const (
	ModeDay Mode = iota
	ModeWeek
)

// String returns "day" or "week".
func (m Mode) String() string {
	if m == ModeWeek {
		return "week"
	}
	return "day"
}

// State is everything the session remembers between inputs.
type State struct {
	Mode Mode
	// Span is the number of days or weeks shown, ending with the anchor's.
	Span int
	// Anchor pins the window to a fixed time. Zero means "now".
	Anchor time.Time
}

// Action is the effect the front end must carry out after an input.
type Action int

const (
	// ActionRedraw asks for the report to be shown again.
	ActionRedraw Action = iota
	// ActionHelp asks for the help text.
	ActionHelp
	// ActionEdit asks for the log to be opened in an editor, followed by Reload.
	ActionEdit
	// ActionQuit ends the session.
	ActionQuit
	// ActionError reports Outcome.Err; the state is unchanged.
	ActionError
)

// Outcome is the result of handling one input.
type Outcome struct {
	Action Action
	// Added holds the appended entry for successful Add commands.
	Added *entry.Entry
	Err   error
}

// Options configures window and aggregation rules.
type Options struct {
	WeekStartDay string
	Attribution  stats.Attribution
}

// Session is the interactive state machine. It is not safe for concurrent use.
type Session struct {
	log    Log
	clock  clock.Clock
	opts   Options
	state  State
	closed bool
}

// New returns a session in its initial state: today's daily report.
func New(log Log, clk clock.Clock, opts Options) *Session {
	return &Session{
		log:   log,
		clock: clk,
		opts:  opts,
		state: State{Mode: ModeDay, Span: 1},
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// SetState replaces the state, e.g. for a one-shot report of another date.
// A span below one is raised to one.
func (s *Session) SetState(st State) {
	if st.Span < 1 {
		st.Span = 1
	}
	s.state = st
}

// Closed reports whether :q has been handled.
func (s *Session) Closed() bool {
	return s.closed
}

// LogPath returns the path of the underlying log file.
func (s *Session) LogPath() string {
	return s.log.Path()
}

// Now returns the current time from the session's clock.
func (s *Session) Now() time.Time {
	return s.clock.Now()
}

// Handle parses one line of input and applies it.
func (s *Session) Handle(input string) Outcome {
	if s.closed {
		return Outcome{Action: ActionQuit, Err: ErrClosed}
	}

	cmd, err := ParseCommand(input)
	if err != nil {
		return Outcome{Action: ActionError, Err: err}
	}
	return s.Dispatch(cmd)
}

// Dispatch applies an already parsed command.
func (s *Session) Dispatch(cmd Command) Outcome {
	if s.closed {
		return Outcome{Action: ActionQuit, Err: ErrClosed}
	}

	switch cmd.Kind {
	case CmdNothing:
		return Outcome{Action: ActionRedraw}
	case CmdQuit:
		s.closed = true
		return Outcome{Action: ActionQuit}
	case CmdHelp:
		return Outcome{Action: ActionHelp}
	case CmdEdit:
		return Outcome{Action: ActionEdit}
	case CmdDay:
		s.SetState(State{Mode: ModeDay, Span: cmd.Span, Anchor: s.state.Anchor})
		return Outcome{Action: ActionRedraw}
	case CmdWeek:
		s.SetState(State{Mode: ModeWeek, Span: cmd.Span, Anchor: s.state.Anchor})
		return Outcome{Action: ActionRedraw}
	case CmdAdd:
		e := entry.New(s.clock.Now(), cmd.Text)
		if err := s.log.Append(e); err != nil {
			return Outcome{Action: ActionError, Err: fmt.Errorf("failed to add entry: %w", err)}
		}
		return Outcome{Action: ActionRedraw, Added: &e}
	default:
		return Outcome{Action: ActionError, Err: fmt.Errorf("%w: %v", ErrUnknownCommand, cmd.Kind)}
	}
}

// Window returns the reporting window of the current state.
func (s *Session) Window() timeutil.Window {
	anchor := s.state.Anchor
	if anchor.IsZero() {
		anchor = s.clock.Now()
	}
	if s.state.Mode == ModeWeek {
		return timeutil.WeekWindow(anchor, s.state.Span, s.opts.WeekStartDay)
	}
	return timeutil.DayWindow(anchor, s.state.Span)
}

// Report aggregates the log over the current window.
func (s *Session) Report() stats.Result {
	return stats.Aggregate(s.log.Entries(), s.Window(), s.clock.Now(), stats.Options{Attribution: s.opts.Attribution})
}

// SinceLast returns the time elapsed since the last entry when that entry
// was made today. The prompt shows it regardless of the selected window.
func (s *Session) SinceLast() (time.Duration, bool) {
	now := s.clock.Now()
	return stats.SinceLastEntry(s.log.Entries(), timeutil.DayWindow(now, 1), now)
}

// Reload re-reads the log after it was changed outside the session.
func (s *Session) Reload() error {
	if err := s.log.Reload(); err != nil {
		return fmt.Errorf("failed to reload %s: %w", s.log.Path(), err)
	}
	return nil
}

// History returns previously used descriptions, oldest first, for line
// editor history.
func (s *Session) History() []string {
	history := entry.History(s.log.Entries())
	out := history[:0]
	for _, h := range history {
		if strings.TrimSpace(h) != "" {
			out = append(out, h)
		}
	}
	return out
}
