package session

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies what an input line asks for.
type CommandKind int

const (
	CmdNothing CommandKind = iota
	CmdQuit
	CmdHelp
	CmdEdit
	CmdDay
	CmdWeek
	CmdAdd
)

func (k CommandKind) String() string {
	switch k {
	case CmdNothing:
		return "nothing"
	case CmdQuit:
		return "quit"
	case CmdHelp:
		return "help"
	case CmdEdit:
		return "edit"
	case CmdDay:
		return "day"
	case CmdWeek:
		return "week"
	case CmdAdd:
		return "add"
	default:
		return "CommandKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Command is a parsed input line.
type Command struct {
	Kind CommandKind
	// Span is the number of days or weeks for CmdDay and CmdWeek.
	Span int
	// Text is the entry description for CmdAdd.
	Text string
}

// CommandPrefix starts every command. Other input is an entry description.
const CommandPrefix = ":"

// ParseCommand turns one line of input into a Command. Surrounding
// whitespace is ignored; commands are case-sensitive.
//
//	""          redraw
//	:q :h :e    quit, help, edit
//	:d :w       daily or weekly report
//	:d3 :w2     the last 3 days, the last 2 weeks
//
// Any other input starting with ':' is an error wrapping ErrUnknownCommand.
// Everything else, including "**" slack lines, is a new entry.
func ParseCommand(input string) (Command, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return Command{Kind: CmdNothing}, nil
	}
	if !strings.HasPrefix(input, CommandPrefix) {
		return Command{Kind: CmdAdd, Text: input}, nil
	}

	switch input {
	case ":q":
		return Command{Kind: CmdQuit}, nil
	case ":h":
		return Command{Kind: CmdHelp}, nil
	case ":e":
		return Command{Kind: CmdEdit}, nil
	}

	var name string
	if len(input) > 1 {
		name = input[1:2]
	}
	if name != "d" && name != "w" {
		return Command{}, fmt.Errorf("%w %q (type :h for help)", ErrUnknownCommand, input)
	}

	kind, unit := CmdDay, "day"
	if name == "w" {
		kind, unit = CmdWeek, "week"
	}

	span := 1
	if arg := input[2:]; arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || strings.ContainsAny(arg, "+-") {
			return Command{}, fmt.Errorf("invalid %s number %q: must be a positive whole number", unit, arg)
		}
		span = n
	}

	return Command{Kind: kind, Span: span}, nil
}
