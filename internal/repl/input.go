package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// LineInput reads one line of user input at a time.
type LineInput interface {
	ReadLine(prompt string) (string, error)
	// SetHistory replaces the line editor history, oldest first.
	SetHistory(items []string)
	Close() error
}

type basicLineInput struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewBasicLineInput reads lines from in without line editing. Used when no
// terminal is attached and in tests.
func NewBasicLineInput(in io.Reader, out io.Writer) LineInput {
	return &basicLineInput{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (b *basicLineInput) ReadLine(prompt string) (string, error) {
	if b.out != nil {
		fmt.Fprint(b.out, prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *basicLineInput) SetHistory([]string) {}

func (b *basicLineInput) Close() error { return nil }

type readlineInput struct {
	instance *readline.Instance
}

func newReadlineInput() (*readlineInput, error) {
	instance, err := readline.NewEx(&readline.Config{
		Prompt:                 "> ",
		HistorySearchFold:      true,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, err
	}
	return &readlineInput{instance: instance}, nil
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	return r.instance.Readline()
}

func (r *readlineInput) SetHistory(items []string) {
	r.instance.ResetHistory()
	for _, item := range items {
		_ = r.instance.SaveHistory(item)
	}
}

func (r *readlineInput) Close() error {
	if r == nil || r.instance == nil {
		return nil
	}
	return r.instance.Close()
}

// NewLineInput returns a readline-backed input with history search, or a
// plain reader on stdin if the terminal cannot be set up.
func NewLineInput() (LineInput, error) {
	readlineReader, err := newReadlineInput()
	if err == nil {
		return readlineReader, nil
	}
	return NewBasicLineInput(os.Stdin, os.Stdout), err
}

// Interactive reports whether in reads from a terminal with line editing.
func Interactive(in LineInput) bool {
	_, ok := in.(*readlineInput)
	return ok
}
