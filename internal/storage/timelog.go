package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/osutil"
)

const (
	// AppName is the directory name shared with gtimelog
	AppName = "gtimelog"
	// LogFile is the name of the time log inside the gtimelog directory
	LogFile = "timelog.txt"
)

// ErrMultiline is returned when an entry description would span several lines.
var ErrMultiline = errors.New("description must not contain line breaks")

// GetStoragePath returns the path to the time log.
// Follows gtimelog: ~/.gtimelog/timelog.txt when ~/.gtimelog is a directory,
// otherwise $XDG_DATA_HOME/gtimelog/timelog.txt with ~/.local/share as the
// XDG default.
func GetStoragePath() (string, error) {
	home, err := osutil.Provider.UserHomeDir()
	if err != nil {
		return "", err
	}

	legacy := filepath.Join(home, "."+AppName)
	if osutil.Provider.IsDir(legacy) {
		return filepath.Join(legacy, LogFile), nil
	}

	dataHome := osutil.Provider.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName, LogFile), nil
}

// Store is the in-memory view of an append-only time log file.
// Entries are kept in file order; the file is the only persisted state.
type Store struct {
	path     string
	loc      *time.Location
	entries  []entry.Entry
	warnings []entry.ParseWarning
}

// Open reads the log at path. A missing file yields an empty store, which is
// what a first run looks like.
func Open(path string, loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Store{path: path, loc: loc}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the file, e.g. after it was changed in an editor.
// On error the previous contents are kept.
func (s *Store) Reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", s.path, err)
		}
		raw = nil
	}

	result := entry.Parse(string(raw), s.loc)
	s.entries = result.Entries
	s.warnings = result.Warnings
	return nil
}

// Path returns the path of the log file.
func (s *Store) Path() string {
	return s.path
}

// Location returns the time zone entries are parsed in.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Entries returns the entries in file order. The slice must not be modified.
func (s *Store) Entries() []entry.Entry {
	return s.entries
}

// Warnings returns the problems found while reading the file.
func (s *Store) Warnings() []entry.ParseWarning {
	return s.warnings
}

// Last returns the last entry of the log.
func (s *Store) Last() (entry.Entry, bool) {
	if len(s.entries) == 0 {
		return entry.Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Append writes e as one line at the end of the file and flushes it to disk.
// A blank separator line goes before the first entry of a new day, and a
// newline is added first if the file does not end with one.
// Trailing whitespace is dropped from the description, since reading the
// line back would drop it too. The entry is only added to memory once the
// write has been synced.
func (s *Store) Append(e entry.Entry) error {
	if strings.ContainsAny(e.Description, "\r\n") {
		return ErrMultiline
	}
	e.Description = strings.TrimRightFunc(e.Description, unicode.IsSpace)

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.path, err)
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer func() { _ = file.Close() }()

	var b strings.Builder
	complete, err := endsWithNewline(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if !complete {
		b.WriteString("\n")
	}
	if last, ok := s.Last(); ok && !entry.SameDay(last.Timestamp, e.Timestamp) {
		b.WriteString("\n")
	}
	b.WriteString(e.String())
	b.WriteString("\n")

	if _, err := file.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", s.path, err)
	}

	s.entries = append(s.entries, e)
	return nil
}

// endsWithNewline reports whether the file is empty or its last byte is a
// newline.
func endsWithNewline(file *os.File) (bool, error) {
	info, err := file.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}

	buf := make([]byte, 1)
	if _, err := file.ReadAt(buf, info.Size()-1); err != nil && err != io.EOF {
		return false, err
	}
	return buf[0] == '\n', nil
}

// StorageHealth contains information about the health status of the log file.
type StorageHealth struct {
	TotalLines   int                  // Total number of lines in the file
	BlankLines   int                  // Day separators and other empty lines
	ValidEntries int                  // Number of successfully parsed entries
	Malformed    int                  // Lines that could not be parsed
	OutOfOrder   int                  // Entries earlier than their predecessor
	Warnings     []entry.ParseWarning // Detailed information about each problem
}

// Healthy reports whether the file has neither malformed nor out-of-order lines.
func (h StorageHealth) Healthy() bool {
	return h.Malformed == 0 && h.OutOfOrder == 0
}

// ValidateStorage analyzes the log file and returns health status information.
// Returns empty health status if the file doesn't exist.
func ValidateStorage(path string, loc *time.Location) (StorageHealth, error) {
	health := StorageHealth{Warnings: []entry.ParseWarning{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return health, nil
		}
		return health, err
	}

	result := entry.Parse(string(raw), loc)
	health.TotalLines = result.TotalLines
	health.BlankLines = result.BlankLines
	health.ValidEntries = len(result.Entries)
	health.OutOfOrder = len(result.OutOfOrder())
	health.Malformed = len(result.Warnings) - health.OutOfOrder
	health.Warnings = result.Warnings

	return health, nil
}
