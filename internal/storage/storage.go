// Package storage reads and writes editor documents as plain text files:
// one buffer line per text line, no header or metadata. The newline style
// of a loaded file is detected and reused when the document is saved, so a
// load/save cycle is byte-faithful for well-formed files.
package storage

import (
	"fmt"
	"os"
	"strings"
)

// LineEnding specifies the newline style of a document on disk.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// Sequence returns the actual line terminator characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "\\r\\n"
	}
	return "\\n"
}

// Document is the on-disk form of a buffer: its lines, the newline style
// they were stored with, and the path they came from.
type Document struct {
	Path   string
	Lines  []string
	Ending LineEnding
}

// Load reads the file at path into a Document. The newline style is
// detected from the content; files with no newline at all load as LF.
// A trailing terminator does not produce a phantom empty final line.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text := string(data)
	ending := DetectLineEnding(text)

	return &Document{
		Path:   path,
		Lines:  SplitLines(text, ending),
		Ending: ending,
	}, nil
}

// Save writes lines to path, each terminated with the given newline style.
// The target is created or truncated with mode 0644. The file handle is
// closed on every path, and close errors on a successful write are
// reported.
func Save(path string, lines []string, ending LineEnding) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	seq := ending.Sequence()
	for _, line := range lines {
		if _, err := f.WriteString(line + seq); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// DetectLineEnding picks the newline style used by text. CRLF wins only
// when every newline is preceded by a carriage return.
func DetectLineEnding(text string) LineEnding {
	lf := strings.Count(text, "\n")
	crlf := strings.Count(text, "\r\n")
	if lf > 0 && lf == crlf {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// SplitLines splits text on the given line ending. A single trailing
// terminator is dropped rather than yielding an empty final line, matching
// what Save produces. Empty text yields no lines.
func SplitLines(text string, ending LineEnding) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, ending.Sequence())
	return strings.Split(text, ending.Sequence())
}

// Store tracks the newline style across a session so bare writes keep the
// style of the file the session started from. Fresh sessions use LF.
type Store struct {
	ending LineEnding
}

// NewStore creates a store with LF line endings.
func NewStore() *Store {
	return &Store{ending: LineEndingLF}
}

// Load reads a document and adopts its newline style for later saves.
func (s *Store) Load(path string) (*Document, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.ending = doc.Ending
	return doc, nil
}

// Save writes lines to path using the store's newline style.
func (s *Store) Save(path string, lines []string) error {
	return Save(path, lines, s.ending)
}

// Ending returns the newline style used for saves.
func (s *Store) Ending() LineEnding {
	return s.ending
}
