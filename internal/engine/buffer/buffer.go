package buffer

import (
	"errors"
	"iter"
	"strings"
)

// Errors returned by buffer operations.
var (
	ErrEmptyBuffer = errors.New("buffer is empty")
	ErrOutOfRange  = errors.New("line index out of range")
	ErrNotFound    = errors.New("pattern not found")
)

// NumberedLine is a line tagged with its index. Current marks the line the
// cursor is on, so callers can distinguish it when rendering.
type NumberedLine struct {
	Index   int
	Text    string
	Current bool
}

// Buffer is an ordered sequence of text lines with a current-line cursor.
// The cursor is owned exclusively by the buffer: every mutating and search
// operation updates both together, so no caller can observe an out-of-range
// cursor. Lines hold no terminators; index order is document order.
//
// The buffer is not safe for concurrent use. The editor runs a single
// synchronous command loop, so no locking is required.
type Buffer struct {
	lines  []string
	cursor int
}

// New creates an empty buffer with the cursor at 0.
func New() *Buffer {
	return &Buffer{}
}

// NewFromLines creates a buffer holding a copy of the given lines.
func NewFromLines(lines []string) *Buffer {
	b := &Buffer{lines: make([]string, len(lines))}
	copy(b.lines, lines)
	return b
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Cursor returns the current line index. It is 0 when the buffer is empty.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor to line n.
// Returns ErrOutOfRange, leaving the cursor unchanged, unless 0 <= n < Len().
func (b *Buffer) SetCursor(n int) error {
	if n < 0 || n >= len(b.lines) {
		return ErrOutOfRange
	}
	b.cursor = n
	return nil
}

// CurrentLine returns the text of the line under the cursor.
func (b *Buffer) CurrentLine() (string, error) {
	if len(b.lines) == 0 {
		return "", ErrEmptyBuffer
	}
	return b.lines[b.cursor], nil
}

// Context returns the lines within radius of the cursor, in index order,
// clipped to the buffer bounds. A negative radius is treated as 0. An empty
// buffer yields nil.
func (b *Buffer) Context(radius int) []NumberedLine {
	if len(b.lines) == 0 {
		return nil
	}
	if radius < 0 {
		radius = 0
	}

	first := b.cursor - radius
	if first < 0 {
		first = 0
	}
	last := b.cursor + radius
	if last > len(b.lines)-1 {
		last = len(b.lines) - 1
	}

	window := make([]NumberedLine, 0, last-first+1)
	for i := first; i <= last; i++ {
		window = append(window, NumberedLine{
			Index:   i,
			Text:    b.lines[i],
			Current: i == b.cursor,
		})
	}
	return window
}

// InsertAfter inserts text immediately after the cursor, or at index 0 when
// the buffer is empty. The cursor moves to the new line; its index is
// returned. Always succeeds.
func (b *Buffer) InsertAfter(text string) int {
	at := 0
	if len(b.lines) > 0 {
		at = b.cursor + 1
	}
	b.insertAt(at, text)
	return at
}

// InsertBefore inserts text at the cursor's index, shifting it and every
// following line down by one. The cursor stays at the new line's index,
// which is returned. Always succeeds.
func (b *Buffer) InsertBefore(text string) int {
	at := b.cursor
	b.insertAt(at, text)
	return at
}

func (b *Buffer) insertAt(at int, text string) {
	b.lines = append(b.lines, "")
	copy(b.lines[at+1:], b.lines[at:])
	b.lines[at] = text
	b.cursor = at
}

// ReplaceCurrent overwrites the line under the cursor.
func (b *Buffer) ReplaceCurrent(text string) error {
	if len(b.lines) == 0 {
		return ErrEmptyBuffer
	}
	b.lines[b.cursor] = text
	return nil
}

// DeleteCurrent removes the line under the cursor. Afterwards the cursor is
// clamped to the last line of the shrunk buffer, or 0 when it empties.
func (b *Buffer) DeleteCurrent() error {
	if len(b.lines) == 0 {
		return ErrEmptyBuffer
	}
	b.lines = append(b.lines[:b.cursor], b.lines[b.cursor+1:]...)
	if b.cursor >= len(b.lines) {
		b.cursor = len(b.lines) - 1
		if b.cursor < 0 {
			b.cursor = 0
		}
	}
	return nil
}

// FindForward scans lines strictly after the cursor, in increasing order,
// for the first one containing needle as a substring. On a match the cursor
// moves there and the index is returned. The search does not wrap; reaching
// the end of the buffer returns ErrNotFound with the cursor unchanged.
func (b *Buffer) FindForward(needle string) (int, error) {
	for i := b.cursor + 1; i < len(b.lines); i++ {
		if strings.Contains(b.lines[i], needle) {
			b.cursor = i
			return i, nil
		}
	}
	return 0, ErrNotFound
}

// FindBackward scans lines strictly before the cursor, in decreasing order.
// Symmetric to FindForward; reaching index 0 without a match returns
// ErrNotFound with the cursor unchanged.
func (b *Buffer) FindBackward(needle string) (int, error) {
	for i := b.cursor - 1; i >= 0; i-- {
		if strings.Contains(b.lines[i], needle) {
			b.cursor = i
			return i, nil
		}
	}
	return 0, ErrNotFound
}

// All returns a restartable iterator over every line with its index, in
// document order. Iteration has no effect on the cursor.
func (b *Buffer) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, line := range b.lines {
			if !yield(i, line) {
				return
			}
		}
	}
}

// Lines returns a copy of the buffer contents in document order.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// IsEmpty returns true if the buffer has no lines.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}
