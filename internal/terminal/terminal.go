package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal reads input lines for the editor. On a TTY it switches stdin to
// raw mode per read and provides in-place editing: cursor movement,
// backspace/delete, Ctrl-C to clear, and Up/Down history browsing. On
// anything else (pipes, tests) it falls back to plain buffered reads.
type Terminal struct {
	in      *os.File
	out     io.Writer
	reader  *bufio.Reader
	history *History
	isTTY   bool
}

// New creates a terminal over the given streams. History may be nil to
// disable browsing and persistence.
func New(in *os.File, out io.Writer, history *History) *Terminal {
	if history == nil {
		history = NewHistory("", 0)
	}
	return &Terminal{
		in:      in,
		out:     out,
		reader:  bufio.NewReader(in),
		history: history,
		isTTY:   term.IsTerminal(int(in.Fd())),
	}
}

// IsTTY reports whether the input stream is an interactive terminal.
func (t *Terminal) IsTTY() bool {
	return t.isTTY
}

// History returns the terminal's input history.
func (t *Terminal) History() *History {
	return t.history
}

// ReadLine prompts and reads one input line. The accepted line is added to
// the history. Returns io.EOF when the input is exhausted (Ctrl-D on an
// empty line, or end of a piped stream).
func (t *Terminal) ReadLine(prompt string) (string, error) {
	line, err := t.read(prompt, "", true)
	if err != nil {
		return "", err
	}
	if err := t.history.Append(line); err != nil {
		// History trouble must not break the session; the line was read.
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	return line, nil
}

// EditLine prompts and reads one input line with the buffer preloaded with
// prefill, for editing a line in place. History browsing is disabled and
// the result is not recorded. On non-TTY input the prefill is ignored and
// the next line is read as typed.
func (t *Terminal) EditLine(prompt, prefill string) (string, error) {
	return t.read(prompt, prefill, false)
}

func (t *Terminal) read(prompt, prefill string, useHistory bool) (string, error) {
	if !t.isTTY {
		fmt.Fprint(t.out, prompt)
		return t.readCooked()
	}
	return t.readRaw(prompt, prefill, useHistory)
}

// readCooked reads one newline-terminated line from a non-interactive
// stream. A final unterminated line is still returned once, with io.EOF
// on the read after it.
func (t *Terminal) readCooked() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readRaw is the interactive line editor. Raw mode is restored on every
// exit path.
func (t *Terminal) readRaw(prompt, prefill string, useHistory bool) (line string, err error) {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("entering raw mode: %w", err)
	}
	defer func() {
		if rerr := term.Restore(fd, state); rerr != nil && err == nil {
			err = fmt.Errorf("restoring terminal: %w", rerr)
		}
	}()

	buf := []rune(prefill)
	pos := len(buf)
	t.history.ResetCursor()

	redraw := func() {
		fmt.Fprintf(t.out, "\r\x1b[2K%s%s", prompt, string(buf))
		if back := len(buf) - pos; back > 0 {
			fmt.Fprintf(t.out, "\x1b[%dD", back)
		}
	}
	redraw()

	for {
		r, _, rerr := t.reader.ReadRune()
		if rerr != nil {
			fmt.Fprint(t.out, "\r\n")
			return "", rerr
		}

		switch r {
		case '\r', '\n':
			fmt.Fprint(t.out, "\r\n")
			return string(buf), nil

		case 0x03: // Ctrl-C clears the line
			buf = buf[:0]
			pos = 0
			t.history.ResetCursor()
			fmt.Fprint(t.out, "\r\n")
			redraw()

		case 0x04: // Ctrl-D on an empty line ends the session
			if len(buf) == 0 {
				fmt.Fprint(t.out, "\r\n")
				return "", io.EOF
			}

		case 0x7f, 0x08: // Backspace
			if pos > 0 {
				buf = append(buf[:pos-1], buf[pos:]...)
				pos--
				redraw()
			}

		case 0x01: // Ctrl-A
			pos = 0
			redraw()

		case 0x05: // Ctrl-E
			pos = len(buf)
			redraw()

		case 0x0b: // Ctrl-K kills to end of line
			buf = buf[:pos]
			redraw()

		case 0x1b:
			key, kerr := t.readEscape()
			if kerr != nil {
				return "", kerr
			}
			switch key {
			case keyLeft:
				if pos > 0 {
					pos--
					redraw()
				}
			case keyRight:
				if pos < len(buf) {
					pos++
					redraw()
				}
			case keyHome:
				pos = 0
				redraw()
			case keyEnd:
				pos = len(buf)
				redraw()
			case keyDelete:
				if pos < len(buf) {
					buf = append(buf[:pos], buf[pos+1:]...)
					redraw()
				}
			case keyUp:
				if useHistory {
					if entry, ok := t.history.Prev(); ok {
						buf = []rune(entry)
						pos = len(buf)
						redraw()
					}
				}
			case keyDown:
				if useHistory {
					entry, ok := t.history.Next()
					if !ok {
						entry = ""
					}
					buf = []rune(entry)
					pos = len(buf)
					redraw()
				}
			}

		default:
			if r >= 0x20 {
				buf = append(buf[:pos], append([]rune{r}, buf[pos:]...)...)
				pos++
				redraw()
			}
		}
	}
}

type escKey uint8

const (
	keyNone escKey = iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyHome
	keyEnd
	keyDelete
)

// readEscape consumes the remainder of a VT100 escape sequence and maps it
// to a key. Unknown sequences map to keyNone.
func (t *Terminal) readEscape() (escKey, error) {
	b, err := t.reader.ReadByte()
	if err != nil {
		return keyNone, err
	}
	if b != '[' && b != 'O' {
		return keyNone, nil
	}

	b, err = t.reader.ReadByte()
	if err != nil {
		return keyNone, err
	}

	switch b {
	case 'A':
		return keyUp, nil
	case 'B':
		return keyDown, nil
	case 'C':
		return keyRight, nil
	case 'D':
		return keyLeft, nil
	case 'H':
		return keyHome, nil
	case 'F':
		return keyEnd, nil
	case '1', '7':
		return keyHome, t.discardTilde()
	case '4', '8':
		return keyEnd, t.discardTilde()
	case '3':
		return keyDelete, t.discardTilde()
	}
	return keyNone, nil
}

func (t *Terminal) discardTilde() error {
	b, err := t.reader.ReadByte()
	if err != nil {
		return err
	}
	if b != '~' {
		_ = t.reader.UnreadByte()
	}
	return nil
}
