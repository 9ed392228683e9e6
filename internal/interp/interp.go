package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/poe/internal/engine/buffer"
	"github.com/dshills/poe/internal/input/mode"
)

// DefaultContextRadius is the context window radius used when the `c`
// command is given no argument and no configured value overrides it.
const DefaultContextRadius = 2

// Saver persists buffer contents. Implemented by the storage package;
// tests substitute fakes.
type Saver interface {
	Save(path string, lines []string) error
}

// Interpreter parses raw input lines into commands or line text, depending
// on the active mode, and applies them to the buffer. One interpreter owns
// one session's buffer, mode machine, and remembered source path; it is the
// single logical thread of control, so it holds no locks.
type Interpreter struct {
	buf    *buffer.Buffer
	modes  *mode.Machine
	saver  Saver
	source string
	radius int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithSource sets the remembered source path used by bare `w` commands.
func WithSource(path string) Option {
	return func(it *Interpreter) {
		it.source = path
	}
}

// WithContextRadius sets the default radius of the `c` command.
func WithContextRadius(radius int) Option {
	return func(it *Interpreter) {
		if radius >= 0 {
			it.radius = radius
		}
	}
}

// New creates an interpreter over the given buffer, starting in command
// mode.
func New(buf *buffer.Buffer, saver Saver, opts ...Option) *Interpreter {
	it := &Interpreter{
		buf:    buf,
		modes:  mode.NewMachine(),
		saver:  saver,
		radius: DefaultContextRadius,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Mode returns the active input mode, for prompt rendering.
func (it *Interpreter) Mode() mode.Mode {
	return it.modes.Current()
}

// Cursor returns the buffer's current line index, for prompt rendering.
func (it *Interpreter) Cursor() int {
	return it.buf.Cursor()
}

// Source returns the remembered source path, or empty when none was ever
// given.
func (it *Interpreter) Source() string {
	return it.source
}

// SetContextRadius updates the default `c` radius. Applied between
// commands when the configuration changes.
func (it *Interpreter) SetContextRadius(radius int) {
	if radius >= 0 {
		it.radius = radius
	}
}

// Execute processes one raw input line and returns the output to print.
// Errors never propagate out; they are rendered as a line of output and
// recorded on the Result.
func (it *Interpreter) Execute(raw string) Result {
	if it.modes.Current() != mode.Command {
		return it.commitLine(raw)
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ok()
	}

	cmd, arg := splitCommand(trimmed)

	if n, err := strconv.Atoi(cmd); err == nil {
		return it.gotoLine(n)
	}

	switch cmd {
	case "?":
		return ok(helpText...)
	case "c":
		return it.showContext(arg)
	case "d":
		return it.deleteLine()
	case "e":
		return it.startEdit()
	case "f":
		return it.find(arg, false)
	case "F":
		return it.find(arg, true)
	case "i":
		return it.startInsert(false)
	case "I":
		return it.startInsert(true)
	case "m":
		return it.dump()
	case "p":
		return it.printLine(arg)
	case "q":
		return quit()
	case "w":
		return it.save(arg)
	default:
		return fail(fmt.Errorf("%w: %q (? for help)", ErrUnknownCommand, cmd))
	}
}

// splitCommand separates the leading command token from the rest of the
// line. The argument keeps its internal whitespace so searches and
// filenames may contain spaces.
func splitCommand(trimmed string) (cmd, arg string) {
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		return trimmed[:i], strings.TrimSpace(trimmed[i+1:])
	}
	return trimmed, ""
}

// commitLine applies a typed line while in edit or insert mode. The line
// is always committed, even when empty; the machine returns to command
// mode.
func (it *Interpreter) commitLine(text string) Result {
	entering := it.modes.Current()
	pending, err := it.modes.Commit()
	if err != nil {
		return fail(err)
	}

	switch entering {
	case mode.EditLine:
		if err := it.buf.ReplaceCurrent(text); err != nil {
			return fail(err)
		}
	case mode.InsertLine:
		if pending.Before {
			it.buf.InsertBefore(text)
		} else {
			it.buf.InsertAfter(text)
		}
	}
	return ok()
}

func (it *Interpreter) gotoLine(n int) Result {
	if err := it.buf.SetCursor(n); err != nil {
		return fail(fmt.Errorf("line %d: %w", n, err))
	}
	return ok(it.echoCurrent())
}

func (it *Interpreter) showContext(arg string) Result {
	radius := it.radius
	if arg != "" {
		if n, err := strconv.Atoi(arg); err == nil {
			radius = n
		}
	}

	var out []string
	for _, nl := range it.buf.Context(radius) {
		out = append(out, formatLine(nl))
	}
	return ok(out...)
}

func (it *Interpreter) deleteLine() Result {
	if err := it.buf.DeleteCurrent(); err != nil {
		return fail(err)
	}
	return ok()
}

func (it *Interpreter) startEdit() Result {
	line, err := it.buf.CurrentLine()
	if err != nil {
		return fail(err)
	}
	if err := it.modes.StartEdit(it.buf.Cursor()); err != nil {
		return fail(err)
	}
	return Result{Prefill: line}
}

func (it *Interpreter) startInsert(before bool) Result {
	if err := it.modes.StartInsert(it.buf.Cursor(), before); err != nil {
		return fail(err)
	}
	return ok()
}

func (it *Interpreter) find(pattern string, backward bool) Result {
	var err error
	if backward {
		_, err = it.buf.FindBackward(pattern)
	} else {
		_, err = it.buf.FindForward(pattern)
	}
	if err != nil {
		return fail(fmt.Errorf("pattern %q: %w", pattern, err))
	}
	return ok(it.echoCurrent())
}

func (it *Interpreter) dump() Result {
	var out []string
	cursor := it.buf.Cursor()
	for i, line := range it.buf.All() {
		out = append(out, formatLine(buffer.NumberedLine{
			Index:   i,
			Text:    line,
			Current: i == cursor && !it.buf.IsEmpty(),
		}))
	}
	return ok(out...)
}

func (it *Interpreter) printLine(arg string) Result {
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fail(fmt.Errorf("%w: p wants a line number", ErrUnknownCommand))
		}
		if err := it.buf.SetCursor(n); err != nil {
			return fail(fmt.Errorf("line %d: %w", n, err))
		}
	}
	if _, err := it.buf.CurrentLine(); err != nil {
		return fail(err)
	}
	return ok(it.echoCurrent())
}

func (it *Interpreter) save(arg string) Result {
	path := arg
	if path == "" {
		path = it.source
	}
	if path == "" {
		return fail(ErrMissingFilename)
	}

	lines := it.buf.Lines()
	if err := it.saver.Save(path, lines); err != nil {
		return fail(fmt.Errorf("write failed: %w", err))
	}

	// Remember the path only once the write succeeded.
	it.source = path
	return ok(fmt.Sprintf("wrote %d lines to %s", len(lines), path))
}

// echoCurrent formats the line under the cursor with its index.
func (it *Interpreter) echoCurrent() string {
	line, err := it.buf.CurrentLine()
	if err != nil {
		return err.Error()
	}
	return formatLine(buffer.NumberedLine{Index: it.buf.Cursor(), Text: line, Current: true})
}

// formatLine renders a numbered line; the current line is marked with `*`
// instead of `:`.
func formatLine(nl buffer.NumberedLine) string {
	sep := ":"
	if nl.Current {
		sep = "*"
	}
	return fmt.Sprintf("%d%s %s", nl.Index, sep, nl.Text)
}
