// Package app wires the editor's components into an interactive session
// and runs its read-eval-print loop.
package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/uuid"

	"github.com/dshills/poe/internal/config"
	"github.com/dshills/poe/internal/engine/buffer"
	"github.com/dshills/poe/internal/input/mode"
	"github.com/dshills/poe/internal/interp"
	"github.com/dshills/poe/internal/storage"
	"github.com/dshills/poe/internal/terminal"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means
	// defaults plus the environment overlay.
	ConfigPath string

	// File is the file to open on startup. A file that does not exist yet
	// starts an empty session remembering the path for bare writes.
	File string

	// Input is the stream commands are read from. Defaults to os.Stdin.
	Input *os.File

	// Output is the stream command results are printed to. Defaults to
	// os.Stdout. Logs never go here.
	Output io.Writer

	// LogLevel overrides the configured logging level when non-empty.
	LogLevel string

	// WatchConfig reloads the configuration file when it changes on disk.
	WatchConfig bool

	// Logger overrides the configured logger. Tests inject NullLogger.
	Logger *Logger
}

// Application is the interactive editor session. It owns the terminal, the
// interpreter, and the configuration, and drives the command loop until
// quit or end of input.
type Application struct {
	opts    Options
	cfg     *config.Config
	logger  *Logger
	logFile *os.File

	term    *terminal.Terminal
	interp  *interp.Interpreter
	store   *storage.Store
	watcher *config.Watcher

	out     io.Writer
	prefill string
}

// New creates an application session from the given options.
func New(opts Options) (*Application, error) {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	app := &Application{
		opts: opts,
		cfg:  cfg,
		out:  opts.Output,
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes the components in dependency order.
func (a *Application) bootstrap() error {
	if err := a.initLogger(); err != nil {
		return err
	}

	var hist *terminal.History
	if a.cfg.History.Enabled {
		hist = terminal.NewHistory(a.cfg.History.Path, a.cfg.History.Max)
		if err := hist.Load(); err != nil {
			// A broken history file should not keep the editor from starting.
			a.logger.Warn("loading history: %v", err)
		}
	}
	a.term = terminal.New(a.opts.Input, a.opts.Output, hist)

	a.store = storage.NewStore()
	buf, err := a.openFile()
	if err != nil {
		return err
	}

	a.interp = interp.New(buf, a.store,
		interp.WithSource(a.opts.File),
		interp.WithContextRadius(a.cfg.Editor.ContextRadius),
	)

	if a.opts.WatchConfig && a.opts.ConfigPath != "" {
		w, err := config.NewWatcher(a.opts.ConfigPath)
		if err != nil {
			a.logger.Warn("config watch disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	return nil
}

func (a *Application) initLogger() error {
	if a.opts.Logger != nil {
		a.logger = a.opts.Logger
		return nil
	}

	level := a.cfg.Logging.Level
	if a.opts.LogLevel != "" {
		level = a.opts.LogLevel
	}

	var out io.Writer = os.Stderr
	if a.cfg.Logging.Path != "" {
		f, err := os.OpenFile(a.cfg.Logging.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		a.logFile = f
		out = f
	}

	a.logger = NewLogger(ParseLogLevel(level), out).
		WithField("session", uuid.NewString())
	return nil
}

// openFile loads the startup file into a buffer. A path that does not
// exist yet yields an empty buffer; the path is still remembered by the
// interpreter so a bare `w` creates it.
func (a *Application) openFile() (*buffer.Buffer, error) {
	if a.opts.File == "" {
		return buffer.New(), nil
	}

	doc, err := a.store.Load(a.opts.File)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Info("new file: %s", a.opts.File)
			return buffer.New(), nil
		}
		return nil, &InitError{Component: "storage", Err: err}
	}

	a.logger.Info("loaded %d lines from %s", len(doc.Lines), a.opts.File)
	return buffer.NewFromLines(doc.Lines), nil
}

// Run drives the command loop. It returns ErrQuit on the quit command, nil
// when the input is exhausted, and the underlying error otherwise.
func (a *Application) Run() error {
	a.logger.Info("session started")

	for {
		a.applyConfigUpdates()

		line, err := a.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.logger.Info("end of input")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		res := a.interp.Execute(line)
		a.prefill = res.Prefill

		for _, out := range res.Output {
			fmt.Fprintln(a.out, out)
		}
		if res.IsError() {
			a.logger.Warn("command failed: %v", res.Err)
		}
		if res.Quit {
			a.logger.Info("session ended")
			return ErrQuit
		}
	}
}

// readLine reads the next input line with the prompt for the active mode.
// Line input modes use the editing read so a line being edited arrives
// preloaded, and typed text stays out of the command history.
func (a *Application) readLine() (string, error) {
	prompt := fmt.Sprintf("%d %s ", a.interp.Cursor(), a.promptSymbol())
	if a.interp.Mode() == mode.Command {
		return a.term.ReadLine(prompt)
	}
	return a.term.EditLine(prompt, a.prefill)
}

func (a *Application) promptSymbol() string {
	switch a.interp.Mode() {
	case mode.EditLine:
		return a.cfg.Prompt.Edit
	case mode.InsertLine:
		return a.cfg.Prompt.Insert
	default:
		return a.cfg.Prompt.Command
	}
}

// applyConfigUpdates drains pending configuration reloads without
// blocking. Changes take effect between commands; a bad edit is logged
// and the previous configuration stays in effect.
func (a *Application) applyConfigUpdates() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-a.watcher.Changes():
			if !ok {
				a.watcher = nil
				return
			}
			a.cfg = cfg
			a.interp.SetContextRadius(cfg.Editor.ContextRadius)
			if a.opts.Logger == nil && a.opts.LogLevel == "" {
				a.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
			}
			a.logger.Info("configuration reloaded")
		case err, ok := <-a.watcher.Errors():
			if !ok {
				a.watcher = nil
				return
			}
			a.logger.Warn("config reload failed: %v", err)
		default:
			return
		}
	}
}

// Config returns the active configuration.
func (a *Application) Config() *config.Config {
	return a.cfg
}

// Close releases the session's resources. Safe to call more than once.
func (a *Application) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil && a.logger != nil {
			a.logger.Warn("closing config watcher: %v", err)
		}
		a.watcher = nil
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
