package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration file when it changes on disk and
// delivers the result on a channel. The session applies changes between
// commands; the editing core itself stays single-threaded.
//
// The watch is on the file's directory, not the file: editors commonly
// replace config files by rename, which would silently drop a file-level
// watch.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan *Config
	errs    chan error

	closeOnce sync.Once
	closeCh   chan struct{}
	done      sync.WaitGroup
}

// NewWatcher starts watching the config file at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fsw,
		changes: make(chan *Config, 1),
		errs:    make(chan error, 1),
		closeCh: make(chan struct{}),
	}

	w.done.Add(1)
	go w.loop()

	return w, nil
}

// Changes returns the channel of reloaded configurations.
func (w *Watcher) Changes() <-chan *Config {
	return w.changes
}

// Errors returns the channel of reload failures. A bad edit is reported,
// not applied; the previous configuration stays in effect.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.done.Wait()
		close(w.changes)
		close(w.errs)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.done.Done()

	// Debounce bursts: editors often emit several events per save.
	var pending <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename) {
				pending = time.After(100 * time.Millisecond)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)

		case <-pending:
			pending = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.sendError(err)
				continue
			}
			w.sendChange(cfg)
		}
	}
}

func (w *Watcher) sendChange(cfg *Config) {
	select {
	case w.changes <- cfg:
	default:
		// Channel full: drain the stale config and replace it.
		select {
		case <-w.changes:
		default:
		}
		select {
		case w.changes <- cfg:
		default:
		}
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
