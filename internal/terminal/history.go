package terminal

import (
	"bufio"
	"fmt"
	"os"
)

// History is the input history: an in-memory list with an optional backing
// file. The navigation cursor sits one past the newest entry when not
// browsing; Prev walks towards older entries, Next back towards the live
// line.
type History struct {
	entries []string
	pos     int
	path    string
	max     int
}

// NewHistory creates a history trimmed to max entries, persisted at path.
// An empty path keeps the history in memory only.
func NewHistory(path string, max int) *History {
	if max <= 0 {
		max = 10000
	}
	return &History{path: path, max: max}
}

// Load reads the backing file. A missing file is not an error. When the
// file holds more than max entries it is trimmed and rewritten.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading history %s: %w", h.path, err)
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.entries = append(h.entries, scanner.Text())
	}
	closeErr := f.Close()
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading history %s: %w", h.path, err)
	}
	if closeErr != nil {
		return fmt.Errorf("closing history %s: %w", h.path, closeErr)
	}

	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
		if err := h.Save(); err != nil {
			return err
		}
	}

	h.pos = len(h.entries)
	return nil
}

// Append records an accepted input line. Empty lines and repeats of the
// newest entry are skipped. The entry is appended to the backing file; a
// trim past max rewrites it.
func (h *History) Append(line string) error {
	h.pos = len(h.entries)

	if line == "" {
		return nil
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == line {
		return nil
	}

	h.entries = append(h.entries, line)
	h.pos = len(h.entries)

	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
		h.pos = len(h.entries)
		return h.Save()
	}
	return h.appendLine(line)
}

// Prev moves to the previous (older) entry. Returns false at the oldest.
func (h *History) Prev() (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next moves towards the newest entry. Returns false when stepping past
// it, meaning the caller should show an empty live line.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return "", false
	}
	return h.entries[h.pos], true
}

// ResetCursor leaves browsing mode, pointing past the newest entry.
func (h *History) ResetCursor() {
	h.pos = len(h.entries)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Save rewrites the backing file with the current entries.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}

	f, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("writing history %s: %w", h.path, err)
	}
	for _, entry := range h.entries {
		if _, err := f.WriteString(entry + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("writing history %s: %w", h.path, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing history %s: %w", h.path, err)
	}
	return nil
}

func (h *History) appendLine(line string) error {
	if h.path == "" {
		return nil
	}

	f, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("appending history %s: %w", h.path, err)
	}
	_, werr := f.WriteString(line + "\n")
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("appending history %s: %w", h.path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("closing history %s: %w", h.path, cerr)
	}
	return nil
}
