// Package terminal provides the editor's interactive line input: a
// raw-mode readline with in-place editing, prefill for editing existing
// lines, and persistent input history. When stdin is not a terminal it
// degrades to plain buffered line reads, which is also the path tests use.
package terminal
