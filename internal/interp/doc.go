// Package interp implements the command interpreter that drives the
// editor. It owns the mode machine and the remembered source path, parses
// raw input lines according to the active mode, dispatches into the line
// buffer, and returns the output text plus the quit signal to the caller.
//
// In command mode input follows a single-letter grammar (`?`, `c`, `d`,
// `e`, `f`, `F`, `i`, `I`, `m`, `p`, `q`, `w`, or a bare line number). In
// edit and insert modes the whole input line is taken verbatim as line
// text and committed, returning to command mode.
//
// Every failure is recoverable: it is rendered as a single output line and
// never unwinds past Execute. The interpreter performs no I/O of its own;
// persistence goes through the Saver interface and interactive input is
// the caller's concern.
package interp
