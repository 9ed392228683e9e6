// Package mode implements the editor's three-state input machine.
//
// The editor interprets raw input lines differently depending on the active
// mode:
//
//   - Command: the line is parsed as a single-letter command
//   - EditLine: the line verbatim replaces the target line
//   - InsertLine: the line verbatim becomes a new line at the target
//
// The states form a tagged variant dispatched by explicit switches rather
// than an interface hierarchy: EditLine and InsertLine carry a target index
// (and, for inserts, a before flag) in the machine's Pending state. Command
// is the only state that parses commands, and line-entry states always exit
// by committing the next full input line.
package mode
