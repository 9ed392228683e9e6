package interp

import "errors"

// Interpreter errors. Buffer-level failures (empty buffer, out of range,
// not found) surface as the buffer package's sentinels wrapped with command
// context.
var (
	// ErrUnknownCommand indicates unparseable command text.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingFilename indicates a write with no filename ever supplied.
	ErrMissingFilename = errors.New("no filename given")
)
