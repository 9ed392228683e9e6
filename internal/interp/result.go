package interp

// Result is the outcome of executing one raw input line.
type Result struct {
	// Output holds the lines to print, in order.
	Output []string

	// Quit is set when the session should terminate.
	Quit bool

	// Prefill is text to preload into the next input line. Set when
	// entering edit mode so the current line can be edited in place.
	Prefill string

	// Err is the command failure, if any. It is already rendered into
	// Output; callers only need it for logging and inspection.
	Err error
}

// IsError returns true if the command failed.
func (r Result) IsError() bool {
	return r.Err != nil
}

func ok(lines ...string) Result {
	return Result{Output: lines}
}

func quit() Result {
	return Result{Quit: true}
}

func fail(err error) Result {
	return Result{Output: []string{err.Error()}, Err: err}
}
