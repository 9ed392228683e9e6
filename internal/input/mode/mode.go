package mode

// Mode identifies the interpreter's current interpretation context for raw
// input. Exactly one mode is active at any time.
type Mode uint8

const (
	// Command interprets input as single-letter commands.
	Command Mode = iota

	// EditLine takes the next input line verbatim as the replacement text
	// for the target line.
	EditLine

	// InsertLine takes the next input line verbatim as a new line inserted
	// at the target position.
	InsertLine
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Command:
		return "command"
	case EditLine:
		return "edit"
	case InsertLine:
		return "insert"
	default:
		return "unknown"
	}
}

// Symbol returns the prompt symbol displayed for the mode.
func (m Mode) Symbol() string {
	switch m {
	case Command:
		return ">"
	case EditLine:
		return "#"
	case InsertLine:
		return "+"
	default:
		return "?"
	}
}
