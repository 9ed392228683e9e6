package mode

import "fmt"

// Pending describes the line-entry state carried by EditLine and InsertLine:
// the target index and, for inserts, whether the new line goes before the
// cursor instead of after it.
type Pending struct {
	Target int
	Before bool
}

// Machine tracks the active mode and its pending state. It starts in
// Command and is reset only at session start. Transitions out of EditLine
// and InsertLine happen exclusively through Commit: there is no cancel path,
// the next full input line is always committed.
type Machine struct {
	current Mode
	pending Pending
}

// NewMachine creates a machine in Command mode.
func NewMachine() *Machine {
	return &Machine{current: Command}
}

// Current returns the active mode.
func (m *Machine) Current() Mode {
	return m.current
}

// Pending returns the pending line-entry state. Meaningful only while the
// machine is in EditLine or InsertLine.
func (m *Machine) Pending() Pending {
	return m.pending
}

// StartEdit enters EditLine targeting the given line index.
func (m *Machine) StartEdit(target int) error {
	if m.current != Command {
		return fmt.Errorf("cannot start edit from %s mode", m.current)
	}
	m.current = EditLine
	m.pending = Pending{Target: target}
	return nil
}

// StartInsert enters InsertLine. When before is true the typed line will be
// inserted at the target index, shifting it down; otherwise it is inserted
// after it.
func (m *Machine) StartInsert(target int, before bool) error {
	if m.current != Command {
		return fmt.Errorf("cannot start insert from %s mode", m.current)
	}
	m.current = InsertLine
	m.pending = Pending{Target: target, Before: before}
	return nil
}

// Commit leaves EditLine or InsertLine, returning the pending state the
// caller needs to apply the typed text. Calling it in Command mode is a
// programming error.
func (m *Machine) Commit() (Pending, error) {
	if m.current == Command {
		return Pending{}, fmt.Errorf("nothing to commit in command mode")
	}
	p := m.pending
	m.current = Command
	m.pending = Pending{}
	return p, nil
}
