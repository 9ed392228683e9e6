package buffer

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", b.Cursor())
	}
}

func TestNewFromLines(t *testing.T) {
	src := []string{"alpha", "beta", "gamma"}
	b := NewFromLines(src)

	if b.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.Len())
	}

	// The buffer must own its copy.
	src[0] = "mutated"
	line, err := b.CurrentLine()
	if err != nil {
		t.Fatalf("current line: %v", err)
	}
	if line != "alpha" {
		t.Errorf("expected %q, got %q", "alpha", line)
	}
}

func TestSetCursor(t *testing.T) {
	b := NewFromLines([]string{"a", "b", "c"})

	if err := b.SetCursor(2); err != nil {
		t.Fatalf("set cursor: %v", err)
	}
	if b.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", b.Cursor())
	}
}

func TestSetCursorOutOfRange(t *testing.T) {
	b := NewFromLines([]string{"a", "b"})
	if err := b.SetCursor(1); err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	if err := b.SetCursor(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if err := b.SetCursor(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}

	// Failed moves must not disturb the cursor.
	if b.Cursor() != 1 {
		t.Errorf("expected cursor 1 after failed moves, got %d", b.Cursor())
	}
}

func TestCurrentLineEmpty(t *testing.T) {
	b := New()
	if _, err := b.CurrentLine(); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("expected ErrEmptyBuffer, got %v", err)
	}
}

func TestInsertAfter(t *testing.T) {
	b := NewFromLines([]string{"alpha", "beta", "gamma"})

	idx := b.InsertAfter("beta2")
	if idx != 1 {
		t.Errorf("expected new index 1, got %d", idx)
	}
	if b.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", b.Cursor())
	}

	want := []string{"alpha", "beta2", "beta", "gamma"}
	got := b.Lines()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestInsertAfterEmpty(t *testing.T) {
	b := New()

	idx := b.InsertAfter("first")
	if idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 line, got %d", b.Len())
	}
	if b.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", b.Cursor())
	}
}

func TestInsertBefore(t *testing.T) {
	b := NewFromLines([]string{"a", "b", "c"})
	if err := b.SetCursor(1); err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	idx := b.InsertBefore("x")
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}

	want := []string{"a", "x", "b", "c"}
	for i, w := range want {
		if b.Lines()[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, b.Lines()[i])
		}
	}
	if b.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", b.Cursor())
	}
}

func TestInsertBeforeEmpty(t *testing.T) {
	b := New()

	idx := b.InsertBefore("first")
	if idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 line, got %d", b.Len())
	}
}

func TestReplaceCurrent(t *testing.T) {
	b := NewFromLines([]string{"a", "b"})
	if err := b.SetCursor(1); err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	if err := b.ReplaceCurrent("B"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if b.Lines()[1] != "B" {
		t.Errorf("expected %q, got %q", "B", b.Lines()[1])
	}
	if b.Len() != 2 {
		t.Errorf("replace must not change length, got %d", b.Len())
	}
}

func TestReplaceCurrentEmpty(t *testing.T) {
	b := New()
	if err := b.ReplaceCurrent("x"); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("expected ErrEmptyBuffer, got %v", err)
	}
}

func TestDeleteCurrent(t *testing.T) {
	b := NewFromLines([]string{"a", "b", "c"})
	if err := b.SetCursor(1); err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	if err := b.DeleteCurrent(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 lines, got %d", b.Len())
	}
	if b.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", b.Cursor())
	}
	if line, _ := b.CurrentLine(); line != "c" {
		t.Errorf("expected %q, got %q", "c", line)
	}
}

func TestDeleteCurrentClampsAtEnd(t *testing.T) {
	b := NewFromLines([]string{"a", "b"})
	if err := b.SetCursor(1); err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	if err := b.DeleteCurrent(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if b.Cursor() != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", b.Cursor())
	}
}

func TestDeleteCurrentLastLine(t *testing.T) {
	b := NewFromLines([]string{"only"})

	if err := b.DeleteCurrent(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !b.IsEmpty() {
		t.Error("expected empty buffer")
	}
	if b.Cursor() != 0 {
		t.Errorf("expected cursor 0 on empty buffer, got %d", b.Cursor())
	}
}

func TestDeleteCurrentEmpty(t *testing.T) {
	b := New()
	if err := b.DeleteCurrent(); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("expected ErrEmptyBuffer, got %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("expected length to stay 0, got %d", b.Len())
	}
}

func TestFindForward(t *testing.T) {
	b := NewFromLines([]string{"x", "y", "z"})

	idx, err := b.FindForward("y")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if b.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", b.Cursor())
	}
}

func TestFindForwardNoWrap(t *testing.T) {
	b := NewFromLines([]string{"x", "y", "z"})

	if _, err := b.FindForward("y"); err != nil {
		t.Fatalf("first find: %v", err)
	}

	// The only match is now at the cursor; the search starts strictly
	// after it and must not wrap.
	if _, err := b.FindForward("y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if b.Cursor() != 1 {
		t.Errorf("cursor must stay put on failure, got %d", b.Cursor())
	}
}

func TestFindBackward(t *testing.T) {
	b := NewFromLines([]string{"needle here", "x", "y"})
	if err := b.SetCursor(2); err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	idx, err := b.FindBackward("needle")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}
}

func TestFindBackwardNoWrap(t *testing.T) {
	b := NewFromLines([]string{"x", "y", "needle"})

	if _, err := b.FindBackward("needle"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if b.Cursor() != 0 {
		t.Errorf("cursor must stay put on failure, got %d", b.Cursor())
	}
}

func TestFindRoundTripSingleMatch(t *testing.T) {
	b := NewFromLines([]string{"start", "the match", "end"})

	fwd, err := b.FindForward("match")
	if err != nil {
		t.Fatalf("forward: %v", err)
	}

	// With a single match, searching back from just past it and forward
	// again returns to the same index.
	if err := b.SetCursor(fwd + 1); err != nil {
		t.Fatalf("set cursor: %v", err)
	}
	back, err := b.FindBackward("match")
	if err != nil {
		t.Fatalf("backward: %v", err)
	}
	if back != fwd {
		t.Errorf("expected index %d, got %d", fwd, back)
	}
}

func TestFindMidLineSubstring(t *testing.T) {
	b := NewFromLines([]string{"aaa", "contains the word inside", "bbb"})

	idx, err := b.FindForward("word")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
}

func TestContext(t *testing.T) {
	b := NewFromLines([]string{"0", "1", "2", "3", "4", "5"})
	if err := b.SetCursor(3); err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	window := b.Context(2)
	if len(window) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(window))
	}
	if window[0].Index != 1 || window[4].Index != 5 {
		t.Errorf("expected window [1,5], got [%d,%d]", window[0].Index, window[4].Index)
	}
	for _, nl := range window {
		if nl.Current != (nl.Index == 3) {
			t.Errorf("line %d: wrong Current flag", nl.Index)
		}
	}
}

func TestContextClipsAtStart(t *testing.T) {
	b := NewFromLines([]string{"0", "1", "2"})

	window := b.Context(2)
	if len(window) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(window))
	}
	if window[0].Index != 0 {
		t.Errorf("expected window to start at 0, got %d", window[0].Index)
	}
}

func TestContextNegativeRadius(t *testing.T) {
	b := NewFromLines([]string{"0", "1", "2"})
	if err := b.SetCursor(1); err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	window := b.Context(-5)
	if len(window) != 1 {
		t.Fatalf("expected 1 line, got %d", len(window))
	}
	if window[0].Index != 1 || !window[0].Current {
		t.Errorf("expected only the current line, got %+v", window[0])
	}
}

func TestContextEmpty(t *testing.T) {
	b := New()
	if window := b.Context(2); window != nil {
		t.Errorf("expected nil window, got %v", window)
	}
}

func TestAll(t *testing.T) {
	b := NewFromLines([]string{"a", "b", "c"})
	if err := b.SetCursor(2); err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	var idx []int
	var lines []string
	for i, line := range b.All() {
		idx = append(idx, i)
		lines = append(lines, line)
	}

	if len(idx) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(idx))
	}
	for i := range idx {
		if idx[i] != i {
			t.Errorf("expected index %d, got %d", i, idx[i])
		}
	}
	if b.Cursor() != 2 {
		t.Errorf("iteration must not move the cursor, got %d", b.Cursor())
	}

	// The iterator is restartable.
	count := 0
	for range b.All() {
		count++
	}
	if count != 3 {
		t.Errorf("expected 3 lines on second pass, got %d", count)
	}
	_ = lines
}

func TestAllEarlyBreak(t *testing.T) {
	b := NewFromLines([]string{"a", "b", "c"})

	count := 0
	for range b.All() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("expected early break after 2, got %d", count)
	}
}

// TestCursorInvariantRandomOps drives the buffer with random operation
// sequences and checks the cursor bound after every step.
func TestCursorInvariantRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := New()

	check := func(step int, op string) {
		t.Helper()
		if b.Len() == 0 {
			if b.Cursor() != 0 {
				t.Fatalf("step %d (%s): cursor %d on empty buffer", step, op, b.Cursor())
			}
			return
		}
		if b.Cursor() < 0 || b.Cursor() >= b.Len() {
			t.Fatalf("step %d (%s): cursor %d out of [0,%d)", step, op, b.Cursor(), b.Len())
		}
	}

	for step := 0; step < 5000; step++ {
		switch rng.Intn(5) {
		case 0:
			b.InsertAfter("after")
			check(step, "insertAfter")
		case 1:
			b.InsertBefore("before")
			check(step, "insertBefore")
		case 2:
			_ = b.DeleteCurrent()
			check(step, "deleteCurrent")
		case 3:
			_ = b.SetCursor(rng.Intn(b.Len() + 1))
			check(step, "setCursor")
		case 4:
			_ = b.ReplaceCurrent("replaced")
			check(step, "replaceCurrent")
		}
	}
}

// TestInsertPostconditions verifies that inserts grow the buffer by exactly
// one line and land the cursor on the new line.
func TestInsertPostconditions(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := New()

	for step := 0; step < 1000; step++ {
		before := b.Len()
		var idx int
		if rng.Intn(2) == 0 {
			idx = b.InsertAfter("x")
		} else {
			idx = b.InsertBefore("x")
		}
		if b.Len() != before+1 {
			t.Fatalf("step %d: length %d, expected %d", step, b.Len(), before+1)
		}
		if b.Cursor() != idx {
			t.Fatalf("step %d: cursor %d, expected %d", step, b.Cursor(), idx)
		}
	}
}
