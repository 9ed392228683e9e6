// Package buffer provides the line buffer at the core of the editor: an
// ordered sequence of text lines coupled with a current-line cursor.
//
// The buffer package provides:
//
//   - Bounds-checked cursor navigation (SetCursor, CurrentLine)
//   - Mutation anchored at the cursor (InsertAfter, InsertBefore,
//     ReplaceCurrent, DeleteCurrent)
//   - Linear substring search away from the cursor in either direction,
//     without wraparound (FindForward, FindBackward)
//   - A context window around the cursor (Context) and full in-order
//     iteration (All)
//
// Cursor and lines live in one type on purpose: every operation that
// changes the line count must atomically re-clamp the cursor, and keeping
// both behind one API guarantees callers never see an inconsistent pair.
// The invariant is 0 <= Cursor() < Len() whenever the buffer is non-empty,
// and Cursor() == 0 when it is empty.
package buffer
