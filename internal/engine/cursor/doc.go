// Package cursor provides selection management for text editing.
//
// The cursor package handles:
//
//   - Text selections with anchor/head model via Selection type
//   - Multi-selection support with SelectionSet
//   - Selection transformation after same-line edits
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. The selection can extend forward (head > anchor) or
// backward (head < anchor), preserving the user's selection direction.
// Range always returns the ordered (from, to) form.
//
// Multi-Selection Support:
//
// SelectionSet manages multiple selections that are:
//   - Kept sorted by position
//   - Merged when overlapping
//   - Shifted together when a line they share grows or shrinks
//
// Basic usage:
//
//	sel := cursor.NewSelection(buffer.Point{Line: 0, Column: 5}, buffer.Point{Line: 0, Column: 0})
//	r := sel.Range() // (0:0)-(0:5)
//
//	set := cursor.NewSelectionSet(sel)
//	set.Add(cursor.NewCursorSelection(buffer.Point{Line: 2, Column: 3}))
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use.
// SelectionSet is not thread-safe and should be protected by external
// synchronization if accessed concurrently.
package cursor
