package cursor

import (
	"fmt"

	"github.com/dshills/markstyle/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Range is an alias for buffer.PointRange for convenience.
type Range = buffer.PointRange

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the current cursor position.
// When Anchor == Head, this represents a cursor with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor Point // Where selection started
	Head   Point // Current cursor position (where typing occurs)
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Point) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor (no extent).
func NewCursorSelection(p Point) Selection {
	return Selection{Anchor: p, Head: p}
}

// NewRangeSelection creates a forward selection covering the given range.
func NewRangeSelection(r Range) Selection {
	return Selection{Anchor: r.Start, Head: r.End}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Range returns the selection as an ordered range (Start <= End).
func (s Selection) Range() Range {
	return buffer.NewPointRange(s.Anchor, s.Head).Normalize()
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Point {
	return buffer.MinPoint(s.Anchor, s.Head)
}

// End returns the upper bound of the selection.
func (s Selection) End() Point {
	return buffer.MaxPoint(s.Anchor, s.Head)
}

// IsBackward returns true if the selection extends backward (head < anchor).
func (s Selection) IsBackward() bool {
	return s.Head.Before(s.Anchor)
}

// Merge merges two overlapping selections into one.
// The result is always forward, so direction is not preserved.
func (s Selection) Merge(other Selection) Selection {
	return Selection{
		Anchor: buffer.MinPoint(s.Start(), other.Start()),
		Head:   buffer.MaxPoint(s.End(), other.End()),
	}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%s%s%s)", s.Anchor, dir, s.Head)
}

// Equals returns true if two selections have the same anchor and head.
func (s Selection) Equals(other Selection) bool {
	return s.Anchor == other.Anchor && s.Head == other.Head
}

// SameRange returns true if two selections cover the same range,
// regardless of direction.
func (s Selection) SameRange(other Selection) bool {
	return s.Start() == other.Start() && s.End() == other.End()
}
