package buffer

import (
	"fmt"
	"sync/atomic"
)

// Point represents a line and column position.
// Both Line and Column are 0-indexed.
// Column is measured in UTF-16 code units from the start of the line.
type Point struct {
	Line   int // 0-indexed line number
	Column int // 0-indexed column (UTF-16 code units within line)
}

// NewPoint creates a point at the given line and column.
func NewPoint(line, column int) Point {
	return Point{Line: line, Column: column}
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Points are ordered by line first, then column.
func (p Point) Compare(other Point) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// WithColumn returns a copy of p on the same line at the given column.
func (p Point) WithColumn(column int) Point {
	return Point{Line: p.Line, Column: column}
}

// MinPoint returns the earlier of two points.
func MinPoint(a, b Point) Point {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

// MaxPoint returns the later of two points.
func MaxPoint(a, b Point) Point {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
