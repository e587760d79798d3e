package buffer

import "fmt"

// PointRange represents a half-open range using line/column positions:
// [Start, End).
type PointRange struct {
	Start Point // Inclusive start position
	End   Point // Exclusive end position
}

// NewPointRange creates a new PointRange from start and end points.
// The points are stored as given; use Normalize for an ordered range.
func NewPointRange(start, end Point) PointRange {
	return PointRange{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r PointRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start.String(), r.End.String())
}

// Normalize returns the range with Start <= End.
func (r PointRange) Normalize() PointRange {
	if r.Start.Compare(r.End) <= 0 {
		return r
	}
	return PointRange{Start: r.End, End: r.Start}
}

// IsEmpty returns true if start equals end.
func (r PointRange) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid returns true if start <= end.
func (r PointRange) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// Contains returns true if the given point is within the range.
func (r PointRange) Contains(p Point) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// Overlaps returns true if this range overlaps with another range.
func (r PointRange) Overlaps(other PointRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// IsSingleLine returns true if the range spans only one line.
func (r PointRange) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// Lines returns the distinct line numbers touched by the range's endpoints.
func (r PointRange) Lines() []int {
	if r.IsSingleLine() {
		return []int{r.Start.Line}
	}
	return []int{r.Start.Line, r.End.Line}
}
