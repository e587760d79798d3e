package cursor

import (
	"testing"

	"github.com/dshills/markstyle/internal/engine/buffer"
)

func pt(line, col int) Point {
	return buffer.NewPoint(line, col)
}

// Selection Tests

func TestNewSelection(t *testing.T) {
	sel := NewSelection(pt(0, 5), pt(0, 10))
	if sel.Anchor != pt(0, 5) || sel.Head != pt(0, 10) {
		t.Errorf("unexpected selection %v", sel)
	}
}

func TestNewCursorSelection(t *testing.T) {
	sel := NewCursorSelection(pt(2, 3))
	if !sel.IsEmpty() {
		t.Error("cursor selection should be empty")
	}
	if sel.Head != pt(2, 3) {
		t.Errorf("expected head 2:3, got %v", sel.Head)
	}
}

func TestSelectionRange(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want Range
	}{
		{"forward", NewSelection(pt(0, 1), pt(0, 4)), Range{Start: pt(0, 1), End: pt(0, 4)}},
		{"backward", NewSelection(pt(0, 4), pt(0, 1)), Range{Start: pt(0, 1), End: pt(0, 4)}},
		{"backward multiline", NewSelection(pt(3, 0), pt(1, 7)), Range{Start: pt(1, 7), End: pt(3, 0)}},
		{"cursor", NewCursorSelection(pt(1, 1)), Range{Start: pt(1, 1), End: pt(1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Range(); got != tt.want {
				t.Errorf("Range() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectionDirection(t *testing.T) {
	fwd := NewSelection(pt(0, 0), pt(0, 3))
	if fwd.IsBackward() {
		t.Error("expected forward selection")
	}

	bwd := NewSelection(pt(1, 0), pt(0, 3))
	if !bwd.IsBackward() {
		t.Error("expected backward selection")
	}

	cur := NewCursorSelection(pt(0, 0))
	if cur.IsBackward() {
		t.Error("cursor should count as forward")
	}
}

func TestSelectionStartEnd(t *testing.T) {
	sel := NewSelection(pt(2, 0), pt(1, 5))
	if sel.Start() != pt(1, 5) {
		t.Errorf("Start() = %v", sel.Start())
	}
	if sel.End() != pt(2, 0) {
		t.Errorf("End() = %v", sel.End())
	}
}

func TestSelectionOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Selection
		want bool
	}{
		{"disjoint", NewSelection(pt(0, 0), pt(0, 2)), NewSelection(pt(0, 5), pt(0, 8)), false},
		{"touching", NewSelection(pt(0, 0), pt(0, 5)), NewSelection(pt(0, 5), pt(0, 8)), false},
		{"overlapping", NewSelection(pt(0, 0), pt(0, 6)), NewSelection(pt(0, 5), pt(0, 8)), true},
		{"across lines", NewSelection(pt(0, 3), pt(2, 0)), NewSelection(pt(1, 0), pt(1, 1)), true},
		{"backward overlap", NewSelection(pt(0, 6), pt(0, 0)), NewSelection(pt(0, 5), pt(0, 8)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Range().Overlaps(tt.b.Range()); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectionMerge(t *testing.T) {
	a := NewSelection(pt(0, 6), pt(0, 0))
	b := NewSelection(pt(0, 4), pt(1, 2))
	m := a.Merge(b)
	if m.Anchor != pt(0, 0) || m.Head != pt(1, 2) {
		t.Errorf("Merge() = %v", m)
	}
}

func TestSelectionString(t *testing.T) {
	if s := NewCursorSelection(pt(0, 1)).String(); s != "Cursor(0:1)" {
		t.Errorf("String() = %q", s)
	}
	if s := NewSelection(pt(0, 3), pt(0, 1)).String(); s != "Selection((0:3)←(0:1))" {
		t.Errorf("String() = %q", s)
	}
}

// SelectionSet Tests

func TestNewSelectionSet(t *testing.T) {
	cs := NewSelectionSet(NewCursorSelection(pt(0, 3)))
	if cs.Count() != 1 {
		t.Errorf("expected 1 selection, got %d", cs.Count())
	}
	if cs.IsMulti() {
		t.Error("single selection should not be multi")
	}
	if cs.Primary().Head != pt(0, 3) {
		t.Errorf("unexpected primary %v", cs.Primary())
	}
}

func TestSelectionSetNormalize(t *testing.T) {
	cs := NewSelectionSetFromSlice([]Selection{
		NewSelection(pt(2, 0), pt(2, 4)),
		NewSelection(pt(0, 0), pt(0, 4)),
		NewSelection(pt(1, 4), pt(1, 0)),
	})

	if cs.Count() != 3 {
		t.Fatalf("expected 3 selections, got %d", cs.Count())
	}

	sels := cs.All()
	if sels[0].Start().Line != 0 || sels[1].Start().Line != 1 || sels[2].Start().Line != 2 {
		t.Errorf("selections should be sorted by start position: %v", sels)
	}
	if !sels[1].IsBackward() {
		t.Error("non-merged selection should keep its direction")
	}
}

func TestSelectionSetMerge(t *testing.T) {
	tests := []struct {
		name  string
		sels  []Selection
		count int
	}{
		{"overlapping", []Selection{NewSelection(pt(0, 0), pt(0, 5)), NewSelection(pt(0, 3), pt(0, 8))}, 1},
		{"identical cursors", []Selection{NewCursorSelection(pt(0, 2)), NewCursorSelection(pt(0, 2))}, 1},
		{"identical ranges", []Selection{NewSelection(pt(0, 0), pt(0, 2)), NewSelection(pt(0, 2), pt(0, 0))}, 1},
		{"touching", []Selection{NewSelection(pt(0, 0), pt(0, 5)), NewSelection(pt(0, 5), pt(0, 8))}, 2},
		{"contained", []Selection{NewSelection(pt(0, 0), pt(2, 0)), NewSelection(pt(1, 0), pt(1, 3))}, 1},
		{"cursor inside range", []Selection{NewSelection(pt(0, 0), pt(0, 6)), NewCursorSelection(pt(0, 3))}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewSelectionSetFromSlice(tt.sels)
			if cs.Count() != tt.count {
				t.Errorf("Count() = %d, want %d (%v)", cs.Count(), tt.count, cs.All())
			}
		})
	}
}

func TestSelectionSetAdd(t *testing.T) {
	cs := NewSelectionSet(NewCursorSelection(pt(3, 0)))
	cs.Add(NewCursorSelection(pt(1, 0)))
	if cs.Count() != 2 {
		t.Fatalf("expected 2 selections, got %d", cs.Count())
	}
	if cs.Primary().Head != pt(1, 0) {
		t.Errorf("primary should be first in document order, got %v", cs.Primary())
	}
}

func TestSelectionSetSetAllEmpty(t *testing.T) {
	cs := NewSelectionSet(NewCursorSelection(pt(3, 0)))
	cs.SetAll(nil)
	if cs.Count() != 1 || cs.Primary().Head != pt(0, 0) {
		t.Errorf("expected a single cursor at 0:0, got %v", cs.All())
	}
}

func TestSelectionSetHasSelection(t *testing.T) {
	cs := NewSelectionSet(NewCursorSelection(pt(0, 0)))
	if cs.HasSelection() {
		t.Error("cursor-only set should not have a selection")
	}
	cs.Add(NewSelection(pt(1, 0), pt(1, 2)))
	if !cs.HasSelection() {
		t.Error("expected HasSelection after adding a range")
	}
}

func TestSelectionSetCloneEquals(t *testing.T) {
	cs := NewSelectionSetFromSlice([]Selection{
		NewSelection(pt(0, 0), pt(0, 2)),
		NewCursorSelection(pt(1, 1)),
	})
	clone := cs.Clone()
	if !cs.Equals(clone) {
		t.Error("clone should equal original")
	}
	clone.SetPrimary(NewCursorSelection(pt(0, 1)))
	if cs.Equals(clone) {
		t.Error("modifying clone should not affect original")
	}
	if cs.Equals(nil) {
		t.Error("set should not equal nil")
	}
}

func TestSelectionSetRanges(t *testing.T) {
	cs := NewSelectionSetFromSlice([]Selection{
		NewSelection(pt(1, 4), pt(1, 0)),
		NewSelection(pt(0, 0), pt(0, 2)),
	})
	ranges := cs.Ranges()
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if ranges[1] != (Range{Start: pt(1, 0), End: pt(1, 4)}) {
		t.Errorf("ranges should be normalized: %v", ranges)
	}
}

// Transform Tests

func TestShiftPoint(t *testing.T) {
	tests := []struct {
		name  string
		p     Point
		line  int
		from  int
		delta int
		want  Point
	}{
		{"other line", pt(1, 5), 0, 0, 4, pt(1, 5)},
		{"before from", pt(0, 2), 0, 3, 4, pt(0, 2)},
		{"at from", pt(0, 3), 0, 3, 4, pt(0, 7)},
		{"after from", pt(0, 9), 0, 3, -4, pt(0, 5)},
		{"clamped", pt(0, 1), 0, 0, -4, pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShiftPoint(tt.p, tt.line, tt.from, tt.delta); got != tt.want {
				t.Errorf("ShiftPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShiftRange(t *testing.T) {
	r := Range{Start: pt(0, 10), End: pt(1, 3)}
	got := ShiftRange(r, 0, 0, 4)
	want := Range{Start: pt(0, 14), End: pt(1, 3)}
	if got != want {
		t.Errorf("ShiftRange() = %v, want %v", got, want)
	}
}

func TestTransformPoint(t *testing.T) {
	// "hello world" with [0,5) replaced by "**hello**"
	oldR := Range{Start: pt(0, 0), End: pt(0, 5)}
	newR := Range{Start: pt(0, 0), End: pt(0, 9)}

	tests := []struct {
		name string
		p    Point
		want Point
	}{
		{"inside", pt(0, 3), pt(0, 9)},
		{"at end", pt(0, 5), pt(0, 9)},
		{"after on line", pt(0, 8), pt(0, 12)},
		{"next line", pt(1, 2), pt(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformPoint(tt.p, oldR, newR); got != tt.want {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestTransformPointLineChange(t *testing.T) {
	// "ab\ncd\nef" with (0,1)-(1,1) deleted -> "ad\nef"
	oldR := Range{Start: pt(0, 1), End: pt(1, 1)}
	newR := Range{Start: pt(0, 1), End: pt(0, 1)}

	if got := TransformPoint(pt(0, 0), oldR, newR); got != pt(0, 0) {
		t.Errorf("before edit = %v", got)
	}
	if got := TransformPoint(pt(1, 2), oldR, newR); got != pt(0, 2) {
		t.Errorf("after edit on end line = %v, want 0:2", got)
	}
	if got := TransformPoint(pt(2, 1), oldR, newR); got != pt(1, 1) {
		t.Errorf("later line = %v, want 1:1", got)
	}

	sel := TransformSelection(NewSelection(pt(2, 0), pt(1, 2)), oldR, newR)
	if sel.Anchor != pt(1, 0) || sel.Head != pt(0, 2) {
		t.Errorf("TransformSelection() = %v", sel)
	}
}

func TestTransformPointInsert(t *testing.T) {
	at := Range{Start: pt(0, 2), End: pt(0, 2)}
	newR := Range{Start: pt(0, 2), End: pt(0, 4)}
	if got := TransformPoint(pt(0, 2), at, newR); got != pt(0, 4) {
		t.Errorf("cursor at insertion point = %v, want 0:4", got)
	}
	if got := TransformPoint(pt(0, 1), at, newR); got != pt(0, 1) {
		t.Errorf("cursor before insertion = %v, want 0:1", got)
	}
}
