package history

import (
	"errors"
	"testing"

	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
)

// Helper to create a test buffer and selection set
func newTestBufferAndSelections(text string, at buffer.Point) (*buffer.Buffer, *cursor.SelectionSet) {
	buf := buffer.NewBufferFromString(text)
	sels := cursor.NewSelectionSet(cursor.NewCursorSelection(at))
	return buf, sels
}

// apply performs an edit the way the engine does and records it.
func apply(t *testing.T, h *History, buf *buffer.Buffer, sels *cursor.SelectionSet, r buffer.PointRange, text string) {
	t.Helper()
	before := sels.All()
	res, err := buf.Replace(r, text)
	if err != nil {
		t.Fatalf("Replace(%v, %q) failed: %v", r, text, err)
	}
	sels.Set(cursor.NewCursorSelection(res.NewRange.End))
	h.Push(NewEditCommand(buffer.NewChange(res, text), before, sels.All()))
}

func rng(sl, sc, el, ec int) buffer.PointRange {
	return buffer.NewPointRange(buffer.NewPoint(sl, sc), buffer.NewPoint(el, ec))
}

func TestEditCommandUndoRedo(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		r     buffer.PointRange
		repl  string
		after string
	}{
		{"insert", "hello world", rng(0, 5, 0, 5), ",", "hello, world"},
		{"delete", "hello world", rng(0, 5, 0, 11), "", "hello"},
		{"replace", "hello world", rng(0, 0, 0, 5), "**hello**", "**hello** world"},
		{"join lines", "ab\ncd", rng(0, 1, 1, 1), "", "ad"},
		{"split line", "abcd", rng(0, 2, 0, 2), "\n", "ab\ncd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(10)
			buf, sels := newTestBufferAndSelections(tt.text, buffer.Point{})

			apply(t, h, buf, sels, tt.r, tt.repl)
			if got := buf.Text(); got != tt.after {
				t.Fatalf("after edit = %q, want %q", got, tt.after)
			}

			if err := h.Undo(buf, sels); err != nil {
				t.Fatalf("Undo failed: %v", err)
			}
			if got := buf.Text(); got != tt.text {
				t.Errorf("after undo = %q, want %q", got, tt.text)
			}
			if sels.Primary().Head != (buffer.Point{}) {
				t.Errorf("selection not restored: %v", sels.Primary())
			}

			if err := h.Redo(buf, sels); err != nil {
				t.Fatalf("Redo failed: %v", err)
			}
			if got := buf.Text(); got != tt.after {
				t.Errorf("after redo = %q, want %q", got, tt.after)
			}
		})
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(0)
	buf, sels := newTestBufferAndSelections("x", buffer.Point{})

	if h.CanUndo() || h.CanRedo() {
		t.Error("new history should have nothing to undo or redo")
	}
	if err := h.Undo(buf, sels); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if err := h.Redo(buf, sels); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory(10)
	buf, sels := newTestBufferAndSelections("abc", buffer.Point{})

	apply(t, h, buf, sels, rng(0, 0, 0, 0), "1")
	if err := h.Undo(buf, sels); err != nil {
		t.Fatal(err)
	}
	if !h.CanRedo() {
		t.Fatal("expected redo to be available")
	}

	apply(t, h, buf, sels, rng(0, 3, 0, 3), "2")
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
	if got := buf.Text(); got != "abc2" {
		t.Errorf("Text() = %q", got)
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	h := NewHistory(2)
	buf, sels := newTestBufferAndSelections("", buffer.Point{})

	for i := 0; i < 3; i++ {
		apply(t, h, buf, sels, rng(0, i, 0, i), "x")
	}
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount() = %d, want 2", h.UndoCount())
	}
}

func TestHistoryGroup(t *testing.T) {
	h := NewHistory(10)
	buf, sels := newTestBufferAndSelections("one two", buffer.Point{})

	h.BeginGroup("Toggle bold")
	apply(t, h, buf, sels, rng(0, 4, 0, 7), "**two**")
	apply(t, h, buf, sels, rng(0, 0, 0, 3), "**one**")
	h.EndGroup()

	if got := buf.Text(); got != "**one** **two**" {
		t.Fatalf("Text() = %q", got)
	}
	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", h.UndoCount())
	}
	info, ok := h.PeekUndo()
	if !ok || info.Description != "Toggle bold" {
		t.Errorf("PeekUndo() = %+v, %v", info, ok)
	}

	if err := h.Undo(buf, sels); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "one two" {
		t.Errorf("after undo = %q", got)
	}
	if err := h.Redo(buf, sels); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "**one** **two**" {
		t.Errorf("after redo = %q", got)
	}
}

func TestHistoryNestedGroup(t *testing.T) {
	h := NewHistory(10)
	buf, sels := newTestBufferAndSelections("", buffer.Point{})

	h.BeginGroup("outer")
	apply(t, h, buf, sels, rng(0, 0, 0, 0), "a")
	h.BeginGroup("inner")
	apply(t, h, buf, sels, rng(0, 1, 0, 1), "b")
	h.EndGroup()
	if !h.IsGrouping() {
		t.Fatal("outer group should still be open")
	}
	h.EndGroup()

	if h.UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want 1", h.UndoCount())
	}
	if info, _ := h.PeekUndo(); info.Description != "outer" {
		t.Errorf("Description = %q, want outer", info.Description)
	}
}

func TestHistoryEmptyGroup(t *testing.T) {
	h := NewHistory(10)
	h.BeginGroup("nothing")
	h.EndGroup()
	if h.CanUndo() {
		t.Error("empty group should not create an undo entry")
	}
}

func TestHistoryTransaction(t *testing.T) {
	h := NewHistory(10)
	buf, sels := newTestBufferAndSelections("x", buffer.Point{})

	boom := errors.New("boom")
	err := h.Transaction("fails", func() error {
		apply(t, h, buf, sels, rng(0, 0, 0, 0), "y")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Transaction() error = %v", err)
	}
	if h.IsGrouping() {
		t.Error("failed transaction left its group open")
	}
	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1 for the edit made before the failure", h.UndoCount())
	}
	if err := h.Undo(buf, sels); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "x" {
		t.Errorf("after undo = %q, want x", got)
	}

	err = h.Transaction("works", func() error {
		apply(t, h, buf, sels, rng(0, 0, 0, 0), "z")
		apply(t, h, buf, sels, rng(0, 1, 0, 1), "z")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want 1", h.UndoCount())
	}
	if info, _ := h.PeekUndo(); info.Description != "works" {
		t.Errorf("Description = %q, want works", info.Description)
	}
}

func TestEditCommandDescription(t *testing.T) {
	cmd := NewEditCommand(buffer.Change{Type: buffer.ChangeInsert, NewText: "x"}, nil, nil)
	if got := cmd.Description(); got != `Insert "x"` {
		t.Errorf("Description() = %q", got)
	}
	cmd = NewEditCommand(buffer.Change{Type: buffer.ChangeReplace, OldText: "a", NewText: "b"}, nil, nil)
	if got := cmd.Description(); got != `Replace "a" with "b"` {
		t.Errorf("Description() = %q", got)
	}
}
