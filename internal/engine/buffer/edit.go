package buffer

import (
	"fmt"
	"strings"
)

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   PointRange // The range to replace
	NewText string     // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r PointRange, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(at Point, text string) Edit {
	return Edit{
		Range:   PointRange{Start: at, End: at},
		NewText: text,
	}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start.String(), e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// AddsLines returns true if the edit changes the number of lines.
func (e Edit) AddsLines() bool {
	return strings.Count(e.NewText, "\n") != e.Range.End.Line-e.Range.Start.Line
}

// EditResult contains information about an applied edit.
type EditResult struct {
	OldRange PointRange // The original range that was modified
	NewRange PointRange // The resulting range after the edit
	OldText  string     // The text that was replaced (if any)
}

// ChangeType categorizes the type of change made to the buffer.
type ChangeType uint8

const (
	ChangeInsert  ChangeType = iota // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change represents a single applied change to the buffer.
type Change struct {
	Type     ChangeType // Type of change
	Range    PointRange // Original range that was affected
	NewRange PointRange // Resulting range after the change
	OldText  string     // Text that was removed (for delete/replace)
	NewText  string     // Text that was added (for insert/replace)
}

// NewChange classifies an applied edit.
func NewChange(res EditResult, newText string) Change {
	typ := ChangeReplace
	switch {
	case res.OldText == "":
		typ = ChangeInsert
	case newText == "":
		typ = ChangeDelete
	}
	return Change{
		Type:     typ,
		Range:    res.OldRange,
		NewRange: res.NewRange,
		OldText:  res.OldText,
		NewText:  newText,
	}
}

// Invert returns the inverse change that would undo this change.
func (c Change) Invert() Change {
	switch c.Type {
	case ChangeInsert:
		return Change{
			Type:     ChangeDelete,
			Range:    c.NewRange,
			NewRange: PointRange{Start: c.NewRange.Start, End: c.NewRange.Start},
			OldText:  c.NewText,
		}
	case ChangeDelete:
		return Change{
			Type:     ChangeInsert,
			Range:    PointRange{Start: c.Range.Start, End: c.Range.Start},
			NewRange: c.Range,
			NewText:  c.OldText,
		}
	case ChangeReplace:
		return Change{
			Type:     ChangeReplace,
			Range:    c.NewRange,
			NewRange: c.Range,
			OldText:  c.NewText,
			NewText:  c.OldText,
		}
	default:
		return c
	}
}

// ToEdit converts a Change to an Edit for reapplication.
func (c Change) ToEdit() Edit {
	return Edit{
		Range:   c.Range,
		NewText: c.NewText,
	}
}
