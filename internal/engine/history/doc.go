// Package history provides undo/redo functionality for the text editor engine.
//
// The history system uses the Command pattern to encapsulate edits that
// have already been applied to a buffer, so they can be undone and redone.
//
// # Commands
//
// Commands implement the Command interface with Execute and Undo methods:
//   - EditCommand: one applied buffer change plus the selections around it
//   - CompoundCommand: group multiple commands as one undo unit
//
// # History Stack
//
// The History type manages undo/redo stacks and command grouping:
//
//	history := NewHistory(1000) // Max 1000 undo entries
//
//	history.Push(NewEditCommand(change, before, after))
//
//	// Undo/redo
//	history.Undo(buffer, selections)
//	history.Redo(buffer, selections)
//
// # Command Grouping
//
// A style toggle over several selections produces several edits. They are
// grouped so that one undo restores the whole toggle:
//
//	history.BeginGroup("Toggle bold")
//	// ... multiple edits ...
//	history.EndGroup()
//
// # Selection Restoration
//
// Commands record the selections before and after execution, so undo and
// redo put the selections back where the user saw them.
package history
