// Package engine provides the text editing host for markstyle.
//
// The engine package serves as the main facade, combining buffer management,
// selection handling, undo/redo operations, and change tracking into a
// unified, thread-safe API. It implements the line-oriented editor contract
// the style transformer works against: line access, range reads, selection
// get/set and range replacement.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: Line-indexed text storage with UTF-16 columns
//   - cursor: Multi-selection management
//   - history: Command-based undo/redo system
//   - tracking: Change log and named snapshots
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("hello world"))
//
//	e.SetSelection(engine.Point{Line: 0, Column: 0}, engine.Point{Line: 0, Column: 5})
//	_ = e.ReplaceSelection("**hello**")
//
//	text := e.Text() // "**hello** world"
//
//	_ = e.Undo() // "hello world"
//
// # Grouping
//
// Edits made inside Transaction undo as one step:
//
//	err := e.Transaction("Toggle bold", func() error {
//	    // ... several ReplaceRange calls ...
//	    return nil
//	})
//
// # Change Tracking
//
// Every edit is recorded with the revision it produced. Named snapshots let
// callers report which lines an operation touched:
//
//	e.CreateSnapshot("before")
//	// ... edits ...
//	lines, _ := e.ChangedLinesSince("before")
package engine
