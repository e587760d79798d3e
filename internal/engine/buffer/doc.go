// Package buffer provides a thread-safe, line-indexed text buffer. It is the
// storage behind the editor engine and the text surface the smart-style
// transformer reads and rewrites.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Line-indexed storage with copy-on-write line slices
//   - Line/column positions whose column counts UTF-16 code units
//   - Range-bounded reads and replacements
//   - Read-only snapshots for concurrent access
//   - Line ending normalization
//   - Revision tracking for change management
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("hello world")
//
//	// Wrap "hello" in bold markers
//	r := buffer.NewPointRange(buffer.Point{Line: 0, Column: 0}, buffer.Point{Line: 0, Column: 5})
//	buf.Replace(r, "**hello**") // "**hello** world"
//
//	// Read a range back
//	text, _ := buf.TextRange(r)
//
// Position Types:
//
// Point is a (line, column) pair, both 0-indexed. Columns are measured in
// UTF-16 code units so positions line up with editors and protocols that use
// JavaScript-style string indexing. Helpers in utf16.go convert between
// UTF-16 columns and Go byte offsets within a line.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock. Use Snapshot() to
// obtain a consistent read-only view across several reads.
package buffer
