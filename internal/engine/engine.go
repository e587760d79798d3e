package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
	"github.com/dshills/markstyle/internal/engine/history"
	"github.com/dshills/markstyle/internal/engine/tracking"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position with UTF-16 columns.
	Point = buffer.Point

	// Range represents an ordered span between two points.
	Range = buffer.PointRange

	// Selection represents an anchor/head selection.
	Selection = cursor.Selection

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// Change represents a tracked change.
	Change = buffer.Change
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Engine is the main facade for the text editor engine.
// It combines buffer management, selection handling, undo/redo,
// and change tracking into a unified, thread-safe API.
type Engine struct {
	mu sync.RWMutex

	// Core components
	buf     *buffer.Buffer
	sels    *cursor.SelectionSet
	history *history.History
	tracker *tracking.Tracker

	// Configuration
	lineEnding     buffer.LineEnding
	lineEndingSet  bool
	maxUndoEntries int
	maxChanges     int
	readOnly       bool

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
// The engine starts with a single cursor at the beginning of the buffer.
func New(opts ...Option) *Engine {
	e := &Engine{
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
		maxChanges:     DefaultMaxChanges,
	}

	for _, opt := range opts {
		opt(e)
	}

	bufOpt := buffer.WithDetectedLineEnding(e.initContent)
	if e.lineEndingSet {
		bufOpt = buffer.WithLineEnding(e.lineEnding)
	}
	e.buf = buffer.NewBufferFromString(e.initContent, bufOpt)
	e.lineEnding = e.buf.LineEnding()

	e.sels = cursor.NewSelectionSet(cursor.NewCursorSelection(Point{}))
	e.history = history.NewHistory(e.maxUndoEntries)
	e.tracker = tracking.NewTracker(tracking.WithMaxChanges(e.maxChanges))

	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	opts = append([]Option{WithContent(string(data))}, opts...)
	return New(opts...), nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content joined with the buffer's line ending.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// Line returns the text of a line without its line ending.
// Out-of-range lines read as empty.
func (e *Engine) Line(n int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(n)
}

// LineLen returns the UTF-16 length of a line.
func (e *Engine) LineLen(n int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineLen(n)
}

// Range returns the text between two points, joining lines with "\n".
// The points are clamped into the document and ordered first.
func (e *Engine) Range(from, to Point) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	// a clamped, ordered range is always valid
	text, _ := e.buf.TextRange(e.clampRangeLocked(from, to))
	return text
}

// LineEnding returns the line ending used by Text.
func (e *Engine) LineEnding() LineEnding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineEnding()
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID()
}

// Snapshot returns an immutable view of the current buffer.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// IsReadOnly reports whether writes are rejected.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Selections
// ============================================================================

// ListSelections returns all selections in document order.
func (e *Engine) ListSelections() []Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sels.All()
}

// PrimarySelection returns the primary selection.
func (e *Engine) PrimarySelection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sels.Primary()
}

// Selection returns the text covered by the primary selection.
func (e *Engine) Selection() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	// selections are clamped whenever they are set or moved
	text, _ := e.buf.TextRange(e.sels.Primary().Range())
	return text
}

// SetSelection replaces all selections with a single one.
// Both ends are clamped into the document.
func (e *Engine) SetSelection(anchor, head Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sels.Set(cursor.NewSelection(e.buf.ClampPoint(anchor), e.buf.ClampPoint(head)))
}

// SetSelections replaces all selections. Overlapping selections merge.
func (e *Engine) SetSelections(sels []Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()

	clamped := make([]Selection, len(sels))
	for i, sel := range sels {
		clamped[i] = cursor.NewSelection(e.buf.ClampPoint(sel.Anchor), e.buf.ClampPoint(sel.Head))
	}
	e.sels.SetAll(clamped)
}

// AddSelection adds a selection to the set.
func (e *Engine) AddSelection(anchor, head Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sels.Add(cursor.NewSelection(e.buf.ClampPoint(anchor), e.buf.ClampPoint(head)))
}

// SetCursor replaces all selections with a single cursor.
func (e *Engine) SetCursor(p Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sels.Set(cursor.NewCursorSelection(e.buf.ClampPoint(p)))
}

// ============================================================================
// Write Operations
// ============================================================================

// ReplaceSelection replaces the text of the primary selection. The primary
// selection collapses to a cursor after the inserted text; other selections
// follow the edit.
func (e *Engine) ReplaceSelection(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	r := e.sels.Primary().Range()
	return e.replaceLocked(r, text, true)
}

// ReplaceRange replaces the text between from and to.
// The points are clamped into the document and ordered first.
func (e *Engine) ReplaceRange(text string, from, to Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	return e.replaceLocked(e.clampRangeLocked(from, to), text, false)
}

// Insert inserts text at p.
func (e *Engine) Insert(p Point, text string) error {
	return e.ReplaceRange(text, p, p)
}

// replaceLocked applies an edit, records it, and moves the selections.
func (e *Engine) replaceLocked(r Range, text string, collapsePrimary bool) error {
	before := e.sels.All()

	res, err := e.buf.Replace(r, text)
	if err != nil {
		return fmt.Errorf("replace %s: %w", r, err)
	}
	change := buffer.NewChange(res, text)

	primary := e.sels.Primary()
	e.sels.MapInPlace(func(sel Selection) Selection {
		if collapsePrimary && sel.Equals(primary) {
			return cursor.NewCursorSelection(res.NewRange.End)
		}
		return cursor.TransformSelection(sel, res.OldRange, res.NewRange)
	})

	e.tracker.RecordChange(e.buf.RevisionID(), change)
	e.history.Push(history.NewEditCommand(change, before, e.sels.All()))
	return nil
}

// clampRangeLocked orders and clamps a pair of points.
func (e *Engine) clampRangeLocked(from, to Point) Range {
	return buffer.NewPointRange(e.buf.ClampPoint(from), e.buf.ClampPoint(to)).Normalize()
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the last edit or edit group and restores its selections.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Undo(e.buf, e.sels)
}

// Redo re-applies the last undone edit or edit group.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Redo(e.buf, e.sels)
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoDescription describes the next undo step, if any.
func (e *Engine) UndoDescription() (string, bool) {
	info, ok := e.history.PeekUndo()
	return info.Description, ok
}

// BeginGroup starts grouping edits into one undo step.
func (e *Engine) BeginGroup(name string) {
	e.history.BeginGroup(name)
}

// EndGroup closes the group opened by BeginGroup.
func (e *Engine) EndGroup() {
	e.history.EndGroup()
}

// Transaction runs fn with its edits grouped into one undo step.
// When fn fails, the edits it already made stay applied and undo together.
func (e *Engine) Transaction(name string, fn func() error) error {
	return e.history.Transaction(name, fn)
}

// ============================================================================
// Change Tracking
// ============================================================================

// ChangesSince returns the changes recorded after revision rev, oldest first.
// Undo and redo are not recorded.
func (e *Engine) ChangesSince(rev RevisionID) []Change {
	return e.tracker.ChangesSince(rev)
}

// LatestChanges returns up to n of the most recent changes.
func (e *Engine) LatestChanges(n int) []Change {
	return e.tracker.LatestChanges(n)
}

// CreateSnapshot stores the current buffer state under name.
func (e *Engine) CreateSnapshot(name string) {
	e.mu.RLock()
	snap := e.buf.Snapshot()
	e.mu.RUnlock()
	e.tracker.CreateSnapshot(name, snap)
}

// ChangedLinesSince returns the lines whose text differs from the named
// snapshot.
func (e *Engine) ChangedLinesSince(name string) ([]int, error) {
	e.mu.RLock()
	snap := e.buf.Snapshot()
	e.mu.RUnlock()
	return e.tracker.ChangedLinesSince(name, snap)
}
