package tracking

import (
	"sync"

	"github.com/dshills/markstyle/internal/engine/buffer"
)

// DefaultMaxChanges is the default maximum number of changes to track.
const DefaultMaxChanges = 10000

// RevisionID is an alias for buffer.RevisionID.
type RevisionID = buffer.RevisionID

// Change is an alias for buffer.Change.
type Change = buffer.Change

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithMaxChanges sets the maximum number of changes to track.
// It must only be used during Tracker creation via NewTracker.
func WithMaxChanges(maxChanges int) TrackerOption {
	return func(t *Tracker) {
		if maxChanges > 0 {
			t.maxChanges = maxChanges
		}
	}
}

// trackedChange pairs a change with the revision it produced.
type trackedChange struct {
	revision RevisionID
	change   Change
}

// Tracker records applied changes.
// It maintains a bounded history of changes and supports named snapshots.
type Tracker struct {
	mu sync.RWMutex

	// Recent changes in a ring buffer
	changes    []trackedChange
	head       int // Index of oldest entry
	count      int // Number of entries
	maxChanges int

	snapshots *SnapshotManager
}

// NewTracker creates a new change tracker with default settings.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		maxChanges: DefaultMaxChanges,
		snapshots:  NewSnapshotManager(),
	}

	for _, opt := range opts {
		opt(t)
	}
	t.changes = make([]trackedChange, t.maxChanges)

	return t
}

// RecordChange records a single change produced by revision rev.
func (t *Tracker) RecordChange(rev RevisionID, change Change) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := (t.head + t.count) % t.maxChanges
	if t.count < t.maxChanges {
		t.count++
	} else {
		// Ring buffer is full, advance head
		t.head = (t.head + 1) % t.maxChanges
	}

	t.changes[idx] = trackedChange{
		revision: rev,
		change:   change,
	}
}

// ChangesSince returns the changes recorded after revision rev, oldest first.
// Revision IDs increase monotonically, so rev need not still be in the log.
func (t *Tracker) ChangesSince(rev RevisionID) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []Change
	for i := 0; i < t.count; i++ {
		tc := t.changes[(t.head+i)%t.maxChanges]
		if tc.revision > rev {
			result = append(result, tc.change)
		}
	}
	return result
}

// LatestChanges returns up to n of the most recent changes, oldest first.
func (t *Tracker) LatestChanges(n int) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > t.count {
		n = t.count
	}
	if n <= 0 {
		return nil
	}

	result := make([]Change, n)
	start := t.count - n
	for i := 0; i < n; i++ {
		result[i] = t.changes[(t.head+start+i)%t.maxChanges].change
	}
	return result
}

// ChangeCount returns the number of tracked changes.
func (t *Tracker) ChangeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// CreateSnapshot stores snap under name, replacing any earlier snapshot
// with the same name.
func (t *Tracker) CreateSnapshot(name string, snap *buffer.Snapshot) SnapshotID {
	return t.snapshots.Create(name, snap)
}

// GetSnapshotByName retrieves a named snapshot.
func (t *Tracker) GetSnapshotByName(name string) (*Snapshot, error) {
	snap, ok := t.snapshots.GetByName(name)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap, nil
}

// ChangesSinceSnapshot returns the changes recorded after the named snapshot.
func (t *Tracker) ChangesSinceSnapshot(name string) ([]Change, error) {
	snap, err := t.GetSnapshotByName(name)
	if err != nil {
		return nil, err
	}
	return t.ChangesSince(snap.Revision), nil
}

// ChangedLinesSince compares the named snapshot with current and returns
// the indices of lines whose text differs.
func (t *Tracker) ChangedLinesSince(name string, current *buffer.Snapshot) ([]int, error) {
	snap, err := t.GetSnapshotByName(name)
	if err != nil {
		return nil, err
	}
	return snap.Buffer().ChangedLines(current), nil
}

// Clear removes all tracked changes and snapshots.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.head = 0
	t.count = 0
	t.snapshots.Clear()
}
