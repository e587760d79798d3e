package tracking

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/markstyle/internal/engine/buffer"
)

// Errors returned by snapshot operations.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// SnapshotID uniquely identifies a named snapshot.
type SnapshotID uint64

// snapshotIDCounter generates unique snapshot IDs.
var snapshotIDCounter uint64

// NewSnapshotID generates a new unique snapshot ID.
func NewSnapshotID() SnapshotID {
	return SnapshotID(atomic.AddUint64(&snapshotIDCounter, 1))
}

// Snapshot represents a named checkpoint of buffer state.
// Snapshots are immutable and can be safely shared across goroutines.
type Snapshot struct {
	ID        SnapshotID
	Name      string
	Timestamp time.Time

	// Revision is the buffer revision at the time of snapshot.
	Revision RevisionID

	buf *buffer.Snapshot
}

// NewSnapshot creates a new snapshot with the given parameters.
func NewSnapshot(name string, snap *buffer.Snapshot) *Snapshot {
	return &Snapshot{
		ID:        NewSnapshotID(),
		Name:      name,
		Timestamp: time.Now(),
		Revision:  snap.RevisionID(),
		buf:       snap,
	}
}

// Buffer returns the captured buffer state.
func (s *Snapshot) Buffer() *buffer.Snapshot {
	return s.buf
}

// Text returns the full text of the snapshot.
func (s *Snapshot) Text() string {
	return s.buf.Text()
}

// SnapshotManager manages named snapshots.
// All operations are thread-safe.
type SnapshotManager struct {
	mu        sync.RWMutex
	snapshots map[SnapshotID]*Snapshot
	byName    map[string]*Snapshot
}

// NewSnapshotManager creates a new snapshot manager.
func NewSnapshotManager() *SnapshotManager {
	return &SnapshotManager{
		snapshots: make(map[SnapshotID]*Snapshot),
		byName:    make(map[string]*Snapshot),
	}
}

// Create creates a new named snapshot.
// If a snapshot with the same name exists, it is replaced.
func (sm *SnapshotManager) Create(name string, snap *buffer.Snapshot) SnapshotID {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if existing, ok := sm.byName[name]; ok {
		delete(sm.snapshots, existing.ID)
	}

	s := NewSnapshot(name, snap)
	sm.snapshots[s.ID] = s
	if name != "" {
		sm.byName[name] = s
	}

	return s.ID
}

// Get retrieves a snapshot by ID.
func (sm *SnapshotManager) Get(id SnapshotID) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.snapshots[id]
	return snap, ok
}

// GetByName retrieves a snapshot by name.
func (sm *SnapshotManager) GetByName(name string) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.byName[name]
	return snap, ok
}

// DeleteByName removes a snapshot by name.
func (sm *SnapshotManager) DeleteByName(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if snap, ok := sm.byName[name]; ok {
		delete(sm.snapshots, snap.ID)
		delete(sm.byName, name)
	}
}

// List returns all snapshots, oldest first.
func (sm *SnapshotManager) List() []*Snapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	snapshots := make([]*Snapshot, 0, len(sm.snapshots))
	for _, snap := range sm.snapshots {
		snapshots = append(snapshots, snap)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID < snapshots[j].ID
	})
	return snapshots
}

// Count returns the number of snapshots.
func (sm *SnapshotManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.snapshots)
}

// Clear removes all snapshots.
func (sm *SnapshotManager) Clear() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.snapshots = make(map[SnapshotID]*Snapshot)
	sm.byName = make(map[string]*Snapshot)
}
