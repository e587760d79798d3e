package engine

import (
	"errors"

	"github.com/dshills/markstyle/internal/engine/history"
	"github.com/dshills/markstyle/internal/engine/tracking"
)

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrSnapshotNotFound indicates a snapshot was not found.
	ErrSnapshotNotFound = tracking.ErrSnapshotNotFound
)
