// Package tracking records the changes applied to a buffer.
//
// The Tracker keeps a bounded, chronological log of changes tagged with the
// buffer revision that produced them, plus named snapshots of whole buffer
// states. Callers use it to report what an operation did:
//
//	tracker := tracking.NewTracker(tracking.WithMaxChanges(500))
//	tracker.CreateSnapshot("before", buf.Snapshot())
//	// ... edits, each followed by tracker.RecordChange(rev, change) ...
//	lines, _ := tracker.ChangedLinesSince("before", buf.Snapshot())
//
// All operations are thread-safe.
package tracking
