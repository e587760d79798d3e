package tracking

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/markstyle/internal/engine/buffer"
)

func replace(t *testing.T, tr *Tracker, buf *buffer.Buffer, r buffer.PointRange, text string) {
	t.Helper()
	res, err := buf.Replace(r, text)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	tr.RecordChange(buf.RevisionID(), buffer.NewChange(res, text))
}

func lineRange(line, from, to int) buffer.PointRange {
	return buffer.NewPointRange(buffer.NewPoint(line, from), buffer.NewPoint(line, to))
}

func TestTrackerRecordChange(t *testing.T) {
	tr := NewTracker()
	buf := buffer.NewBufferFromString("hello world")

	start := buf.RevisionID()
	replace(t, tr, buf, lineRange(0, 0, 5), "**hello**")
	replace(t, tr, buf, lineRange(0, 10, 15), "*world*")

	if tr.ChangeCount() != 2 {
		t.Fatalf("ChangeCount() = %d, want 2", tr.ChangeCount())
	}

	changes := tr.ChangesSince(start)
	if len(changes) != 2 {
		t.Fatalf("ChangesSince() returned %d changes", len(changes))
	}
	if changes[0].NewText != "**hello**" || changes[1].NewText != "*world*" {
		t.Errorf("changes out of order: %+v", changes)
	}
	if changes[0].Type != buffer.ChangeReplace {
		t.Errorf("Type = %v, want replace", changes[0].Type)
	}
}

func TestTrackerRingBuffer(t *testing.T) {
	tr := NewTracker(WithMaxChanges(3))
	buf := buffer.NewBufferFromString("")

	for i := 0; i < 5; i++ {
		replace(t, tr, buf, lineRange(0, i, i), string(rune('a'+i)))
	}

	if tr.ChangeCount() != 3 {
		t.Fatalf("ChangeCount() = %d, want 3", tr.ChangeCount())
	}

	latest := tr.LatestChanges(10)
	var got []string
	for _, c := range latest {
		got = append(got, c.NewText)
	}
	if want := []string{"c", "d", "e"}; !reflect.DeepEqual(got, want) {
		t.Errorf("LatestChanges() = %v, want %v", got, want)
	}

	if two := tr.LatestChanges(2); len(two) != 2 || two[1].NewText != "e" {
		t.Errorf("LatestChanges(2) = %+v", two)
	}
	if none := tr.LatestChanges(0); none != nil {
		t.Errorf("LatestChanges(0) = %+v, want nil", none)
	}
}

func TestTrackerSnapshots(t *testing.T) {
	tr := NewTracker()
	buf := buffer.NewBufferFromString("one\ntwo\nthree")

	tr.CreateSnapshot("before", buf.Snapshot())
	replace(t, tr, buf, lineRange(1, 0, 3), "**two**")

	lines, err := tr.ChangedLinesSince("before", buf.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(lines, []int{1}) {
		t.Errorf("ChangedLinesSince() = %v, want [1]", lines)
	}

	changes, err := tr.ChangesSinceSnapshot("before")
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 {
		t.Errorf("ChangesSinceSnapshot() returned %d changes", len(changes))
	}

	snap, err := tr.GetSnapshotByName("before")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Text() != "one\ntwo\nthree" {
		t.Errorf("snapshot text = %q", snap.Text())
	}
}

func TestTrackerSnapshotNotFound(t *testing.T) {
	tr := NewTracker()
	if _, err := tr.ChangedLinesSince("missing", buffer.NewBuffer().Snapshot()); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestTrackerClear(t *testing.T) {
	tr := NewTracker()
	buf := buffer.NewBufferFromString("x")
	tr.CreateSnapshot("s", buf.Snapshot())
	replace(t, tr, buf, lineRange(0, 0, 0), "y")

	tr.Clear()
	if tr.ChangeCount() != 0 {
		t.Error("Clear should drop changes")
	}
	if _, err := tr.GetSnapshotByName("s"); err == nil {
		t.Error("Clear should drop snapshots")
	}
}

func TestSnapshotManagerReplaceByName(t *testing.T) {
	sm := NewSnapshotManager()
	a := buffer.NewBufferFromString("a")
	b := buffer.NewBufferFromString("b")

	first := sm.Create("cp", a.Snapshot())
	second := sm.Create("cp", b.Snapshot())

	if sm.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", sm.Count())
	}
	if _, ok := sm.Get(first); ok {
		t.Error("replaced snapshot should be gone")
	}
	snap, ok := sm.GetByName("cp")
	if !ok || snap.ID != second || snap.Text() != "b" {
		t.Errorf("GetByName() = %+v, %v", snap, ok)
	}

	sm.DeleteByName("cp")
	if sm.Count() != 0 || len(sm.List()) != 0 {
		t.Error("DeleteByName should remove the snapshot")
	}
}
