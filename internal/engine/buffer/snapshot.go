package buffer

import "strings"

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	lines      []string
	revisionID RevisionID
	lineEnding LineEnding
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, s.lineEnding.Sequence())
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// LineText returns the text of a specific line (without terminator).
func (s *Snapshot) LineText(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	return s.lines[line]
}

// TextRange returns the text covered by r.
func (s *Snapshot) TextRange(r PointRange) (string, error) {
	if err := validateRange(s.lines, r); err != nil {
		return "", err
	}
	return textRange(s.lines, r), nil
}

// RevisionID returns the revision ID at snapshot time.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// ChangedLines returns the indexes of lines whose text differs between s and
// other. Both snapshots must have the same line count; otherwise every line
// of the longer snapshot is reported.
func (s *Snapshot) ChangedLines(other *Snapshot) []int {
	n := len(s.lines)
	if len(other.lines) > n {
		n = len(other.lines)
	}
	var changed []int
	for i := 0; i < n; i++ {
		if len(s.lines) != len(other.lines) || s.lines[i] != other.lines[i] {
			changed = append(changed, i)
		}
	}
	return changed
}
