package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrRangeInvalid   = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds text as a slice of lines without their terminators.
// Lines are replaced, never mutated in place, so snapshots may share them.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	revisionID RevisionID
	lineEnding LineEnding
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lines = splitLines(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read all content first: CRLF sequences may be split across reads.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// splitLines breaks text on any of \r\n, \r or \n.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// Read Operations

// Text returns the full buffer content joined with the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a specific line (without terminator).
// Returns "" for lines outside the buffer.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// LineLen returns the length of a line in UTF-16 code units.
func (b *Buffer) LineLen(line int) int {
	return UTF16Len(b.LineText(line))
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// ClampPoint moves p into the buffer: the line into [0, LineCount) and the
// column into [0, LineLen(line)].
func (b *Buffer) ClampPoint(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clampPoint(b.lines, p)
}

// TextRange returns the text covered by r. Partial first and last lines and
// full interior lines are joined with "\n" regardless of the buffer's line
// ending.
func (b *Buffer) TextRange(r PointRange) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := validateRange(b.lines, r); err != nil {
		return "", err
	}
	return textRange(b.lines, r), nil
}

// Write Operations

// Replace replaces the text in r with text. Line breaks in text may be any of
// \r\n, \r or \n; they split lines the same way loading does.
func (b *Buffer) Replace(r PointRange, text string) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := validateRange(b.lines, r); err != nil {
		return EditResult{}, err
	}

	oldText := textRange(b.lines, r)
	first := b.lines[r.Start.Line]
	last := b.lines[r.End.Line]
	head := first[:ByteIndex(first, r.Start.Column)]
	tail := last[ByteIndex(last, r.End.Column):]

	repl := splitLines(text)
	repl[0] = head + repl[0]
	end := Point{
		Line:   r.Start.Line + len(repl) - 1,
		Column: UTF16Len(repl[len(repl)-1]),
	}
	repl[len(repl)-1] += tail

	lines := make([]string, 0, len(b.lines)-(r.End.Line-r.Start.Line+1)+len(repl))
	lines = append(lines, b.lines[:r.Start.Line]...)
	lines = append(lines, repl...)
	lines = append(lines, b.lines[r.End.Line+1:]...)

	b.lines = lines
	b.revisionID = NewRevisionID()

	return EditResult{
		OldRange: r,
		NewRange: PointRange{Start: r.Start, End: end},
		OldText:  oldText,
	}, nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	return b.Replace(edit.Range, edit.NewText)
}

// Insert inserts text at the given point.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(at Point, text string) (Point, error) {
	res, err := b.Replace(PointRange{Start: at, End: at}, text)
	if err != nil {
		return Point{}, err
	}
	return res.NewRange.End, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding sets the line ending used by Text.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		lines:      b.lines, // never mutated in place, safe to share
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
	}
}

// Helpers shared with Snapshot

func clampPoint(lines []string, p Point) Point {
	if p.Line < 0 {
		return Point{}
	}
	if p.Line >= len(lines) {
		last := len(lines) - 1
		return Point{Line: last, Column: UTF16Len(lines[last])}
	}
	if p.Column < 0 {
		return Point{Line: p.Line}
	}
	if n := UTF16Len(lines[p.Line]); p.Column > n {
		return Point{Line: p.Line, Column: n}
	}
	return p
}

func validateRange(lines []string, r PointRange) error {
	if !r.IsValid() {
		return ErrRangeInvalid
	}
	for _, p := range []Point{r.Start, r.End} {
		if p.Line < 0 || p.Line >= len(lines) {
			return ErrLineOutOfRange
		}
		if p.Column < 0 || p.Column > UTF16Len(lines[p.Line]) {
			return ErrRangeInvalid
		}
	}
	return nil
}

func textRange(lines []string, r PointRange) string {
	if r.IsSingleLine() {
		return SliceUTF16(lines[r.Start.Line], r.Start.Column, r.End.Column)
	}

	var sb strings.Builder
	first := lines[r.Start.Line]
	sb.WriteString(first[ByteIndex(first, r.Start.Column):])
	for line := r.Start.Line + 1; line < r.End.Line; line++ {
		sb.WriteByte('\n')
		sb.WriteString(lines[line])
	}
	last := lines[r.End.Line]
	sb.WriteByte('\n')
	sb.WriteString(last[:ByteIndex(last, r.End.Column)])
	return sb.String()
}
