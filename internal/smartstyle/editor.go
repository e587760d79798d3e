package smartstyle

import (
	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
)

// Point is a line/column position with UTF-16 columns.
type Point = buffer.Point

// Range is an ordered span between two points.
type Range = buffer.PointRange

// Selection is an anchor/head pair as reported by the editor.
type Selection = cursor.Selection

// Editor is the line-oriented buffer the Transformer edits.
//
// Range joins partial first and last lines and full interior lines with
// "\n". SetSelection replaces every selection with one; SetSelections
// replaces the whole set. ReplaceSelection replaces the text of the primary
// selection.
type Editor interface {
	LineCount() int
	Line(n int) string
	Range(from, to Point) string

	ListSelections() []Selection
	SetSelection(anchor, head Point)
	SetSelections(sels []Selection)
	SetCursor(p Point)
	Selection() string

	ReplaceSelection(text string) error
	ReplaceRange(text string, from, to Point) error
}

// Logger receives debug traces of each transformation.
type Logger interface {
	Debug(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the logger used for debug traces.
func WithLogger(l Logger) Option {
	return func(t *Transformer) {
		if l != nil {
			t.log = l
		}
	}
}

// WithEditor binds the editor at construction time.
func WithEditor(ed Editor) Option {
	return func(t *Transformer) {
		t.ed = ed
	}
}
