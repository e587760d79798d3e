package smartstyle

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
)

// mode selects between wrapping and unwrapping.
type mode int

const (
	apply mode = iota
	remove
)

func (m mode) String() string {
	if m == remove {
		return "remove"
	}
	return "apply"
}

func (m mode) sign() int {
	if m == remove {
		return -1
	}
	return 1
}

// offsets returns the column deltas for the start and end of the user's
// selection. origText is the text of the pretrimmed selection, empty for
// a bare cursor.
func offsets(origText string, multi bool, rule Rule, m mode, sp span) (pre, post int) {
	prefix := buffer.UTF16Len(rule.Prefix)
	suffix := buffer.UTF16Len(rule.Suffix)

	atStart := strings.HasPrefix(origText, rule.Prefix)
	atEnd := strings.HasSuffix(origText, rule.Suffix)
	if atStart && atEnd && len(origText) < len(rule.Prefix)+len(rule.Suffix) {
		// one glyph run doing double duty, e.g. "*" for italics
		atEnd = false
	}

	collapse := -(prefix + suffix)
	if multi {
		collapse = -suffix
	}

	switch {
	case atStart && atEnd:
		pre, post = 0, collapse
	case atStart:
		pre, post = 0, -prefix
		if multi {
			post = 0
		}
	case atEnd:
		pre, post = m.sign()*prefix, collapse
	default:
		pre, post = m.sign()*prefix, m.sign()*prefix
	}

	pre -= sp.trimmedBefore
	post += sp.trimmedAfter
	return pre, post
}

// offsetPoint moves p by delta columns, clamped to its line.
func (t *Transformer) offsetPoint(p Point, delta int) Point {
	col := p.Column + delta
	if col < 0 {
		col = 0
	}
	if n := t.lineLen(p.Line); col > n {
		col = n
	}
	return p.WithColumn(col)
}

// rewrite wraps or unwraps text. Multi-line text is handled line by line
// so each line keeps its own lead-in (bullet, heading, indentation).
func (t *Transformer) rewrite(text string, rule Rule, m mode) string {
	if !strings.Contains(text, "\n") {
		return rewriteCore(text, rule, m)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lead, core, trail := t.splitLine(line)
		if core == "" {
			continue
		}
		lines[i] = lead + rewriteCore(core, rule, m) + trail
	}
	return strings.Join(lines, "\n")
}

func rewriteCore(s string, rule Rule, m mode) string {
	if m == apply {
		return rule.Prefix + s + rule.Suffix
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, rule.Prefix), rule.Suffix)
}

// splitLine separates a line into its structural lead-in, the part to
// style, and its trailer.
func (t *Transformer) splitLine(line string) (lead, core, trail string) {
	start, end := 0, len(line)

	start = skipSpace(line, start, end)
	for _, re := range t.tab.trimBefore {
		if loc := re.FindStringIndex(line[start:end]); loc != nil {
			start += loc[1]
		}
	}
	start = skipSpace(line, start, end)

	end = start + len(strings.TrimRightFunc(line[start:end], unicode.IsSpace))
	for _, re := range t.tab.trimAfter {
		if loc := re.FindStringIndex(line[start:end]); loc != nil {
			end = start + loc[0]
		}
	}
	end = start + len(strings.TrimRightFunc(line[start:end], unicode.IsSpace))

	return line[:start], line[start:end], line[end:]
}

func skipSpace(s string, start, end int) int {
	return end - len(strings.TrimLeftFunc(s[start:end], unicode.IsSpace))
}

// modify wraps or unwraps the expanded span and restores the selection or
// cursor. It returns the restored selection and the range the rewritten
// text now occupies.
func (t *Transformer) modify(ex expansion, rule Rule, m mode) (Selection, Range, error) {
	var origText string
	if !ex.bare {
		origText = t.ed.Range(ex.orig.Start, ex.orig.End)
	}
	pre, post := offsets(origText, !ex.orig.IsSingleLine(), rule, m, ex.span)
	sp := ex.span.Range

	t.log.Debug("smartstyle: %s %s on %s (orig %s, pre %d, post %d)", m, rule.Name, sp, ex.orig, pre, post)

	if ex.bare {
		text := t.rewrite(t.ed.Range(sp.Start, sp.End), rule, m)
		if err := t.ed.ReplaceRange(text, sp.Start, sp.End); err != nil {
			return Selection{}, Range{}, fmt.Errorf("%s %s at %s: %w", m, rule.Name, sp, err)
		}
		c := t.offsetPoint(ex.orig.Start, pre)
		t.ed.SetCursor(c)
		return cursor.NewCursorSelection(c), Range{Start: sp.Start, End: buffer.AdvancePoint(sp.Start, text)}, nil
	}

	t.ed.SetSelection(sp.Start, sp.End)
	text := t.rewrite(t.ed.Selection(), rule, m)
	if err := t.ed.ReplaceSelection(text); err != nil {
		return Selection{}, Range{}, fmt.Errorf("%s %s at %s: %w", m, rule.Name, sp, err)
	}

	from := t.offsetPoint(ex.orig.Start, pre)
	to := t.offsetPoint(ex.orig.End, post)
	if to.Before(from) {
		to = from
	}
	t.ed.SetSelection(from, to)
	return cursor.NewSelection(from, to), Range{Start: sp.Start, End: buffer.AdvancePoint(sp.Start, text)}, nil
}
