package smartstyle

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dshills/markstyle/internal/engine/buffer"
)

// span is an expanded range plus the UTF-16 lengths the trim tables took
// off each end. It is computed per selection and never stored.
type span struct {
	Range
	trimmedBefore int
	trimmedAfter  int
}

// expansion is the candidate range for one selection.
type expansion struct {
	// orig is the user's selection with surrounding whitespace and
	// structural lead-ins removed; a cursor for a bare selection.
	orig Range
	bare bool
	span span
}

func (t *Transformer) lineLen(n int) int {
	return buffer.UTF16Len(t.ed.Line(n))
}

// expand computes the candidate range for r. With trim set the trim tables
// are applied to the result.
func (t *Transformer) expand(r Range, trim bool) expansion {
	var ex expansion
	if r.IsEmpty() {
		ex = t.expandBare(r.Start)
	} else {
		ex = t.expandSelection(r)
	}
	if trim {
		ex.span = t.trim(ex.span)
	}
	return ex
}

// expandBare grows a cursor over the word run around it. It never leaves
// the cursor's line.
func (t *Transformer) expandBare(p Point) expansion {
	return expansion{
		orig: Range{Start: p, End: p},
		bare: true,
		span: span{Range: Range{
			Start: t.growBefore(p, t.tab.wordBefore),
			End:   t.growAfter(p, t.tab.wordAfter),
		}},
	}
}

// expandSelection grows a non-empty selection: over adjoining markers,
// then inward past whitespace and lead-ins, then outward over word runs.
func (t *Transformer) expandSelection(r Range) expansion {
	from := t.growBefore(r.Start, t.tab.markerBefore)
	to := t.growAfter(r.End, t.tab.markerAfter)

	grown := t.shrink(Range{Start: from, End: to}, true)
	grown.Start = t.growBefore(grown.Start, t.tab.wordBefore)
	grown.End = t.growAfter(grown.End, t.tab.wordAfter)

	return expansion{
		orig: t.shrink(r, true),
		span: span{Range: t.shrink(grown, false)},
	}
}

// growBefore moves p left over the run matched by re, which must be
// anchored at the end of its input.
func (t *Transformer) growBefore(p Point, re *regexp.Regexp) Point {
	line := t.ed.Line(p.Line)
	m := re.FindString(buffer.SliceUTF16(line, 0, p.Column))
	return p.WithColumn(p.Column - buffer.UTF16Len(m))
}

// growAfter moves p right over the run matched by re, which must be
// anchored at the start of its input.
func (t *Transformer) growAfter(p Point, re *regexp.Regexp) Point {
	line := t.ed.Line(p.Line)
	m := re.FindString(line[buffer.ByteIndex(line, p.Column):])
	return p.WithColumn(p.Column + buffer.UTF16Len(m))
}

// shrink moves the ends of r inward past leading and trailing whitespace.
// With tables set, the trim tables are run over the text first and their
// matches are dropped too. The result may cross line boundaries and
// collapses to an empty range at its start when nothing is left.
func (t *Transformer) shrink(r Range, tables bool) Range {
	text := t.ed.Range(r.Start, r.End)
	start, end := 0, len(text)

	if tables {
		for _, re := range t.tab.trimBefore {
			if loc := re.FindStringIndex(text[start:end]); loc != nil {
				start += loc[1]
			}
		}
		for _, re := range t.tab.trimAfter {
			if loc := re.FindStringIndex(text[start:end]); loc != nil {
				end = start + loc[0]
			}
		}
	}

	seg := text[start:end]
	start += len(seg) - len(strings.TrimLeftFunc(seg, unicode.IsSpace))
	end = start + len(strings.TrimRightFunc(text[start:end], unicode.IsSpace))

	from := buffer.AdvancePoint(r.Start, text[:start])
	if start >= end {
		return Range{Start: from, End: from}
	}
	to := buffer.RetreatPoint(r.End, text[end:], t.lineLen)
	return Range{Start: from, End: to}
}

// trim applies each trim-table pattern once, in order: trimBefore against
// the text following Start on its line, trimAfter against the text
// preceding End on its line. The result is never larger than sp.
func (t *Transformer) trim(sp span) span {
	from, to := sp.Start, sp.End
	sameLine := from.Line == to.Line

	startLine := t.ed.Line(from.Line)
	limit := buffer.UTF16Len(startLine)
	if sameLine {
		limit = to.Column
	}
	seg := buffer.SliceUTF16(startLine, from.Column, limit)
	for _, re := range t.tab.trimBefore {
		if m := re.FindString(seg); m != "" {
			n := buffer.UTF16Len(m)
			from.Column += n
			sp.trimmedBefore += n
			seg = seg[len(m):]
		}
	}

	endLine := t.ed.Line(to.Line)
	low := 0
	if sameLine {
		low = from.Column
	}
	seg = buffer.SliceUTF16(endLine, low, to.Column)
	for _, re := range t.tab.trimAfter {
		if m := re.FindString(seg); m != "" {
			n := buffer.UTF16Len(m)
			to.Column -= n
			sp.trimmedAfter += n
			seg = seg[:len(seg)-len(m)]
		}
	}

	sp.Start, sp.End = from, to
	return sp
}

// insideStyle reports whether the text of r is wrapped in rule's markers.
func (t *Transformer) insideStyle(r Range, rule Rule) bool {
	text := t.ed.Range(r.Start, r.End)
	return len(text) >= len(rule.Prefix)+len(rule.Suffix) &&
		strings.HasPrefix(text, rule.Prefix) &&
		strings.HasSuffix(text, rule.Suffix)
}
