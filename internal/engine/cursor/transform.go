package cursor

// ShiftPoint moves p by delta columns when it sits on line at or after
// column from. Points on other lines, or before from, are returned as is.
// The column never goes below zero.
func ShiftPoint(p Point, line, from, delta int) Point {
	if p.Line != line || p.Column < from {
		return p
	}
	col := p.Column + delta
	if col < 0 {
		col = 0
	}
	return p.WithColumn(col)
}

// ShiftRange applies ShiftPoint to both ends of r.
func ShiftRange(r Range, line, from, delta int) Range {
	return Range{
		Start: ShiftPoint(r.Start, line, from, delta),
		End:   ShiftPoint(r.End, line, from, delta),
	}
}

// TransformPoint maps p across an edit that replaced oldRange with text now
// occupying newRange. Points before the edit are unchanged, points inside
// the replaced text move to the end of the new text. Points at or after the
// old end move with the text that followed, so a cursor at an insertion
// point ends up after the inserted text.
func TransformPoint(p Point, oldRange, newRange Range) Point {
	if p.Before(oldRange.Start) {
		return p
	}
	if p.Before(oldRange.End) {
		return newRange.End
	}
	if p.Line == oldRange.End.Line {
		return Point{Line: newRange.End.Line, Column: newRange.End.Column + p.Column - oldRange.End.Column}
	}
	return Point{Line: p.Line + newRange.End.Line - oldRange.End.Line, Column: p.Column}
}

// TransformSelection maps both ends of sel across an edit.
func TransformSelection(sel Selection, oldRange, newRange Range) Selection {
	return Selection{
		Anchor: TransformPoint(sel.Anchor, oldRange, newRange),
		Head:   TransformPoint(sel.Head, oldRange, newRange),
	}
}
