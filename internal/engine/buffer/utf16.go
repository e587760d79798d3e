package buffer

import (
	"strings"
	"unicode/utf8"
)

// UTF16Len counts UTF-16 code units in a string.
func UTF16Len(s string) int {
	var n int
	for _, r := range s {
		if r >= 0x10000 {
			n += 2 // Surrogate pair (characters outside BMP)
		} else {
			n++
		}
	}
	return n
}

// ByteIndex converts a UTF-16 column to a byte offset within line.
// Columns past the end of the line map to len(line); a column that falls
// inside a surrogate pair maps to the start of that character.
func ByteIndex(line string, utf16Col int) int {
	if utf16Col <= 0 {
		return 0
	}

	var col int
	for i, r := range line {
		width := 1
		if r >= 0x10000 {
			width = 2
		}
		if col+width > utf16Col {
			return i
		}
		col += width
		if col == utf16Col {
			return i + utf8.RuneLen(r)
		}
	}

	return len(line)
}

// SliceUTF16 returns line[from:to] with from and to measured in UTF-16 code
// units. Out-of-range columns are clamped.
func SliceUTF16(line string, from, to int) string {
	start := ByteIndex(line, from)
	end := ByteIndex(line, to)
	if end < start {
		return ""
	}
	return line[start:end]
}

// AdvancePoint returns the position reached by walking forward over text
// starting at p.
func AdvancePoint(p Point, text string) Point {
	idx := strings.LastIndexByte(text, '\n')
	if idx < 0 {
		return Point{Line: p.Line, Column: p.Column + UTF16Len(text)}
	}
	return Point{
		Line:   p.Line + strings.Count(text, "\n"),
		Column: UTF16Len(text[idx+1:]),
	}
}

// RetreatPoint returns the position reached by walking backward over text
// ending at p. lineLen reports the UTF-16 length of a line and is consulted
// only when text spans a line break.
func RetreatPoint(p Point, text string, lineLen func(line int) int) Point {
	idx := strings.IndexByte(text, '\n')
	if idx < 0 {
		return Point{Line: p.Line, Column: p.Column - UTF16Len(text)}
	}
	line := p.Line - strings.Count(text, "\n")
	return Point{
		Line:   line,
		Column: lineLen(line) - UTF16Len(text[:idx]),
	}
}
