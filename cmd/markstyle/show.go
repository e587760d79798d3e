package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
)

// showSelections prints every line a selection touches, underlined with
// carets in display columns. A cursor gets a single caret.
func showSelections(w io.Writer, text string, sels []cursor.Selection) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, sel := range sels {
		r := sel.Range()
		for _, n := range r.Lines() {
			if n >= len(lines) {
				break
			}
			line := lines[n]
			from, to := 0, buffer.UTF16Len(line)
			if n == r.Start.Line {
				from = r.Start.Column
			}
			if n == r.End.Line {
				to = r.End.Column
			}
			fmt.Fprintf(w, "%4d | %s\n", n, line)
			fmt.Fprintf(w, "     | %s\n", underline(line, from, to))
		}
	}
}

// underline returns padding and carets covering UTF-16 columns [from, to)
// of line, measured in terminal cells.
func underline(line string, from, to int) string {
	lead := uniseg.StringWidth(line[:buffer.ByteIndex(line, from)])
	width := uniseg.StringWidth(buffer.SliceUTF16(line, from, to))
	if width == 0 {
		width = 1
	}
	return strings.Repeat(" ", lead) + strings.Repeat("^", width)
}
