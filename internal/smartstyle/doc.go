// Package smartstyle toggles inline markup styles around a cursor or
// selection.
//
// Given a style rule such as bold (`**` ... `**`), the Transformer decides
// the span that should be wrapped or unwrapped, mutates the buffer through
// an Editor, and puts the selection back over the text the user meant.
//
// # Pipeline
//
// Each selection in the editor goes through the same stages:
//
//  1. Normalize the (anchor, head) pair into an ordered range.
//  2. Expand it. A bare cursor grows over the word-class run around it on
//     its own line. A selection first grows over adjoining marker glyphs,
//     sheds surrounding whitespace and structural lead-ins (headings,
//     bullets, quotes), then grows over adjoining word characters.
//  3. Trim structural prefixes and suffixes (trim tables) off the expanded
//     span, remembering how much was trimmed on each side.
//  4. Wrap or unwrap the span and restore the selection with offsets that
//     account for the inserted or removed markers and the trimmed text.
//
// With toggle enabled a selection that is already wrapped is unwrapped
// instead. Multiple selections are processed in document order; each edit
// shifts the selections after it that share a line.
//
// # Configuration
//
// Config holds the style table, the word class and the trim tables. It is
// compiled once by New. Every rule's markers count as word and marker
// glyphs, so registering a rule is enough to make expansion aware of it.
//
// Columns are UTF-16 code units, matching the editor contract.
package smartstyle
