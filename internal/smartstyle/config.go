package smartstyle

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultWordClass is the regex character-class body for word characters:
// any Unicode letter or number.
const DefaultWordClass = `\p{L}\p{N}`

// Config is the explicit configuration of a Transformer. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	// Rules is the style table.
	Rules []Rule

	// WordClass is the body of a regex character class matching single
	// word characters.
	WordClass string

	// WordGlyphs are extra literal strings treated as word characters in
	// addition to every rule marker.
	WordGlyphs []string

	// TrimBefore and TrimAfter are ordered regex sources for structural
	// lead-ins and trailers. Order matters: a longer form must come before
	// any shorter form it starts with.
	TrimBefore []string
	TrimAfter  []string
}

// DefaultTrimBefore lists the lead-ins never wrapped by a style.
func DefaultTrimBefore() []string {
	return []string{
		`> \[!\w+\] `, // callout
		`###### `,
		`##### `,
		`#### `,
		`### `,
		`## `,
		`# `,
		`- \[ \] `,
		`- \[x\] `,
		`- \[\S\] `, // custom checkbox
		`- `,
		`"`,
		`\[`,
		`>`,
	}
}

// DefaultTrimAfter lists the trailers never wrapped by a style.
func DefaultTrimAfter() []string {
	return []string{
		`"`,
		`\]\(`, // link target opener
		`::`,   // inline field separator
		`\]`,
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Rules:      DefaultRules(),
		WordClass:  DefaultWordClass,
		WordGlyphs: []string{"(", ")"},
		TrimBefore: DefaultTrimBefore(),
		TrimAfter:  DefaultTrimAfter(),
	}
}

// Validate reports the first problem that would make the config unusable.
func (c Config) Validate() error {
	_, err := c.compile()
	return err
}

// tables is the compiled, read-only form of a Config.
type tables struct {
	rules ruleTable

	wordBefore   *regexp.Regexp // word run ending at end of text
	wordAfter    *regexp.Regexp // word run starting at start of text
	markerBefore *regexp.Regexp
	markerAfter  *regexp.Regexp

	trimBefore []*regexp.Regexp // each anchored at start
	trimAfter  []*regexp.Regexp // each anchored at end
}

func (c Config) compile() (*tables, error) {
	if len(c.Rules) == 0 {
		return nil, fmt.Errorf("%w: no style rules", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		switch {
		case r.Name == "":
			return nil, fmt.Errorf("%w: rule %d has no name", ErrInvalidConfig, i)
		case r.Prefix == "" || r.Suffix == "":
			return nil, fmt.Errorf("%w: rule %q needs a prefix and a suffix", ErrInvalidConfig, r.Name)
		case seen[r.Name]:
			return nil, fmt.Errorf("%w: duplicate rule %q", ErrInvalidConfig, r.Name)
		}
		seen[r.Name] = true
	}

	t := &tables{rules: newRuleTable(c.Rules)}

	markers := t.rules.markers()
	glyphs := append(append([]string(nil), markers...), c.WordGlyphs...)
	sortLongestFirst(glyphs)

	markerAlt := alternation(markers, "")
	wordAlt := alternation(glyphs, c.WordClass)

	var err error
	if t.wordBefore, err = compileClass(`(?:`+wordAlt+`)*$`, "word class"); err != nil {
		return nil, err
	}
	if t.wordAfter, err = compileClass(`^(?:`+wordAlt+`)*`, "word class"); err != nil {
		return nil, err
	}
	if t.markerBefore, err = compileClass(`(?:`+markerAlt+`)*$`, "marker class"); err != nil {
		return nil, err
	}
	if t.markerAfter, err = compileClass(`^(?:`+markerAlt+`)*`, "marker class"); err != nil {
		return nil, err
	}

	for _, p := range c.TrimBefore {
		re, err := compileClass(`^(?:`+p+`)`, "trim-before pattern "+p)
		if err != nil {
			return nil, err
		}
		t.trimBefore = append(t.trimBefore, re)
	}
	for _, p := range c.TrimAfter {
		re, err := compileClass(`(?:`+p+`)$`, "trim-after pattern "+p)
		if err != nil {
			return nil, err
		}
		t.trimAfter = append(t.trimAfter, re)
	}

	return t, nil
}

// alternation joins quoted literals and an optional character class.
func alternation(literals []string, class string) string {
	parts := make([]string, 0, len(literals)+1)
	for _, l := range literals {
		if l != "" {
			parts = append(parts, regexp.QuoteMeta(l))
		}
	}
	if class != "" {
		parts = append(parts, "["+class+"]")
	}
	return strings.Join(parts, "|")
}

func compileClass(expr, what string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, what, err)
	}
	return re, nil
}
