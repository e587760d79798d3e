package smartstyle

import "sort"

// Rule maps a style name to the markers placed around styled text.
type Rule struct {
	Name   string
	Prefix string
	Suffix string
}

// Built-in style names.
const (
	Bold          = "bold"
	Italics       = "italics"
	Highlight     = "highlight"
	InlineCode    = "inlineCode"
	Comment       = "comment"
	Strikethrough = "strikethrough"
	Underscore    = "underscore"
	InlineMath    = "inlineMath"
)

// DefaultRules returns the built-in style table.
func DefaultRules() []Rule {
	return []Rule{
		{Name: Bold, Prefix: "**", Suffix: "**"},
		{Name: Highlight, Prefix: "==", Suffix: "=="},
		{Name: Italics, Prefix: "*", Suffix: "*"},
		{Name: InlineCode, Prefix: "`", Suffix: "`"},
		{Name: Comment, Prefix: "%%", Suffix: "%%"},
		{Name: Strikethrough, Prefix: "~~", Suffix: "~~"},
		{Name: Underscore, Prefix: "<u>", Suffix: "</u>"},
		{Name: InlineMath, Prefix: "$", Suffix: "$"},
	}
}

// ruleTable is an immutable name index over a rule list.
type ruleTable struct {
	rules  []Rule
	byName map[string]Rule
}

func newRuleTable(rules []Rule) ruleTable {
	t := ruleTable{
		rules:  make([]Rule, len(rules)),
		byName: make(map[string]Rule, len(rules)),
	}
	copy(t.rules, rules)
	for _, r := range rules {
		t.byName[r.Name] = r
	}
	return t
}

func (t ruleTable) lookup(name string) (Rule, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// markers returns every distinct prefix and suffix, longest first so that
// regex alternations prefer `**` over `*`.
func (t ruleTable) markers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.rules {
		for _, m := range []string{r.Prefix, r.Suffix} {
			if m != "" && !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sortLongestFirst(out)
	return out
}

func sortLongestFirst(s []string) {
	sort.SliceStable(s, func(i, j int) bool {
		if len(s[i]) != len(s[j]) {
			return len(s[i]) > len(s[j])
		}
		return s[i] < s[j]
	})
}
