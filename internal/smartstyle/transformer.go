package smartstyle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/markstyle/internal/engine/cursor"
)

// Transformer toggles styles in an Editor. It holds only read-only tables
// and the bound editor; all per-call state lives on the stack, so separate
// Transformers never share state. A Transformer must not be used from more
// than one goroutine at a time.
type Transformer struct {
	tab *tables
	ed  Editor
	log Logger
}

// New compiles cfg and returns a Transformer.
func New(cfg Config, opts ...Option) (*Transformer, error) {
	tab, err := cfg.compile()
	if err != nil {
		return nil, err
	}

	t := &Transformer{
		tab: tab,
		log: nopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// NewDefault returns a Transformer using DefaultConfig.
func NewDefault(opts ...Option) *Transformer {
	t, err := New(DefaultConfig(), opts...)
	if err != nil {
		panic("smartstyle: default config: " + err.Error())
	}
	return t
}

// SetEditor binds the transformer to an editor for subsequent calls.
func (t *Transformer) SetEditor(ed Editor) {
	t.ed = ed
}

// Rules returns a copy of the style table.
func (t *Transformer) Rules() []Rule {
	out := make([]Rule, len(t.tab.rules.rules))
	copy(out, t.tab.rules.rules)
	return out
}

// Rule looks up a style by name.
func (t *Transformer) Rule(name string) (Rule, bool) {
	return t.tab.rules.lookup(name)
}

// SmartRange returns the range TransformText would style for r, without
// editing anything. With trim unset the trim tables are skipped.
func (t *Transformer) SmartRange(r Range, trim bool) (Range, error) {
	if t.ed == nil {
		return Range{}, ErrNoEditor
	}
	return t.expand(r.Normalize(), trim).span.Range, nil
}

// TransformText applies or removes the named style at every selection of
// the bound editor. With toggle set, a selection that is already styled is
// unwrapped instead; without it the style is applied after any removal.
// Selections are restored in document order when it returns.
func (t *Transformer) TransformText(style string, toggle bool) (Report, error) {
	rule, ok := t.tab.rules.lookup(style)
	if !ok {
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	if t.ed == nil {
		return Report{}, ErrNoEditor
	}

	sels := t.ed.ListSelections()
	ranges := make([]Range, len(sels))
	for i, sel := range sels {
		ranges[i] = sel.Range()
	}
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})

	report := Report{Style: rule.Name, Toggle: toggle}
	results := make([]Selection, 0, len(ranges))
	var edited []Range

	for i, r := range ranges {
		if t.touchesEdited(r, edited) {
			// an earlier selection already rewrote this text
			rep := SelectionReport{Input: r, Result: r}
			report.Selections = append(report.Selections, rep)
			results = append(results, cursor.NewRangeSelection(r))
			t.log.Debug("smartstyle: %s skipped %s, already edited", rule.Name, r)
			continue
		}

		lines := r.Lines()
		lens := make([]int, len(lines))
		for k, l := range lines {
			lens[k] = t.lineLen(l)
		}

		rep, done, err := t.transformOne(rule, r, toggle)
		if err != nil {
			return report, fmt.Errorf("selection %s: %w", r, err)
		}
		if rep.Action() != ActionSkipped {
			edited = append(edited, done)
		}
		report.Selections = append(report.Selections, rep)
		results = append(results, cursor.NewRangeSelection(rep.Result))
		t.log.Debug("smartstyle: %s %s %s -> %s", rule.Name, rep.Action(), r, rep.Result)

		// later selections sharing an edited line move with its text
		for k, l := range lines {
			delta := t.lineLen(l) - lens[k]
			if delta == 0 {
				continue
			}
			for j := i + 1; j < len(ranges); j++ {
				ranges[j] = cursor.ShiftRange(ranges[j], l, 0, delta)
			}
		}
	}

	t.ed.SetSelections(results)
	return report, nil
}

// touchesEdited reports whether the expansion of r overlaps text already
// rewritten in this call.
func (t *Transformer) touchesEdited(r Range, edited []Range) bool {
	if len(edited) == 0 {
		return false
	}
	sp := t.expand(r, false).span.Range
	for _, e := range edited {
		if e.Overlaps(sp) || sp.IsEmpty() && e.Contains(sp.Start) {
			return true
		}
	}
	return false
}

// transformOne runs the toggle for a single normalized selection. It also
// returns the range of the rewritten text.
func (t *Transformer) transformOne(rule Rule, r Range, toggle bool) (SelectionReport, Range, error) {
	rep := SelectionReport{Input: r, Result: r}

	if !r.IsEmpty() && strings.TrimSpace(t.ed.Range(r.Start, r.End)) == "" {
		return rep, Range{}, nil
	}

	check := t.expand(r, false)
	if !check.bare && check.orig.IsEmpty() {
		return rep, Range{}, nil
	}
	full := t.expand(r, true)

	var (
		sel    Selection
		edited Range
		err    error
	)
	switch {
	case t.insideStyle(check.span.Range, rule):
		sel, edited, err = t.modify(check, rule, remove)
		rep.Removed = true
	case t.insideStyle(full.span.Range, rule):
		sel, edited, err = t.modify(full, rule, remove)
		rep.Removed = true
	}
	if err != nil {
		return rep, Range{}, err
	}
	if rep.Removed {
		rep.Result = sel.Range()
		if toggle {
			return rep, edited, nil
		}
		full = t.expand(rep.Result, true)
		if !full.bare && full.orig.IsEmpty() {
			return rep, edited, nil
		}
	}

	sel, edited, err = t.modify(full, rule, apply)
	if err != nil {
		return rep, Range{}, err
	}
	rep.Applied = true
	rep.Result = sel.Range()
	return rep, edited, nil
}
