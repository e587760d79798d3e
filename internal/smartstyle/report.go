package smartstyle

// Action names what happened to one selection.
type Action string

const (
	ActionApplied   Action = "applied"
	ActionRemoved   Action = "removed"
	ActionReapplied Action = "reapplied"
	ActionSkipped   Action = "skipped"
)

// SelectionReport describes the outcome for one selection.
type SelectionReport struct {
	Input   Range // normalized selection before the edit, shifted by earlier edits
	Result  Range // selection after the edit
	Removed bool
	Applied bool
}

// Action summarizes the report.
func (s SelectionReport) Action() Action {
	switch {
	case s.Removed && s.Applied:
		return ActionReapplied
	case s.Removed:
		return ActionRemoved
	case s.Applied:
		return ActionApplied
	default:
		return ActionSkipped
	}
}

// Report describes one TransformText call.
type Report struct {
	Style      string
	Toggle     bool
	Selections []SelectionReport
}

// Count returns how many selections ended with action a.
func (r Report) Count(a Action) int {
	var n int
	for _, s := range r.Selections {
		if s.Action() == a {
			n++
		}
	}
	return n
}

// Changed reports whether any selection was edited.
func (r Report) Changed() bool {
	return len(r.Selections) > r.Count(ActionSkipped)
}
