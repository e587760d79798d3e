package cursor

import "sort"

// SelectionSet manages multiple cursors/selections.
// Selections are kept sorted by position and non-overlapping.
// The first selection is considered the "primary" selection.
type SelectionSet struct {
	selections []Selection
}

// NewSelectionSet creates a set with a single selection.
func NewSelectionSet(initial Selection) *SelectionSet {
	return &SelectionSet{
		selections: []Selection{initial},
	}
}

// NewSelectionSetFromSlice creates a set from a slice of selections.
// The selections will be normalized (sorted and merged).
func NewSelectionSetFromSlice(selections []Selection) *SelectionSet {
	cs := &SelectionSet{}
	cs.SetAll(selections)
	return cs
}

// Primary returns the primary (first) selection.
func (cs *SelectionSet) Primary() Selection {
	if len(cs.selections) == 0 {
		return Selection{}
	}
	return cs.selections[0]
}

// All returns a copy of all selections.
// The returned slice is safe to modify without affecting the set.
func (cs *SelectionSet) All() []Selection {
	result := make([]Selection, len(cs.selections))
	copy(result, cs.selections)
	return result
}

// Count returns the number of cursors/selections.
func (cs *SelectionSet) Count() int {
	return len(cs.selections)
}

// IsMulti returns true if there are multiple selections.
func (cs *SelectionSet) IsMulti() bool {
	return len(cs.selections) > 1
}

// Add adds a new selection, merging with overlapping ones.
func (cs *SelectionSet) Add(sel Selection) {
	cs.selections = append(cs.selections, sel)
	cs.normalize()
}

// Set replaces all selections with a single selection.
func (cs *SelectionSet) Set(sel Selection) {
	cs.selections = []Selection{sel}
}

// SetPrimary replaces the primary selection, keeping the others.
func (cs *SelectionSet) SetPrimary(sel Selection) {
	if len(cs.selections) == 0 {
		cs.selections = []Selection{sel}
		return
	}
	cs.selections[0] = sel
	cs.normalize()
}

// SetAll replaces all selections.
// An empty slice leaves a single cursor at the start of the document.
func (cs *SelectionSet) SetAll(sels []Selection) {
	if len(sels) == 0 {
		cs.selections = []Selection{{}}
		return
	}
	cs.selections = make([]Selection, len(sels))
	copy(cs.selections, sels)
	cs.normalize()
}

// HasSelection returns true if any selection is non-empty (has extent).
func (cs *SelectionSet) HasSelection() bool {
	for _, sel := range cs.selections {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// Ranges returns all selection ranges in document order.
func (cs *SelectionSet) Ranges() []Range {
	ranges := make([]Range, len(cs.selections))
	for i, sel := range cs.selections {
		ranges[i] = sel.Range()
	}
	return ranges
}

// MapInPlace applies f to each selection in place.
func (cs *SelectionSet) MapInPlace(f func(sel Selection) Selection) {
	for i, sel := range cs.selections {
		cs.selections[i] = f(sel)
	}
	cs.normalize()
}

// Clone returns a deep copy of the set.
func (cs *SelectionSet) Clone() *SelectionSet {
	return &SelectionSet{selections: cs.All()}
}

// normalize sorts selections and merges overlapping ones. Cursors at the
// same position collapse into one; touching selections stay separate.
func (cs *SelectionSet) normalize() {
	if len(cs.selections) <= 1 {
		return
	}

	sort.SliceStable(cs.selections, func(i, j int) bool {
		si, sj := cs.selections[i].Start(), cs.selections[j].Start()
		if si != sj {
			return si.Before(sj)
		}
		// Same start: larger ranges first
		return cs.selections[i].End().After(cs.selections[j].End())
	})

	merged := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &merged[len(merged)-1]
		if sel.Start().Before(last.End()) || sel.SameRange(*last) {
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	cs.selections = merged
}

// Equals returns true if two sets have the same selections.
func (cs *SelectionSet) Equals(other *SelectionSet) bool {
	if other == nil || cs.Count() != other.Count() {
		return false
	}
	for i, sel := range cs.selections {
		if !sel.Equals(other.selections[i]) {
			return false
		}
	}
	return true
}
