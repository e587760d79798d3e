package history

// Transaction runs fn inside a command group so its edits undo as one
// step. The group is pushed even when fn fails: edits fn already made stay
// in the buffer and must remain undoable.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	defer h.EndGroup()
	return fn()
}
