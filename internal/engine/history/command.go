package history

import (
	"fmt"

	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
)

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Command represents a composable edit action that can be executed and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer, sels *cursor.SelectionSet) error

	// Undo reverses the command and returns an error if it fails.
	Undo(buf *buffer.Buffer, sels *cursor.SelectionSet) error

	// Description returns a human-readable description of the command.
	Description() string
}

// EditCommand records a change that was already applied to a buffer.
// Execute re-applies it (redo) and Undo applies its inverse.
type EditCommand struct {
	Change buffer.Change
	Before []Selection // Selections before the edit
	After  []Selection // Selections after the edit
}

// NewEditCommand creates an edit command for an applied change.
func NewEditCommand(change buffer.Change, before, after []Selection) *EditCommand {
	return &EditCommand{
		Change: change,
		Before: cloneSelections(before),
		After:  cloneSelections(after),
	}
}

// Execute re-applies the change.
func (c *EditCommand) Execute(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	if _, err := buf.ApplyEdit(c.Change.ToEdit()); err != nil {
		return fmt.Errorf("redo %s at %s: %w", c.Change.Type, c.Change.Range, err)
	}
	if c.After != nil {
		sels.SetAll(c.After)
	}
	return nil
}

// Undo applies the inverse change and restores the earlier selections.
func (c *EditCommand) Undo(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	inv := c.Change.Invert()
	if _, err := buf.ApplyEdit(inv.ToEdit()); err != nil {
		return fmt.Errorf("undo %s at %s: %w", c.Change.Type, c.Change.Range, err)
	}
	if c.Before != nil {
		sels.SetAll(c.Before)
	}
	return nil
}

// Description returns a human-readable description.
func (c *EditCommand) Description() string {
	switch c.Change.Type {
	case buffer.ChangeInsert:
		return fmt.Sprintf("Insert %q", c.Change.NewText)
	case buffer.ChangeDelete:
		return fmt.Sprintf("Delete %q", c.Change.OldText)
	default:
		return fmt.Sprintf("Replace %q with %q", c.Change.OldText, c.Change.NewText)
	}
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(buf, sels); err != nil {
			// On error, try to undo what we've done
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(buf, sels)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer, sels *cursor.SelectionSet) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(buf, sels); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}

func cloneSelections(sels []Selection) []Selection {
	if sels == nil {
		return nil
	}
	out := make([]Selection, len(sels))
	copy(out, sels)
	return out
}
