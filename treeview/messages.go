package treeview

import (
	"time"

	"github.com/almonk/arbor/tree"
	tea "github.com/charmbracelet/bubbletea"
)

// SelectMsg asks the host to select the item with ID.
type SelectMsg struct {
	ID string
}

// DeleteMsg asks the host to delete the item with ID.
type DeleteMsg struct {
	ID string
}

// DropTarget names where a dragged item should go.
type DropTarget struct {
	ItemID   string
	Position tree.Position
}

// DragEndMsg is emitted once when a drag is committed.
type DragEndMsg struct {
	ItemID     string
	DropTarget DropTarget
}

type holdTickMsg struct {
	id  int
	gen int
	at  time.Time
}

type autoScrollTickMsg struct {
	id  int
	gen int
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
