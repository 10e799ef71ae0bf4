// Package treeview is a Bubble Tea tree component with keyboard navigation,
// focus restoration, expand state and mouse drag-and-drop reparenting.
//
// The component never mutates the tree it shows. It reads the host's tree
// through tree.Accessors and reports what the user asked for as messages
// (SelectMsg, DeleteMsg, DragEndMsg); the host applies the change and hands
// the new root back through Sync.
package treeview

import (
	"sync/atomic"
	"time"

	"github.com/almonk/arbor/dnd"
	"github.com/almonk/arbor/tree"
	tea "github.com/charmbracelet/bubbletea"
)

const doubleClickWindow = 400 * time.Millisecond

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Options configures a Model. Zero values fall back to defaults.
type Options[T comparable] struct {
	Accessors tree.Accessors[T]
	// RenderItem renders an item's label. It defaults to the item id.
	RenderItem func(item T, selected bool) string

	Indent             int
	HoldThreshold      time.Duration
	DropEdge           float64
	AutoScrollMargin   int
	AutoScrollInterval time.Duration

	Keys   *KeyMap
	Styles *Styles
	// Now is the clock used for hold and double-click detection.
	Now func() time.Time
}

// Model is the tree view. Use New to create one and a pointer receiver
// throughout: the model owns per-gesture state.
type Model[T comparable] struct {
	id     int
	acc    tree.Accessors[T]
	render func(item T, selected bool) string
	indent int
	keys   KeyMap
	styles Styles
	now    func() time.Time

	root       T
	hasRoot    bool
	selectedID string

	expand        *ExpandStore[T]
	layout        *layout[T]
	layoutRoot    T
	layoutVersion int

	width, height    int
	offsetX, offsetY int
	scroll           int

	focusID  string
	hadFocus bool
	hoverID  string

	lastClickID   string
	lastClickTime time.Time

	drag       dnd.Drag[string]
	drop       dnd.Drop[string]
	hold       dnd.Hold[string]
	autoScroll dnd.AutoScroll

	dragID     string
	dragStartX float64
	pointer    struct{ col, row int }
	shift      int
	shifted    *ShiftedDropTarget[T]
}

func New[T comparable](opts Options[T]) *Model[T] {
	m := &Model[T]{
		id:     nextID(),
		acc:    opts.Accessors,
		render: opts.RenderItem,
		indent: opts.Indent,
		now:    opts.Now,
		expand: NewExpandStore(opts.Accessors),
	}
	if m.indent <= 0 {
		m.indent = 2
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.render == nil {
		m.render = func(item T, _ bool) string { return m.acc.ID(item) }
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	} else {
		m.keys = DefaultKeyMap()
	}
	if opts.Styles != nil {
		m.styles = *opts.Styles
	} else {
		m.styles = DefaultStyles()
	}
	m.hold.Threshold = opts.HoldThreshold
	m.drop.EdgeRatio = opts.DropEdge
	m.autoScroll.Margin = opts.AutoScrollMargin
	m.autoScroll.Interval = opts.AutoScrollInterval
	return m
}

func (m *Model[T]) Init() tea.Cmd { return nil }

// Sync hands the component the current tree and selection. A root that is
// not == to the previous one is treated as an external mutation: expand
// state is recomputed, a drag whose item vanished is cancelled and focus
// lost with a removed row is restored to the selection.
func (m *Model[T]) Sync(root T, selectedID string) {
	rootChanged := !m.hasRoot || root != m.root
	selectionChanged := selectedID != m.selectedID
	m.root, m.hasRoot, m.selectedID = root, true, selectedID

	m.expand.Sync(root, selectedID)
	m.refresh()

	if rootChanged && m.dragID != "" {
		if m.acc.Contains(root, m.dragID) {
			m.redropQuiet()
		} else {
			m.endDrag(false)
		}
	}
	if rootChanged && m.focusID != "" {
		if _, ok := m.layout.byID[m.focusID]; !ok {
			m.focusID = ""
		}
	}
	if (rootChanged || selectionChanged) && m.focusID == "" && m.hadFocus && selectedID != "" {
		if _, ok := m.layout.byID[selectedID]; ok {
			m.focusID = selectedID
		}
	}
}

// SetRoot is Sync with the current selection.
func (m *Model[T]) SetRoot(root T) { m.Sync(root, m.selectedID) }

// SetSelectedID is Sync with the current root.
func (m *Model[T]) SetSelectedID(id string) {
	if !m.hasRoot {
		m.selectedID = id
		return
	}
	m.Sync(m.root, id)
}

func (m *Model[T]) SelectedID() string { return m.selectedID }

// Root returns the tree last given to Sync.
func (m *Model[T]) Root() (T, bool) { return m.root, m.hasRoot }

// SetSize sets the rendered width and height in cells.
func (m *Model[T]) SetSize(width, height int) {
	m.width, m.height = width, height
	m.clampScroll()
}

// SetOffset tells the component where its top-left corner is on screen so
// mouse coordinates can be translated.
func (m *Model[T]) SetOffset(x, y int) {
	m.offsetX, m.offsetY = x, y
}

func (m *Model[T]) Width() int  { return m.width }
func (m *Model[T]) Height() int { return m.height }

// Focus gives the tree keyboard focus on the selected row.
func (m *Model[T]) Focus() {
	m.hadFocus = true
	if i, ok := m.rowFor(m.selectedID); ok {
		m.focusID = m.layout.rows[i].id
		return
	}
	if m.hasRoot {
		m.focusID = m.acc.ID(m.root)
	}
}

// Blur removes focus. Focus is not restored automatically afterwards.
func (m *Model[T]) Blur() {
	m.focusID = ""
	m.hadFocus = false
}

func (m *Model[T]) Focused() bool { return m.focusID != "" }

// FocusedID is the id of the row holding focus, if any.
func (m *Model[T]) FocusedID() string { return m.focusID }

// Dragging reports whether a drag is in progress.
func (m *Model[T]) Dragging() bool { return m.dragID != "" }

// DragItemID is the id of the dragged item while Dragging.
func (m *Model[T]) DragItemID() string { return m.dragID }

// Target is the current placement while dragging.
func (m *Model[T]) Target() (ShiftedDropTarget[T], bool) {
	if m.shifted == nil {
		return ShiftedDropTarget[T]{}, false
	}
	return *m.shifted, true
}

func (m *Model[T]) IsExpanded(item T) bool { return m.expand.IsExpanded(item) }

// SetExpanded expands or collapses item.
func (m *Model[T]) SetExpanded(item T, expanded bool) {
	if m.expand.SetExpanded(item, expanded) {
		m.refresh()
	}
}

func (m *Model[T]) ExpandAll() {
	m.expand.ExpandAll()
	m.refresh()
}

func (m *Model[T]) CollapseAll() {
	m.expand.CollapseAll()
	m.refresh()
}

// ExpandedRecord returns the expand state for persistence.
func (m *Model[T]) ExpandedRecord() map[string]bool { return m.expand.Record() }

// RestoreExpanded loads a persisted expand state.
func (m *Model[T]) RestoreExpanded(record map[string]bool) {
	m.expand.Restore(record)
	m.refresh()
}

// VisibleIDs returns the ids of the visible rows in order.
func (m *Model[T]) VisibleIDs() []string {
	if m.layout == nil {
		return nil
	}
	ids := make([]string, len(m.layout.rows))
	for i, r := range m.layout.rows {
		ids[i] = r.id
	}
	return ids
}

// ScrollToID scrolls the row for id into view.
func (m *Model[T]) ScrollToID(id string) {
	if i, ok := m.rowFor(id); ok {
		m.scrollIntoView(i)
	}
}

func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	if !m.hasRoot {
		return nil
	}
	m.refresh()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.updateKey(msg)
	case tea.MouseMsg:
		cmd = m.updateMouse(msg)
	case tea.BlurMsg:
		if m.Dragging() {
			m.endDrag(false)
		}
	case holdTickMsg:
		if msg.id == m.id {
			cmd = m.onHoldTick(msg)
		}
	case autoScrollTickMsg:
		if msg.id == m.id {
			cmd = m.onAutoScrollTick(msg)
		}
	}

	m.hadFocus = m.Focused()
	return cmd
}

// refresh rebuilds the row layout when the root or the expand state changed.
func (m *Model[T]) refresh() {
	if !m.hasRoot {
		return
	}
	if m.layout != nil && m.layoutRoot == m.root && m.layoutVersion == m.expand.Version() {
		return
	}
	m.layout = buildLayout(m.acc, m.root, m.expand.IsExpanded)
	m.layoutRoot, m.layoutVersion = m.root, m.expand.Version()
	m.clampScroll()
}

// rowFor returns the row of id, or of its nearest visible ancestor when id
// is hidden inside a collapsed item.
func (m *Model[T]) rowFor(id string) (int, bool) {
	if id == "" || m.layout == nil {
		return 0, false
	}
	if i, ok := m.layout.byID[id]; ok {
		return i, true
	}
	path := m.acc.Path(m.root, id)
	for i := len(path) - 2; i >= 0; i-- {
		if r, ok := m.layout.byID[m.acc.ID(path[i])]; ok {
			return r, true
		}
	}
	return 0, false
}

func (m *Model[T]) selectCmd(id string) tea.Cmd {
	if id == m.selectedID {
		return nil
	}
	return emit(SelectMsg{ID: id})
}

func (m *Model[T]) toggle(i int) {
	r := m.layout.rows[i]
	if !r.hasChildren {
		return
	}
	m.SetExpanded(r.item, !r.expanded)
}

func (m *Model[T]) maxScroll() int {
	if m.layout == nil {
		return 0
	}
	return max(0, len(m.layout.rows)-m.height)
}

func (m *Model[T]) clampScroll() {
	m.scroll = min(max(m.scroll, 0), m.maxScroll())
}

func (m *Model[T]) scrollBy(n int) {
	m.scroll += n
	m.clampScroll()
}

func (m *Model[T]) scrollIntoView(i int) {
	if m.height <= 0 {
		return
	}
	if i < m.scroll {
		m.scroll = i
	} else if i >= m.scroll+m.height {
		m.scroll = i - m.height + 1
	}
	m.clampScroll()
}
