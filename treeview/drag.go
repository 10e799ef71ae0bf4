package treeview

import (
	"time"

	"github.com/almonk/arbor/dnd"
	tea "github.com/charmbracelet/bubbletea"
)

const chevronWidth = 2

func (m *Model[T]) updateMouse(msg tea.MouseMsg) tea.Cmd {
	col, line := msg.X-m.offsetX, msg.Y-m.offsetY
	inside := col >= 0 && col < m.width && line >= 0 && line < m.height

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		if inside {
			m.scrollBy(-3)
			return m.redrop()
		}
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		if inside {
			m.scrollBy(3)
			return m.redrop()
		}
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if inside {
			return m.press(col, line)
		}
	case msg.Action == tea.MouseActionMotion:
		return m.motion(col, line, inside)
	case msg.Action == tea.MouseActionRelease:
		return m.release()
	}
	return nil
}

func (m *Model[T]) press(col, line int) tea.Cmd {
	i, ok := m.layout.rowAt(float64(line + m.scroll))
	if !ok {
		// Empty space below the rows.
		m.Focus()
		return nil
	}
	r := m.layout.rows[i]
	m.focusID = r.id

	x := r.depth * m.indent
	if r.hasChildren && col >= x && col < x+chevronWidth {
		m.toggle(i)
		return nil
	}

	now := m.now()
	if r.id == m.lastClickID && now.Sub(m.lastClickTime) < doubleClickWindow {
		m.toggle(i)
		m.lastClickID = ""
	} else {
		m.lastClickID, m.lastClickTime = r.id, now
	}

	if r.id != m.acc.ID(m.root) && m.acc.CanLeaveParent(r.item) {
		m.pointer.col, m.pointer.row = col, line
		m.drag.Press(r.id, m.contentPoint(col, line))
	}
	return m.selectCmd(r.id)
}

func (m *Model[T]) motion(col, line int, inside bool) tea.Cmd {
	if m.drag.Phase() == dnd.DragIdle {
		m.hoverID = ""
		if inside {
			if i, ok := m.layout.rowAt(float64(line + m.scroll)); ok {
				m.hoverID = m.layout.rows[i].id
			}
		}
		return nil
	}

	m.pointer.col, m.pointer.row = col, line
	u := m.drag.Move(m.contentPoint(col, line))
	var cmds []tea.Cmd
	if u.Started {
		cmds = append(cmds, m.startDrag(u.Item))
	}
	if u.Moving && m.dragID != "" {
		cmds = append(cmds, m.dragMove())
	}
	return tea.Batch(cmds...)
}

func (m *Model[T]) release() tea.Cmd {
	_, dragging := m.drag.Release()
	if !dragging {
		return nil
	}
	return m.endDrag(true)
}

func (m *Model[T]) startDrag(id string) tea.Cmd {
	if !m.acc.Contains(m.root, id) {
		m.drag.Cancel()
		return nil
	}
	m.dragID = id
	m.dragStartX = m.drag.Start().X
	m.shift = 0
	m.shifted = nil
	m.hoverID = ""
	m.drop.Start()
	m.autoScroll.Enable()
	return emit(SelectMsg{ID: id})
}

// dragMove re-resolves everything that depends on the pointer.
func (m *Model[T]) dragMove() tea.Cmd {
	var cmds []tea.Cmd
	m.updateTarget()
	if t, ok := m.drop.Target(); ok {
		if gen, reset := m.hold.Set(t.Item, m.now()); reset {
			cmds = append(cmds, m.holdTick(gen))
		}
	}
	if _, start, gen := m.autoScroll.Update(m.pointer.row, m.height); start {
		cmds = append(cmds, m.autoScrollTick(gen))
	}
	return tea.Batch(cmds...)
}

func (m *Model[T]) updateTarget() {
	p := m.contentPoint(m.pointer.col, m.pointer.row)
	m.shift = int((p.X - m.dragStartX) / float64(m.indent))
	m.drop.Move(p, surface[T]{m})
	m.resolve()
}

// resolve recomputes the shifted target and replaces the stored one only
// when it differs.
func (m *Model[T]) resolve() {
	var target *dnd.DropTarget[string]
	if t, ok := m.drop.Target(); ok {
		target = &t
	}
	next, ok := resolveShift(shiftInput[T]{
		acc:    m.acc,
		root:   m.root,
		dragID: m.dragID,
		target: target,
		point:  m.drop.Last(),
		shift:  m.shift,
		layout: m.layout,
		indent: m.indent,
		width:  m.width,
	})
	if !ok {
		m.shifted = nil
		return
	}
	if m.shifted != nil && *m.shifted == next {
		return
	}
	m.shifted = &next
}

// redrop re-resolves after the content moved under a resting pointer.
func (m *Model[T]) redrop() tea.Cmd {
	if m.dragID == "" {
		return nil
	}
	return m.dragMove()
}

// redropQuiet re-resolves without touching the hold timer.
func (m *Model[T]) redropQuiet() {
	if m.dragID != "" {
		m.updateTarget()
	}
}

// endDrag clears every piece of drag state. With commit it emits the final
// placement, if there is one.
func (m *Model[T]) endDrag(commit bool) tea.Cmd {
	var cmd tea.Cmd
	if commit && m.dragID != "" && m.shifted != nil {
		cmd = emit(DragEndMsg{
			ItemID: m.dragID,
			DropTarget: DropTarget{
				ItemID:   m.acc.ID(m.shifted.Parent),
				Position: m.shifted.Position,
			},
		})
	}
	m.dragID = ""
	m.shift = 0
	m.shifted = nil
	m.drag.Cancel()
	m.drop.End()
	m.hold.End()
	m.autoScroll.Disable()
	return cmd
}

func (m *Model[T]) holdTick(gen int) tea.Cmd {
	id := m.id
	return tea.Tick(m.hold.Wait(m.now()), func(t time.Time) tea.Msg {
		return holdTickMsg{id: id, gen: gen, at: t}
	})
}

func (m *Model[T]) onHoldTick(msg holdTickMsg) tea.Cmd {
	id, ok := m.hold.Check(msg.gen, msg.at)
	if !ok || m.dragID == "" {
		return nil
	}
	item, found := m.acc.FindByID(m.root, id)
	if !found || !m.acc.HasChildren(item) || m.expand.IsExpanded(item) {
		return nil
	}
	m.SetExpanded(item, true)
	return m.redrop()
}

func (m *Model[T]) autoScrollTick(gen int) tea.Cmd {
	id := m.id
	return tea.Tick(m.autoScroll.Every(), func(time.Time) tea.Msg {
		return autoScrollTickMsg{id: id, gen: gen}
	})
}

func (m *Model[T]) onAutoScrollTick(msg autoScrollTickMsg) tea.Cmd {
	dir, ok := m.autoScroll.Tick(msg.gen)
	if !ok {
		return nil
	}
	before := m.scroll
	m.scrollBy(dir)
	next := m.autoScrollTick(msg.gen)
	if m.scroll == before {
		return next
	}
	return tea.Batch(next, m.redrop())
}

// contentPoint converts a component-relative cell to layout coordinates.
func (m *Model[T]) contentPoint(col, line int) dnd.Point {
	return dnd.CellCenter(col, line+m.scroll)
}

// surface exposes the row layout to dnd.Drop.
type surface[T comparable] struct {
	m *Model[T]
}

func (s surface[T]) ItemAt(p dnd.Point) (string, dnd.Rect, bool) {
	m := s.m
	i, ok := m.layout.rowAt(p.Y)
	if !ok || i < m.scroll || i >= m.scroll+m.height {
		return "", dnd.Rect{}, false
	}
	return m.layout.rows[i].id, m.rowRect(i), true
}

func (s surface[T]) ChildRects(id string) []dnd.Rect {
	return s.m.layout.childSpans(id)
}

func (s surface[T]) Fallback() (string, dnd.Rect) {
	m := s.m
	return m.acc.ID(m.root), dnd.Rect{W: float64(m.width), H: float64(len(m.layout.rows))}
}

// rowRect is the label area of row i. The guides and chevron to its left are
// the row's gutter, which dnd treats as the gap beside the item.
func (m *Model[T]) rowRect(i int) dnd.Rect {
	r := m.layout.rows[i]
	x := float64(r.depth*m.indent + chevronWidth)
	return dnd.Rect{X: x, Y: float64(i), W: max(0, float64(m.width)-x), H: 1}
}
