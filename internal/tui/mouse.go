package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/skema/internal/logx"
	"github.com/javiermolinar/skema/internal/slot"
)

// handleMouseMsg maps press, motion and release onto the drag gesture.
// Press on a staged event begins a drag, motion over the grid hovers cells,
// and release drops on the hovered cell or cancels anywhere else.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse || m.overlay.Active() {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handleMousePress(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if !m.mouseDrag || !m.board.Drag().Active() {
			return m, nil
		}
		m.hoverAt(msg.X, msg.Y)
		return m, nil

	case tea.MouseActionRelease:
		if !m.mouseDrag || !m.board.Drag().Active() {
			return m, nil
		}
		// Some terminals skip the final motion event, so hit-test the release point too.
		m.hoverAt(msg.X, msg.Y)
		return m.release()
	}
	return m, nil
}

func (m Model) handleMousePress(x, y int) (tea.Model, tea.Cmd) {
	if m.board.Drag().Active() {
		return m, nil
	}

	items := m.board.Items()
	if idx, ok := m.layout.List.ItemAt(x, y, len(items)); ok {
		m.selected = idx
		m.setFocus(FocusStaging)
		m.log.Debug("mouse press on event", logx.Int("item", items[idx].ID), logx.Int("x", x), logx.Int("y", y))
		return m.beginDrag(items[idx].ID, true)
	}

	if k, col, row, ok := m.cellAt(x, y); ok {
		m.cursor = Position{Col: col, Row: row}
		m.setFocus(FocusGrid)
		m.log.Debug("mouse press on slot", logx.String("slot", k.String()))
	}
	return m, nil
}

// hoverAt moves the drop target to the cell under (x, y), or clears it.
func (m *Model) hoverAt(x, y int) {
	k, col, row, ok := m.cellAt(x, y)
	if !ok {
		m.board.LeaveSlot()
		return
	}
	m.cursor = Position{Col: col, Row: row}
	m.board.Hover(k)
}

// cellAt hit-tests the grid. Lines clipped by the footer never hit a cell.
func (m Model) cellAt(x, y int) (slot.Key, int, int, bool) {
	if !m.layout.inBody(y) {
		return slot.Key{}, 0, 0, false
	}
	col, row, ok := m.layout.Grid.CellAt(x, y)
	if !ok {
		return slot.Key{}, 0, 0, false
	}
	k, ok := m.board.Grid().Key(col, row)
	return k, col, row, ok
}
