package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/skema/internal/drag"
	"github.com/javiermolinar/skema/internal/export"
	"github.com/javiermolinar/skema/internal/logx"
	"github.com/javiermolinar/skema/internal/tui/commands"
)

type keyMap struct {
	Add    key.Binding
	Switch key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Pick   key.Binding
	Cancel key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add event"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "right"),
		),
		Pick: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "pick up/drop"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy board"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Pick, k.Cancel, k.Switch, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.Pick, k.Cancel, k.Switch},
		{k.Copy, k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.log.Debug("key press",
		logx.String("key", msg.String()),
		logx.String("focus", m.focus.String()),
		logx.String("drag", m.board.Drag().State.String()))

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.overlay.Active() {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
			m.overlay.Close()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.overlay.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Add):
		return m.addItem()
	case key.Matches(msg, m.keys.Copy):
		snap := m.board.Snapshot()
		return m, commands.CopyToClipboard(export.Text(snap.Assignments, m.board.Grid(), snap.Items), "board")
	}

	if m.board.Drag().Active() {
		return m.handleDragKeys(msg)
	}
	if m.focus == FocusGrid {
		return m.handleGridKeys(msg)
	}
	return m.handleStagingKeys(msg)
}

// handleStagingKeys handles keys while the staging list has focus.
func (m Model) handleStagingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.board.Items()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		m.scrollList()
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(items)-1 {
			m.selected++
		}
		m.scrollList()
	case key.Matches(msg, m.keys.Switch):
		m.setFocus(FocusGrid)
	case key.Matches(msg, m.keys.Pick):
		if len(items) == 0 {
			return m, m.setStatus("No events yet, press a to add one", false)
		}
		return m.beginDrag(items[m.selected].ID, false)
	}
	return m, nil
}

// handleGridKeys handles keys while the grid has focus and nothing is dragged.
func (m Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Switch), key.Matches(msg, m.keys.Cancel):
		m.setFocus(FocusStaging)
	case key.Matches(msg, m.keys.Pick):
		return m, m.setStatus(m.describeCell(), false)
	default:
		m.moveCursor(msg)
	}
	return m, nil
}

// handleDragKeys handles keys while an event is being dragged.
// The grid cursor doubles as the hover target.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.board.CancelDrag()
		m.mouseDrag = false
		m.setFocus(FocusStaging)
		return m, m.setStatus("Drag cancelled", false)
	case key.Matches(msg, m.keys.Pick):
		return m.release()
	case key.Matches(msg, m.keys.Switch):
		return m, nil
	}

	if m.moveCursor(msg) {
		m.hoverCursor()
	}
	return m, nil
}

// moveCursor moves the grid cursor and reports whether msg was a movement key.
func (m *Model) moveCursor(msg tea.KeyMsg) bool {
	grid := m.board.Grid()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor.Row = max(m.cursor.Row-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row = min(m.cursor.Row+1, len(grid.Hours())-1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.Col = max(m.cursor.Col-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursor.Col = min(m.cursor.Col+1, grid.Columns()-1)
	default:
		return false
	}
	m.scrollGrid()
	return true
}

func (m Model) addItem() (tea.Model, tea.Cmd) {
	item := m.board.AddItem()
	if !m.board.Drag().Active() {
		m.selected = len(m.board.Items()) - 1
		m.scrollList()
	}
	return m, m.setStatus("Added "+item.Label, false)
}

// beginDrag picks up the event with id and moves focus to the grid.
func (m Model) beginDrag(id int, byMouse bool) (tea.Model, tea.Cmd) {
	if err := m.board.BeginDrag(id); err != nil {
		m.log.Warn("begin drag failed", logx.Err(err), logx.Int("item", id))
		return m, m.setStatus(err.Error(), true)
	}
	m.mouseDrag = byMouse
	if !byMouse {
		m.setFocus(FocusGrid)
		m.hoverCursor()
	}
	return m, m.setStatus("Dragging "+m.board.Drag().Item.Label, false)
}

// release ends the current gesture and reports the outcome.
func (m Model) release() (tea.Model, tea.Cmd) {
	dv := m.board.Drag()
	outcome, err := m.board.Release()
	m.mouseDrag = false
	m.setFocus(FocusStaging)

	switch {
	case err != nil:
		return m, m.setStatus(err.Error(), true)
	case outcome == drag.OutcomeDropped:
		return m, m.setStatus(fmt.Sprintf("Dropped %s on %s", dv.Item.Label, dv.Target), false)
	default:
		return m, m.setStatus("Drag cancelled", false)
	}
}

// hoverCursor makes the grid cursor the drop target.
func (m *Model) hoverCursor() {
	if k, ok := m.board.Grid().Key(m.cursor.Col, m.cursor.Row); ok {
		m.board.Hover(k)
		return
	}
	m.board.LeaveSlot()
}

func (m *Model) setFocus(f Focus) {
	if m.focus != f {
		m.log.Debug("focus change", logx.String("from", m.focus.String()), logx.String("to", f.String()))
	}
	m.focus = f
}

func (m *Model) scrollList() {
	m.listOffset = m.layout.List.ScrollTo(m.selected)
	m.layout.List.Offset = m.listOffset
}

// scrollGrid keeps the cursor row on screen.
func (m *Model) scrollGrid() {
	m.gridOffset = m.layout.Grid.ScrollTo(m.cursor.Row)
	m.layout.Grid.Offset = m.gridOffset
}

// describeCell summarises the occupants under the grid cursor.
func (m Model) describeCell() string {
	k, ok := m.board.Grid().Key(m.cursor.Col, m.cursor.Row)
	if !ok {
		return ""
	}
	occupants, err := m.board.OccupantsOf(k)
	if err != nil {
		return err.Error()
	}
	if len(occupants) == 0 {
		return k.String() + " is empty"
	}
	labels := make([]string, len(occupants))
	for i, item := range occupants {
		labels[i] = item.Label
	}
	return k.String() + ": " + strings.Join(labels, ", ")
}
