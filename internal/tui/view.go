package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/skema/internal/board"
	"github.com/javiermolinar/skema/internal/drag"
	"github.com/javiermolinar/skema/internal/event"
	"github.com/javiermolinar/skema/internal/slot"
	"github.com/javiermolinar/skema/internal/tui/view"
)

// View renders the TUI.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	overlay := ""
	if m.overlay.Active() {
		overlay = m.renderHelpOverlay()
	}
	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		OverlayContent:   overlay,
		ShowOverlay:      m.overlay.Active(),
		Overlay:          m.overlay,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	snap := m.board.Snapshot()

	title := view.TitleBar(m.width, m.styles.TitleStyle, " skema", m.titleInfo(snap))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		view.RenderGrid(m.gridViewState(snap)),
		strings.Repeat(" ", panelGap),
		view.RenderStaging(m.stagingViewState(snap)),
	)
	body = view.PlaceBox(m.width, m.layout.bodyHeight(), lipgloss.Top, body, m.styles.colorBg)
	footer := view.RenderFooter(m.footerViewState())

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
	return view.PadLinesWithBackground(content, m.width, m.height, m.styles.colorBg)
}

func (m Model) titleInfo(snap board.Snapshot) string {
	grid := m.board.Grid()
	info := fmt.Sprintf("%s · %s · %d events · %d/%d slots used",
		grid.Shape(), m.board.Policy(), len(snap.Items), snap.Assignments.Assigned(), grid.Len())
	if snap.Drag.Active() {
		info += " · dragging " + snap.Drag.Item.Label
	}
	return info
}

func (m Model) gridViewState(snap board.Snapshot) view.GridViewState {
	grid := m.board.Grid()
	g := m.layout.Grid

	headers := make([]string, g.Cols)
	if days := grid.Days(); days != nil {
		for c, d := range days {
			headers[c] = d
			if len(d) > g.CellW {
				headers[c] = d[:3]
			}
		}
	} else {
		headers[0] = "Slot"
	}

	hours := grid.Hours()
	labels := make([]string, len(hours))
	cells := make([][]string, len(hours))
	styles := make([][]lipgloss.Style, len(hours))
	for r, h := range hours {
		labels[r] = fmt.Sprintf("%02d:00", h)
		cells[r] = make([]string, g.Cols)
		styles[r] = make([]lipgloss.Style, g.Cols)
		for c := 0; c < g.Cols; c++ {
			k, _ := grid.Key(c, r)
			occupants := snap.OccupantsOf(k)
			cells[r][c] = cellText(occupants)
			styles[r][c] = m.cellStyle(snap.Drag, k, c, r, len(occupants) > 0)
		}
	}

	border := m.styles.GridBorderStyle
	if m.focus == FocusGrid || snap.Drag.Active() {
		border = m.styles.GridFocusedBorder
	}

	return view.GridViewState{
		Geometry:    g,
		Headers:     headers,
		Labels:      labels,
		Cells:       cells,
		CellStyles:  styles,
		HeaderStyle: m.styles.HeaderStyle,
		LabelStyle:  m.styles.HourLabelStyle,
		BorderStyle: border,
	}
}

// cellStyle picks the cell style: hovered target first, then cursor, then occupancy.
func (m Model) cellStyle(dv board.DragView, k slot.Key, col, row int, occupied bool) lipgloss.Style {
	switch {
	case dv.IsOver(k):
		return m.styles.TargetStyle
	case m.cursor.Col == col && m.cursor.Row == row:
		if m.focus == FocusGrid {
			return m.styles.CursorStyle
		}
		return m.styles.CursorIdleStyle
	case occupied:
		return m.styles.ItemCellStyle
	default:
		return m.styles.EmptyCellStyle
	}
}

// cellText shows the first occupant and how many more share the slot.
func cellText(occupants []event.Item) string {
	switch len(occupants) {
	case 0:
		return ""
	case 1:
		return occupants[0].Label
	default:
		return occupants[0].Label + " +" + strconv.Itoa(len(occupants)-1)
	}
}

func (m Model) stagingViewState(snap board.Snapshot) view.StagingViewState {
	placed := make(map[int]int, len(snap.Items))
	for _, k := range m.board.Keys() {
		for _, item := range snap.OccupantsOf(k) {
			placed[item.ID]++
		}
	}

	lines := make([]string, len(snap.Items))
	styles := make([]lipgloss.Style, len(snap.Items))
	for i, item := range snap.Items {
		marker := "  "
		if i == m.selected && m.focus == FocusStaging {
			marker = "› "
		}
		line := marker + item.Label
		if n := placed[item.ID]; n > 0 {
			line += " ×" + strconv.Itoa(n)
		}
		lines[i] = line

		switch {
		case snap.Drag.IsDraggingItem(item.ID):
			styles[i] = m.styles.StagingDraggingStyle
		case i == m.selected && m.focus == FocusStaging:
			styles[i] = m.styles.StagingSelectedStyle
		default:
			styles[i] = m.styles.StagingItemStyle
		}
	}

	border := m.styles.StagingBorderStyle
	if m.focus == FocusStaging && !snap.Drag.Active() {
		border = m.styles.StagingFocusedBorder
	}

	return view.StagingViewState{
		Geometry:    m.layout.List,
		Title:       fmt.Sprintf("Events (%d)", len(snap.Items)),
		Lines:       lines,
		LineStyles:  styles,
		Empty:       "press a to add",
		TitleStyle:  m.styles.StagingTitleStyle,
		EmptyStyle:  m.styles.StagingEmptyStyle,
		BorderStyle: border,
	}
}

func (m Model) footerViewState() view.FooterViewState {
	status := m.styles.StatusStyle
	if m.statusErr {
		status = m.styles.StatusErrorStyle
	}
	return view.FooterViewState{
		InnerW:      m.width,
		StatusText:  m.statusText(),
		HelpText:    m.help.ShortHelpView(m.keys.ShortHelp()),
		StatusStyle: status,
		HelpStyle:   m.styles.HelpStyle,
		Bg:          m.styles.colorBg,
	}
}

// statusText falls back to a hint for the current gesture when no message is shown.
func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	dv := m.board.Drag()
	switch {
	case dv.State == drag.Over:
		return fmt.Sprintf("Release to drop %s on %s", dv.Item.Label, dv.Target)
	case dv.Active():
		return fmt.Sprintf("Dragging %s, move over a slot", dv.Item.Label)
	case m.focus == FocusGrid:
		return "Grid: space shows the slot's events"
	default:
		return "Staging: space picks up the selected event"
	}
}

func (m Model) renderHelpOverlay() string {
	title := m.styles.OverlayTitleStyle.Render("Keys")
	body := m.help.FullHelpView(m.keys.FullHelp())
	return m.styles.OverlayStyle.Render(title + "\n\n" + body)
}
