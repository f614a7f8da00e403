package tui

import (
	"github.com/javiermolinar/skema/internal/slot"
	"github.com/javiermolinar/skema/internal/tui/view"
)

const (
	hourLabelWidth = 5 // "16:00"
	defaultCellW   = 12
	minCellW       = 6
	maxCellW       = 16
	stagingInnerW  = 18
	titleLines     = 1
	panelGap       = 1
	gridChrome     = 4 // top border, header, header separator, bottom border
)

// Layout places the grid and the staging panel for the current terminal size.
// Rendering and mouse hit-testing share it.
type Layout struct {
	Width  int
	Height int
	Grid   view.GridGeometry
	List   view.ListGeometry
}

// buildLayout sizes the grid to fill the width left of the staging panel.
// A zero width or height uses defaults (before the first WindowSizeMsg).
// On short terminals only the hour rows that fit the body are shown, starting at gridOffset.
func buildLayout(grid *slot.Grid, width, height, listOffset, gridOffset int) Layout {
	cols := grid.Columns()
	rows := len(grid.Hours())

	cellW := defaultCellW
	if width > 0 {
		avail := width - (stagingInnerW + 2) - panelGap - (2 + hourLabelWidth)
		cellW = avail/cols - 1
	}
	cellW = min(max(cellW, minCellW), maxCellW)

	g := view.GridGeometry{
		Left:   0,
		Top:    titleLines,
		LabelW: hourLabelWidth,
		CellW:  cellW,
		Cols:   cols,
		Rows:   rows,
	}
	if height > 0 {
		g.Visible = min(max(height-titleLines-view.FooterHeight-gridChrome, 1), rows)
		g.Offset = min(max(gridOffset, 0), rows-g.Visible)
	}

	visible := rows + 1
	if height > 0 {
		visible = min(visible, height-titleLines-view.FooterHeight-3)
	}
	visible = max(visible, 1)

	return Layout{
		Width:  width,
		Height: height,
		Grid:   g,
		List: view.ListGeometry{
			Left:    g.Width() + panelGap,
			Top:     titleLines,
			InnerW:  stagingInnerW,
			Visible: visible,
			Offset:  listOffset,
		},
	}
}

// inBody reports whether screen line y lies between the title bar and the footer.
func (l Layout) inBody(y int) bool {
	if l.Height <= 0 {
		return true
	}
	return y >= titleLines && y < titleLines+l.bodyHeight()
}

// bodyHeight is the number of lines between the title bar and the footer.
func (l Layout) bodyHeight() int {
	return max(l.Height-titleLines-view.FooterHeight, 0)
}
