package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Rows above the first slot row: top border, header, header separator.
const gridHeaderLines = 3

// GridGeometry places the slot table on screen. The table uses a rounded
// border with column separators and no row separators, so every slot row is
// exactly one line and every column has a fixed width.
type GridGeometry struct {
	Left   int // x of the left border
	Top    int // y of the top border
	LabelW int // hour label column
	CellW  int // every slot column
	Cols   int
	Rows   int // every hour in the grid
	// Visible is the number of rows that fit on screen; zero shows them all.
	Visible int
	Offset  int // first shown row
}

// Shown returns how many rows are rendered.
func (g GridGeometry) Shown() int {
	if g.Visible <= 0 || g.Visible > g.Rows-g.Offset {
		return max(g.Rows-g.Offset, 0)
	}
	return g.Visible
}

// Width returns the rendered table width including borders.
func (g GridGeometry) Width() int {
	return 2 + g.LabelW + g.Cols*(g.CellW+1)
}

// Height returns the rendered table height including borders.
func (g GridGeometry) Height() int {
	return g.Shown() + gridHeaderLines + 1
}

// CellOrigin returns the screen position of the first character of a cell.
// Rows scrolled out of view get positions outside the table.
func (g GridGeometry) CellOrigin(col, row int) (x, y int) {
	return g.Left + 2 + g.LabelW + col*(g.CellW+1), g.Top + gridHeaderLines + row - g.Offset
}

// CellAt maps a screen position to the slot cell under it. Borders,
// separators, headers, the label column and rows that are not shown hit nothing.
func (g GridGeometry) CellAt(x, y int) (col, row int, ok bool) {
	line := y - g.Top - gridHeaderLines
	if line < 0 || line >= g.Shown() {
		return 0, 0, false
	}
	row = g.Offset + line
	rel := x - (g.Left + 2 + g.LabelW)
	if rel < 0 || g.CellW <= 0 {
		return 0, 0, false
	}
	col = rel / (g.CellW + 1)
	if col >= g.Cols || rel%(g.CellW+1) >= g.CellW {
		return 0, 0, false
	}
	return col, row, true
}

// ScrollTo returns the offset that keeps row on screen.
func (g GridGeometry) ScrollTo(row int) int {
	offset := g.Offset
	if row < offset {
		offset = row
	}
	if g.Visible > 0 && row >= offset+g.Visible {
		offset = row - g.Visible + 1
	}
	return min(max(offset, 0), max(g.Rows-1, 0))
}

// GridViewState holds everything needed to render the slot table.
type GridViewState struct {
	Geometry    GridGeometry
	Headers     []string // one per slot column
	Labels      []string // one per row, shown or not
	Cells       [][]string
	CellStyles  [][]lipgloss.Style
	HeaderStyle lipgloss.Style
	LabelStyle  lipgloss.Style
	BorderStyle lipgloss.Style
}

// RenderGrid renders the slot table. Cell text is fitted to the geometry so
// the table's natural column widths match it exactly.
func RenderGrid(state GridViewState) string {
	g := state.Geometry
	if g.Cols <= 0 || g.Shown() <= 0 {
		return ""
	}

	headers := make([]string, 0, g.Cols+1)
	headers = append(headers, Fit("", g.LabelW))
	for c := 0; c < g.Cols; c++ {
		h := ""
		if c < len(state.Headers) {
			h = state.Headers[c]
		}
		headers = append(headers, Fit(h, g.CellW))
	}

	shown := g.Shown()
	rows := make([][]string, shown)
	for i := range shown {
		r := g.Offset + i
		label := ""
		if r < len(state.Labels) {
			label = state.Labels[r]
		}
		row := make([]string, 0, g.Cols+1)
		row = append(row, Fit(label, g.LabelW))
		for c := 0; c < g.Cols; c++ {
			cell := ""
			if r < len(state.Cells) && c < len(state.Cells[r]) {
				cell = state.Cells[r][c]
			}
			row = append(row, Fit(cell, g.CellW))
		}
		rows[i] = row
	}

	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.BorderStyle).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row != table.HeaderRow {
				row += g.Offset
			}
			switch {
			case row == table.HeaderRow:
				if col == 0 {
					return state.LabelStyle
				}
				return state.HeaderStyle
			case col == 0:
				return state.LabelStyle
			case row >= 0 && row < len(state.CellStyles) && col-1 < len(state.CellStyles[row]):
				return state.CellStyles[row][col-1]
			default:
				return lipgloss.NewStyle()
			}
		})

	return t.Render()
}
