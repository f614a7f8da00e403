package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListGeometry places the staging panel on screen: a rounded box with a
// title line followed by one line per visible event.
type ListGeometry struct {
	Left    int // x of the left border
	Top     int // y of the top border
	InnerW  int
	Visible int // event lines
	Offset  int // index of the first visible event
}

// Width returns the rendered panel width including borders.
func (l ListGeometry) Width() int { return l.InnerW + 2 }

// Height returns the rendered panel height including borders.
func (l ListGeometry) Height() int { return l.Visible + 3 }

// ItemAt maps a screen position to the index of the event under it.
// count is the total number of events.
func (l ListGeometry) ItemAt(x, y, count int) (int, bool) {
	if x <= l.Left || x > l.Left+l.InnerW {
		return 0, false
	}
	line := y - l.Top - 2
	if line < 0 || line >= l.Visible {
		return 0, false
	}
	idx := l.Offset + line
	if idx >= count {
		return 0, false
	}
	return idx, true
}

// ScrollTo returns the offset that keeps idx visible.
func (l ListGeometry) ScrollTo(idx int) int {
	offset := l.Offset
	if idx < offset {
		offset = idx
	}
	if l.Visible > 0 && idx >= offset+l.Visible {
		offset = idx - l.Visible + 1
	}
	return max(offset, 0)
}

// StagingViewState holds the staging panel content.
type StagingViewState struct {
	Geometry    ListGeometry
	Title       string
	Lines       []string // every event, styled per line below
	LineStyles  []lipgloss.Style
	Empty       string
	TitleStyle  lipgloss.Style
	EmptyStyle  lipgloss.Style
	BorderStyle lipgloss.Style
}

// RenderStaging renders the staging panel.
func RenderStaging(state StagingViewState) string {
	g := state.Geometry
	if g.InnerW <= 0 {
		return ""
	}

	body := make([]string, 0, g.Visible+1)
	body = append(body, state.TitleStyle.Render(Fit(state.Title, g.InnerW)))
	for i := 0; i < g.Visible; i++ {
		idx := g.Offset + i
		switch {
		case idx < len(state.Lines):
			style := lipgloss.NewStyle()
			if idx < len(state.LineStyles) {
				style = state.LineStyles[idx]
			}
			body = append(body, style.Render(Fit(state.Lines[idx], g.InnerW)))
		case i == 0 && len(state.Lines) == 0:
			body = append(body, state.EmptyStyle.Render(Fit(state.Empty, g.InnerW)))
		default:
			body = append(body, state.EmptyStyle.Render(strings.Repeat(" ", g.InnerW)))
		}
	}

	return state.BorderStyle.
		Border(lipgloss.RoundedBorder()).
		Render(strings.Join(body, "\n"))
}
