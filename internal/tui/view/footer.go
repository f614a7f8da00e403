package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterViewState holds the status and help lines.
type FooterViewState struct {
	InnerW      int
	StatusText  string
	HelpText    string
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	Bg          lipgloss.Color
}

// FooterHeight is the number of lines RenderFooter produces.
const FooterHeight = 2

// RenderFooter renders the status line above the key help line.
func RenderFooter(state FooterViewState) string {
	status := footerLine(state.InnerW, state.StatusStyle, state.StatusText)
	help := footerLine(state.InnerW, state.HelpStyle, state.HelpText)
	return PlaceBox(state.InnerW, FooterHeight, lipgloss.Bottom, status+"\n"+help, state.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(width-frameW, 0)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Width(contentWidth).Render(content)
}

// TitleBar renders the one-line application header.
func TitleBar(width int, style lipgloss.Style, title, info string) string {
	line := title
	if info != "" {
		line += "  " + info
	}
	return footerLine(width, style, line)
}
