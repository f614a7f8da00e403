package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayModel splices a centered box over the base view. The box is
// filled with the overlay background so base content never shows through.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Toggle flips the overlay visibility.
func (o *OverlayModel) Toggle() {
	o.active = !o.active
}

// Close hides the overlay.
func (o *OverlayModel) Close() {
	o.active = false
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the overlay background color.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws content centered on top of base.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}
	box := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(box) == 0 || content == "" {
		return base
	}

	boxW := 0
	for _, line := range box {
		boxW = max(boxW, lipgloss.Width(line))
	}
	boxW = min(boxW, width)
	if len(box) > height {
		box = box[:height]
	}

	top := (height - len(box)) / 2
	left := (width - boxW) / 2

	bgSeq := ""
	if o.bgColor != "" {
		bgSeq = ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bgColor))).String()
	}

	lines := normalizeLines(base, width, height)
	for i, line := range box {
		if lw := lipgloss.Width(line); lw > boxW {
			line = ansi.Cut(line, 0, boxW)
		} else if lw < boxW {
			line += bgSeq + strings.Repeat(" ", boxW-lw)
		}
		row := top + i
		lines[row] = ansi.Cut(lines[row], 0, left) +
			bgSeq + line + ansi.ResetStyle +
			ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// normalizeLines returns exactly height lines, each exactly width cells wide.
func normalizeLines(content string, width, height int) []string {
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		lw := lipgloss.Width(line)
		switch {
		case lw > width:
			lines[i] = ansi.Cut(line, 0, width)
		case lw < width:
			lines[i] = line + strings.Repeat(" ", width-lw)
		}
	}
	return lines
}
