package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/skema/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
// Cell and list styles carry no padding: the view fits text to exact widths.
type Styles struct {
	colorBg      lipgloss.Color
	colorAccent  lipgloss.Color
	colorOverlay lipgloss.Color

	// Title bar
	TitleStyle lipgloss.Style

	// Grid
	HeaderStyle       lipgloss.Style
	HourLabelStyle    lipgloss.Style
	EmptyCellStyle    lipgloss.Style
	ItemCellStyle     lipgloss.Style
	CursorStyle       lipgloss.Style // grid cursor, grid focused
	CursorIdleStyle   lipgloss.Style // grid cursor, staging focused
	TargetStyle       lipgloss.Style // hovered drop target
	GridBorderStyle   lipgloss.Style
	GridFocusedBorder lipgloss.Style

	// Staging panel
	StagingTitleStyle    lipgloss.Style
	StagingItemStyle     lipgloss.Style
	StagingSelectedStyle lipgloss.Style
	StagingDraggingStyle lipgloss.Style // faded while dragged
	StagingEmptyStyle    lipgloss.Style
	StagingBorderStyle   lipgloss.Style
	StagingFocusedBorder lipgloss.Style

	// Footer
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	HelpStyle        lipgloss.Style

	// Help overlay
	OverlayStyle      lipgloss.Style
	OverlayTitleStyle lipgloss.Style
	OverlayTextStyle  lipgloss.Style
	OverlayMutedStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s := &Styles{
		colorBg:      p.Bg,
		colorAccent:  p.Accent,
		colorOverlay: p.OverlayBg,
	}

	s.TitleStyle = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextOnAccent).
		Bold(true)

	s.HeaderStyle = base.Foreground(p.Accent).Bold(true)
	s.HourLabelStyle = base.Foreground(p.FgMuted)
	s.EmptyCellStyle = base
	s.ItemCellStyle = lipgloss.NewStyle().Background(p.ItemBg).Foreground(p.TextOnItem)
	s.CursorStyle = lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Fg).Bold(true)
	s.CursorIdleStyle = lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Fg)
	s.TargetStyle = lipgloss.NewStyle().Background(p.TargetBg).Foreground(p.TextOnTarget).Bold(true)
	s.GridBorderStyle = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg)
	s.GridFocusedBorder = lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg)

	s.StagingTitleStyle = base.Foreground(p.Accent).Bold(true)
	s.StagingItemStyle = base
	s.StagingSelectedStyle = lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Fg).Bold(true)
	s.StagingDraggingStyle = base.Foreground(p.Faded).Italic(true)
	s.StagingEmptyStyle = base.Foreground(p.FgMuted)
	s.StagingBorderStyle = lipgloss.NewStyle().BorderForeground(p.FgMuted).BorderBackground(p.Bg).Background(p.Bg)
	s.StagingFocusedBorder = lipgloss.NewStyle().BorderForeground(p.Accent).BorderBackground(p.Bg).Background(p.Bg)

	s.StatusStyle = base.Foreground(p.Fg)
	s.StatusErrorStyle = base.Foreground(p.Warning).Bold(true)
	s.HelpStyle = base.Foreground(p.FgMuted)

	s.OverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.OverlayBorder).
		BorderBackground(p.OverlayBg).
		Background(p.OverlayBg).
		Foreground(p.Fg).
		Padding(1, 2)
	s.OverlayTitleStyle = lipgloss.NewStyle().
		Background(p.OverlayBg).
		Foreground(p.Accent).
		Bold(true)
	s.OverlayTextStyle = lipgloss.NewStyle().Background(p.OverlayBg).Foreground(p.Fg)
	s.OverlayMutedStyle = lipgloss.NewStyle().Background(p.OverlayBg).Foreground(p.FgMuted)

	return s
}
