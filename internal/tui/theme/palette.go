package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Item        lipgloss.Color
	Target      lipgloss.Color
	Warning     lipgloss.Color

	ItemBg   lipgloss.Color // assigned cell background
	TargetBg lipgloss.Color // hovered cell background
	Faded    lipgloss.Color // dragged event text

	TextOnAccent  lipgloss.Color
	TextOnItem    lipgloss.Color
	TextOnTarget  lipgloss.Color
	TextOnWarning lipgloss.Color

	OverlayBg     lipgloss.Color
	OverlayBorder lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := IsLight(t.Bg)
	itemBg := cellBackground(t.Item, t.Bg, light)
	targetBg := cellBackground(t.Target, t.Bg, light)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Item:        lipgloss.Color(t.Item),
		Target:      lipgloss.Color(t.Target),
		Warning:     lipgloss.Color(t.Warning),

		ItemBg:   lipgloss.Color(itemBg),
		TargetBg: lipgloss.Color(targetBg),
		Faded:    lipgloss.Color(Blend(t.FgMuted, t.Bg, 0.4)),

		TextOnAccent:  lipgloss.Color(TextFor(t.Accent, t.Bg, t.Fg)),
		TextOnItem:    lipgloss.Color(TextFor(itemBg, t.Bg, t.Fg)),
		TextOnTarget:  lipgloss.Color(TextFor(targetBg, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(TextFor(t.Warning, t.Bg, t.Fg)),

		OverlayBg:     lipgloss.Color(coalesce(t.OverlayBg, t.BgHighlight, t.Bg)),
		OverlayBorder: lipgloss.Color(coalesce(t.OverlayBorder, t.Accent)),
	}
}

// cellBackground tints the base background with an accent so cell text stays readable.
func cellBackground(accent, bg string, light bool) string {
	if light {
		return Blend(accent, bg, 0.75)
	}
	return Blend(accent, bg, 0.55)
}

// Blend mixes a toward b by ratio (0 keeps a, 1 yields b).
// Invalid hex input returns a unchanged.
func Blend(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	ratio = min(max(ratio, 0), 1)
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

// IsLight reports whether bg is a light background.
func IsLight(bg string) bool {
	return luminance(bg) > 0.55
}

// TextFor picks whichever of a or b contrasts more with bg.
func TextFor(bg, a, b string) string {
	if contrast(bg, a) >= contrast(bg, b) {
		return a
	}
	return b
}

func contrast(a, b string) float64 {
	l1, l2 := luminance(a), luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// luminance is the WCAG relative luminance; invalid colors count as black.
func luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
