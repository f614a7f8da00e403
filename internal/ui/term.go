package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const fallbackWidth = 80

// Board palette for printed output.
var (
	colorOccupied = color.New(color.FgBlue, color.Bold)
	colorDay      = color.New(color.Bold)
	colorUsage    = color.New(color.FgGreen)
	colorDim      = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the width of stdout, or fallbackWidth when it is not a terminal.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// DisableColor turns off colour for every formatter in this package.
func DisableColor() {
	color.NoColor = true
}

func formatOccupied(s string) string { return colorOccupied.Sprint(s) }

func formatDay(s string) string { return colorDay.Sprint(s) }

func formatUsage(s string) string { return colorUsage.Sprint(s) }

func formatDim(s string) string { return colorDim.Sprint(s) }
