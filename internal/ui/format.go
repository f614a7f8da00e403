package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/skema/internal/board"
	"github.com/javiermolinar/skema/internal/event"
	"github.com/javiermolinar/skema/internal/export"
	"github.com/javiermolinar/skema/internal/slot"
)

const (
	hourColWidth = 7 // "  08:00"
	minCellWidth = 8
	maxCellWidth = 24
)

// PrintOpts configures board printing.
type PrintOpts struct {
	Width   int  // Terminal width (0 = detect)
	Verbose bool // Also list every occupant of each used slot below the grid
}

// CellWidth returns the column width that fits cols columns in the terminal.
func (o PrintOpts) CellWidth(cols int) int {
	width := o.Width
	if width <= 0 {
		width = termWidth()
	}
	w := (width-hourColWidth)/max(cols, 1) - 2
	return min(max(w, minCellWidth), maxCellWidth)
}

// PrintBoard writes the grid and the event list.
func PrintBoard(w io.Writer, b *board.Board, opts PrintOpts) {
	snap := b.Snapshot()
	grid := b.Grid()

	header := fmt.Sprintf("SKEMA  %s · %s · %d events", grid.Shape(), b.Policy(), len(snap.Items))
	fmt.Fprintf(w, "\n  %s\n", formatDay(header))

	cellW := opts.CellWidth(grid.Columns())
	rule := strings.Repeat("─", hourColWidth+grid.Columns()*(cellW+2))
	fmt.Fprintln(w, rule)

	printGrid(w, snap, grid, cellW)

	fmt.Fprintln(w, rule)
	if opts.Verbose {
		printOccupants(w, snap, grid)
	}
	printEvents(w, snap, grid)

	used := 0
	for _, k := range grid.Keys() {
		if len(snap.OccupantsOf(k)) > 0 {
			used++
		}
	}
	fmt.Fprintf(w, "  Slots used: %s of %d\n", formatUsage(fmt.Sprintf("%d", used)), grid.Len())
}

func printGrid(w io.Writer, snap board.Snapshot, grid *slot.Grid, cellW int) {
	var head strings.Builder
	head.WriteString(strings.Repeat(" ", hourColWidth))
	if days := grid.Days(); days != nil {
		for _, d := range days {
			head.WriteString("  " + formatDay(fitCell(d, cellW)))
		}
	} else {
		head.WriteString("  " + formatDay(fitCell("Slot", cellW)))
	}
	fmt.Fprintln(w, head.String())

	for row, hour := range grid.Hours() {
		var line strings.Builder
		line.WriteString(formatDim(fmt.Sprintf("  %02d:00", hour)))
		for col := 0; col < grid.Columns(); col++ {
			k, _ := grid.Key(col, row)
			line.WriteString("  " + formatCell(snap.OccupantsOf(k), cellW))
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// formatCell pads before colouring so escape codes never count toward the width.
func formatCell(occupants []event.Item, width int) string {
	switch len(occupants) {
	case 0:
		return formatDim(fitCell("·", width))
	case 1:
		return formatOccupied(fitCell(occupants[0].Label, width))
	default:
		text := fmt.Sprintf("%s +%d", occupants[0].Label, len(occupants)-1)
		return formatOccupied(fitCell(text, width))
	}
}

// fitCell truncates s to width display cells and pads it on the right.
func fitCell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// printOccupants lists every occupant of each used slot, untruncated.
func printOccupants(w io.Writer, snap board.Snapshot, grid *slot.Grid) {
	keyW := 0
	for _, k := range grid.Keys() {
		keyW = max(keyW, runewidth.StringWidth(k.String()))
	}
	for _, k := range grid.Keys() {
		occupants := snap.OccupantsOf(k)
		if len(occupants) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s  %s\n", formatDim(runewidth.FillRight(k.String(), keyW)), export.JoinLabels(occupants))
	}
}

func printEvents(w io.Writer, snap board.Snapshot, grid *slot.Grid) {
	if len(snap.Items) == 0 {
		fmt.Fprintf(w, "  %s\n", formatDim("No events. Use --add to create some."))
		return
	}

	placements := make(map[int][]string, len(snap.Items))
	for _, k := range grid.Keys() {
		for _, item := range snap.OccupantsOf(k) {
			placements[item.ID] = append(placements[item.ID], k.String())
		}
	}

	labelW := 0
	for _, item := range snap.Items {
		labelW = max(labelW, runewidth.StringWidth(item.Label))
	}

	for _, item := range snap.Items {
		where := formatDim("unplaced")
		if p := placements[item.ID]; len(p) > 0 {
			where = strings.Join(p, ", ")
		}
		fmt.Fprintf(w, "  %3d  %s  %s\n", item.ID, runewidth.FillRight(item.Label, labelW), where)
	}
}
