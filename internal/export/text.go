package export

import (
	"strings"

	"github.com/javiermolinar/skema/internal/assign"
	"github.com/javiermolinar/skema/internal/event"
	"github.com/javiermolinar/skema/internal/slot"
)

// Text renders the board as plain text: one line per occupied slot in grid
// order, then the staging list.
func Text(snap assign.Snapshot, grid *slot.Grid, items []event.Item) string {
	var b strings.Builder

	assigned := 0
	for _, k := range grid.Keys() {
		occupants := snap.OccupantsOf(k)
		if len(occupants) == 0 {
			continue
		}
		assigned++
		b.WriteString(k.String())
		b.WriteString(": ")
		b.WriteString(JoinLabels(occupants))
		b.WriteByte('\n')
	}
	if assigned == 0 {
		b.WriteString("(no assignments)\n")
	}

	b.WriteString("\nEvents: ")
	if len(items) == 0 {
		b.WriteString("(none)")
	} else {
		b.WriteString(JoinLabels(items))
	}
	b.WriteByte('\n')
	return b.String()
}

// JoinLabels joins item labels with ", " in the given order.
func JoinLabels(items []event.Item) string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return strings.Join(labels, ", ")
}
