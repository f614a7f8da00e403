package integration

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/skema/internal/assign"
	"github.com/javiermolinar/skema/internal/board"
	"github.com/javiermolinar/skema/internal/config"
	"github.com/javiermolinar/skema/internal/drag"
	"github.com/javiermolinar/skema/internal/export"
	"github.com/javiermolinar/skema/internal/slot"
	"github.com/javiermolinar/skema/internal/tui"
)

// openBoard loads a config file with the given TOML and builds a board from it.
func openBoard(t *testing.T, toml string) (*board.Board, *config.Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	bc, err := cfg.BoardConfig()
	if err != nil {
		t.Fatalf("board config: %v", err)
	}
	b, err := board.New(bc)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	return b, cfg
}

// mustKey parses a key that must exist in the board's grid.
func mustKey(t *testing.T, b *board.Board, s string) slot.Key {
	t.Helper()
	k, err := b.Grid().Parse(s)
	if err != nil {
		t.Fatalf("parsing key %q: %v", s, err)
	}
	return k
}

func labelsAt(t *testing.T, b *board.Board, k slot.Key) []string {
	t.Helper()
	items, err := b.OccupantsOf(k)
	if err != nil {
		t.Fatalf("OccupantsOf(%s): %v", k, err)
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestSingleAxisSingleOccupant(t *testing.T) {
	b, _ := openBoard(t, `
[grid]
shape = "single-axis"

[assign]
policy = "single"
`)
	if got := len(b.Keys()); got != 9 {
		t.Fatalf("keys = %d, want 9", got)
	}

	b.AddItem()
	b.AddItem()
	nine := mustKey(t, b, "9")
	if err := b.Drop(0, nine); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := b.Drop(1, nine); err != nil {
		t.Fatalf("drop: %v", err)
	}

	if got := labelsAt(t, b, nine); strings.Join(got, ",") != "Event 2" {
		t.Fatalf("slot 9 = %v, want [Event 2]", got)
	}
	if got := len(b.Items()); got != 2 {
		t.Fatalf("items = %d, want 2 (dropping never removes)", got)
	}
}

func TestTwoAxisMultiOccupant(t *testing.T) {
	b, _ := openBoard(t, "")
	if got := len(b.Keys()); got != 45 {
		t.Fatalf("keys = %d, want 45", got)
	}

	for range 3 {
		b.AddItem()
	}
	mon9 := mustKey(t, b, "Monday-9")
	for _, id := range []int{0, 1, 0} {
		if err := b.Drop(id, mon9); err != nil {
			t.Fatalf("drop %d: %v", id, err)
		}
	}
	if got := labelsAt(t, b, mon9); strings.Join(got, ",") != "Event 1,Event 2,Event 1" {
		t.Fatalf("Monday-9 = %v, want arrival order with duplicate", got)
	}
}

func TestCancelledGestureLeavesBoardUntouched(t *testing.T) {
	b, _ := openBoard(t, "")
	b.AddItem()
	before := b.Snapshot()

	if err := b.BeginDrag(0); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	b.Hover(mustKey(t, b, "Tuesday-10"))
	b.LeaveSlot()
	outcome, err := b.Release()
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if outcome != drag.OutcomeCancelled {
		t.Fatalf("outcome = %s, want cancelled", outcome)
	}

	if b.Snapshot().Version() != before.Version() {
		t.Fatal("cancelled drop changed the board")
	}
	if b.Drag().Active() {
		t.Fatal("controller not idle after release")
	}
}

func TestInvalidDropsRejected(t *testing.T) {
	b, _ := openBoard(t, "")
	b.AddItem()

	if err := b.Drop(0, slot.Key{Day: "Monday", Hour: 20}); !errors.Is(err, assign.ErrInvalidSlotKey) {
		t.Fatalf("err = %v, want ErrInvalidSlotKey", err)
	}
	if err := b.Drop(7, mustKey(t, b, "Monday-9")); !errors.Is(err, board.ErrUnknownItem) {
		t.Fatalf("err = %v, want ErrUnknownItem", err)
	}
	if n := b.Snapshot().Assignments.Assigned(); n != 0 {
		t.Fatalf("assigned = %d, want 0", n)
	}
}

func TestSubscribersSeeEveryChange(t *testing.T) {
	b, _ := openBoard(t, "")
	var kinds []string
	cancel := b.Subscribe(func(e board.Event) {
		kinds = append(kinds, e.Kind.String())
	})

	b.AddItem()
	if err := b.Drop(0, mustKey(t, b, "Friday-16")); err != nil {
		t.Fatal(err)
	}
	cancel()
	b.AddItem()

	if got := strings.Join(kinds, ","); got != "item_added,slot_assigned" {
		t.Fatalf("events = %s", got)
	}
}

// The TUI and the export read the same board: a keyboard drag shows up in
// the plain-text export and the iCalendar file.
func TestKeyboardDragToExport(t *testing.T) {
	b, cfg := openBoard(t, "")
	var m tea.Model = tui.New(b, cfg)

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("a")},
		{Type: tea.KeySpace, Runes: []rune(" ")},
		{Type: tea.KeyRunes, Runes: []rune("l")},
		{Type: tea.KeyRunes, Runes: []rune("j")},
		{Type: tea.KeyEnter},
	}
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	for _, k := range keys {
		m, _ = m.Update(k)
	}

	tue9 := mustKey(t, b, "Tuesday-9")
	if got := labelsAt(t, b, tue9); strings.Join(got, ",") != "Event 1" {
		t.Fatalf("Tuesday-9 = %v", got)
	}
	if !strings.Contains(m.View(), "Event 1") {
		t.Fatal("view does not show the event")
	}

	snap := b.Snapshot()
	text := export.Text(snap.Assignments, b.Grid(), snap.Items)
	if !strings.Contains(text, "Tuesday-9: Event 1") {
		t.Fatalf("text export = %q", text)
	}

	ics, err := export.ICS(snap.Assignments, b.Grid(), export.Options{From: mustDate(t, "2025-01-06")})
	if err != nil {
		t.Fatalf("ICS: %v", err)
	}
	if !strings.Contains(ics, "UID:0-Tuesday-9-0@skema") || !strings.Contains(ics, "DTSTART:20250107T090000Z") {
		t.Fatalf("ics missing Tuesday-9 event:\n%s", ics)
	}
}

func TestMouseDragUsesLayout(t *testing.T) {
	b, cfg := openBoard(t, "")
	var m tea.Model = tui.New(b, cfg, tui.WithMouse(true))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	// Locate the staged event and the Monday 08:00 cell in the rendered view.
	lines := strings.Split(stripANSI(m.View()), "\n")
	itemX, itemY := find(lines, "Event 1")
	cellX, cellY := find(lines, "08:00")
	if itemY < 0 || cellY < 0 {
		t.Fatalf("could not locate targets in view")
	}
	cellX += len("08:00") + 1

	m, _ = m.Update(tea.MouseMsg{X: itemX, Y: itemY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !b.Drag().IsDraggingItem(0) {
		t.Fatalf("press did not pick up the event: %+v", b.Drag())
	}
	m, _ = m.Update(tea.MouseMsg{X: cellX, Y: cellY, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if !b.Drag().IsOver(mustKey(t, b, "Monday-8")) {
		t.Fatalf("hover = %s, want Monday-8", b.Drag().Target)
	}
	_, _ = m.Update(tea.MouseMsg{X: cellX, Y: cellY, Action: tea.MouseActionRelease})

	if got := labelsAt(t, b, mustKey(t, b, "Monday-8")); len(got) != 1 {
		t.Fatalf("Monday-8 = %v, want one occupant", got)
	}
}
