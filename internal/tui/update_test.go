package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/skema/internal/board"
	"github.com/javiermolinar/skema/internal/config"
	"github.com/javiermolinar/skema/internal/drag"
	"github.com/javiermolinar/skema/internal/slot"
	"github.com/javiermolinar/skema/internal/tui/commands"
)

var errTest = errors.New("boom")

func newTestModel(t *testing.T, opts ...ModelOption) Model {
	t.Helper()
	b, err := board.New(board.DefaultConfig())
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	m := New(b, config.Default(), opts...)
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func occupantLabels(t *testing.T, m Model, k slot.Key) []string {
	t.Helper()
	items, err := m.board.OccupantsOf(k)
	if err != nil {
		t.Fatalf("OccupantsOf(%s): %v", k, err)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

func TestAddItemSelectsNewest(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "a", "a")

	if got := len(m.board.Items()); got != 3 {
		t.Fatalf("items = %d, want 3", got)
	}
	if m.selected != 2 {
		t.Fatalf("selected = %d, want 2", m.selected)
	}
	if m.statusMsg != "Added Event 3" {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestKeyboardDragDropsOnCursor(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "a", "k")
	if m.selected != 0 {
		t.Fatalf("selected = %d, want 0", m.selected)
	}

	m = press(t, m, "space")
	dv := m.board.Drag()
	if dv.State != drag.Over || !dv.IsDraggingItem(0) {
		t.Fatalf("after pick: state=%s item=%d", dv.State, dv.Item.ID)
	}
	if m.focus != FocusGrid {
		t.Fatalf("focus = %s, want grid", m.focus)
	}
	if !dv.IsOver(slot.Key{Day: "Monday", Hour: 8}) {
		t.Fatalf("hover = %s, want Monday-8", dv.Target)
	}

	m = press(t, m, "l", "j")
	if !m.board.Drag().IsOver(slot.Key{Day: "Tuesday", Hour: 9}) {
		t.Fatalf("hover = %s, want Tuesday-9", m.board.Drag().Target)
	}

	m = press(t, m, "enter")
	if m.board.Drag().Active() {
		t.Fatal("drag still active after drop")
	}
	if got := occupantLabels(t, m, slot.Key{Day: "Tuesday", Hour: 9}); len(got) != 1 || got[0] != "Event 1" {
		t.Fatalf("Tuesday-9 = %v, want [Event 1]", got)
	}
	if m.focus != FocusStaging {
		t.Fatalf("focus = %s, want staging", m.focus)
	}
	if m.statusMsg != "Dropped Event 1 on Tuesday-9" {
		t.Fatalf("status = %q", m.statusMsg)
	}
	if got := len(m.board.Items()); got != 2 {
		t.Fatalf("dropped event left the staging list: %d items", got)
	}
}

func TestKeyboardDropStacksOccupants(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "a", "k")
	m = press(t, m, "space", "enter")
	m = press(t, m, "j", "space", "enter")

	got := occupantLabels(t, m, slot.Key{Day: "Monday", Hour: 8})
	if strings.Join(got, ",") != "Event 1,Event 2" {
		t.Fatalf("Monday-8 = %v, want [Event 1 Event 2]", got)
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "space", "l", "esc")

	if m.board.Drag().Active() {
		t.Fatal("drag still active after esc")
	}
	if n := m.board.Snapshot().Assignments.Assigned(); n != 0 {
		t.Fatalf("assigned = %d after cancel, want 0", n)
	}
	if m.statusMsg != "Drag cancelled" {
		t.Fatalf("status = %q", m.statusMsg)
	}
	if m.focus != FocusStaging {
		t.Fatalf("focus = %s, want staging", m.focus)
	}
}

func TestPickWithoutEvents(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "space")
	if m.board.Drag().Active() {
		t.Fatal("drag started with no events")
	}
	if !strings.Contains(m.statusMsg, "No events yet") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestAddWhileDraggingKeepsGesture(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "space", "a")

	if !m.board.Drag().IsDraggingItem(0) {
		t.Fatal("adding an event interrupted the drag")
	}
	if m.selected != 0 {
		t.Fatalf("selected moved to %d during drag", m.selected)
	}
	if got := len(m.board.Items()); got != 2 {
		t.Fatalf("items = %d, want 2", got)
	}
}

func TestGridFocusAndCursor(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want Position
	}{
		{name: "start", keys: nil, want: Position{0, 0}},
		{name: "clamp_left_up", keys: []string{"h", "k"}, want: Position{0, 0}},
		{name: "move", keys: []string{"l", "l", "j"}, want: Position{2, 1}},
		{name: "clamp_right", keys: []string{"l", "l", "l", "l", "l", "l"}, want: Position{4, 0}},
		{name: "clamp_down", keys: []string{"j", "j", "j", "j", "j", "j", "j", "j", "j", "j", "j"}, want: Position{0, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m = press(t, m, "tab")
			if m.focus != FocusGrid {
				t.Fatalf("focus = %s, want grid", m.focus)
			}
			m = press(t, m, tt.keys...)
			if m.cursor != tt.want {
				t.Fatalf("cursor = %+v, want %+v", m.cursor, tt.want)
			}
		})
	}
}

func TestGridPickDescribesCell(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "space")
	if m.statusMsg != "Monday-8 is empty" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	m = press(t, m, "tab", "a", "space", "enter", "tab", "space")
	if m.statusMsg != "Monday-8: Event 1" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	m = press(t, m, "esc")
	if m.focus != FocusStaging {
		t.Fatalf("esc in grid: focus = %s, want staging", m.focus)
	}
}

func TestHelpOverlaySwallowsKeys(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "?")
	if !m.overlay.Active() {
		t.Fatal("overlay not shown")
	}

	m = press(t, m, "a")
	if got := len(m.board.Items()); got != 0 {
		t.Fatalf("key reached the board under the overlay: %d items", got)
	}

	m = press(t, m, "esc")
	if m.overlay.Active() {
		t.Fatal("esc did not close the overlay")
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t)
			_, cmd := m.Update(keyMsg(k))
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Fatalf("command returned %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestStatusClearsAfterDuration(t *testing.T) {
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	m := newTestModel(t, WithClock(func() time.Time { return now }))
	m = press(t, m, "a")
	if m.statusMsg == "" {
		t.Fatal("expected status after add")
	}

	m = send(t, m, commands.ClearStatusMsg{})
	if m.statusMsg == "" {
		t.Fatal("status cleared before its duration elapsed")
	}

	now = now.Add(commands.StatusDuration)
	m = send(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "" {
		t.Fatalf("status = %q, want cleared", m.statusMsg)
	}
}

func TestErrMsgShowsError(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, commands.ErrMsg{Err: errTest})
	if !m.statusErr || m.statusMsg != "Error: boom" {
		t.Fatalf("status = %q err=%v", m.statusMsg, m.statusErr)
	}
}

func TestConfigReloadAppliesTheme(t *testing.T) {
	m := newTestModel(t)
	before := m.styles.TitleStyle.Render("x")

	cfg := config.Default()
	cfg.UI.Theme = "light"
	m = send(t, m, commands.ConfigReloadedMsg{Config: cfg})

	if m.theme.Name != "light" {
		t.Fatalf("theme = %q, want light", m.theme.Name)
	}
	if m.styles.TitleStyle.Render("x") == before {
		t.Fatal("styles not rebuilt for the new theme")
	}
	if m.statusMsg != "Theme: light" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	m = send(t, m, commands.ConfigReloadedMsg{Err: errTest})
	if !m.statusErr || !strings.Contains(m.statusMsg, "Config reload failed") {
		t.Fatalf("status = %q err=%v", m.statusMsg, m.statusErr)
	}
	if m.theme.Name != "light" {
		t.Fatalf("failed reload changed theme to %q", m.theme.Name)
	}
}

func TestWindowSizeRebuildsLayout(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 50, Height: 12})

	if m.layout.Grid.CellW != minCellW {
		t.Fatalf("cell width = %d, want %d", m.layout.Grid.CellW, minCellW)
	}
	if want := 12 - titleLines - 2 - 3; m.layout.List.Visible != want {
		t.Fatalf("visible = %d, want %d", m.layout.List.Visible, want)
	}
	if m.layout.List.Left != m.layout.Grid.Width()+panelGap {
		t.Fatalf("list left = %d, grid width = %d", m.layout.List.Left, m.layout.Grid.Width())
	}
}

func TestListScrollsToSelection(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 12})
	visible := m.layout.List.Visible

	for range visible + 3 {
		m = press(t, m, "a")
	}
	if m.selected != visible+2 {
		t.Fatalf("selected = %d", m.selected)
	}
	if m.listOffset != 3 {
		t.Fatalf("offset = %d, want 3", m.listOffset)
	}

	for range visible + 2 {
		m = press(t, m, "k")
	}
	if m.selected != 0 || m.listOffset != 0 {
		t.Fatalf("selected = %d offset = %d, want 0/0", m.selected, m.listOffset)
	}
}

func TestKeyboardDragScrollsGrid(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 12})
	m = press(t, m, "a", "space", "j", "j", "j", "j", "j", "j")

	if m.cursor.Row != 6 || m.gridOffset != 2 {
		t.Fatalf("cursor row = %d offset = %d, want 6 and 2", m.cursor.Row, m.gridOffset)
	}
	out := m.View()
	if !strings.Contains(out, "14:00") || strings.Contains(out, "08:00") {
		t.Fatalf("grid did not scroll to the cursor:\n%s", out)
	}

	m = press(t, m, "enter")
	if got := occupantLabels(t, m, slot.Key{Day: "Monday", Hour: 14}); len(got) != 1 {
		t.Fatalf("Monday-14 = %v, want one occupant", got)
	}

	m = press(t, m, "tab", "k", "k", "k", "k", "k", "k")
	if m.gridOffset != 0 {
		t.Fatalf("offset = %d after moving back up, want 0", m.gridOffset)
	}
}
