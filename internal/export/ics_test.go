package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/skema/internal/assign"
	"github.com/javiermolinar/skema/internal/event"
	"github.com/javiermolinar/skema/internal/slot"
)

// Wednesday, 2025-01-08.
var anchor = time.Date(2025, 1, 8, 15, 30, 0, 0, time.UTC)

func TestSlotStart(t *testing.T) {
	tests := []struct {
		name string
		key  slot.Key
		want time.Time
	}{
		{name: "same weekday", key: slot.Key{Day: "Wednesday", Hour: 9}, want: time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)},
		{name: "later weekday", key: slot.Key{Day: "Friday", Hour: 16}, want: time.Date(2025, 1, 10, 16, 0, 0, 0, time.UTC)},
		{name: "earlier weekday wraps", key: slot.Key{Day: "Monday", Hour: 8}, want: time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC)},
		{name: "single axis", key: slot.Key{Hour: 11}, want: time.Date(2025, 1, 8, 11, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SlotStart(tt.key, anchor)
			if err != nil {
				t.Fatalf("SlotStart failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("SlotStart(%v) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestSlotStart_UnknownDay(t *testing.T) {
	if _, err := SlotStart(slot.Key{Day: "Funday", Hour: 9}, anchor); !errors.Is(err, ErrNoOccurrence) {
		t.Errorf("error = %v, want ErrNoOccurrence", err)
	}
}

func TestWeeklyRule(t *testing.T) {
	got := WeeklyRule(4)
	if !strings.Contains(got, "FREQ=WEEKLY") || !strings.Contains(got, "COUNT=4") {
		t.Errorf("WeeklyRule(4) = %q", got)
	}
	if strings.Contains(got, "DTSTART") {
		t.Errorf("WeeklyRule should not carry DTSTART: %q", got)
	}
}

func TestICS(t *testing.T) {
	grid, err := slot.NewGrid(slot.DefaultConfig())
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	reg := event.NewRegistry()
	e1, e2 := reg.Create(), reg.Create()
	store := assign.New(grid, assign.Multi, reg)
	_ = store.Assign(e1, slot.Key{Day: "Monday", Hour: 9})
	_ = store.Assign(e2, slot.Key{Day: "Monday", Hour: 9})
	_ = store.Assign(e1, slot.Key{Day: "Thursday", Hour: 14})

	out, err := ICS(store.Snapshot(), grid, Options{
		From:  anchor,
		Weeks: 3,
		Now:   func() time.Time { return anchor },
	})
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}

	if n := strings.Count(out, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("got %d events, want 3:\n%s", n, out)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"SUMMARY:Event 1",
		"SUMMARY:Event 2",
		"UID:0-Monday-9-0@skema",
		"UID:1-Monday-9-1@skema",
		"UID:0-Thursday-14-0@skema",
		"DTSTART:20250113T090000Z",
		"DTSTART:20250109T140000Z",
		"RRULE:FREQ=WEEKLY;COUNT=3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestICS_EmptyBoard(t *testing.T) {
	grid, _ := slot.NewGrid(slot.Config{Shape: slot.SingleAxis, HourStart: 8, HourEnd: 16})
	store := assign.New(grid, assign.Single, nil)

	out, err := ICS(store.Snapshot(), grid, Options{From: anchor})
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Errorf("empty board produced events:\n%s", out)
	}
	if strings.Contains(out, "RRULE") {
		t.Error("no RRULE expected without weeks")
	}
}
