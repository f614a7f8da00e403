// Package export renders the current assignments in external calendar formats.
package export

import (
	"errors"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/skema/internal/assign"
	"github.com/javiermolinar/skema/internal/dateutil"
	"github.com/javiermolinar/skema/internal/slot"
)

// ErrNoOccurrence is returned when a slot cannot be placed on the calendar.
var ErrNoOccurrence = errors.New("slot has no calendar occurrence")

const productID = "-//skema//planner//EN"

var weekdayRules = map[string]rrule.Weekday{
	"Monday":    rrule.MO,
	"Tuesday":   rrule.TU,
	"Wednesday": rrule.WE,
	"Thursday":  rrule.TH,
	"Friday":    rrule.FR,
	"Saturday":  rrule.SA,
	"Sunday":    rrule.SU,
}

// Options controls an export.
type Options struct {
	// From anchors the export: two-axis slots land on the first matching
	// weekday on or after From's date; single-axis slots land on From's date.
	From time.Time
	// Weeks > 1 makes every event repeat weekly that many times.
	Weeks int
	// Now stamps DTSTAMP; defaults to time.Now.
	Now func() time.Time
}

// SlotStart resolves k to the first matching start time on or after from's date.
func SlotStart(k slot.Key, from time.Time) (time.Time, error) {
	day := dateutil.TruncateToDay(from)
	opt := rrule.ROption{
		Freq:     rrule.DAILY,
		Dtstart:  day,
		Byhour:   []int{k.Hour},
		Byminute: []int{0},
		Bysecond: []int{0},
		Count:    1,
	}
	if k.Day != "" {
		wd, ok := weekdayRules[k.Day]
		if !ok {
			return time.Time{}, fmt.Errorf("%w: unknown day %q", ErrNoOccurrence, k.Day)
		}
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{wd}
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return time.Time{}, fmt.Errorf("building rule for %s: %w", k, err)
	}
	all := r.All()
	if len(all) == 0 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNoOccurrence, k)
	}
	return all[0], nil
}

// WeeklyRule returns the RRULE value repeating an event for weeks weeks.
func WeeklyRule(weeks int) string {
	opt := rrule.ROption{Freq: rrule.WEEKLY, Count: weeks}
	return opt.RRuleString()
}

// ICS renders one VEVENT per occupant of every slot, in grid order.
func ICS(snap assign.Snapshot, grid *slot.Grid, opts Options) (string, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	stamp := now()

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, k := range grid.Keys() {
		occupants := snap.OccupantsOf(k)
		if len(occupants) == 0 {
			continue
		}
		start, err := SlotStart(k, opts.From)
		if err != nil {
			return "", err
		}
		for i, item := range occupants {
			ev := cal.AddEvent(fmt.Sprintf("%d-%s-%d@skema", item.ID, k, i))
			ev.SetDtStampTime(stamp)
			ev.SetStartAt(start)
			ev.SetEndAt(start.Add(time.Hour))
			ev.SetSummary(item.Label)
			ev.SetDescription(fmt.Sprintf("Slot %s", k))
			if opts.Weeks > 1 {
				ev.AddRrule(WeeklyRule(opts.Weeks))
			}
		}
	}

	return cal.Serialize(), nil
}
