// Package dateutil resolves the dates an export starts from.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned for input ParseStart does not recognise.
var ErrInvalidDate = errors.New("date must be YYYY-MM-DD, today, tomorrow, this-week, next-week or a weekday name")

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns midnight of the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// ParseStart parses the first day of an export, relative to now.
//   - "" or "today": today
//   - "tomorrow", "next-week" (seven days from today)
//   - "this-week": Monday of the current week
//   - weekday names: the next such day, today included
//   - "YYYY-MM-DD", past dates allowed
//
// Input is case-insensitive. The result is midnight in now's location.
func ParseStart(s string, now time.Time) (time.Time, error) {
	today := TruncateToDay(now)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	case "this-week":
		return WeekStart(today), nil
	}

	if target, ok := weekdayMap[input]; ok {
		return onOrAfter(today, target), nil
	}

	result, err := time.ParseInLocation(time.DateOnly, input, now.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return result, nil
}

// onOrAfter returns the first day on or after today that falls on target.
func onOrAfter(today time.Time, target time.Weekday) time.Time {
	days := (int(target) - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, days)
}
