// Package recurrence computes the "current window" for a list's recurrence
// schedule and filters expenses against it. All functions are pure; the
// reference instant is always supplied by the caller.
package recurrence

import (
	"time"

	"splitlist/internal/models"
)

// UnknownPeriodMode selects how an unrecognized recurrence period is treated.
type UnknownPeriodMode string

const (
	// UnknownPeriodAll treats an unrecognized period like a one-time
	// recurrence: no filtering at all.
	UnknownPeriodAll UnknownPeriodMode = "all"
	// UnknownPeriodDay narrows an unrecognized period to the reference
	// instant's day, consistent with the custom-period fallback.
	UnknownPeriodDay UnknownPeriodMode = "day"
)

// Window is an inclusive date range. All marks the full-range sentinel,
// meaning no filtering should occur; Start and End are zero in that case.
type Window struct {
	Start time.Time
	End   time.Time
	All   bool
}

// FullRange returns the sentinel window that passes every expense.
func FullRange() Window {
	return Window{All: true}
}

// Contains reports whether t falls inside the window, inclusive on both
// ends. Full-range windows contain everything.
func (w Window) Contains(t time.Time) bool {
	if w.All {
		return true
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// ComputeWindow derives the current window for a recurrence at the given
// reference instant. A nil or one-time recurrence yields the full range.
func ComputeWindow(rec *models.Recurrence, now time.Time, unknown UnknownPeriodMode) Window {
	if rec == nil || rec.Type != models.RecurrenceRecurring {
		return FullRange()
	}

	switch rec.Period {
	case models.PeriodDaily:
		return dayWindow(now)

	case models.PeriodWeekly:
		// Calendar week, Sunday first.
		start := StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		return Window{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}

	case models.PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{Start: start, End: EndOfDay(start.AddDate(0, 1, -1))}

	case models.PeriodYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return Window{Start: start, End: EndOfDay(time.Date(now.Year(), 12, 31, 0, 0, 0, 0, now.Location()))}

	case models.PeriodCustom:
		// A set interval toggles a fixed 7-day window on; the interval
		// value itself does not size the window. Without one the window
		// collapses to the current day.
		start := StartOfDay(now)
		if rec.Interval != 0 {
			return Window{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}
		}
		return Window{Start: start, End: EndOfDay(now)}

	default:
		if unknown == UnknownPeriodDay {
			return dayWindow(now)
		}
		return FullRange()
	}
}

func dayWindow(now time.Time) Window {
	return Window{Start: StartOfDay(now), End: EndOfDay(now)}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// NoonUTC normalizes t to 12:00 UTC of its calendar day. Storing expense
// dates at midday keeps the calendar day stable under timezone conversion.
func NoonUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}
