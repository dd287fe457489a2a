// Package planner resolves which recurring schedules occupy a calendar day
// and how much slack each task has left before its deadline.
//
// Everything here is a pure function of its arguments. Dates are civil.Date
// values, never mutated in place, and input slices are never modified.
package planner

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
)

// MaxRangeDays bounds every day-by-day walk in this package (about ten years).
const MaxRangeDays = 3660

// Matches reports whether a template occurrence spanning start..end recurs on day.
// Recurring patterns never match before the template's own start date.
func Matches(repeat models.Repeat, start, end time.Time, day civil.Date) bool {
	b := newBucket(repeat, civil.DateOf(start), civil.DateOf(end))
	if repeat.Recurring() && day.Before(b.first) {
		return false
	}
	return b.contains(day)
}

// bucket is the set of calendar positions (weekday, day of month, ...) that a
// template span touches under a given pattern.
type bucket struct {
	repeat      models.Repeat
	first, last civil.Date
	empty       bool
	full        bool

	weekdays  [7]bool
	monthDays [32]bool
	yearDays  [13][32]bool
}

func newBucket(repeat models.Repeat, first, last civil.Date) bucket {
	b := bucket{repeat: repeat, first: first, last: last}
	if last.Before(first) {
		b.empty = true
		return b
	}

	switch repeat {
	case models.RepeatDaily:
		b.full = true
	case models.RepeatWeekly:
		n := 0
		for d, i := first, 0; !d.After(last) && i < 7; d, i = d.AddDays(1), i+1 {
			wd := weekday(d)
			if !b.weekdays[wd] {
				b.weekdays[wd] = true
				n++
			}
		}
		b.full = n == 7
	case models.RepeatMonthly:
		n := 0
		for d, i := first, 0; !d.After(last) && i < MaxRangeDays && n < 31; d, i = d.AddDays(1), i+1 {
			if !b.monthDays[d.Day] {
				b.monthDays[d.Day] = true
				n++
			}
		}
		b.full = n == 31
	case models.RepeatYearly:
		n := 0
		for d, i := first, 0; !d.After(last) && i < MaxRangeDays && n < 366; d, i = d.AddDays(1), i+1 {
			if !b.yearDays[d.Month][d.Day] {
				b.yearDays[d.Month][d.Day] = true
				n++
			}
		}
		b.full = n == 366
	}
	return b
}

// contains reports bucket membership only; window bounds are the caller's job.
func (b bucket) contains(day civil.Date) bool {
	if b.empty {
		return false
	}
	switch b.repeat {
	case models.RepeatDaily:
		return true
	case models.RepeatWeekly:
		return b.weekdays[weekday(day)]
	case models.RepeatMonthly:
		return b.monthDays[day.Day]
	case models.RepeatYearly:
		return b.yearDays[day.Month][day.Day]
	default:
		return !day.Before(b.first) && !day.After(b.last)
	}
}

func weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// atClock places the clock time of t on day, in t's location.
func atClock(day civil.Date, t time.Time) time.Time {
	return time.Date(day.Year, day.Month, day.Day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func startOfDay(day civil.Date, loc *time.Location) time.Time {
	return day.In(loc)
}

func endOfDay(day civil.Date, loc *time.Location) time.Time {
	return time.Date(day.Year, day.Month, day.Day, 23, 59, 59, 999_000_000, loc)
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
