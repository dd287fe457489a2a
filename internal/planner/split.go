package planner

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
)

var (
	// ErrNotRecurring is returned when splitting a one-off schedule.
	ErrNotRecurring = errors.New("schedule does not repeat")
	// ErrNoOccurrence is returned when the target date is not an occurrence of the schedule.
	ErrNoOccurrence = errors.New("schedule has no occurrence on that date")
)

// SingleSplit detaches one occurrence from a series.
type SingleSplit struct {
	// Added are the dates newly blacked out on the series.
	Added []civil.Date `json:"added_blackout_dates"`
	// Series is the original schedule with Added merged into its blackout dates.
	Series models.Schedule `json:"series"`
	// Replacement is the new one-off schedule standing in for the occurrence.
	Replacement models.Schedule `json:"replacement"`
}

// FutureSplit ends a series the day before the target and continues it in a new record.
type FutureSplit struct {
	Truncated    models.Schedule `json:"truncated"`
	Continuation models.Schedule `json:"continuation"`
}

// SplitSingleOccurrence blacks out the occurrence of s that contains target
// and builds a non-recurring replacement for it. s is not modified.
func SplitSingleOccurrence(s models.Schedule, target civil.Date) (SingleSplit, error) {
	first, last, _, err := occurrenceRun(s, target)
	if err != nil {
		return SingleSplit{}, err
	}

	var added []civil.Date
	for d := first; !d.After(last); d = d.AddDays(1) {
		added = append(added, d)
	}

	series := s.Clone()
	series.BlackoutDates = append(series.BlackoutDates, added...)

	replacement := s.Clone()
	replacement.ID = 0
	if first == last {
		replacement.StartTime, replacement.EndTime = dayInterval(s, target)
	} else {
		replacement.StartTime = atClock(first, s.StartTime)
		replacement.EndTime = atClock(last, s.EndTime)
	}
	replacement.Repeat = models.RepeatNone
	replacement.RepeatStartDate = target
	replacement.RepeatEndDate = nil
	replacement.BlackoutDates = nil

	return SingleSplit{Added: added, Series: series, Replacement: replacement}, nil
}

// SplitFutureOccurrences ends s the day before target and starts a copy of the
// series at the occurrence containing target. s is not modified.
func SplitFutureOccurrences(s models.Schedule, target civil.Date) (FutureSplit, error) {
	first, last, whole, err := occurrenceRun(s, target)
	if err != nil {
		return FutureSplit{}, err
	}

	truncated := s.Clone()
	end := target.AddDays(-1)
	truncated.RepeatEndDate = &end

	next := s.Clone()
	next.ID = 0
	next.RepeatStartDate = first
	switch {
	case s.Repeat == models.RepeatDaily:
		next.StartTime = atClock(first, s.StartTime)
		next.EndTime = next.StartTime.Add(s.EndTime.Sub(s.StartTime))
	case whole:
		// Every day is already in the bucket; moving the template would
		// change which days get its partial start and end.
	default:
		next.StartTime = atClock(first, s.StartTime)
		next.EndTime = atClock(last, s.EndTime)
	}

	return FutureSplit{Truncated: truncated, Continuation: next}, nil
}

// dayInterval is the occurrence of s on day as OccupiedHours charges it,
// placed inside day so a one-off copy is charged the same hours. A daily
// occurrence running past midnight is moved back to end at the close of day.
func dayInterval(s models.Schedule, day civil.Date) (time.Time, time.Time) {
	loc := s.StartTime.Location()
	if s.Repeat != models.RepeatDaily {
		start, end := occurrenceInterval(s, day)
		if end.Before(start) {
			end = start
		}
		return start, end
	}

	length := s.EndTime.Sub(s.StartTime)
	start := atClock(day, s.StartTime)
	end := start.Add(length)
	if closing := endOfDay(day, loc); end.After(closing) {
		end = closing
		start = end.Add(-length)
		if opening := startOfDay(day, loc); start.Before(opening) {
			start = opening
		}
	}
	return start, end
}

// occurrenceRun finds the maximal run of consecutive days around target that
// fall in the schedule's recurrence bucket. Patterns whose bucket holds every
// day (daily, or a template covering the whole week/month/year) yield target
// alone and report whole.
func occurrenceRun(s models.Schedule, target civil.Date) (first, last civil.Date, whole bool, err error) {
	if !s.Repeat.Recurring() {
		return civil.Date{}, civil.Date{}, false, ErrNotRecurring
	}
	if !Occurs(s, target) {
		return civil.Date{}, civil.Date{}, false, ErrNoOccurrence
	}

	b := newBucket(s.Repeat, civil.DateOf(s.StartTime), civil.DateOf(s.EndTime))
	if b.full {
		return target, target, true, nil
	}

	first, last = target, target
	for i := 0; i < MaxRangeDays && b.contains(first.AddDays(-1)); i++ {
		first = first.AddDays(-1)
	}
	for i := 0; i < MaxRangeDays && b.contains(last.AddDays(1)); i++ {
		last = last.AddDays(1)
	}
	return first, last, false, nil
}
