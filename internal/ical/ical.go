// Package ical renders a user's schedules and tasks as an iCalendar feed.
package ical

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/crucial707/dayplan/internal/models"
)

const (
	productID = "-//dayplan//planner feed//EN"
	uidDomain = "@dayplan"

	// maxAnchorSearchDays bounds the search for a series' first start; a
	// Feb 29 yearly anchor needs up to four years.
	maxAnchorSearchDays = 4*366 + 1
	icsUTC              = "20060102T150405Z"
	icsDate             = "20060102"
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://dayplan.local/calendar"))

// UID returns the stable VEVENT/VTODO uid of a record.
func UID(kind string, id int) string {
	return uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf("%s/%d", kind, id))).String() + uidDomain
}

// Build returns the serialized calendar. Times are written in UTC; loc
// decides the wall clock used for series anchors, UNTIL and EXDATE.
func Build(name string, schedules []models.Schedule, tasks []models.Task, loc *time.Location, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if name != "" {
		cal.SetXWRCalName(name)
	}
	cal.SetXWRTimezone(loc.String())

	for _, s := range schedules {
		addSchedule(cal, s, loc, stamp)
	}
	for _, t := range tasks {
		addTask(cal, t, stamp)
	}
	return cal.Serialize()
}

func addSchedule(cal *ics.Calendar, s models.Schedule, loc *time.Location, stamp time.Time) {
	start := s.StartTime.In(loc)
	end := s.EndTime.In(loc)

	if s.Repeat.Recurring() {
		anchor, ok := firstStart(s.Repeat, start, s.RepeatStartDate)
		if !ok {
			return
		}
		end = anchor.Add(end.Sub(start))
		start = anchor
	}

	ev := cal.AddEvent(UID("schedule", s.ID))
	ev.SetDtStampTime(stamp)
	if !s.CreatedAt.IsZero() {
		ev.SetCreatedTime(s.CreatedAt)
	}
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(s.Name)
	if s.Location != "" {
		ev.SetLocation(s.Location)
	}
	if s.Memo != "" {
		ev.SetDescription(s.Memo)
	}

	if !s.Repeat.Recurring() {
		return
	}
	ev.AddProperty(ics.ComponentPropertyRrule, RRule(s, loc))
	for _, d := range s.BlackoutDates {
		if d.Before(civil.DateOf(start)) || !startsOn(s.Repeat, start, d) {
			continue
		}
		ev.AddProperty(ics.ComponentPropertyExdate, atClock(d, start).UTC().Format(icsUTC))
	}
}

func addTask(cal *ics.Calendar, t models.Task, stamp time.Time) {
	todo := cal.AddTodo(UID("task", t.ID))
	todo.SetDtStampTime(stamp)
	todo.SetSummary(t.Name)
	todo.AddProperty(ics.ComponentPropertyDue, t.Deadline.In(time.UTC).Format(icsDate), ics.WithValue(string(ics.ValueDataTypeDate)))
	desc := fmt.Sprintf("estimated %.1fh", t.EstimatedHours)
	if t.Memo != "" {
		desc += "\n" + t.Memo
	}
	todo.SetDescription(desc)
}

// RRule renders the recurrence of s without DTSTART. An end date becomes
// UNTIL at the last instant of that day in loc.
func RRule(s models.Schedule, loc *time.Location) string {
	opt := rrule.ROption{Freq: frequency(s.Repeat)}
	if s.RepeatEndDate != nil {
		d := *s.RepeatEndDate
		opt.Until = time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, loc).UTC()
	}
	return opt.RRuleString()
}

func frequency(r models.Repeat) rrule.Frequency {
	switch r {
	case models.RepeatDaily:
		return rrule.DAILY
	case models.RepeatWeekly:
		return rrule.WEEKLY
	case models.RepeatMonthly:
		return rrule.MONTHLY
	default:
		return rrule.YEARLY
	}
}

// firstStart finds the first start of the series on or after from.
func firstStart(r models.Repeat, start time.Time, from civil.Date) (time.Time, bool) {
	d := civil.DateOf(start)
	if from.After(d) {
		d = from
	}
	for i := 0; i < maxAnchorSearchDays; i++ {
		if startsOn(r, start, d) {
			return atClock(d, start), true
		}
		d = d.AddDays(1)
	}
	return time.Time{}, false
}

// startsOn reports whether an occurrence of the series begins on day.
func startsOn(r models.Repeat, start time.Time, day civil.Date) bool {
	switch r {
	case models.RepeatDaily:
		return true
	case models.RepeatWeekly:
		return day.In(time.UTC).Weekday() == start.Weekday()
	case models.RepeatMonthly:
		return day.Day == start.Day()
	case models.RepeatYearly:
		return day.Month == start.Month() && day.Day == start.Day()
	}
	return civil.DateOf(start) == day
}

func atClock(day civil.Date, t time.Time) time.Time {
	return time.Date(day.Year, day.Month, day.Day, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}
