package planner

import (
	"math"
	"time"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
)

// Occupancy maps a calendar day to the schedule hours counted against it.
type Occupancy map[civil.Date]float64

// DailyOccupiedHours computes capped schedule hours for every day from `from`
// through the earlier of the latest task deadline and the settings horizon.
// The walk stops after MaxRangeDays days.
func DailyOccupiedHours(from civil.Date, schedules []models.Schedule, tasks []models.Task, settings models.Settings) Occupancy {
	last := settings.HorizonDate
	if latest, ok := latestDeadline(tasks); ok && latest.Before(last) {
		last = latest
	}

	occ := make(Occupancy)
	for day, i := from, 0; !day.After(last) && i < MaxRangeDays; day, i = day.AddDays(1), i+1 {
		var total float64
		for _, s := range SchedulesOn(schedules, day) {
			total += OccupiedHours(s, day)
		}
		occ[day] = math.Min(total, settings.AvailableHoursPerDay)
	}
	return occ
}

// OccupiedHours is the part of day covered by the occurrence of s on that day.
// It does not check that s actually occurs on day.
func OccupiedHours(s models.Schedule, day civil.Date) float64 {
	start, end := occurrenceInterval(s, day)
	if h := end.Sub(start).Hours(); h > 0 {
		return h
	}
	return 0
}

// occurrenceInterval clips the template interval to day. Whenever the
// template's start (end) falls in a different bucket than day, that end of
// the interval is pushed to the day boundary.
func occurrenceInterval(s models.Schedule, day civil.Date) (time.Time, time.Time) {
	loc := s.StartTime.Location()
	startDate, endDate := civil.DateOf(s.StartTime), civil.DateOf(s.EndTime)

	var startSame, endSame bool
	switch s.Repeat {
	case models.RepeatNone:
		start, end := s.StartTime, s.EndTime
		if startDate != day {
			start = startOfDay(day, loc)
		}
		if endDate != day {
			end = endOfDay(day, loc)
		}
		return start, end
	case models.RepeatWeekly:
		startSame = weekday(startDate) == weekday(day)
		endSame = weekday(endDate) == weekday(day)
	case models.RepeatMonthly, models.RepeatYearly:
		startSame = startDate.Day == day.Day
		endSame = endDate.Day == day.Day
	default:
		return s.StartTime, s.EndTime
	}

	start := startOfDay(day, loc)
	if startSame {
		start = atClock(day, s.StartTime)
	}
	end := endOfDay(day, loc)
	if endSame {
		end = atClock(day, s.EndTime)
	}
	return start, end
}

func latestDeadline(tasks []models.Task) (civil.Date, bool) {
	if len(tasks) == 0 {
		return civil.Date{}, false
	}
	latest := tasks[0].Deadline
	for _, t := range tasks[1:] {
		if t.Deadline.After(latest) {
			latest = t.Deadline
		}
	}
	return latest, true
}
