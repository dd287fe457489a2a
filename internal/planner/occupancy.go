package planner

import (
	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
)

// Occurs reports whether s has an occurrence on day, honouring the repeat
// window and blackout dates. One-off schedules are governed by their own span.
func Occurs(s models.Schedule, day civil.Date) bool {
	if s.Repeat.Recurring() && day.Before(s.RepeatStartDate) {
		return false
	}
	if s.RepeatEndDate != nil && day.After(*s.RepeatEndDate) {
		return false
	}
	for _, b := range s.BlackoutDates {
		if b == day {
			return false
		}
	}
	return Matches(s.Repeat, s.StartTime, s.EndTime, day)
}

// SchedulesOn returns the schedules active on day, in input order.
func SchedulesOn(schedules []models.Schedule, day civil.Date) []models.Schedule {
	out := make([]models.Schedule, 0)
	for _, s := range schedules {
		if Occurs(s, day) {
			out = append(out, s)
		}
	}
	return out
}

// TasksOn returns the tasks due on day, in input order.
func TasksOn(tasks []models.Task, day civil.Date) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.Deadline == day {
			out = append(out, t)
		}
	}
	return out
}
