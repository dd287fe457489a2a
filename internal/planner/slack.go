package planner

import (
	"slices"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
)

// minRatioDays is the smallest day count used as a divisor (one hour).
const minRatioDays = 1.0 / 24

// RemainingSlack returns the signed hours left for task once schedule
// occupancy, every task due no later than it (itself included) and the
// unscheduled-day penalty past the horizon are subtracted. occ should come
// from DailyOccupiedHours starting at today.
func RemainingSlack(today civil.Date, occ Occupancy, task models.Task, tasks []models.Task, settings models.Settings) float64 {
	dailyCap := settings.AvailableHoursPerDay

	daysUntilDeadline := task.Deadline.DaysSince(today)
	available := float64(daysUntilDeadline) * dailyCap

	daysUntilHorizon := settings.HorizonDate.DaysSince(today) + 1
	charge := min(daysUntilDeadline, daysUntilHorizon, MaxRangeDays)
	for i := 0; i < charge; i++ {
		available -= occ[today.AddDays(i)]
	}

	for _, t := range tasks {
		if !t.Deadline.After(task.Deadline) {
			available -= t.EstimatedHours
		}
	}

	if unaccounted := task.Deadline.DaysSince(settings.HorizonDate) - 1; unaccounted > 0 {
		available -= float64(unaccounted) * (dailyCap - settings.UnscheduledHoursPerDay)
	}
	return available
}

// TaskSlack is the planning result for one task.
type TaskSlack struct {
	Task        models.Task `json:"task"`
	DaysLeft    int         `json:"days_left"`
	SlackHours  float64     `json:"slack_hours"`
	SlackPerDay float64     `json:"slack_per_day"`
	OverBudget  bool        `json:"over_budget"`
}

// Plan computes the slack of every task, sharing a single occupancy pass.
// Results are ordered by deadline, then by task id.
func Plan(today civil.Date, schedules []models.Schedule, tasks []models.Task, settings models.Settings) []TaskSlack {
	occ := DailyOccupiedHours(today, schedules, tasks, settings)

	out := make([]TaskSlack, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, Evaluate(today, occ, t, tasks, settings))
	}
	slices.SortStableFunc(out, func(a, b TaskSlack) int {
		if c := compareDates(a.Task.Deadline, b.Task.Deadline); c != 0 {
			return c
		}
		return a.Task.ID - b.Task.ID
	})
	return out
}

// Evaluate wraps RemainingSlack with the derived per-day figure.
func Evaluate(today civil.Date, occ Occupancy, task models.Task, tasks []models.Task, settings models.Settings) TaskSlack {
	days := task.Deadline.DaysSince(today)
	slack := RemainingSlack(today, occ, task, tasks, settings)
	// Past-due tasks have no days left to spread over.
	perDay := slack
	if days >= 0 {
		perDay = slack / max(float64(days), minRatioDays)
	}
	return TaskSlack{
		Task:        task,
		DaysLeft:    days,
		SlackHours:  slack,
		SlackPerDay: perDay,
		OverBudget:  slack < 0,
	}
}
