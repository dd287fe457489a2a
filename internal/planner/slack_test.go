package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucial707/dayplan/internal/models"
)

func TestRemainingSlack_UnscheduledPenalty(t *testing.T) {
	today := date(2024, 1, 1)
	settings := models.Settings{
		AvailableHoursPerDay:   8,
		UnscheduledHoursPerDay: 4,
		HorizonDate:            today.AddDays(10),
	}
	task := models.Task{ID: 1, Deadline: today.AddDays(30), EstimatedHours: 5}
	tasks := []models.Task{task}

	occ := DailyOccupiedHours(today, nil, tasks, settings)

	// 30*8 - 0 - 5 - 19*(8-4)
	assert.InDelta(t, 159.0, RemainingSlack(today, occ, task, tasks, settings), 1e-9)
}

func TestRemainingSlack_CompetingTasksAndSchedules(t *testing.T) {
	today := date(2024, 1, 1) // Monday
	settings := models.Settings{
		AvailableHoursPerDay:   8,
		UnscheduledHoursPerDay: 4,
		HorizonDate:            date(2024, 1, 31),
	}
	work := schedule(models.RepeatDaily, at(2024, 1, 1, 9, 0), at(2024, 1, 1, 11, 0))
	tasks := []models.Task{
		{ID: 1, Deadline: date(2024, 1, 6), EstimatedHours: 3},
		{ID: 2, Deadline: date(2024, 1, 4), EstimatedHours: 2},
		{ID: 3, Deadline: date(2024, 1, 20), EstimatedHours: 10},
	}
	occ := DailyOccupiedHours(today, []models.Schedule{work}, tasks, settings)

	// 5 days * 8 - 5 days * 2h of schedule - (3 + 2)
	assert.InDelta(t, 25.0, RemainingSlack(today, occ, tasks[0], tasks, settings), 1e-9)
	// 3 days * 8 - 3 * 2 - 2
	assert.InDelta(t, 16.0, RemainingSlack(today, occ, tasks[1], tasks, settings), 1e-9)
}

func TestRemainingSlack_MonotonicInOccupancy(t *testing.T) {
	today := date(2024, 1, 1)
	settings := models.Settings{AvailableHoursPerDay: 8, UnscheduledHoursPerDay: 3, HorizonDate: date(2024, 1, 12)}
	task := models.Task{ID: 1, Deadline: date(2024, 1, 20), EstimatedHours: 4}
	tasks := []models.Task{task}

	occ := make(Occupancy)
	for i := 0; i < 20; i++ {
		occ[today.AddDays(i)] = float64(i % 5)
	}
	base := RemainingSlack(today, occ, task, tasks, settings)

	for i := 0; i < 20; i++ {
		day := today.AddDays(i)
		bumped := make(Occupancy, len(occ))
		for k, v := range occ {
			bumped[k] = v
		}
		bumped[day] = math.Min(occ[day]+2, settings.AvailableHoursPerDay)

		assert.LessOrEqual(t, RemainingSlack(today, bumped, task, tasks, settings), base, "bumping %s", day)
	}
}

func TestEvaluate_DeadlineToday(t *testing.T) {
	today := date(2024, 1, 1)
	settings := models.Settings{AvailableHoursPerDay: 8, UnscheduledHoursPerDay: 4, HorizonDate: today.AddDays(7)}
	task := models.Task{ID: 1, Deadline: today, EstimatedHours: 2}

	got := Evaluate(today, Occupancy{}, task, []models.Task{task}, settings)

	assert.Equal(t, 0, got.DaysLeft)
	assert.InDelta(t, -2.0, got.SlackHours, 1e-9)
	assert.False(t, math.IsNaN(got.SlackPerDay))
	assert.False(t, math.IsInf(got.SlackPerDay, 0))
	assert.True(t, got.OverBudget)
}

func TestEvaluate_PastDeadlineReportsRawSlack(t *testing.T) {
	today := date(2024, 1, 10)
	settings := models.Settings{AvailableHoursPerDay: 8, UnscheduledHoursPerDay: 4, HorizonDate: today.AddDays(7)}
	task := models.Task{ID: 1, Deadline: date(2024, 1, 7), EstimatedHours: 5}

	got := Evaluate(today, Occupancy{}, task, []models.Task{task}, settings)

	assert.Equal(t, -3, got.DaysLeft)
	assert.Equal(t, got.SlackHours, got.SlackPerDay)
	assert.True(t, got.OverBudget)
}

func TestPlan_SortedByDeadline(t *testing.T) {
	today := date(2024, 1, 1)
	settings := models.Settings{AvailableHoursPerDay: 8, UnscheduledHoursPerDay: 4, HorizonDate: today.AddDays(10)}
	tasks := []models.Task{
		{ID: 3, Deadline: date(2024, 1, 9), EstimatedHours: 1},
		{ID: 1, Deadline: date(2024, 1, 2), EstimatedHours: 1},
		{ID: 2, Deadline: date(2024, 1, 9), EstimatedHours: 1},
	}

	got := Plan(today, nil, tasks, settings)

	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Task.ID)
	assert.Equal(t, 2, got[1].Task.ID)
	assert.Equal(t, 3, got[2].Task.ID)
	assert.Equal(t, 3, tasks[0].ID)
	assert.InDelta(t, 7.0, got[0].SlackHours, 1e-9)
	assert.InDelta(t, 8*8-3.0, got[1].SlackHours, 1e-9)
}

func TestPlan_Empty(t *testing.T) {
	got := Plan(date(2024, 1, 1), nil, nil, models.Settings{AvailableHoursPerDay: 8, HorizonDate: date(2024, 1, 5)})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
