package planner

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucial707/dayplan/internal/models"
)

func TestSchedulesOn_WeeklyMonday(t *testing.T) {
	s := schedule(models.RepeatWeekly, at(2024, 1, 1, 9, 0), at(2024, 1, 1, 10, 0))

	got := SchedulesOn([]models.Schedule{s}, date(2024, 1, 8))
	require.Len(t, got, 1)
	assert.Equal(t, s.ID, got[0].ID)

	assert.Empty(t, SchedulesOn([]models.Schedule{s}, date(2024, 1, 9)))
}

func TestSchedulesOn_Window(t *testing.T) {
	s := schedule(models.RepeatDaily, at(2024, 1, 1, 9, 0), at(2024, 1, 1, 10, 0))
	s.RepeatStartDate = date(2024, 1, 5)
	end := date(2024, 1, 10)
	s.RepeatEndDate = &end

	assert.Empty(t, SchedulesOn([]models.Schedule{s}, date(2024, 1, 4)))
	assert.Len(t, SchedulesOn([]models.Schedule{s}, date(2024, 1, 5)), 1)
	assert.Len(t, SchedulesOn([]models.Schedule{s}, date(2024, 1, 10)), 1)
	assert.Empty(t, SchedulesOn([]models.Schedule{s}, date(2024, 1, 11)))
}

func TestSchedulesOn_BlackoutSuppressesEveryPattern(t *testing.T) {
	day := date(2024, 2, 5) // Monday
	templates := map[models.Repeat]models.Schedule{
		models.RepeatNone:    schedule(models.RepeatNone, at(2024, 2, 5, 9, 0), at(2024, 2, 5, 10, 0)),
		models.RepeatDaily:   schedule(models.RepeatDaily, at(2024, 1, 1, 9, 0), at(2024, 1, 1, 10, 0)),
		models.RepeatWeekly:  schedule(models.RepeatWeekly, at(2024, 1, 1, 9, 0), at(2024, 1, 1, 10, 0)),
		models.RepeatMonthly: schedule(models.RepeatMonthly, at(2024, 1, 5, 9, 0), at(2024, 1, 5, 10, 0)),
		models.RepeatYearly:  schedule(models.RepeatYearly, at(2023, 2, 5, 9, 0), at(2023, 2, 5, 10, 0)),
	}

	for repeat, s := range templates {
		t.Run(repeat.String(), func(t *testing.T) {
			require.Len(t, SchedulesOn([]models.Schedule{s}, day), 1)
			s.BlackoutDates = []civil.Date{date(2023, 1, 1), day}
			assert.Empty(t, SchedulesOn([]models.Schedule{s}, day))
		})
	}
}

func TestSchedulesOn_PreservesOrderAndInput(t *testing.T) {
	a := schedule(models.RepeatDaily, at(2024, 1, 1, 9, 0), at(2024, 1, 1, 10, 0))
	a.ID = 7
	b := schedule(models.RepeatWeekly, at(2024, 1, 2, 9, 0), at(2024, 1, 2, 10, 0))
	b.ID = 3
	c := schedule(models.RepeatDaily, at(2024, 1, 1, 12, 0), at(2024, 1, 1, 13, 0))
	c.ID = 5
	in := []models.Schedule{a, b, c}

	got := SchedulesOn(in, date(2024, 1, 8)) // Monday: b is Tuesday-only
	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].ID)
	assert.Equal(t, 5, got[1].ID)
	assert.Equal(t, 3, in[1].ID)
}

func TestTasksOn(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Deadline: date(2024, 1, 8)},
		{ID: 2, Deadline: date(2024, 1, 9)},
		{ID: 3, Deadline: date(2024, 1, 8)},
	}

	got := TasksOn(tasks, date(2024, 1, 8))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.Empty(t, TasksOn(nil, date(2024, 1, 8)))
}
