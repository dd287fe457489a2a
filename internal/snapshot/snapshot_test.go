package snapshot

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/DATA-DOG/go-sqlmock"

	"github.com/crucial707/dayplan/internal/config"
	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/repo"
)

func TestLoader_Load_DefaultsAndLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	tokyo := time.FixedZone("JST", 9*3600)
	// 23:00 UTC on Jan 1 is 08:00 on Jan 2 in Tokyo.
	start := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM schedules WHERE user_id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "start_time", "end_time", "repeat", "repeat_start_date", "repeat_end_date", "blackout_dates", "location", "memo", "created_at"}).
			AddRow(1, 1, "standup", start, start.Add(time.Hour), "daily", start, nil, "{}", "", "", start))
	mock.ExpectQuery(`FROM tasks WHERE user_id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "deadline", "estimated_hours", "memo", "created_at"}))
	mock.ExpectQuery(`FROM settings WHERE user_id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "available_hours_per_day", "horizon_date", "unscheduled_hours_per_day", "updated_at"}))

	l := &Loader{
		Schedules: repo.NewScheduleRepo(db),
		Tasks:     repo.NewTaskRepo(db),
		Settings:  repo.NewSettingsRepo(db),
		Defaults:  config.PlannerDefaults{AvailableHoursPerDay: 8, UnscheduledHoursPerDay: 4, HorizonDays: 10},
		Loc:       tokyo,
	}
	today := civil.Date{Year: 2024, Month: 1, Day: 2}
	snap, err := l.Load(context.Background(), 1, today)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := civil.DateOf(snap.Schedules[0].StartTime); got != today {
		t.Errorf("schedule day in Tokyo: got %v, want %v", got, today)
	}
	if snap.Settings.HorizonDate != (civil.Date{Year: 2024, Month: 1, Day: 12}) || snap.Settings.AvailableHoursPerDay != 8 {
		t.Errorf("default settings: got %+v", snap.Settings)
	}
	if len(snap.Tasks) != 0 {
		t.Errorf("tasks: got %v", snap.Tasks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestInLocation_LeavesInputAlone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	start := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	in := []models.Schedule{{ID: 1, StartTime: start, EndTime: start.Add(time.Hour)}}

	out := InLocation(in, tokyo)

	if out[0].StartTime.Location() != tokyo || out[0].StartTime.Hour() != 8 {
		t.Errorf("converted start: got %v", out[0].StartTime)
	}
	if !out[0].StartTime.Equal(start) {
		t.Errorf("instant changed: got %v, want %v", out[0].StartTime, start)
	}
	if in[0].StartTime.Location() != time.UTC || in[0].EndTime.Location() != time.UTC {
		t.Errorf("input was modified: %v", in[0].StartTime)
	}
}
