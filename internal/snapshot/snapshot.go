// Package snapshot loads everything the planner needs for one user.
package snapshot

import (
	"context"
	"time"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/config"
	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/repo"
)

// Snapshot is a user's schedules, tasks and effective settings.
type Snapshot struct {
	Schedules []models.Schedule
	Tasks     []models.Task
	Settings  models.Settings
}

// Loader reads snapshots from the repos. Schedule times are moved into Loc
// so calendar days follow the user's wall clock.
type Loader struct {
	Schedules *repo.ScheduleRepo
	Tasks     *repo.TaskRepo
	Settings  *repo.SettingsRepo
	Defaults  config.PlannerDefaults
	Loc       *time.Location
}

// Today returns the current calendar day in the loader's zone.
func (l *Loader) Today() civil.Date {
	return civil.DateOf(time.Now().In(l.Location()))
}

// Location returns the configured zone, UTC when unset.
func (l *Loader) Location() *time.Location {
	if l.Loc == nil {
		return time.UTC
	}
	return l.Loc
}

// Load fetches a snapshot for userID. today anchors the default horizon
// when the user never saved settings.
func (l *Loader) Load(ctx context.Context, userID int, today civil.Date) (Snapshot, error) {
	schedules, err := l.Schedules.ListByUser(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	tasks, err := l.Tasks.ListByUser(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	settings, err := l.EffectiveSettings(ctx, userID, today)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Schedules: InLocation(schedules, l.Location()),
		Tasks:     tasks,
		Settings:  settings,
	}, nil
}

// EffectiveSettings returns the saved settings or the configured defaults.
func (l *Loader) EffectiveSettings(ctx context.Context, userID int, today civil.Date) (models.Settings, error) {
	s, err := l.Settings.Get(ctx, userID)
	if err != nil {
		return models.Settings{}, err
	}
	if s != nil {
		return *s, nil
	}
	return DefaultSettings(userID, l.Defaults, today), nil
}

// DefaultSettings builds settings from configured defaults.
func DefaultSettings(userID int, d config.PlannerDefaults, today civil.Date) models.Settings {
	return models.Settings{
		UserID:                 userID,
		AvailableHoursPerDay:   d.AvailableHoursPerDay,
		HorizonDate:            today.AddDays(d.HorizonDays),
		UnscheduledHoursPerDay: d.UnscheduledHoursPerDay,
	}
}

// InLocation returns a copy of schedules with their times shown in loc.
// The input slice is left untouched.
func InLocation(schedules []models.Schedule, loc *time.Location) []models.Schedule {
	out := make([]models.Schedule, len(schedules))
	for i, s := range schedules {
		s.StartTime = s.StartTime.In(loc)
		s.EndTime = s.EndTime.In(loc)
		out[i] = s
	}
	return out
}
