package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/crucial707/dayplan/internal/models"
)

// SettingsRepo persists the per-user planning settings row.
type SettingsRepo struct {
	DB *sql.DB
}

// NewSettingsRepo returns a new SettingsRepo.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db}
}

// Get returns the user's settings, or nil when none were saved yet.
func (r *SettingsRepo) Get(ctx context.Context, userID int) (*models.Settings, error) {
	var (
		s       models.Settings
		horizon time.Time
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, available_hours_per_day, horizon_date, unscheduled_hours_per_day, updated_at
		FROM settings WHERE user_id = $1`,
		userID,
	).Scan(&s.UserID, &s.AvailableHoursPerDay, &horizon, &s.UnscheduledHoursPerDay, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.HorizonDate = dateOf(horizon)
	return &s, nil
}

// Upsert stores s, replacing any previous row of the same user.
func (r *SettingsRepo) Upsert(ctx context.Context, s models.Settings) (*models.Settings, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO settings (user_id, available_hours_per_day, horizon_date, unscheduled_hours_per_day, updated_at)
		VALUES ($1, $2, $3::date, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET available_hours_per_day = EXCLUDED.available_hours_per_day,
			horizon_date = EXCLUDED.horizon_date,
			unscheduled_hours_per_day = EXCLUDED.unscheduled_hours_per_day,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at`,
		s.UserID, s.AvailableHoursPerDay, dateArg(s.HorizonDate), s.UnscheduledHoursPerDay,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
