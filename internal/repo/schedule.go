package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/crucial707/dayplan/internal/models"
)

const scheduleColumns = `id, user_id, name, start_time, end_time, repeat, repeat_start_date, repeat_end_date, blackout_dates::text[], location, memo, created_at`

// ScheduleRepo persists calendar schedules.
type ScheduleRepo struct {
	DB *sql.DB
}

// NewScheduleRepo returns a new ScheduleRepo.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{DB: db}
}

func scanSchedule(row rowScanner) (*models.Schedule, error) {
	var (
		s           models.Schedule
		repeat      string
		repeatStart time.Time
		repeatEnd   sql.NullTime
		blackout    pq.StringArray
	)
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.StartTime, &s.EndTime, &repeat,
		&repeatStart, &repeatEnd, &blackout, &s.Location, &s.Memo, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if s.Repeat, err = models.ParseRepeat(repeat); err != nil {
		return nil, fmt.Errorf("schedule %d: %w", s.ID, err)
	}
	s.RepeatStartDate = dateOf(repeatStart)
	s.RepeatEndDate = nullDate(repeatEnd)
	if s.BlackoutDates, err = parseDates(blackout); err != nil {
		return nil, fmt.Errorf("schedule %d blackout dates: %w", s.ID, err)
	}
	return &s, nil
}

// ListByUser returns every schedule of a user ordered by start time.
func (r *ScheduleRepo) ListByUser(ctx context.Context, userID int) ([]models.Schedule, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE user_id = $1 ORDER BY start_time, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// GetByID returns one schedule owned by userID, or nil when it does not exist.
func (r *ScheduleRepo) GetByID(ctx context.Context, userID, id int) (*models.Schedule, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	s, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts s and returns the stored row with id set.
func (r *ScheduleRepo) Create(ctx context.Context, s models.Schedule) (*models.Schedule, error) {
	return insertSchedule(ctx, r.DB, s)
}

// Update overwrites every mutable column of s.
func (r *ScheduleRepo) Update(ctx context.Context, s models.Schedule) error {
	return updateSchedule(ctx, r.DB, s)
}

// Delete removes a schedule owned by userID.
func (r *ScheduleRepo) Delete(ctx context.Context, userID, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// Split updates the existing series and inserts its split-off record in one
// transaction, update first. It returns the inserted row.
func (r *ScheduleRepo) Split(ctx context.Context, existing, created models.Schedule) (*models.Schedule, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("split begin: %w", err)
	}
	defer tx.Rollback()

	if err := updateSchedule(ctx, tx, existing); err != nil {
		return nil, fmt.Errorf("split update: %w", err)
	}
	s, err := insertSchedule(ctx, tx, created)
	if err != nil {
		return nil, fmt.Errorf("split insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("split commit: %w", err)
	}
	return s, nil
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertSchedule(ctx context.Context, q execQuerier, s models.Schedule) (*models.Schedule, error) {
	row := q.QueryRowContext(ctx, `
		INSERT INTO schedules (user_id, name, start_time, end_time, repeat, repeat_start_date, repeat_end_date, blackout_dates, location, memo)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8::date[], $9, $10)
		RETURNING `+scheduleColumns,
		s.UserID, s.Name, s.StartTime, s.EndTime, s.Repeat.String(),
		dateArg(s.RepeatStartDate), nullDateArg(s.RepeatEndDate), datesArg(s.BlackoutDates),
		s.Location, s.Memo,
	)
	return scanSchedule(row)
}

func updateSchedule(ctx context.Context, q execQuerier, s models.Schedule) error {
	_, err := q.ExecContext(ctx, `
		UPDATE schedules
		SET name = $1, start_time = $2, end_time = $3, repeat = $4, repeat_start_date = $5::date,
			repeat_end_date = $6::date, blackout_dates = $7::date[], location = $8, memo = $9
		WHERE id = $10 AND user_id = $11`,
		s.Name, s.StartTime, s.EndTime, s.Repeat.String(),
		dateArg(s.RepeatStartDate), nullDateArg(s.RepeatEndDate), datesArg(s.BlackoutDates),
		s.Location, s.Memo, s.ID, s.UserID,
	)
	return err
}
