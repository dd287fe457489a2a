package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/crucial707/dayplan/internal/models"
)

const taskColumns = `id, user_id, name, deadline, estimated_hours, memo, created_at`

// TaskRepo persists deadline tasks.
type TaskRepo struct {
	DB *sql.DB
}

// NewTaskRepo returns a new TaskRepo.
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t        models.Task
		deadline time.Time
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &deadline, &t.EstimatedHours, &t.Memo, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Deadline = dateOf(deadline)
	return &t, nil
}

// ListByUser returns a user's tasks ordered by deadline.
func (r *TaskRepo) ListByUser(ctx context.Context, userID int) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY deadline, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// GetByID returns one task owned by userID, or nil when it does not exist.
func (r *TaskRepo) GetByID(ctx context.Context, userID, id int) (*models.Task, error) {
	t, err := scanTask(r.DB.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts t and returns the stored row.
func (r *TaskRepo) Create(ctx context.Context, t models.Task) (*models.Task, error) {
	return scanTask(r.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (user_id, name, deadline, estimated_hours, memo)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING `+taskColumns,
		t.UserID, t.Name, dateArg(t.Deadline), t.EstimatedHours, t.Memo,
	))
}

// Update overwrites a task; it returns nil when no row matched.
func (r *TaskRepo) Update(ctx context.Context, t models.Task) (*models.Task, error) {
	out, err := scanTask(r.DB.QueryRowContext(ctx, `
		UPDATE tasks SET name = $1, deadline = $2::date, estimated_hours = $3, memo = $4
		WHERE id = $5 AND user_id = $6
		RETURNING `+taskColumns,
		t.Name, dateArg(t.Deadline), t.EstimatedHours, t.Memo, t.ID, t.UserID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return out, err
}

// Delete removes a task owned by userID.
func (r *TaskRepo) Delete(ctx context.Context, userID, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
