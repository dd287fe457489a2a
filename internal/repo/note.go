package repo

import (
	"context"
	"database/sql"
	"time"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
)

// NoteRepo persists quick per-day notes.
type NoteRepo struct {
	DB *sql.DB
}

// NewNoteRepo returns a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{DB: db}
}

// ListByDate returns the user's notes for one day in creation order.
func (r *NoteRepo) ListByDate(ctx context.Context, userID int, day civil.Date) ([]models.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, date, name, created_at FROM notes WHERE user_id = $1 AND date = $2::date ORDER BY id`,
		userID, dateArg(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var (
			n models.Note
			d time.Time
		)
		if err := rows.Scan(&n.ID, &n.UserID, &d, &n.Name, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Date = dateOf(d)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Create inserts a note.
func (r *NoteRepo) Create(ctx context.Context, n models.Note) (*models.Note, error) {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO notes (user_id, date, name) VALUES ($1, $2::date, $3) RETURNING id, created_at`,
		n.UserID, dateArg(n.Date), n.Name,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete removes a note and reports whether a row matched.
func (r *NoteRepo) Delete(ctx context.Context, userID, id int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
