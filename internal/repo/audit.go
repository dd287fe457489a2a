package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/dayplan/internal/models"
)

// AuditRepo records who changed which schedule, task or settings row.
type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// AuditFilter selects a page of a user's audit trail. An empty Resource
// matches every resource type.
type AuditFilter struct {
	UserID   int
	Resource models.AuditResource
	Limit    int
	Offset   int
}

// Log stores e. ID and CreatedAt are assigned by the database.
func (r *AuditRepo) Log(ctx context.Context, e models.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (user_id, action, resource_type, resource_id, details)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
		e.UserID, string(e.Action), string(e.Resource), e.ResourceID, e.Details,
	)
	return err
}

// List returns entries matching f, newest first.
func (r *AuditRepo) List(ctx context.Context, f AuditFilter) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, action, resource_type, resource_id, COALESCE(details, ''), created_at
		FROM audit_log
		WHERE user_id = $1 AND ($2::text = '' OR resource_type = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`,
		f.UserID, string(f.Resource), f.Limit, f.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0)
	for rows.Next() {
		var (
			e                    models.AuditEntry
			action, resourceType string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &action, &resourceType, &e.ResourceID, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Action, e.Resource = models.AuditAction(action), models.AuditResource(resourceType)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
