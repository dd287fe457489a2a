package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/repo"
)

type AuditHandler struct {
	Repo *repo.AuditRepo
}

func queryInt(r *http.Request, name string, def, lo, hi int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < lo || v > hi {
		return def
	}
	return v
}

// ListAudit pages through the caller's change history.
// Query: resource (schedule|task|settings), limit (1..200, default 50), offset.
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	f := repo.AuditFilter{
		UserID: userID,
		Limit:  queryInt(r, "limit", 50, 1, 200),
		Offset: queryInt(r, "offset", 0, 0, 1<<30),
	}
	if v := r.URL.Query().Get("resource"); v != "" {
		res, ok := models.ParseAuditResource(v)
		if !ok {
			JSONValidationError(w, "validation failed", map[string]string{"resource": "must be schedule, task or settings"}, http.StatusBadRequest)
			return
		}
		f.Resource = res
	}

	entries, err := h.Repo.List(r.Context(), f)
	if err != nil {
		internalError(w, r, "audit: list", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
