package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	"github.com/crucial707/dayplan/internal/middleware"
	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/repo"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// currentUser returns the authenticated user id or answers 401.
func currentUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return id, true
}

// urlID parses the {id} URL param or answers 400 with "invalid <what> id".
func urlID(w http.ResponseWriter, r *http.Request, what string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		JSONError(w, "invalid "+what+" id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// dateParam reads a YYYY-MM-DD query parameter, falling back to def when absent.
func dateParam(w http.ResponseWriter, r *http.Request, name string, def civil.Date) (civil.Date, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	d, err := civil.ParseDate(v)
	if err != nil {
		JSONValidationError(w, "validation failed", map[string]string{name: "must be YYYY-MM-DD"}, http.StatusBadRequest)
		return civil.Date{}, false
	}
	return d, true
}

// recordAudit writes an audit entry; failures are logged, never returned to the client.
func recordAudit(ctx context.Context, a *repo.AuditRepo, e models.AuditEntry) {
	if a == nil {
		return
	}
	if err := a.Log(ctx, e); err != nil {
		slog.Warn("audit log failed", "action", e.Action, "resource", e.Resource, "resource_id", e.ResourceID, "error", err)
	}
}
