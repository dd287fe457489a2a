package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/crucial707/dayplan/internal/repo"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	Repo *repo.UserRepo
}

// Me returns the user behind the token.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	user, err := h.Repo.GetByID(r.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		JSONError(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, r, "me: get user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
