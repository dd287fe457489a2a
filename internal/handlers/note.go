package handlers

import (
	"encoding/json"
	"net/http"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/repo"
	"github.com/crucial707/dayplan/internal/snapshot"
)

// NoteHandler serves quick per-day notes.
type NoteHandler struct {
	Repo   *repo.NoteRepo
	Loader *snapshot.Loader
}

// ListNotes returns the notes of ?date= (default today).
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	day, ok := dateParam(w, r, "date", h.Loader.Today())
	if !ok {
		return
	}
	notes, err := h.Repo.ListByDate(r.Context(), userID, day)
	if err != nil {
		internalError(w, r, "notes: list", err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// CreateNote adds a note. Body: {"date": "YYYY-MM-DD", "name": "..."}; date defaults to today.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input struct {
		Date *civil.Date `json:"date"`
		Name string      `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		JSONValidationError(w, "validation failed", map[string]string{"name": "required"}, http.StatusBadRequest)
		return
	}
	day := h.Loader.Today()
	if input.Date != nil {
		day = *input.Date
	}

	n, err := h.Repo.Create(r.Context(), models.Note{UserID: userID, Date: day, Name: input.Name})
	if err != nil {
		internalError(w, r, "notes: create", err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// DeleteNote removes a note.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "note")
	if !ok {
		return
	}
	found, err := h.Repo.Delete(r.Context(), userID, id)
	if err != nil {
		internalError(w, r, "notes: delete", err)
		return
	}
	if !found {
		JSONError(w, "note not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
