package handlers

import (
	"encoding/json"
	"net/http"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/repo"
)

// TaskHandler handles deadline task CRUD.
type TaskHandler struct {
	Repo      *repo.TaskRepo
	AuditRepo *repo.AuditRepo
}

type taskInput struct {
	Name           string     `json:"name"`
	Deadline       civil.Date `json:"deadline"`
	EstimatedHours float64    `json:"estimated_hours"`
	Memo           string     `json:"memo"`
}

func (in taskInput) validate() map[string]string {
	fields := make(map[string]string)
	if in.Name == "" {
		fields["name"] = "required"
	}
	if !in.Deadline.IsValid() {
		fields["deadline"] = "required"
	}
	if in.EstimatedHours <= 0 {
		fields["estimated_hours"] = "must be greater than 0"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ListTasks returns the caller's tasks ordered by deadline.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		internalError(w, r, "tasks: list", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetTask returns one task by id.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "task")
	if !ok {
		return
	}
	t, err := h.Repo.GetByID(r.Context(), userID, id)
	if err != nil {
		internalError(w, r, "tasks: get", err)
		return
	}
	if t == nil {
		JSONError(w, "task not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// CreateTask creates a task. Body: {"name": "...", "deadline": "YYYY-MM-DD", "estimated_hours": 3}.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input taskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := input.validate(); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	t, err := h.Repo.Create(r.Context(), models.Task{
		UserID:         userID,
		Name:           input.Name,
		Deadline:       input.Deadline,
		EstimatedHours: input.EstimatedHours,
		Memo:           input.Memo,
	})
	if err != nil {
		internalError(w, r, "tasks: create", err)
		return
	}
	recordAudit(r.Context(), h.AuditRepo, models.AuditEntry{UserID: userID, Action: models.AuditCreate, Resource: models.ResourceTask, ResourceID: t.ID, Details: t.Name})
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTask replaces a task's fields.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "task")
	if !ok {
		return
	}
	var input taskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := input.validate(); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	t, err := h.Repo.Update(r.Context(), models.Task{
		ID:             id,
		UserID:         userID,
		Name:           input.Name,
		Deadline:       input.Deadline,
		EstimatedHours: input.EstimatedHours,
		Memo:           input.Memo,
	})
	if err != nil {
		internalError(w, r, "tasks: update", err)
		return
	}
	if t == nil {
		JSONError(w, "task not found", http.StatusNotFound)
		return
	}
	recordAudit(r.Context(), h.AuditRepo, models.AuditEntry{UserID: userID, Action: models.AuditUpdate, Resource: models.ResourceTask, ResourceID: t.ID, Details: t.Name})
	writeJSON(w, http.StatusOK, t)
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "task")
	if !ok {
		return
	}
	if err := h.Repo.Delete(r.Context(), userID, id); err != nil {
		internalError(w, r, "tasks: delete", err)
		return
	}
	recordAudit(r.Context(), h.AuditRepo, models.AuditEntry{UserID: userID, Action: models.AuditDelete, Resource: models.ResourceTask, ResourceID: id})
	w.WriteHeader(http.StatusNoContent)
}
