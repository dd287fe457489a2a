package handlers

import (
	"encoding/json"
	"net/http"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/repo"
	"github.com/crucial707/dayplan/internal/snapshot"
)

// SettingsHandler serves the caller's planning settings.
type SettingsHandler struct {
	Repo      *repo.SettingsRepo
	Loader    *snapshot.Loader
	AuditRepo *repo.AuditRepo
}

// GetSettings returns the saved settings, or the configured defaults when none exist.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	s, err := h.Loader.EffectiveSettings(r.Context(), userID, h.Loader.Today())
	if err != nil {
		internalError(w, r, "settings: get", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// PutSettings saves the caller's settings.
func (h *SettingsHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input struct {
		AvailableHoursPerDay   float64    `json:"available_hours_per_day"`
		HorizonDate            civil.Date `json:"horizon_date"`
		UnscheduledHoursPerDay float64    `json:"unscheduled_hours_per_day"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	fields := make(map[string]string)
	if input.AvailableHoursPerDay <= 0 || input.AvailableHoursPerDay > 24 {
		fields["available_hours_per_day"] = "must be in (0, 24]"
	}
	if input.UnscheduledHoursPerDay <= 0 {
		fields["unscheduled_hours_per_day"] = "must be greater than 0"
	} else if input.UnscheduledHoursPerDay > input.AvailableHoursPerDay {
		fields["unscheduled_hours_per_day"] = "must not exceed available_hours_per_day"
	}
	if !input.HorizonDate.IsValid() {
		fields["horizon_date"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	saved, err := h.Repo.Upsert(r.Context(), models.Settings{
		UserID:                 userID,
		AvailableHoursPerDay:   input.AvailableHoursPerDay,
		HorizonDate:            input.HorizonDate,
		UnscheduledHoursPerDay: input.UnscheduledHoursPerDay,
	})
	if err != nil {
		internalError(w, r, "settings: upsert", err)
		return
	}
	recordAudit(r.Context(), h.AuditRepo, models.AuditEntry{UserID: userID, Action: models.AuditUpdate, Resource: models.ResourceSettings, ResourceID: userID})
	writeJSON(w, http.StatusOK, saved)
}
