package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/planner"
	"github.com/crucial707/dayplan/internal/repo"
	"github.com/crucial707/dayplan/internal/snapshot"
)

// ScheduleHandler handles calendar schedule CRUD and series splits.
type ScheduleHandler struct {
	Repo      *repo.ScheduleRepo
	AuditRepo *repo.AuditRepo
	// Loc is the zone whose calendar days schedule dates refer to.
	Loc *time.Location
}

type scheduleInput struct {
	Name            string       `json:"name"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         time.Time    `json:"end_time"`
	Repeat          string       `json:"repeat"`
	RepeatStartDate *civil.Date  `json:"repeat_start_date"`
	RepeatEndDate   *civil.Date  `json:"repeat_end_date"`
	BlackoutDates   []civil.Date `json:"blackout_dates"`
	Location        string       `json:"location"`
	Memo            string       `json:"memo"`
}

func (h *ScheduleHandler) loc() *time.Location {
	if h.Loc == nil {
		return time.UTC
	}
	return h.Loc
}

// toSchedule validates in and fills s. Field errors are returned keyed by JSON name.
func (h *ScheduleHandler) toSchedule(in scheduleInput, s *models.Schedule) map[string]string {
	fields := make(map[string]string)
	if in.Name == "" {
		fields["name"] = "required"
	}
	if in.StartTime.IsZero() {
		fields["start_time"] = "required"
	}
	if in.EndTime.IsZero() {
		fields["end_time"] = "required"
	}
	if !in.StartTime.IsZero() && !in.EndTime.IsZero() && in.EndTime.Before(in.StartTime) {
		fields["end_time"] = "must not be before start_time"
	}
	repeat, err := models.ParseRepeat(in.Repeat)
	if err != nil {
		fields["repeat"] = "must be none, daily, weekly, monthly or yearly"
	}
	start := in.StartTime.In(h.loc())
	repeatStart := civil.DateOf(start)
	if in.RepeatStartDate != nil {
		repeatStart = *in.RepeatStartDate
	}
	if in.RepeatEndDate != nil && in.RepeatEndDate.Before(repeatStart) {
		fields["repeat_end_date"] = "must not be before repeat_start_date"
	}
	for _, d := range in.BlackoutDates {
		if !d.IsValid() {
			fields["blackout_dates"] = "must be valid dates"
			break
		}
	}
	if len(fields) > 0 {
		return fields
	}

	s.Name = in.Name
	s.StartTime = start
	s.EndTime = in.EndTime.In(h.loc())
	s.Repeat = repeat
	s.RepeatStartDate = repeatStart
	s.RepeatEndDate = in.RepeatEndDate
	s.BlackoutDates = in.BlackoutDates
	s.Location = in.Location
	s.Memo = in.Memo
	return nil
}

// ListSchedules returns the caller's schedules.
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		internalError(w, r, "schedules: list", err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot.InLocation(list, h.loc()))
}

// GetSchedule returns one schedule by id.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// load resolves the {id} schedule of the caller, answering 400/404/500 itself.
func (h *ScheduleHandler) load(w http.ResponseWriter, r *http.Request) (*models.Schedule, bool) {
	userID, ok := currentUser(w, r)
	if !ok {
		return nil, false
	}
	id, ok := urlID(w, r, "schedule")
	if !ok {
		return nil, false
	}
	s, err := h.Repo.GetByID(r.Context(), userID, id)
	if err != nil {
		internalError(w, r, "schedules: get", err)
		return nil, false
	}
	if s == nil {
		JSONError(w, "schedule not found", http.StatusNotFound)
		return nil, false
	}
	s.StartTime = s.StartTime.In(h.loc())
	s.EndTime = s.EndTime.In(h.loc())
	return s, true
}

// CreateSchedule creates a schedule. repeat_start_date defaults to the start date.
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input scheduleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	s := models.Schedule{UserID: userID}
	if fields := h.toSchedule(input, &s); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	created, err := h.Repo.Create(r.Context(), s)
	if err != nil {
		internalError(w, r, "schedules: create", err)
		return
	}
	recordAudit(r.Context(), h.AuditRepo, models.AuditEntry{UserID: userID, Action: models.AuditCreate, Resource: models.ResourceSchedule, ResourceID: created.ID, Details: created.Name})
	writeJSON(w, http.StatusCreated, snapshot.InLocation([]models.Schedule{*created}, h.loc())[0])
}

// UpdateSchedule replaces a schedule's fields.
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	var input scheduleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	s := *existing
	if fields := h.toSchedule(input, &s); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	if err := h.Repo.Update(r.Context(), s); err != nil {
		internalError(w, r, "schedules: update", err)
		return
	}
	recordAudit(r.Context(), h.AuditRepo, models.AuditEntry{UserID: s.UserID, Action: models.AuditUpdate, Resource: models.ResourceSchedule, ResourceID: s.ID, Details: s.Name})
	writeJSON(w, http.StatusOK, s)
}

// DeleteSchedule deletes a schedule.
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Delete(r.Context(), s.UserID, s.ID); err != nil {
		internalError(w, r, "schedules: delete", err)
		return
	}
	recordAudit(r.Context(), h.AuditRepo, models.AuditEntry{UserID: s.UserID, Action: models.AuditDelete, Resource: models.ResourceSchedule, ResourceID: s.ID, Details: s.Name})
	w.WriteHeader(http.StatusNoContent)
}

// Split modes.
const (
	SplitSingle = "single"
	SplitFuture = "future"
)

// SplitResult is the body of a successful split.
type SplitResult struct {
	Mode string `json:"mode"`
	// Series is the updated original record.
	Series models.Schedule `json:"series"`
	// Created is the inserted replacement or continuation.
	Created            models.Schedule `json:"created"`
	AddedBlackoutDates []civil.Date    `json:"added_blackout_dates,omitempty"`
}

// SplitSchedule detaches one occurrence ("single") or every occurrence from
// a date on ("future") into a new record. Body: {"date": "YYYY-MM-DD", "mode": "single"}.
func (h *ScheduleHandler) SplitSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	var input struct {
		Date civil.Date `json:"date"`
		Mode string     `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	fields := make(map[string]string)
	if !input.Date.IsValid() {
		fields["date"] = "required"
	}
	if input.Mode == "" {
		input.Mode = SplitSingle
	}
	if input.Mode != SplitSingle && input.Mode != SplitFuture {
		fields["mode"] = "must be single or future"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	var (
		out      SplitResult
		existing models.Schedule
		created  models.Schedule
	)
	switch input.Mode {
	case SplitSingle:
		split, err := planner.SplitSingleOccurrence(*s, input.Date)
		if err != nil {
			plannerError(w, r, "schedules: split", err)
			return
		}
		existing, created = split.Series, split.Replacement
		out.AddedBlackoutDates = split.Added
	case SplitFuture:
		split, err := planner.SplitFutureOccurrences(*s, input.Date)
		if err != nil {
			plannerError(w, r, "schedules: split", err)
			return
		}
		existing, created = split.Truncated, split.Continuation
	}

	inserted, err := h.Repo.Split(r.Context(), existing, created)
	if err != nil {
		internalError(w, r, "schedules: split", err)
		return
	}
	recordAudit(r.Context(), h.AuditRepo, models.AuditEntry{
		UserID: s.UserID, Action: models.AuditSplit, Resource: models.ResourceSchedule, ResourceID: s.ID,
		Details: fmt.Sprintf("%s %s -> %d", input.Mode, input.Date, inserted.ID),
	})

	out.Mode = input.Mode
	out.Series = existing
	out.Created = snapshot.InLocation([]models.Schedule{*inserted}, h.loc())[0]
	writeJSON(w, http.StatusOK, out)
}
