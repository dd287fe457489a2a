package handlers

import (
	"math"
	"net/http"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/planner"
	"github.com/crucial707/dayplan/internal/repo"
	"github.com/crucial707/dayplan/internal/snapshot"
)

// PlanHandler serves read-only planning views.
type PlanHandler struct {
	Loader *snapshot.Loader
	Notes  *repo.NoteRepo
}

// DayPlan is everything happening on one calendar day.
type DayPlan struct {
	Date          civil.Date        `json:"date"`
	Schedules     []models.Schedule `json:"schedules"`
	Tasks         []models.Task     `json:"tasks"`
	Notes         []models.Note     `json:"notes"`
	OccupiedHours float64           `json:"occupied_hours"`
	Available     float64           `json:"available_hours"`
}

// DayHours is one entry of the occupancy listing.
type DayHours struct {
	Date  civil.Date `json:"date"`
	Hours float64    `json:"hours"`
}

// Day returns the schedules, tasks and notes of ?date= (default today).
func (h *PlanHandler) Day(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	today := h.Loader.Today()
	day, ok := dateParam(w, r, "date", today)
	if !ok {
		return
	}
	snap, err := h.Loader.Load(r.Context(), userID, today)
	if err != nil {
		internalError(w, r, "plan: load", err)
		return
	}
	notes, err := h.Notes.ListByDate(r.Context(), userID, day)
	if err != nil {
		internalError(w, r, "plan: notes", err)
		return
	}

	schedules := planner.SchedulesOn(snap.Schedules, day)
	hours := 0.0
	for _, s := range schedules {
		hours += planner.OccupiedHours(s, day)
	}
	writeJSON(w, http.StatusOK, DayPlan{
		Date:          day,
		Schedules:     schedules,
		Tasks:         planner.TasksOn(snap.Tasks, day),
		Notes:         notes,
		OccupiedHours: math.Min(hours, snap.Settings.AvailableHoursPerDay),
		Available:     snap.Settings.AvailableHoursPerDay,
	})
}

// Occupancy returns capped occupied hours per day from ?from= (default today)
// through the planning range end.
func (h *PlanHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	today := h.Loader.Today()
	from, ok := dateParam(w, r, "from", today)
	if !ok {
		return
	}
	snap, err := h.Loader.Load(r.Context(), userID, today)
	if err != nil {
		internalError(w, r, "plan: load", err)
		return
	}

	occ := planner.DailyOccupiedHours(from, snap.Schedules, snap.Tasks, snap.Settings)
	out := make([]DayHours, 0, len(occ))
	for d, hrs := range occ {
		out = append(out, DayHours{Date: d, Hours: hrs})
	}
	slices.SortFunc(out, func(a, b DayHours) int { return a.Date.DaysSince(b.Date) })
	writeJSON(w, http.StatusOK, out)
}

// Slack returns the remaining slack of every task as of ?today=, ordered by deadline.
func (h *PlanHandler) Slack(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	today, ok := dateParam(w, r, "today", h.Loader.Today())
	if !ok {
		return
	}
	snap, err := h.Loader.Load(r.Context(), userID, today)
	if err != nil {
		internalError(w, r, "plan: load", err)
		return
	}
	writeJSON(w, http.StatusOK, planner.Plan(today, snap.Schedules, snap.Tasks, snap.Settings))
}
