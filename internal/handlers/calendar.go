package handlers

import (
	"net/http"
	"time"

	"github.com/crucial707/dayplan/internal/ical"
	"github.com/crucial707/dayplan/internal/repo"
	"github.com/crucial707/dayplan/internal/snapshot"
)

// CalendarHandler exports the caller's schedules and tasks as iCalendar.
type CalendarHandler struct {
	Users  *repo.UserRepo
	Loader *snapshot.Loader
}

// Export writes text/calendar with one VEVENT per schedule and one VTODO per task.
func (h *CalendarHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		internalError(w, r, "calendar: get user", err)
		return
	}
	snap, err := h.Loader.Load(r.Context(), userID, h.Loader.Today())
	if err != nil {
		internalError(w, r, "calendar: load", err)
		return
	}

	body := ical.Build(user.Username+" planner", snap.Schedules, snap.Tasks, h.Loader.Location(), time.Now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="dayplan.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
