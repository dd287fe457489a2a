package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"

	"github.com/crucial707/dayplan/internal/config"
	"github.com/crucial707/dayplan/internal/middleware"
	"github.com/crucial707/dayplan/internal/repo"
	"github.com/crucial707/dayplan/internal/snapshot"
)

var (
	scheduleCols = []string{"id", "user_id", "name", "start_time", "end_time", "repeat", "repeat_start_date", "repeat_end_date", "blackout_dates", "location", "memo", "created_at"}
	taskCols     = []string{"id", "user_id", "name", "deadline", "estimated_hours", "memo", "created_at"}
	settingsCols = []string{"user_id", "available_hours_per_day", "horizon_date", "unscheduled_hours_per_day", "updated_at"}
)

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// asUser attaches an authenticated user id the way JWTMiddleware does.
func asUser(r *http.Request, id int) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), id))
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newLoader(db *sql.DB) *snapshot.Loader {
	return &snapshot.Loader{
		Schedules: repo.NewScheduleRepo(db),
		Tasks:     repo.NewTaskRepo(db),
		Settings:  repo.NewSettingsRepo(db),
		Defaults:  config.PlannerDefaults{AvailableHoursPerDay: 8, UnscheduledHoursPerDay: 4, HorizonDays: 28},
		Loc:       time.UTC,
	}
}

// expectSnapshot queues the three loader queries for userID.
func expectSnapshot(mock sqlmock.Sqlmock, userID int, schedules, tasks, settings *sqlmock.Rows) {
	mock.ExpectQuery(`FROM schedules WHERE user_id`).WithArgs(userID).WillReturnRows(schedules)
	mock.ExpectQuery(`FROM tasks WHERE user_id`).WithArgs(userID).WillReturnRows(tasks)
	mock.ExpectQuery(`FROM settings WHERE user_id`).WithArgs(userID).WillReturnRows(settings)
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
