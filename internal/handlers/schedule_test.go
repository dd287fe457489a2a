package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/DATA-DOG/go-sqlmock"

	"github.com/crucial707/dayplan/internal/repo"
)

var (
	gymStart = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	gymEnd   = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
)

func gymRow(repeat string) *sqlmock.Rows {
	return sqlmock.NewRows(scheduleCols).
		AddRow(3, 1, "gym", gymStart, gymEnd, repeat, utcDate(2024, 1, 1), nil, "{}", "", "", gymStart)
}

func TestScheduleHandler_ListSchedules(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM schedules WHERE user_id = \$1`).WithArgs(1).WillReturnRows(gymRow("weekly"))

	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db)}
	rr := httptest.NewRecorder()
	h.ListSchedules(rr, asUser(httptest.NewRequest("GET", "/schedules", nil), 1))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var out []struct {
		ID     int    `json:"id"`
		Repeat string `json:"repeat"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Repeat != "weekly" {
		t.Errorf("unexpected body: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestScheduleHandler_Unauthenticated(t *testing.T) {
	db, _ := newMock(t)
	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db)}
	rr := httptest.NewRecorder()
	h.ListSchedules(rr, httptest.NewRequest("GET", "/schedules", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestScheduleHandler_GetSchedule_NotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM schedules WHERE id = \$1 AND user_id = \$2`).
		WithArgs(999, 1).
		WillReturnRows(sqlmock.NewRows(scheduleCols))

	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db)}
	req := asUser(requestWithChiURLParams("GET", "/schedules/999", nil, map[string]string{"id": "999"}), 1)
	rr := httptest.NewRecorder()
	h.GetSchedule(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestScheduleHandler_GetSchedule_InvalidID(t *testing.T) {
	db, _ := newMock(t)
	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db)}
	req := asUser(requestWithChiURLParams("GET", "/schedules/abc", nil, map[string]string{"id": "abc"}), 1)
	rr := httptest.NewRecorder()
	h.GetSchedule(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestScheduleHandler_CreateSchedule(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO schedules`).
		WithArgs(1, "gym", gymStart, gymEnd, "weekly", "2024-01-01", nil, sqlmock.AnyArg(), "", "").
		WillReturnRows(gymRow("weekly"))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(1, "create", "schedule", 3, "gym").
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db), AuditRepo: repo.NewAuditRepo(db), Loc: time.UTC}
	body, _ := json.Marshal(map[string]interface{}{
		"name":       "gym",
		"start_time": gymStart,
		"end_time":   gymEnd,
		"repeat":     "weekly",
	})
	rr := httptest.NewRecorder()
	h.CreateSchedule(rr, asUser(requestWithChiURLParams("POST", "/schedules", body, nil), 1))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestScheduleHandler_CreateSchedule_Validation(t *testing.T) {
	db, mock := newMock(t)
	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db)}

	body, _ := json.Marshal(map[string]interface{}{
		"name":            "",
		"start_time":      gymEnd,
		"end_time":        gymStart,
		"repeat":          "fortnightly",
		"repeat_end_date": "2023-12-01",
	})
	rr := httptest.NewRecorder()
	h.CreateSchedule(rr, asUser(requestWithChiURLParams("POST", "/schedules", body, nil), 1))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rr.Code)
	}
	var out struct {
		Fields map[string]string `json:"fields"`
	}
	json.NewDecoder(rr.Body).Decode(&out)
	for _, f := range []string{"name", "end_time", "repeat", "repeat_end_date"} {
		if out.Fields[f] == "" {
			t.Errorf("missing field error for %s: %v", f, out.Fields)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestScheduleHandler_DeleteSchedule(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM schedules WHERE id = \$1 AND user_id = \$2`).WithArgs(3, 1).WillReturnRows(gymRow("weekly"))
	mock.ExpectExec(`DELETE FROM schedules`).WithArgs(3, 1).WillReturnResult(sqlmock.NewResult(0, 1))

	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db)}
	rr := httptest.NewRecorder()
	h.DeleteSchedule(rr, asUser(requestWithChiURLParams("DELETE", "/schedules/3", nil, map[string]string{"id": "3"}), 1))

	if rr.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestScheduleHandler_SplitSchedule_Single(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM schedules WHERE id = \$1 AND user_id = \$2`).WithArgs(3, 1).WillReturnRows(gymRow("weekly"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE schedules`).
		WithArgs("gym", gymStart, gymEnd, "weekly", "2024-01-01", nil, sqlmock.AnyArg(), "", "", 3, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO schedules`).
		WithArgs(1, "gym", gymStart.AddDate(0, 0, 7), gymEnd.AddDate(0, 0, 7), "none", "2024-01-08", nil, sqlmock.AnyArg(), "", "").
		WillReturnRows(sqlmock.NewRows(scheduleCols).
			AddRow(4, 1, "gym", gymStart.AddDate(0, 0, 7), gymEnd.AddDate(0, 0, 7), "none", utcDate(2024, 1, 8), nil, "{}", "", "", gymStart))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(1, "split", "schedule", 3, "single 2024-01-08 -> 4").
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db), AuditRepo: repo.NewAuditRepo(db), Loc: time.UTC}
	body, _ := json.Marshal(map[string]string{"date": "2024-01-08", "mode": "single"})
	rr := httptest.NewRecorder()
	h.SplitSchedule(rr, asUser(requestWithChiURLParams("POST", "/schedules/3/split", body, map[string]string{"id": "3"}), 1))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	var out struct {
		Mode    string `json:"mode"`
		Created struct {
			ID     int    `json:"id"`
			Repeat string `json:"repeat"`
		} `json:"created"`
		Series struct {
			BlackoutDates []civil.Date `json:"blackout_dates"`
		} `json:"series"`
		Added []civil.Date `json:"added_blackout_dates"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	jan8 := civil.Date{Year: 2024, Month: 1, Day: 8}
	if out.Created.ID != 4 || out.Created.Repeat != "none" {
		t.Errorf("unexpected created: %+v", out.Created)
	}
	if len(out.Added) != 1 || out.Added[0] != jan8 {
		t.Errorf("added blackout dates: got %v", out.Added)
	}
	if len(out.Series.BlackoutDates) != 1 || out.Series.BlackoutDates[0] != jan8 {
		t.Errorf("series blackout dates: got %v", out.Series.BlackoutDates)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestScheduleHandler_SplitSchedule_NotRecurring(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM schedules WHERE id = \$1 AND user_id = \$2`).WithArgs(3, 1).WillReturnRows(gymRow("none"))

	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db), Loc: time.UTC}
	body, _ := json.Marshal(map[string]string{"date": "2024-01-01", "mode": "future"})
	rr := httptest.NewRecorder()
	h.SplitSchedule(rr, asUser(requestWithChiURLParams("POST", "/schedules/3/split", body, map[string]string{"id": "3"}), 1))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestScheduleHandler_SplitSchedule_NoOccurrence(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM schedules WHERE id = \$1 AND user_id = \$2`).WithArgs(3, 1).WillReturnRows(gymRow("weekly"))

	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db), Loc: time.UTC}
	body, _ := json.Marshal(map[string]string{"date": "2024-01-09", "mode": "single"})
	rr := httptest.NewRecorder()
	h.SplitSchedule(rr, asUser(requestWithChiURLParams("POST", "/schedules/3/split", body, map[string]string{"id": "3"}), 1))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rr.Code)
	}
}

func TestScheduleHandler_SplitSchedule_BadMode(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM schedules WHERE id = \$1 AND user_id = \$2`).WithArgs(3, 1).WillReturnRows(gymRow("weekly"))

	h := &ScheduleHandler{Repo: repo.NewScheduleRepo(db), Loc: time.UTC}
	body, _ := json.Marshal(map[string]string{"date": "2024-01-08", "mode": "all"})
	rr := httptest.NewRecorder()
	h.SplitSchedule(rr, asUser(requestWithChiURLParams("POST", "/schedules/3/split", body, map[string]string{"id": "3"}), 1))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}
