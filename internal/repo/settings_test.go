package repo

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/DATA-DOG/go-sqlmock"

	"github.com/crucial707/dayplan/internal/models"
)

func TestSettingsRepo_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT user_id, available_hours_per_day, horizon_date, unscheduled_hours_per_day, updated_at`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "available_hours_per_day", "horizon_date", "unscheduled_hours_per_day", "updated_at"}).
			AddRow(3, 8.0, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), 4.0, time.Now()))

	s, err := NewSettingsRepo(db).Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.AvailableHoursPerDay != 8 || s.UnscheduledHoursPerDay != 4 || s.HorizonDate != (civil.Date{Year: 2024, Month: 6, Day: 30}) {
		t.Errorf("unexpected settings: %+v", s)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestSettingsRepo_Get_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM settings WHERE user_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "available_hours_per_day", "horizon_date", "unscheduled_hours_per_day", "updated_at"}))

	s, err := NewSettingsRepo(db).Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil settings, got %+v", s)
	}
}

func TestSettingsRepo_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO settings .* ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs(3, 10.0, "2024-12-31", 5.0).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	out, err := NewSettingsRepo(db).Upsert(context.Background(), models.Settings{
		UserID: 3, AvailableHoursPerDay: 10, HorizonDate: civil.Date{Year: 2024, Month: 12, Day: 31}, UnscheduledHoursPerDay: 5,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !out.UpdatedAt.Equal(now) {
		t.Errorf("updated_at not set: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
