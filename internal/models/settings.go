package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// Settings is the per-user planning budget.
type Settings struct {
	UserID int `json:"user_id"`
	// AvailableHoursPerDay caps daily schedule occupancy and is the baseline for slack.
	AvailableHoursPerDay float64 `json:"available_hours_per_day"`
	// HorizonDate is the last day whose schedules are treated as confirmed.
	HorizonDate civil.Date `json:"horizon_date"`
	// UnscheduledHoursPerDay is the usable time assumed for days past HorizonDate.
	UnscheduledHoursPerDay float64   `json:"unscheduled_hours_per_day"`
	UpdatedAt              time.Time `json:"updated_at,omitempty"`
}
