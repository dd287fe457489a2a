package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// Schedule is a calendar block, optionally repeating.
// StartTime/EndTime are the template occurrence: their dates anchor the
// recurrence bucket and their clock times are reused on every occurrence.
type Schedule struct {
	ID              int          `json:"id"`
	UserID          int          `json:"user_id"`
	Name            string       `json:"name"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         time.Time    `json:"end_time"`
	Repeat          Repeat       `json:"repeat"`
	RepeatStartDate civil.Date   `json:"repeat_start_date"`
	RepeatEndDate   *civil.Date  `json:"repeat_end_date"` // nil = open-ended
	BlackoutDates   []civil.Date `json:"blackout_dates"`
	Location        string       `json:"location,omitempty"`
	Memo            string       `json:"memo,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Clone returns a copy that shares no slices or pointers with s.
func (s Schedule) Clone() Schedule {
	out := s
	if s.RepeatEndDate != nil {
		end := *s.RepeatEndDate
		out.RepeatEndDate = &end
	}
	if s.BlackoutDates != nil {
		out.BlackoutDates = append([]civil.Date(nil), s.BlackoutDates...)
	}
	return out
}
