package planner

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/crucial707/dayplan/internal/models"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// schedule repeats from the template's own day with no end.
func schedule(repeat models.Repeat, start, end time.Time) models.Schedule {
	return models.Schedule{
		ID:              1,
		Name:            "block",
		StartTime:       start,
		EndTime:         end,
		Repeat:          repeat,
		RepeatStartDate: civil.DateOf(start),
	}
}
