package repo

import (
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	"github.com/lib/pq"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// dateArg renders a civil date as a postgres date literal; callers cast with ::date.
func dateArg(d civil.Date) string {
	return d.String()
}

func nullDateArg(d *civil.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// datesArg renders dates for a $n::date[] parameter.
func datesArg(dates []civil.Date) any {
	out := make(pq.StringArray, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}

func parseDates(in pq.StringArray) ([]civil.Date, error) {
	out := make([]civil.Date, 0, len(in))
	for _, s := range in {
		d, err := civil.ParseDate(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func nullDate(t sql.NullTime) *civil.Date {
	if !t.Valid {
		return nil
	}
	d := civil.DateOf(t.Time)
	return &d
}

func dateOf(t time.Time) civil.Date {
	return civil.DateOf(t)
}
