package models

import "fmt"

// Repeat is the recurrence pattern of a schedule.
type Repeat int

const (
	RepeatNone Repeat = iota
	RepeatDaily
	RepeatWeekly
	RepeatMonthly
	RepeatYearly
)

var repeatNames = [...]string{
	RepeatNone:    "none",
	RepeatDaily:   "daily",
	RepeatWeekly:  "weekly",
	RepeatMonthly: "monthly",
	RepeatYearly:  "yearly",
}

// ParseRepeat converts the stored/wire name of a pattern. An empty string is "none".
func ParseRepeat(s string) (Repeat, error) {
	if s == "" {
		return RepeatNone, nil
	}
	for i, name := range repeatNames {
		if name == s {
			return Repeat(i), nil
		}
	}
	return RepeatNone, fmt.Errorf("unknown repeat %q", s)
}

func (r Repeat) String() string {
	if r < RepeatNone || r > RepeatYearly {
		return fmt.Sprintf("Repeat(%d)", int(r))
	}
	return repeatNames[r]
}

// Recurring reports whether r is anything other than RepeatNone.
func (r Repeat) Recurring() bool {
	return r != RepeatNone
}

func (r Repeat) MarshalText() ([]byte, error) {
	if r < RepeatNone || r > RepeatYearly {
		return nil, fmt.Errorf("invalid repeat %d", int(r))
	}
	return []byte(repeatNames[r]), nil
}

func (r *Repeat) UnmarshalText(b []byte) error {
	v, err := ParseRepeat(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
