package project

import (
	"fmt"
	"strings"
	"time"
)

// Accepted date layouts, most specific first.
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseDate parses a project date into a comparable calendar value.
// "YYYY-MM" resolves to the first day of that month (UTC).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(MonthLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM or YYYY-MM-DD", s)
}

// Today formats now as a full project date.
func Today(now time.Time) string {
	return now.Format(DayLayout)
}
