package core

import (
	"strings"
	"time"
)

// ElapsedDays returns the absolute number of calendar days between the
// purchase date and now, both taken as dates in loc. Time of day is ignored.
func ElapsedDays(purchase, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	p := midnightUTC(purchase.In(loc))
	n := midnightUTC(now.In(loc))
	days := int(n.Sub(p).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

// ParsePurchaseDate accepts YYYY-MM-DD, or an RFC 3339 timestamp which is
// reduced to its calendar date in loc.
func ParsePurchaseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidPurchaseDate
	}
	y, m, d := ts.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// midnightUTC maps a wall-clock date onto UTC midnight so DST transitions
// cannot shift the day count.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
