package timex

import "time"

const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day t falls on in loc. A nil loc means UTC.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// midnight is the start of d in UTC. Day arithmetic is done there so DST
// transitions of the reference zone cannot shift the result.
func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d (before, for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n), time.UTC)
}

// After reports whether d is a later day than other.
func (d Date) After(other Date) bool {
	return d.midnight().After(other.midnight())
}

func (d Date) String() string {
	return d.midnight().Format(dateLayout)
}
