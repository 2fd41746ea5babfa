package shared

import "time"

// Clock supplies the current time. Injected wherever "today" matters so tests
// can pin the date.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// DateOf drops the time of day, keeping the calendar date of t as midnight UTC.
// Calendar dates are stored in DATE columns, so the zone carries no meaning.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is the calendar date of c.Now().
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}
