// Package clock resolves instants into civil dates and times-of-day in the
// single fixed operational timezone. Every time-sensitive decision in the
// engine goes through it, so the server's own timezone never leaks in.
package clock

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Civil struct {
	loc *time.Location
}

func New(tzName string) (*Civil, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, err
	}
	return &Civil{loc: loc}, nil
}

// MustNew is for wiring paths where the timezone name is already validated.
func MustNew(tzName string) *Civil {
	c, err := New(tzName)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Civil) Location() *time.Location {
	return c.loc
}

// Date renders t as YYYY-MM-DD in the operational timezone.
func (c *Civil) Date(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

// TimeOfDay renders t as HH:MM in the operational timezone.
func (c *Civil) TimeOfDay(t time.Time) string {
	return t.In(c.loc).Format(TimeLayout)
}

// ParseDate interprets a YYYY-MM-DD string as midnight in the operational
// timezone.
func (c *Civil) ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, c.loc)
}

// Combine interprets date + time-of-day strings as an instant in the
// operational timezone.
func (c *Civil) Combine(date, timeOfDay string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+timeOfDay, c.loc)
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD string.
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// ValidTimeOfDay reports whether timeOfDay is a well-formed HH:MM string.
func ValidTimeOfDay(timeOfDay string) bool {
	_, err := time.Parse(TimeLayout, timeOfDay)
	return err == nil
}
