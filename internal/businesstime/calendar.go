// Package businesstime implements the business time accounting engine:
// classification of instants against a configured business calendar and
// closed-form accounting of elapsed business minutes between two instants.
package businesstime

import (
	"time"

	"leadboard_backend/platform/config"
)

// Moment is the civil classification of an instant in the calendar's timezone.
type Moment struct {
	Hour     int
	Weekday  time.Weekday
	Business bool
}

// Calendar holds the immutable business calendar configuration: a civil
// timezone, an [start, end) hour window and the set of non-business weekdays.
type Calendar struct {
	loc       *time.Location
	startHour int
	endHour   int
	weekend   map[time.Weekday]bool
}

// NewCalendar builds a Calendar from validated configuration.
// Config validation guarantees startHour < endHour, so the window is
// never empty.
func NewCalendar(cfg config.CalendarConfig) *Calendar {
	weekend := make(map[time.Weekday]bool)
	for _, day := range cfg.GetWeekendDays() {
		weekend[day] = true
	}
	return &Calendar{
		loc:       cfg.GetBusinessLocation(),
		startHour: cfg.GetBusinessStartHour(),
		endHour:   cfg.GetBusinessEndHour(),
		weekend:   weekend,
	}
}

// Classify converts an absolute instant into its civil wall-clock attributes
// in the calendar's timezone and flags whether it falls inside the business
// window. The conversion goes through the location's offset rules, so
// daylight saving transitions are accounted for.
func (c *Calendar) Classify(at time.Time) Moment {
	local := at.In(c.loc)
	hour := local.Hour()
	weekday := local.Weekday()
	return Moment{
		Hour:     hour,
		Weekday:  weekday,
		Business: !c.weekend[weekday] && hour >= c.startHour && hour < c.endHour,
	}
}

// DayStart returns civil midnight of the instant's day in the calendar's
// timezone: the day boundary used to delimit "today" for reporting.
func (c *Calendar) DayStart(at time.Time) time.Time {
	local := at.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// MinutesPerDay returns the length of one synthetic business day in minutes.
func (c *Calendar) MinutesPerDay() int {
	return (c.endHour - c.startHour) * 60
}

// Location returns the calendar's civil timezone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// windowFor returns the [open, closeAt) business window of the civil day
// containing the given local date components. On a non-business weekday
// the window is empty (ok == false).
func (c *Calendar) windowFor(year int, month time.Month, day int) (open, closeAt time.Time, ok bool) {
	open = c.hourBoundary(year, month, day, c.startHour)
	if c.weekend[open.Weekday()] {
		return time.Time{}, time.Time{}, false
	}
	closeAt = c.hourBoundary(year, month, day, c.endHour)
	return open, closeAt, true
}

// hourBoundary returns the first instant whose civil reading in the
// calendar's timezone reaches the given wall-clock hour of the given day.
// When the hour exists that is simply time.Date; when a forward zone
// transition skips it, time.Date resolves to one side of the gap and the
// boundary is clamped to the transition instant instead, so a window whose
// edge falls inside the gap shrinks rather than leaking minutes that
// Classify would reject.
func (c *Calendar) hourBoundary(year int, month time.Month, day, hour int) time.Time {
	at := time.Date(year, month, day, hour, 0, 0, 0, c.loc)
	// The UTC construction only normalizes the civil components (hour 24
	// rolls into the next day, day rollover into the next month).
	want := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	if at.Hour() == want.Hour() && at.Day() == want.Day() {
		return at
	}
	start, end := at.ZoneBounds()
	if at.Day() == want.Day() && at.Hour() > want.Hour() {
		// Resolved past the gap: the transition started at's zone.
		return start
	}
	// Resolved before the gap: the transition ends at's zone.
	return end
}
