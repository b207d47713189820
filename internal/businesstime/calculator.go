package businesstime

import (
	"math"
	"strconv"
	"strings"
	"time"

	"leadboard_backend/platform/clock"
)

// Calculator computes business durations against a Calendar. It is a pure
// computation layer; its only external dependency is the injected clock.
type Calculator struct {
	cal   *Calendar
	clock clock.Clock
}

// NewCalculator creates a Calculator using the given calendar and clock.
func NewCalculator(cal *Calendar, clk clock.Clock) *Calculator {
	return &Calculator{cal: cal, clock: clk}
}

// Calendar returns the calendar the calculator computes against.
func (calc *Calculator) Calendar() *Calendar {
	return calc.cal
}

// MinutesBetween returns the number of whole minutes m for which the
// minute-start instant start+m*1min falls inside the business window,
// with m < floor(end-start in minutes). A reversed interval yields 0;
// the calculator never returns negative durations.
//
// The minute grid is anchored at start, and sub-minute remainders are
// truncated. Instead of enumerating the grid, each civil day of the
// interval contributes the count of grid points inside its clipped
// business window, so the cost is O(civil days spanned).
func (calc *Calculator) MinutesBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}

	// Grid points beyond this offset fall outside [start, end).
	gridLimit := (end.Sub(start) / time.Minute) * time.Minute

	loc := calc.cal.loc
	total := 0

	local := start.In(loc)
	year, month, day := local.Date()
	for {
		dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
		if !dayStart.Before(end) {
			break
		}

		if open, closeAt, ok := calc.cal.windowFor(year, month, day); ok {
			total += gridPointsWithin(start, gridLimit, open, closeAt)
		}

		// time.Date normalizes out-of-range days, so this walks civil
		// days across month and year boundaries.
		day++
	}

	return total
}

// gridPointsWithin counts minute-grid offsets d = m*1min with 0 <= d < limit
// whose instant start+d lies in [open, closeAt).
func gridPointsWithin(start time.Time, limit time.Duration, open, closeAt time.Time) int {
	lo := open.Sub(start)
	if lo < 0 {
		lo = 0
	}
	hi := closeAt.Sub(start)
	if hi > limit {
		hi = limit
	}
	if hi <= lo {
		return 0
	}
	return int(ceilMinutes(hi) - ceilMinutes(lo))
}

// ceilMinutes returns ceil(d / 1min) for non-negative d. For an exclusive
// upper bound this equals the count of grid points below it, and for an
// inclusive lower bound it is the first grid point at or above it.
func ceilMinutes(d time.Duration) time.Duration {
	return (d + time.Minute - 1) / time.Minute
}

// AverageMinutes returns the rounded arithmetic mean of MinutesBetween over
// the given (start, end) pairs, rounding half away from zero. An empty input
// yields 0.
func (calc *Calculator) AverageMinutes(pairs [][2]time.Time) int {
	if len(pairs) == 0 {
		return 0
	}

	sum := 0
	for _, pair := range pairs {
		sum += calc.MinutesBetween(pair[0], pair[1])
	}

	return int(math.Round(float64(sum) / float64(len(pairs))))
}

// MinutesSince returns the business minutes elapsed from start until now.
func (calc *Calculator) MinutesSince(start time.Time) int {
	return calc.MinutesBetween(start, calc.clock.Now())
}

// FormatDuration renders a minute count as a compact label such as
// "2d 3h 15m", where one day is the length of the business window rather
// than 24 hours. Zero components are omitted except that a fully zero value
// renders as "0m".
func (calc *Calculator) FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}

	perDay := calc.cal.MinutesPerDay()
	days := minutes / perDay
	rem := minutes % perDay
	hours := rem / 60
	mins := rem % 60

	var parts []string
	if days > 0 {
		parts = append(parts, strconv.Itoa(days)+"d")
	}
	if hours > 0 {
		parts = append(parts, strconv.Itoa(hours)+"h")
	}
	if mins > 0 || len(parts) == 0 {
		parts = append(parts, strconv.Itoa(mins)+"m")
	}

	return strings.Join(parts, " ")
}
