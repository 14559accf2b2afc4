// Package workcal implements the training-center working-day calendar:
// Sundays are always off, and so are designated non-working Saturdays
// (by organizational policy, the 2nd and 4th Saturday of each month).
package workcal

import "time"

// workingDaysPerWeek is the number of teaching slots mapped per template week
// when projecting (week, day) slots onto calendar dates.
const workingDaysPerWeek = 5

// Policy reports whether a given date is a non-working day.
type Policy func(t time.Time) bool

// DefaultPolicy skips Sundays and the 2nd/4th Saturday of each month.
func DefaultPolicy(t time.Time) bool {
	return t.Weekday() == time.Sunday || IsNonWorkingSaturday(t)
}

// SaturdayOrdinal returns which Saturday of its month t is (1-based),
// or 0 if t is not a Saturday. The ordinal is strict modulo-7 arithmetic
// from the month's first Saturday, not the calendar's visual week grid.
func SaturdayOrdinal(t time.Time) int {
	if t.Weekday() != time.Saturday {
		return 0
	}
	firstDay := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	daysToFirstSaturday := (int(time.Saturday) - int(firstDay.Weekday()) + 7) % 7
	firstSaturday := 1 + daysToFirstSaturday
	return (t.Day()-firstSaturday)/7 + 1
}

// IsNonWorkingSaturday reports whether t is the 2nd or 4th Saturday of its month.
func IsNonWorkingSaturday(t time.Time) bool {
	ord := SaturdayOrdinal(t)
	return ord == 2 || ord == 4
}

// NextWorkingDay returns the first working day strictly after t.
func NextWorkingDay(t time.Time, policy Policy) time.Time {
	next := t.AddDate(0, 0, 1)
	for policy(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// AddWorkingDays advances n working days from start, one calendar day at a
// time; a day advanced counts toward n only if the policy allows it.
// n == 0 returns start unchanged.
func AddWorkingDays(start time.Time, n int, policy Policy) time.Time {
	current := start
	for remaining := n; remaining > 0; {
		current = current.AddDate(0, 0, 1)
		if !policy(current) {
			remaining--
		}
	}
	return current
}

// ProjectSlot maps a 1-based template slot (weekNumber, dayNumber) onto a
// concrete date anchored at the batch start date, under a 5-working-day week.
// If the projected date itself lands on a non-working day (boundary
// conditions around the anchor), it advances to the next working day.
func ProjectSlot(anchor time.Time, weekNumber, dayNumber int, policy Policy) time.Time {
	offset := (weekNumber-1)*workingDaysPerWeek + (dayNumber - 1)
	date := AddWorkingDays(anchor, offset, policy)
	if policy(date) {
		date = NextWorkingDay(date, policy)
	}
	return date
}
