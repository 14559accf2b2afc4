package workcal

import "time"

// WeekBounds returns the ISO week (Monday-start) containing t, as an
// inclusive [start, end] pair in t's location: Monday 00:00:00 to
// Sunday 23:59:59.999999999.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday closes the ISO week
		weekday = 7
	}
	year, month, day := t.AddDate(0, 0, -(weekday - 1)).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// NextWeekBounds returns the bounds of the ISO week following the one containing t.
func NextWeekBounds(t time.Time) (time.Time, time.Time) {
	return WeekBounds(t.AddDate(0, 0, 7))
}

// MonthBounds returns the given calendar month as an inclusive [start, end]
// pair in UTC: the 1st at 00:00:00 to the last day at 23:59:59.999999999.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
