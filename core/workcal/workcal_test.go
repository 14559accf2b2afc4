package workcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSaturdayOrdinal(t *testing.T) {
	tests := map[string]struct {
		in   time.Time
		want int
	}{
		"not a saturday":               {date(2025, time.September, 3), 0},
		"first saturday":               {date(2025, time.September, 6), 1},
		"second saturday":              {date(2025, time.September, 13), 2},
		"third saturday":               {date(2025, time.September, 20), 3},
		"fourth saturday":              {date(2025, time.September, 27), 4},
		"month starting on a saturday": {date(2025, time.November, 1), 1},
		"second when first is the 1st": {date(2025, time.November, 8), 2},
		"fifth saturday":               {date(2025, time.November, 29), 5},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SaturdayOrdinal(tt.in))
		})
	}
}

func TestIsNonWorkingSaturday(t *testing.T) {
	tests := map[string]struct {
		in   time.Time
		want bool
	}{
		"sunday":          {date(2025, time.September, 14), false},
		"weekday":         {date(2025, time.September, 10), false},
		"first saturday":  {date(2025, time.September, 6), false},
		"second saturday": {date(2025, time.September, 13), true},
		"third saturday":  {date(2025, time.September, 20), false},
		"fourth saturday": {date(2025, time.September, 27), true},
		"fifth saturday":  {date(2025, time.November, 29), false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNonWorkingSaturday(tt.in))
		})
	}
}

func TestAddWorkingDays(t *testing.T) {
	tests := map[string]struct {
		start time.Time
		n     int
		want  time.Time
	}{
		"zero offset returns start": {date(2025, time.September, 8), 0, date(2025, time.September, 8)},
		"plain weekdays":            {date(2025, time.September, 1), 3, date(2025, time.September, 4)},
		"counts a working saturday": {date(2025, time.September, 1), 5, date(2025, time.September, 6)},
		"skips second saturday and sunday": {
			start: date(2025, time.September, 8), n: 5,
			want: date(2025, time.September, 15),
		},
		"crosses a full skipped weekend": {
			start: date(2025, time.September, 12), n: 1, // Fri before 2nd Sat
			want: date(2025, time.September, 15),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddWorkingDays(tt.start, tt.n, DefaultPolicy))
		})
	}
}

func TestNextWorkingDay(t *testing.T) {
	// Friday before a non-working Saturday jumps to Monday.
	got := NextWorkingDay(date(2025, time.September, 12), DefaultPolicy)
	assert.Equal(t, date(2025, time.September, 15), got)

	// Plain weekday advances a single day.
	got = NextWorkingDay(date(2025, time.September, 9), DefaultPolicy)
	assert.Equal(t, date(2025, time.September, 10), got)
}

func TestProjectSlot(t *testing.T) {
	anchor := date(2025, time.September, 8) // a Monday

	// Week 1 slots map onto the anchor week.
	assert.Equal(t, anchor, ProjectSlot(anchor, 1, 1, DefaultPolicy))
	assert.Equal(t, date(2025, time.September, 12), ProjectSlot(anchor, 1, 5, DefaultPolicy))

	// Day 6 of week 1 lands on the following Monday: that week's Saturday
	// is the 2nd of the month and Sunday is always off.
	assert.Equal(t, date(2025, time.September, 15), ProjectSlot(anchor, 1, 6, DefaultPolicy))

	// Week 2 day 1 = 5 working days out, same as week 1 day 6 here.
	assert.Equal(t, date(2025, time.September, 15), ProjectSlot(anchor, 2, 1, DefaultPolicy))
}

// Projection must never land on a Sunday or a 2nd/4th Saturday, for any
// anchor and offset.
func TestProjectSlotNeverNonWorking(t *testing.T) {
	for anchorDay := 0; anchorDay < 60; anchorDay++ {
		anchor := date(2025, time.September, 1).AddDate(0, 0, anchorDay)
		for week := 1; week <= 9; week++ {
			for day := 1; day <= 6; day++ {
				got := ProjectSlot(anchor, week, day, DefaultPolicy)
				if got.Weekday() == time.Sunday {
					t.Fatalf("ProjectSlot(%v, %d, %d) = %v; landed on a Sunday", anchor, week, day, got)
				}
				if IsNonWorkingSaturday(got) {
					t.Fatalf("ProjectSlot(%v, %d, %d) = %v; landed on a non-working Saturday", anchor, week, day, got)
				}
			}
		}
	}
}

func TestWeekBounds(t *testing.T) {
	wantStart := date(2025, time.September, 1)
	wantEnd := date(2025, time.September, 8).Add(-time.Nanosecond)

	for _, in := range []time.Time{
		date(2025, time.September, 1),                          // Monday
		date(2025, time.September, 3),                          // midweek
		date(2025, time.September, 7),                          // Sunday still belongs to the week
		time.Date(2025, time.September, 5, 17, 30, 0, 0, time.UTC), // with time of day
	} {
		start, end := WeekBounds(in)
		assert.Equal(t, wantStart, start, "start for %v", in)
		assert.Equal(t, wantEnd, end, "end for %v", in)
	}
}

func TestNextWeekBounds(t *testing.T) {
	start, end := NextWeekBounds(date(2025, time.September, 3))
	assert.Equal(t, date(2025, time.September, 8), start)
	assert.Equal(t, date(2025, time.September, 15).Add(-time.Nanosecond), end)
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2025, time.September)
	assert.Equal(t, date(2025, time.September, 1), start)
	assert.Equal(t, date(2025, time.October, 1).Add(-time.Nanosecond), end)

	// December rolls over into the next year
	start, end = MonthBounds(2025, time.December)
	assert.Equal(t, date(2025, time.December, 1), start)
	assert.Equal(t, date(2026, time.January, 1).Add(-time.Nanosecond), end)
}
