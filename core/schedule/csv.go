package schedule

import (
	"encoding/csv"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// contentSeparator joins continuation-row content within a single grid cell.
// It is stored literally; the calendar layer splits on it again.
const contentSeparator = "<br>"

var dayMarkerRegex = regexp.MustCompile(`(?i)^Day\s+\d+`)

type (
	// Grid is a parsed schedule grid: one row per logical teaching day,
	// one column per template week.
	Grid struct {
		// Headers is the header row; Headers[0] is the day-label column,
		// the rest are week labels in template order.
		Headers []string
		Rows    []GridRow
	}

	GridRow struct {
		Day   string            // the "Day N" label that opened this row
		Cells map[string]string // header -> (possibly merged) cell content
	}
)

// ParseCSV splits quoted CSV text and assembles the schedule grid from it.
func ParseCSV(text string) (Grid, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	r.FieldsPerRecord = -1 // exported grids have ragged rows
	records, err := r.ReadAll()
	if err != nil {
		return Grid{}, errors.Wrap(err, "reading csv")
	}
	return ParseGrid(records), nil
}

// ParseGrid assembles a Grid from raw tabular cells.
//
// The first row containing "week" (case-insensitive) in any cell is the
// header row; anything above it (titles, blurbs) is skipped. Below it, a row
// whose first cell matches "Day <n>" opens a logical day; a following row
// with no day marker but some content continues the current day, its cells
// appended column-wise with a "<br>" separator. A grid with no header row
// yields no rows; callers decide whether that is a format error.
func ParseGrid(records [][]string) Grid {
	var grid Grid
	var current *GridRow

	flush := func() {
		if current != nil {
			grid.Rows = append(grid.Rows, *current)
			current = nil
		}
	}

	for _, row := range records {
		if len(row) == 0 {
			continue
		}

		if grid.Headers == nil {
			if hasWeekHeader(row) {
				grid.Headers = make([]string, len(row))
				for i, h := range row {
					grid.Headers[i] = strings.TrimSpace(h)
				}
			}
			continue
		}

		firstCol := strings.TrimSpace(row[0])
		switch {
		case dayMarkerRegex.MatchString(firstCol):
			flush()
			current = &GridRow{Day: firstCol, Cells: make(map[string]string, len(grid.Headers))}
			for i, header := range grid.Headers {
				current.Cells[header] = cellAt(row, i)
			}
		case current != nil && hasContent(row):
			for i, header := range grid.Headers {
				content := cellAt(row, i)
				if content == "" {
					continue
				}
				if existing := current.Cells[header]; existing != "" {
					current.Cells[header] = existing + contentSeparator + content
				} else {
					current.Cells[header] = content
				}
			}
		}
	}
	flush()

	return grid
}

// WeekHeaders returns the week columns, i.e. the header row minus the
// day-label column.
func (g Grid) WeekHeaders() []string {
	if len(g.Headers) < 2 {
		return nil
	}
	return g.Headers[1:]
}

// IsEmpty reports whether parsing produced no usable day entries.
func (g Grid) IsEmpty() bool {
	return len(g.Rows) == 0
}

// ScheduleData converts the grid into the week-grouped upload payload:
// week numbers are 1-based column order, day numbers 1-based row order,
// and only non-empty cells produce day slots.
func (g Grid) ScheduleData() []WeekSchedule {
	weeks := make([]WeekSchedule, 0, len(g.WeekHeaders()))
	for weekIdx, header := range g.WeekHeaders() {
		week := WeekSchedule{Week: weekIdx + 1}
		for dayIdx, row := range g.Rows {
			if content := strings.TrimSpace(row.Cells[header]); content != "" {
				week.Days = append(week.Days, DaySchedule{Day: dayIdx + 1, Content: content})
			}
		}
		if len(week.Days) > 0 {
			weeks = append(weeks, week)
		}
	}
	return weeks
}

func hasWeekHeader(row []string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), "week") {
			return true
		}
	}
	return false
}

func hasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
