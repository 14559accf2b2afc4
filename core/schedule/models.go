package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

// Statuses
const (
	StatusScheduled   = "scheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

// Entry is one template slot (week, day) of a batch's schedule grid.
// Content may hold several merged lines joined with a literal "<br>".
type Entry struct {
	ID          int       `json:"id"`
	BatchID     int       `json:"batch_id"`
	WeekNumber  int       `json:"week_number"`
	DayNumber   int       `json:"day_number"`
	Content     string    `json:"session_content"`
	SessionDate null.Time `json:"session_date"`
	Status      string    `json:"status"`
	TrainerID   null.Int  `json:"trainer_id"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// DaySchedule is one day's slot within an uploaded week. Multiple entries for
// the same day are allowed (multiple sessions per day).
type DaySchedule struct {
	Day       int        `json:"day" validate:"required,min=1,max=6"`
	Content   string     `json:"content"`
	Date      *time.Time `json:"date"`
	TrainerID *int       `json:"trainer_id"`
}

// WeekSchedule groups the day slots of one template week.
type WeekSchedule struct {
	Week int           `json:"week" validate:"required,min=1"`
	Days []DaySchedule `json:"days" validate:"dive"`
}

// BulkUpload is the bulk-upload request payload: a full replacement of the
// batch's schedule grid.
type BulkUpload struct {
	BatchID      int            `json:"batch_id" validate:"required"`
	ScheduleData []WeekSchedule `json:"schedule_data" validate:"dive"`
}

func (bu *BulkUpload) Validate(validate *validator.Validate) error {
	return validate.Struct(bu)
}

// UpdateEntry defines what may be modified on an existing Entry.
type UpdateEntry struct {
	Content     *string    `json:"session_content"`
	SessionDate *time.Time `json:"session_date"`
	Status      string     `json:"status" validate:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	TrainerID   *int       `json:"trainer_id"`
	Notes       *string    `json:"notes"`
}

func (ue *UpdateEntry) Validate(validate *validator.Validate) error {
	return validate.Struct(ue)
}
