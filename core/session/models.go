package session

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core"
)

// Statuses. Draft -> Published is the only transition the scheduling engine
// performs; the remaining statuses are set by direct edits.
const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
	StatusCompleted = "Completed"
	StatusMissed    = "Missed"
	StatusCancelled = "Cancelled"
)

// Session is one trainer-led teaching slot for one course within one batch.
type Session struct {
	ID          int       `json:"id"`
	SessionDate time.Time `json:"session_date"` // UTC
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	BatchID     null.Int  `json:"batch_id"`
	TrainerID   null.Int  `json:"trainer_id"`
	CourseID    null.Int  `json:"course_id"`
	ProgramID   null.Int  `json:"program_id"`
	CenterID    null.Int  `json:"center_id"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewSession contains information needed to create a single Session directly.
// Batch, trainer and course are required here even though the columns are
// nullable; only the draft generator copies rows without revalidating them.
type NewSession struct {
	SessionDate time.Time `json:"session_date" validate:"required"`
	TrainerID   int       `json:"trainer_id" validate:"required"`
	BatchID     int       `json:"batch_id" validate:"required"`
	CourseID    int       `json:"course_id" validate:"required"`
	ProgramID   *int      `json:"program_id"`
	CenterID    *int      `json:"center_id"`
	Status      string    `json:"status" validate:"omitempty,oneof=Draft Published Completed Missed Cancelled"`
	Notes       string    `json:"notes"`
}

func (ns *NewSession) Validate(validate *validator.Validate) error {
	ns.Notes = core.CleanString(ns.Notes)
	return validate.Struct(ns)
}

type UpdateSession struct {
	SessionDate *time.Time `json:"session_date"`
	TrainerID   *int       `json:"trainer_id"`
	BatchID     *int       `json:"batch_id"`
	CourseID    *int       `json:"course_id"`
	ProgramID   *int       `json:"program_id"`
	CenterID    *int       `json:"center_id"`
	Status      string     `json:"status" validate:"omitempty,oneof=Draft Published Completed Missed Cancelled"`
	Notes       *string    `json:"notes"`
}

func (us *UpdateSession) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}
