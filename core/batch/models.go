package batch

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/etasha-dev/scheduler/core"
)

// Statuses
const (
	StatusUpcoming  = "Upcoming"
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
)

// Batch is a group of students running through a program at a center.
// StartDate anchors the working-day projection of its schedule template.
type Batch struct {
	ID        int       `json:"id"`
	BatchName string    `json:"batch_name"`
	StartDate time.Time `json:"start_date"`
	EndDate   null.Time `json:"end_date"`
	Status    string    `json:"status"`
	ProgramID null.Int  `json:"program_id"`
	CenterID  null.Int  `json:"center_id"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type NewBatch struct {
	BatchName string     `json:"batch_name" validate:"required"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date"`
	Status    string     `json:"status" validate:"omitempty,oneof=Upcoming Ongoing Completed"`
	ProgramID *int       `json:"program_id"`
	CenterID  *int       `json:"center_id"`
}

func (nb *NewBatch) Validate(validate *validator.Validate) error {
	nb.BatchName = core.CleanString(nb.BatchName)
	return validate.Struct(nb)
}

type UpdateBatch struct {
	BatchName string     `json:"batch_name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Status    string     `json:"status" validate:"omitempty,oneof=Upcoming Ongoing Completed"`
	ProgramID *int       `json:"program_id"`
	CenterID  *int       `json:"center_id"`
}

func (ub *UpdateBatch) Validate(validate *validator.Validate, orig Batch) error {
	if name := core.CleanString(ub.BatchName); name != "" {
		ub.BatchName = name
	} else {
		ub.BatchName = orig.BatchName
	}
	if ub.Status == "" {
		ub.Status = orig.Status
	}
	return validate.Struct(ub)
}
