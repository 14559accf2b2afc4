package program

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/etasha-dev/scheduler/core"
)

// Program is a curriculum template batches are instantiated from.
type Program struct {
	ID             int       `json:"id"`
	ProgramName    string    `json:"program_name"`
	DurationMonths int       `json:"duration_months"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at"` // UTC
}

type NewProgram struct {
	ProgramName    string `json:"program_name" validate:"required"`
	DurationMonths int    `json:"duration_months" validate:"omitempty,min=1"`
}

func (np *NewProgram) Validate(validate *validator.Validate) error {
	np.ProgramName = core.CleanString(np.ProgramName)
	return validate.Struct(np)
}

type UpdateProgram struct {
	ProgramName    string `json:"program_name"`
	DurationMonths int    `json:"duration_months" validate:"omitempty,min=1"`
}

func (up *UpdateProgram) Validate(validate *validator.Validate, orig Program) error {
	if name := core.CleanString(up.ProgramName); name != "" {
		up.ProgramName = name
	} else {
		up.ProgramName = orig.ProgramName
	}
	if up.DurationMonths == 0 {
		up.DurationMonths = orig.DurationMonths
	}
	return validate.Struct(up)
}
