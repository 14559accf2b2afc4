package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/etasha-dev/scheduler/core"
)

// Course is a teachable unit of a program (a "module" in operator parlance).
type Course struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type NewCourse struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}

type UpdateCourse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate, orig Course) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	return validate.Struct(uc)
}
